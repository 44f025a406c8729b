package geometry

import (
	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/model"
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

const (
	// arrowLineThickness is the fixed shaft thickness of Arrow decorations.
	arrowLineThickness = 0.05
	// defaultDisplayRadius is the default line thickness of frame markers.
	defaultDisplayRadius = 0.004
)

// Sphere renders as a sphere of the configured radius.
type Sphere struct {
	Base
	Radius float32
}

func NewSphere(name string, radius float32) *Sphere {
	return &Sphere{Base: newBase("Sphere", name), Radius: radius}
}

func (s *Sphere) emit(dst []decoration.Decoration) []decoration.Decoration {
	return append(dst, &decoration.Sphere{Props: decoration.DefaultProps(), Radius: s.Radius})
}

func (s *Sphere) GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	return Generate(s, fixed, hints, st, dst)
}

// Ellipsoid renders as an ellipsoid with the configured half-axis radii.
type Ellipsoid struct {
	Base
	Radii spatial.Vec3
}

func NewEllipsoid(name string, radii spatial.Vec3) *Ellipsoid {
	return &Ellipsoid{Base: newBase("Ellipsoid", name), Radii: radii}
}

func (e *Ellipsoid) emit(dst []decoration.Decoration) []decoration.Decoration {
	return append(dst, &decoration.Ellipsoid{Props: decoration.DefaultProps(), Radii: e.Radii})
}

func (e *Ellipsoid) GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	return Generate(e, fixed, hints, st, dst)
}

// Cylinder renders as a cylinder along its local Y axis, extending
// HalfHeight above and below the origin.
type Cylinder struct {
	Base
	Radius     float32
	HalfHeight float32
}

func NewCylinder(name string, radius, halfHeight float32) *Cylinder {
	return &Cylinder{Base: newBase("Cylinder", name), Radius: radius, HalfHeight: halfHeight}
}

func (c *Cylinder) emit(dst []decoration.Decoration) []decoration.Decoration {
	return append(dst, &decoration.Cylinder{
		Props:      decoration.DefaultProps(),
		Radius:     c.Radius,
		HalfHeight: c.HalfHeight,
	})
}

func (c *Cylinder) GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	return Generate(c, fixed, hints, st, dst)
}

// Cone renders as a cone with its base disc at Origin, opening along
// Direction. The direction is normalized at emission.
type Cone struct {
	Base
	Origin     spatial.Vec3
	Direction  spatial.Vec3
	Height     float32
	BaseRadius float32
}

func NewCone(name string, origin, direction spatial.Vec3, height, baseRadius float32) *Cone {
	return &Cone{
		Base:       newBase("Cone", name),
		Origin:     origin,
		Direction:  direction,
		Height:     height,
		BaseRadius: baseRadius,
	}
}

func (c *Cone) emit(dst []decoration.Decoration) []decoration.Decoration {
	return append(dst, &decoration.Cone{
		Props:      decoration.DefaultProps(),
		Origin:     c.Origin,
		Direction:  c.Direction.Normalized(),
		Height:     c.Height,
		BaseRadius: c.BaseRadius,
	})
}

func (c *Cone) GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	return Generate(c, fixed, hints, st, dst)
}

// Brick renders as a box with the configured half lengths.
type Brick struct {
	Base
	HalfLengths spatial.Vec3
}

func NewBrick(name string, halfLengths spatial.Vec3) *Brick {
	return &Brick{Base: newBase("Brick", name), HalfLengths: halfLengths}
}

func (b *Brick) emit(dst []decoration.Decoration) []decoration.Decoration {
	return append(dst, &decoration.Brick{Props: decoration.DefaultProps(), HalfLengths: b.HalfLengths})
}

func (b *Brick) GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	return Generate(b, fixed, hints, st, dst)
}

// LineGeometry renders as a straight segment between two points.
type LineGeometry struct {
	Base
	Start spatial.Vec3
	End   spatial.Vec3
}

func NewLineGeometry(name string, start, end spatial.Vec3) *LineGeometry {
	return &LineGeometry{Base: newBase("LineGeometry", name), Start: start, End: end}
}

func (l *LineGeometry) emit(dst []decoration.Decoration) []decoration.Decoration {
	return append(dst, &decoration.Line{Props: decoration.DefaultProps(), Start: l.Start, End: l.End})
}

func (l *LineGeometry) GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	return Generate(l, fixed, hints, st, dst)
}

// Arrow renders as an arrow from the frame origin to Length times
// Direction. The direction is used as configured, not normalized.
type Arrow struct {
	Base
	Direction spatial.Vec3
	Length    float32
}

func NewArrow(name string, direction spatial.Vec3, length float32) *Arrow {
	return &Arrow{Base: newBase("Arrow", name), Direction: direction, Length: length}
}

func (a *Arrow) emit(dst []decoration.Decoration) []decoration.Decoration {
	end := a.Direction.Scale(a.Length)
	return append(dst, &decoration.Arrow{
		Props:         decoration.DefaultProps(),
		Start:         spatial.Vec3{},
		End:           end,
		LineThickness: arrowLineThickness,
	})
}

func (a *Arrow) GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	return Generate(a, fixed, hints, st, dst)
}

// FrameGeometry renders the axes of its attached frame as a unit-size
// frame marker. DisplayRadius sets the axis line thickness.
type FrameGeometry struct {
	Base
	DisplayRadius float32
}

func NewFrameGeometry(name string) *FrameGeometry {
	return &FrameGeometry{Base: newBase("FrameGeometry", name), DisplayRadius: defaultDisplayRadius}
}

func (f *FrameGeometry) emit(dst []decoration.Decoration) []decoration.Decoration {
	return append(dst, &decoration.Frame{
		Props:         decoration.DefaultProps(),
		AxisLength:    1,
		LineThickness: f.DisplayRadius,
	})
}

func (f *FrameGeometry) GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	return Generate(f, fixed, hints, st, dst)
}

var (
	_ Geometry = (*Sphere)(nil)
	_ Geometry = (*Ellipsoid)(nil)
	_ Geometry = (*Cylinder)(nil)
	_ Geometry = (*Cone)(nil)
	_ Geometry = (*Brick)(nil)
	_ Geometry = (*LineGeometry)(nil)
	_ Geometry = (*Arrow)(nil)
	_ Geometry = (*FrameGeometry)(nil)

	_ model.Connecter = (*Sphere)(nil)
	_ model.Generator = (*Sphere)(nil)
)
