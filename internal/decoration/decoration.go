// Package decoration defines the drawable primitives that geometry
// components emit each frame. A Decoration is pure data: placement,
// appearance and shape parameters. The viewer decides how to draw it.
package decoration

import (
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// Rep selects how a decoration surface is rendered.
type Rep int

const (
	// Hide suppresses drawing entirely.
	Hide Rep = iota
	// Points draws vertices only.
	Points
	// Wireframe draws edges only.
	Wireframe
	// Surface draws filled, shaded faces. The default.
	Surface
)

// Appearance carries the visual attributes shared by every decoration.
type Appearance struct {
	// Color is RGB with components in [0, 1].
	Color spatial.Vec3
	// Opacity is 1 for fully opaque, 0 for invisible.
	Opacity float32
	// Visible is false when the component asked to be hidden.
	Visible bool
	// Representation selects surface, wireframe or point rendering.
	Representation Rep
}

// DefaultAppearance returns an opaque white surface.
func DefaultAppearance() Appearance {
	return Appearance{
		Color:          spatial.Ones(),
		Opacity:        1,
		Visible:        true,
		Representation: Surface,
	}
}

// Props is the placement state common to every decoration variant. The
// generator fills it in after the variant-specific fields are set.
type Props struct {
	// BodyIndex is the mobilized body the decoration moves with. Index 0
	// is ground.
	BodyIndex int
	// IndexOnBody distinguishes multiple decorations emitted by one
	// component, in emission order.
	IndexOnBody int
	// Transform places the decoration relative to the body frame.
	Transform spatial.Transform
	// ScaleFactors stretch the shape along its local axes before the
	// transform is applied.
	ScaleFactors spatial.Vec3
	// Appearance carries color, opacity and representation.
	Appearance Appearance
}

// DefaultProps returns a ground-fixed identity placement with unit scale.
func DefaultProps() Props {
	return Props{
		BodyIndex:    0,
		IndexOnBody:  -1,
		Transform:    spatial.Identity(),
		ScaleFactors: spatial.Ones(),
		Appearance:   DefaultAppearance(),
	}
}

// Decoration is implemented by the concrete variants in this package. The
// set is closed: the viewer switches on the concrete type to draw.
type Decoration interface {
	// Shared returns the placement and appearance common to every variant.
	Shared() *Props

	decoration()
}

// Shared returns p itself, so embedding Props satisfies Decoration.
func (p *Props) Shared() *Props { return p }

func (*Props) decoration() {}

// Sphere is a solid sphere of the given radius, centered at the origin of
// its placement.
type Sphere struct {
	Props
	Radius float32
}

// Ellipsoid is a sphere stretched to the given half-axis radii.
type Ellipsoid struct {
	Props
	Radii spatial.Vec3
}

// Cylinder is aligned with its local Y axis and extends HalfHeight above
// and below the origin.
type Cylinder struct {
	Props
	Radius     float32
	HalfHeight float32
}

// Brick is an axis-aligned box described by its half lengths.
type Brick struct {
	Props
	HalfLengths spatial.Vec3
}

// Cone has its apex at Origin + Direction*Height and its base disc of
// BaseRadius centered at Origin.
type Cone struct {
	Props
	Origin     spatial.Vec3
	Direction  spatial.Vec3
	Height     float32
	BaseRadius float32
}

// Line is a straight segment between two points in the placement frame.
type Line struct {
	Props
	Start spatial.Vec3
	End   spatial.Vec3
}

// Arrow is a line from Start to End with an arrowhead at End.
type Arrow struct {
	Props
	Start         spatial.Vec3
	End           spatial.Vec3
	LineThickness float32
}

// Frame draws the three axes of its placement frame as colored lines of
// the given length.
type Frame struct {
	Props
	AxisLength    float32
	LineThickness float32
}

// Mesh is a polygonal surface loaded from a file. Faces index into
// Vertices; the scale factors in Props are applied by the viewer on every
// draw, so the vertex data itself stays unscaled.
type Mesh struct {
	Props
	Path     string
	Vertices []spatial.Vec3
	Faces    [][]int
}
