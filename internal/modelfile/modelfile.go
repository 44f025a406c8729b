// Package modelfile loads model definitions from YAML files: bodies,
// offset frames and the geometry attached to them.
package modelfile

import (
	"fmt"
	"os"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"

	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/geometry"
	"github.com/RussellJ95/opensim-core/internal/model"
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// Def is the YAML definition of a model (e.g. models/pendulum.yaml).
type Def struct {
	Name     string        `yaml:"name"`
	Bodies   []BodyDef     `yaml:"bodies,omitempty"`
	Frames   []FrameDef    `yaml:"frames,omitempty"`
	Geometry []GeometryDef `yaml:"geometry,omitempty"`
}

// BodyDef declares a rigid body. Indices are assigned in file order.
type BodyDef struct {
	Name string `yaml:"name"`
}

// FrameDef declares a frame at a fixed offset from a parent frame. The
// parent may be ground, a body, or an earlier frame in the file.
type FrameDef struct {
	Name        string     `yaml:"name"`
	Parent      string     `yaml:"parent"`
	Translation [3]float32 `yaml:"translation,omitempty"`
	// Rotation is body-fixed XYZ Euler angles in degrees.
	Rotation [3]float32 `yaml:"rotation,omitempty"`
}

// AppearanceDef overrides parts of the default appearance. Unset fields
// keep their defaults (opaque shaded white).
type AppearanceDef struct {
	Color          *[3]float32 `yaml:"color,omitempty"`
	Opacity        *float32    `yaml:"opacity,omitempty"`
	Visible        *bool       `yaml:"visible,omitempty"`
	Representation string      `yaml:"representation,omitempty"`
}

// GeometryDef declares one geometry of any variant. Only the fields of
// the declared type are read.
type GeometryDef struct {
	Type  string `yaml:"type"`
	Name  string `yaml:"name"`
	Frame string `yaml:"frame"`

	Radius        float32    `yaml:"radius,omitempty"`
	HalfHeight    float32    `yaml:"half_height,omitempty"`
	Radii         [3]float32 `yaml:"radii,omitempty"`
	HalfLengths   [3]float32 `yaml:"half_lengths,omitempty"`
	Origin        [3]float32 `yaml:"origin,omitempty"`
	Direction     [3]float32 `yaml:"direction,omitempty"`
	Height        float32    `yaml:"height,omitempty"`
	BaseRadius    float32    `yaml:"base_radius,omitempty"`
	Start         [3]float32 `yaml:"start,omitempty"`
	End           [3]float32 `yaml:"end,omitempty"`
	Length        float32    `yaml:"length,omitempty"`
	DisplayRadius float32    `yaml:"display_radius,omitempty"`
	File          string     `yaml:"file,omitempty"`

	Scale      [3]float32     `yaml:"scale,omitempty"`
	Appearance *AppearanceDef `yaml:"appearance,omitempty"`
}

// Load reads a model definition file and builds the model. The file path
// is recorded on the model so mesh files resolve relative to it.
func Load(path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelfile: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.SetFilePath(path)
	return m, nil
}

// Parse builds a model from YAML data. The model is ready to Connect.
func Parse(data []byte) (*model.Model, error) {
	var def Def
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("modelfile: %w", err)
	}
	return Build(&def)
}

// Build assembles a model from a parsed definition.
func Build(def *Def) (*model.Model, error) {
	name := def.Name
	if name == "" {
		name = "model"
	}
	m := model.New(name)

	seen := map[string]bool{"ground": true}
	for _, bd := range def.Bodies {
		if bd.Name == "" {
			return nil, fmt.Errorf("modelfile: body without a name")
		}
		if seen[bd.Name] {
			return nil, fmt.Errorf("modelfile: duplicate frame name %q", bd.Name)
		}
		seen[bd.Name] = true
		m.AddBody(bd.Name)
	}

	for _, fd := range def.Frames {
		if fd.Name == "" {
			return nil, fmt.Errorf("modelfile: frame without a name")
		}
		if seen[fd.Name] {
			return nil, fmt.Errorf("modelfile: duplicate frame name %q", fd.Name)
		}
		parent, ok := m.FindFrame(fd.Parent)
		if !ok {
			return nil, fmt.Errorf("modelfile: frame %q: unknown parent %q", fd.Name, fd.Parent)
		}
		seen[fd.Name] = true
		m.AddOffsetFrame(fd.Name, parent, frameOffset(fd))
	}

	for i, gd := range def.Geometry {
		if gd.Name == "" {
			return nil, fmt.Errorf("modelfile: geometry %d without a name", i)
		}
		g, err := buildGeometry(gd)
		if err != nil {
			return nil, err
		}
		if gd.Frame != "" {
			g.AsBase().SetFrameName(gd.Frame)
		}
		if err := applyShared(g, gd); err != nil {
			return nil, err
		}
		m.AddComponent(g)
	}
	return m, nil
}

func frameOffset(fd FrameDef) spatial.Transform {
	r := spatial.QuatEulerXYZ(
		deg2rad(fd.Rotation[0]),
		deg2rad(fd.Rotation[1]),
		deg2rad(fd.Rotation[2]),
	)
	return spatial.NewTransform(r, vec3(fd.Translation))
}

func buildGeometry(gd GeometryDef) (geometry.Geometry, error) {
	switch gd.Type {
	case "sphere":
		return geometry.NewSphere(gd.Name, gd.Radius), nil
	case "ellipsoid":
		return geometry.NewEllipsoid(gd.Name, vec3(gd.Radii)), nil
	case "cylinder":
		return geometry.NewCylinder(gd.Name, gd.Radius, gd.HalfHeight), nil
	case "cone":
		return geometry.NewCone(gd.Name, vec3(gd.Origin), vec3(gd.Direction), gd.Height, gd.BaseRadius), nil
	case "brick":
		return geometry.NewBrick(gd.Name, vec3(gd.HalfLengths)), nil
	case "line":
		return geometry.NewLineGeometry(gd.Name, vec3(gd.Start), vec3(gd.End)), nil
	case "arrow":
		return geometry.NewArrow(gd.Name, vec3(gd.Direction), gd.Length), nil
	case "frame":
		f := geometry.NewFrameGeometry(gd.Name)
		if gd.DisplayRadius != 0 {
			f.DisplayRadius = gd.DisplayRadius
		}
		return f, nil
	case "mesh":
		if gd.File == "" {
			return nil, fmt.Errorf("modelfile: mesh %q without a file", gd.Name)
		}
		return geometry.NewMesh(gd.Name, gd.File), nil
	default:
		return nil, fmt.Errorf("modelfile: geometry %q: unknown type %q (want sphere, ellipsoid, cylinder, cone, brick, line, arrow, frame or mesh)", gd.Name, gd.Type)
	}
}

// applyShared copies the scale and appearance overrides onto the built
// geometry. A zero scale means unset and keeps the (1, 1, 1) default.
func applyShared(g geometry.Geometry, gd GeometryDef) error {
	b := g.AsBase()
	if gd.Scale != [3]float32{} {
		b.Scale = vec3(gd.Scale)
	}
	a := gd.Appearance
	if a == nil {
		return nil
	}
	if a.Color != nil {
		b.Appearance.Color = vec3(*a.Color)
	}
	if a.Opacity != nil {
		b.Appearance.Opacity = *a.Opacity
	}
	if a.Visible != nil {
		b.Appearance.Visible = *a.Visible
	}
	rep, err := parseRepresentation(a.Representation)
	if err != nil {
		return fmt.Errorf("modelfile: geometry %q: %w", gd.Name, err)
	}
	b.Appearance.Representation = rep
	return nil
}

func deg2rad(deg float32) float32 {
	return deg * math32.Pi / 180
}

func vec3(v [3]float32) spatial.Vec3 {
	return spatial.V3(v[0], v[1], v[2])
}

// parseRepresentation maps the YAML value onto a representation.
func parseRepresentation(s string) (decoration.Rep, error) {
	switch s {
	case "", "surface", "shaded":
		return decoration.Surface, nil
	case "wire", "wireframe":
		return decoration.Wireframe, nil
	case "points":
		return decoration.Points, nil
	case "hide", "hidden":
		return decoration.Hide, nil
	default:
		return decoration.Surface, fmt.Errorf("unknown representation %q", s)
	}
}
