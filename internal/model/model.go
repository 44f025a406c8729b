package model

import (
	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

const (
	// frameAxisScale shrinks the unit axis decorations emitted for
	// registered frames so they read as markers, not scenery.
	frameAxisScale = 0.2
	// frameLineThickness is the line width of those axis decorations.
	frameLineThickness = 0.004
)

// Connecter is satisfied by components that validate their wiring when the
// model is connected.
type Connecter interface {
	Connect(m *Model) error
}

// PropertiesListener is satisfied by components that refresh derived state
// whenever their properties may have changed, e.g. reload a mesh file.
type PropertiesListener interface {
	OnPropertiesChanged()
}

// Generator is satisfied by components that emit decorations.
type Generator interface {
	GenerateDecorations(fixed bool, hints DisplayHints, st *State, dst []decoration.Decoration) ([]decoration.Decoration, error)
}

// Model is the root of the component tree. It owns the ground frame,
// assigns mobilized body indices, and keeps the registries used to resolve
// sockets by name.
type Model struct {
	ComponentBase

	filePath string

	ground      *Ground
	bodies      []*Body
	frames      []Frame
	frameByName map[string]Frame
	components  []Component
}

// New returns an empty model containing only the ground frame.
func New(name string) *Model {
	m := &Model{frameByName: make(map[string]Frame)}
	m.SetName(name)
	m.ground = NewGround()
	m.ground.SetOwner(m)
	m.registerFrame(m.ground)
	return m
}

// Ground returns the model's ground frame.
func (m *Model) Ground() *Ground { return m.ground }

// FilePath returns the path of the file the model was loaded from, "" for
// a model built in code. Mesh file search starts from its directory.
func (m *Model) FilePath() string { return m.filePath }

// SetFilePath records where the model was loaded from.
func (m *Model) SetFilePath(path string) { m.filePath = path }

// AddBody creates a body, assigns it the next mobilized body index
// (ground is 0, bodies count up from 1 in add order) and registers it.
func (m *Model) AddBody(name string) *Body {
	b := &Body{index: len(m.bodies) + 1}
	b.SetName(name)
	b.SetOwner(m)
	m.bodies = append(m.bodies, b)
	m.registerFrame(b)
	return b
}

// AddOffsetFrame creates a frame offset from parent and registers it.
func (m *Model) AddOffsetFrame(name string, parent Frame, offset spatial.Transform) *OffsetFrame {
	f := NewOffsetFrame(name, parent, offset)
	f.SetOwner(m)
	m.registerFrame(f)
	return f
}

func (m *Model) registerFrame(f Frame) {
	m.frames = append(m.frames, f)
	m.frameByName[f.Name()] = f
}

// FindFrame returns the registered frame with the given name.
func (m *Model) FindFrame(name string) (Frame, bool) {
	f, ok := m.frameByName[name]
	return f, ok
}

// Frames returns all registered frames in registration order, ground
// first.
func (m *Model) Frames() []Frame { return m.frames }

// NumBodies returns the number of mobilized bodies including ground.
func (m *Model) NumBodies() int { return len(m.bodies) + 1 }

// NewState returns a state sized for this model, all bodies at identity.
func (m *Model) NewState() *State { return NewState(m.NumBodies()) }

// ownable lets AddComponent claim anything embedding ComponentBase.
type ownable interface {
	SetOwner(Component)
}

// AddComponent appends c to the model in declaration order and takes
// ownership of it.
func (m *Model) AddComponent(c Component) {
	if o, ok := c.(ownable); ok {
		o.SetOwner(m)
	}
	m.components = append(m.components, c)
}

// Components returns the added components in declaration order.
func (m *Model) Components() []Component { return m.components }

// Connect finalizes the model for use: every component first refreshes
// state derived from its properties, then validates its wiring. The first
// wiring error aborts the pass.
func (m *Model) Connect() error {
	for _, c := range m.components {
		if l, ok := c.(PropertiesListener); ok {
			l.OnPropertiesChanged()
		}
	}
	for _, c := range m.components {
		if cn, ok := c.(Connecter); ok {
			if err := cn.Connect(m); err != nil {
				return err
			}
		}
	}
	return nil
}

// RealizeDecorations collects the decorations of every generating
// component in declaration order, appending to dst. When hints ask for
// frames, an axis decoration is appended for each registered frame whose
// base is physical.
func (m *Model) RealizeDecorations(fixed bool, hints DisplayHints, st *State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	var err error
	for _, c := range m.components {
		if g, ok := c.(Generator); ok {
			dst, err = g.GenerateDecorations(fixed, hints, st, dst)
			if err != nil {
				return dst, err
			}
		}
	}
	if hints.ShowFrames && !fixed {
		dst = m.appendFrameDecorations(dst)
	}
	return dst, nil
}

func (m *Model) appendFrameDecorations(dst []decoration.Decoration) []decoration.Decoration {
	for _, f := range m.frames {
		pf, ok := f.FindBaseFrame().(PhysicalFrame)
		if !ok {
			continue
		}
		d := &decoration.Frame{
			Props:         decoration.DefaultProps(),
			AxisLength:    1,
			LineThickness: frameLineThickness,
		}
		d.BodyIndex = pf.MobilizedBodyIndex()
		d.Transform = f.FindTransformInBaseFrame()
		d.ScaleFactors = spatial.V3(frameAxisScale, frameAxisScale, frameAxisScale)
		dst = append(dst, d)
	}
	return dst
}
