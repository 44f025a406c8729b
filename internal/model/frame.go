package model

import (
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// Frame is a reference frame in the model. Every frame is rigidly fixed to
// some base frame, possibly through a chain of intermediate offsets.
type Frame interface {
	Component

	// FindBaseFrame returns the frame at the root of this frame's fixed
	// chain. A frame with no offsets is its own base.
	FindBaseFrame() Frame

	// FindTransformInBaseFrame returns the fixed transform taking points
	// in this frame to the base frame.
	FindTransformInBaseFrame() spatial.Transform
}

// PhysicalFrame is a frame backed by a mobilized body, so it has a
// well-defined pose in ground for any state.
type PhysicalFrame interface {
	Frame

	// MobilizedBodyIndex identifies the body this frame moves with.
	// Index 0 is ground.
	MobilizedBodyIndex() int
}

// Ground is the inertial frame of the model, mobilized body index 0.
type Ground struct {
	ComponentBase
}

// NewGround returns the ground frame. Models create one on construction.
func NewGround() *Ground {
	g := &Ground{}
	g.SetName("ground")
	return g
}

func (g *Ground) FindBaseFrame() Frame { return g }

func (g *Ground) FindTransformInBaseFrame() spatial.Transform { return spatial.Identity() }

func (g *Ground) MobilizedBodyIndex() int { return 0 }

// Body is a rigid body with its own mobilized body index, assigned when it
// is added to a model.
type Body struct {
	ComponentBase
	index int
}

func (b *Body) FindBaseFrame() Frame { return b }

func (b *Body) FindTransformInBaseFrame() spatial.Transform { return spatial.Identity() }

func (b *Body) MobilizedBodyIndex() int { return b.index }

// OffsetFrame is a frame at a fixed offset from a parent frame. Offsets
// chain: the base frame is the parent's base, and the transform to it
// composes every offset along the way.
type OffsetFrame struct {
	ComponentBase
	parent Frame
	offset spatial.Transform
}

// NewOffsetFrame returns a frame offset from parent by the given fixed
// transform.
func NewOffsetFrame(name string, parent Frame, offset spatial.Transform) *OffsetFrame {
	f := &OffsetFrame{parent: parent, offset: offset}
	f.SetName(name)
	return f
}

// Parent returns the frame this offset is expressed in.
func (f *OffsetFrame) Parent() Frame { return f.parent }

// Offset returns the fixed transform from the parent frame to this frame.
func (f *OffsetFrame) Offset() spatial.Transform { return f.offset }

func (f *OffsetFrame) FindBaseFrame() Frame { return f.parent.FindBaseFrame() }

func (f *OffsetFrame) FindTransformInBaseFrame() spatial.Transform {
	return f.parent.FindTransformInBaseFrame().Compose(f.offset)
}

var (
	_ PhysicalFrame = (*Ground)(nil)
	_ PhysicalFrame = (*Body)(nil)
	_ Frame         = (*OffsetFrame)(nil)
)
