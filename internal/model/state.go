package model

import (
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// State is a read-only snapshot of the model's kinematics at one instant:
// the time and the ground pose of every mobilized body. Decoration
// generation never mutates it.
type State struct {
	Time float64

	bodyToGround []spatial.Transform
}

// NewState returns a state for nBodies mobilized bodies (ground included),
// all posed at identity.
func NewState(nBodies int) *State {
	s := &State{bodyToGround: make([]spatial.Transform, nBodies)}
	for i := range s.bodyToGround {
		s.bodyToGround[i] = spatial.Identity()
	}
	return s
}

// SetBodyTransform sets the ground pose of the body with the given
// mobilized body index, growing the state if needed.
func (s *State) SetBodyTransform(index int, x spatial.Transform) {
	if index < 0 {
		return
	}
	for len(s.bodyToGround) <= index {
		s.bodyToGround = append(s.bodyToGround, spatial.Identity())
	}
	s.bodyToGround[index] = x
}

// BodyTransform returns the ground pose of the body with the given
// mobilized body index, identity when the index is unknown.
func (s *State) BodyTransform(index int) spatial.Transform {
	if index < 0 || index >= len(s.bodyToGround) {
		return spatial.Identity()
	}
	return s.bodyToGround[index]
}

// NumBodies returns the number of mobilized bodies the state covers.
func (s *State) NumBodies() int { return len(s.bodyToGround) }

// DisplayHints tells decoration generators which optional geometry to
// emit alongside the geometry the model declares. Generators ignore the
// hints they have no use for.
type DisplayHints struct {
	// ShowFrames requests an axis decoration for every registered frame.
	ShowFrames bool
	// ShowWireframe asks the renderer to draw surfaces as wireframe.
	ShowWireframe bool
	// ShowDebugGeometry requests decorations meant for debugging only.
	ShowDebugGeometry bool
}
