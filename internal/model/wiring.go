package model

import (
	"fmt"

	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// FrameSocket connects a component to the frame it is attached to. Wire it
// directly with SetFrame, or record a frame name with SetConnecteeName and
// let Resolve look it up when the model is connected.
type FrameSocket struct {
	connectee string
	frame     Frame
}

// SetFrame wires the socket directly to f, dropping any recorded
// connectee name. Nil unwires the socket.
func (s *FrameSocket) SetFrame(f Frame) {
	s.frame = f
	s.connectee = ""
}

// SetConnecteeName records the name of the frame to attach to, replacing
// any frame the socket was wired to. The name is resolved against the
// model's frames during connect.
func (s *FrameSocket) SetConnecteeName(name string) {
	s.connectee = name
	s.frame = nil
}

// ConnecteeName returns the recorded frame name, "" when wired directly.
func (s *FrameSocket) ConnecteeName() string { return s.connectee }

// Connected reports whether the socket is wired to a frame, either
// directly or through a connectee name awaiting resolution.
func (s *FrameSocket) Connected() bool { return s.frame != nil || s.connectee != "" }

// Frame returns the wired frame, nil while unresolved.
func (s *FrameSocket) Frame() Frame { return s.frame }

// Resolve looks up the connectee name in m and wires the socket to the
// result. A socket that is already wired or not wired at all is left
// alone.
func (s *FrameSocket) Resolve(m *Model) error {
	if s.frame != nil || s.connectee == "" {
		return nil
	}
	f, ok := m.FindFrame(s.connectee)
	if !ok {
		return fmt.Errorf("model: no frame named %q", s.connectee)
	}
	s.frame = f
	return nil
}

// TransformInput supplies a component's placement from the state when it
// is not attached to a frame, e.g. a pose played back from a recording or
// computed by a solver.
type TransformInput struct {
	source func(*State) spatial.Transform
}

// SetSource wires the input to a state-dependent transform. Nil unwires
// it.
func (i *TransformInput) SetSource(f func(*State) spatial.Transform) { i.source = f }

// Connected reports whether a source has been wired.
func (i *TransformInput) Connected() bool { return i.source != nil }

// Value evaluates the input against st. Identity when unconnected.
func (i *TransformInput) Value(st *State) spatial.Transform {
	if i.source == nil {
		return spatial.Identity()
	}
	return i.source(st)
}
