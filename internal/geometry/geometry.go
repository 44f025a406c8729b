// Package geometry implements the visual shapes a model declares and the
// rules that turn them into positioned decorations each frame: attachment
// validation at connect time, per-draw transform resolution against the
// frame hierarchy, and the one-shot mesh file cache.
package geometry

import (
	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/model"
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// Geometry is a visual shape attached to a model, posed either by the
// frame it is fixed to or by a transform input, never both. The variant
// set is closed within this package.
type Geometry interface {
	model.Component

	// Connect validates the attachment configuration and resolves the
	// frame socket. Called once per model connect pass.
	Connect(m *model.Model) error

	// GenerateDecorations appends the positioned decorations for one
	// render pass to dst.
	GenerateDecorations(fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error)

	// Kind names the concrete variant, e.g. "Sphere".
	Kind() string

	// AsBase returns the embedded Base for shared configuration access.
	AsBase() *Base

	// emit appends the variant's untransformed decorations.
	emit(dst []decoration.Decoration) []decoration.Decoration
}

// Base carries the state shared by every variant: the attachment wiring,
// scale factors and appearance. Variants embed it.
type Base struct {
	model.ComponentBase

	// Scale stretches every emitted decoration along its local axes.
	// Components must be positive. Default (1, 1, 1).
	Scale spatial.Vec3

	// Appearance styles every emitted decoration.
	Appearance decoration.Appearance

	kind      string
	frame     model.FrameSocket
	transform model.TransformInput
}

func newBase(kind, name string) Base {
	b := Base{
		Scale:      spatial.Ones(),
		Appearance: decoration.DefaultAppearance(),
		kind:       kind,
	}
	b.SetName(name)
	return b
}

// Kind returns the concrete variant name, e.g. "Sphere".
func (b *Base) Kind() string { return b.kind }

// AsBase returns b itself, so embedding Base satisfies that part of the
// Geometry interface.
func (b *Base) AsBase() *Base { return b }

// SetFrame attaches the geometry to f directly.
func (b *Base) SetFrame(f model.Frame) { b.frame.SetFrame(f) }

// SetFrameName attaches the geometry to the frame with the given name,
// resolved when the model connects.
func (b *Base) SetFrameName(name string) { b.frame.SetConnecteeName(name) }

// Frame returns the attached frame, nil while unresolved or when the
// geometry is posed by its transform input.
func (b *Base) Frame() model.Frame { return b.frame.Frame() }

// SetTransformSource poses the geometry from the state instead of a
// frame. The source is evaluated on every generation call.
func (b *Base) SetTransformSource(f func(*model.State) spatial.Transform) {
	b.transform.SetSource(f)
}

// TransformConnected reports whether a transform input is wired.
func (b *Base) TransformConnected() bool { return b.transform.Connected() }

// Connect checks that exactly one attachment mode is active. Attached to
// a frame and fed by a transform input at once is ambiguous; neither
// leaves the geometry nowhere. The frame socket resolves here too.
func (b *Base) Connect(m *model.Model) error {
	attached := b.frame.Connected()
	hasInput := b.transform.Connected()
	if attached && hasInput {
		return &ConfigurationError{
			Kind:   b.kind,
			Name:   b.Name(),
			Reason: "cannot be attached to a frame and have its transform input set",
		}
	}
	if !attached && !hasInput {
		return &ConfigurationError{
			Kind:   b.kind,
			Name:   b.Name(),
			Reason: "must be attached to a frame or have its transform input set",
		}
	}
	if attached {
		if err := b.frame.Resolve(m); err != nil {
			return &ConfigurationError{
				Kind:   b.kind,
				Name:   b.Name(),
				Reason: "references unknown frame " + b.frame.ConnecteeName(),
			}
		}
	}
	return nil
}

// resolveTransform produces the mobilized body the geometry renders
// relative to and its transform in that body's frame. An input transform
// is taken as expressed in ground (body 0). Recomputed on every call; the
// state snapshot changes between draws.
func (b *Base) resolveTransform(st *model.State) (int, spatial.Transform, error) {
	if b.transform.Connected() {
		return 0, b.transform.Value(st), nil
	}
	f := b.frame.Frame()
	if f == nil {
		return 0, spatial.Transform{}, &AttachmentError{Kind: b.kind, Name: b.Name()}
	}
	pf, ok := f.FindBaseFrame().(model.PhysicalFrame)
	if !ok {
		return 0, spatial.Transform{}, &AttachmentError{Kind: b.kind, Name: b.Name()}
	}
	return pf.MobilizedBodyIndex(), f.FindTransformInBaseFrame(), nil
}

// Generate appends g's positioned decorations for one render pass to dst.
// On a fixed pass a geometry without a transform input emits nothing:
// frame-attached shapes are drawn on the dynamic pass where body poses
// apply. Emitted decorations are stamped in order with the owning body,
// the resolved transform, their ordinal, and the geometry's appearance
// and scale factors.
func Generate(g Geometry, fixed bool, hints model.DisplayHints, st *model.State, dst []decoration.Decoration) ([]decoration.Decoration, error) {
	b := g.AsBase()
	if fixed && !b.transform.Connected() {
		return dst, nil
	}

	start := len(dst)
	dst = g.emit(dst)
	if len(dst) == start {
		return dst, nil
	}

	bodyIndex, xf, err := b.resolveTransform(st)
	if err != nil {
		return dst[:start], err
	}
	for i, d := range dst[start:] {
		p := d.Shared()
		p.BodyIndex = bodyIndex
		p.Transform = xf
		p.IndexOnBody = i
		p.ScaleFactors = b.Scale
		p.Appearance = b.Appearance
		if !b.Appearance.Visible {
			p.Appearance.Representation = decoration.Hide
		}
	}
	return dst, nil
}
