package geometry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/model"
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// looseFrame is a frame whose chain never reaches a physical frame.
type looseFrame struct {
	model.ComponentBase
}

func (l *looseFrame) FindBaseFrame() model.Frame { return l }

func (l *looseFrame) FindTransformInBaseFrame() spatial.Transform { return spatial.Identity() }

func TestConnectExactlyOneMode(t *testing.T) {
	m := model.New("scene")
	b := m.AddBody("block")

	// Frame only: valid.
	s := NewSphere("ok", 0.1)
	s.SetFrame(b)
	require.NoError(t, s.Connect(m))

	// Input only: valid.
	s = NewSphere("ok2", 0.1)
	s.SetTransformSource(func(*model.State) spatial.Transform { return spatial.Identity() })
	require.NoError(t, s.Connect(m))

	// Both: configuration error naming kind and instance.
	s = NewSphere("both", 0.1)
	s.SetFrame(b)
	s.SetTransformSource(func(*model.State) spatial.Transform { return spatial.Identity() })
	err := s.Connect(m)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Sphere", cfgErr.Kind)
	assert.Equal(t, "both", cfgErr.Name)
	assert.Contains(t, err.Error(), "cannot be attached to a frame")

	// Neither: configuration error as well.
	s = NewSphere("neither", 0.1)
	err = s.Connect(m)
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "must be attached to a frame")
}

func TestConnectResolvesFrameByName(t *testing.T) {
	m := model.New("scene")
	m.AddBody("humerus")

	s := NewSphere("marker", 0.01)
	s.SetFrameName("humerus")
	require.NoError(t, s.Connect(m))
	require.NotNil(t, s.Frame())
	assert.Equal(t, "humerus", s.Frame().Name())

	bad := NewSphere("dangling", 0.01)
	bad.SetFrameName("femur")
	err := bad.Connect(m)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "femur")
}

func TestGenerateFrameAttached(t *testing.T) {
	m := model.New("scene")
	m.AddBody("a")
	m.AddBody("b")
	third := m.AddBody("c")
	offset := m.AddOffsetFrame("anchor", third, spatial.Translation(spatial.V3(0.1, 0, 0)))

	s := NewSphere("marker", 0.05)
	s.SetFrame(offset)
	m.AddComponent(s)
	require.NoError(t, m.Connect())

	st := m.NewState()
	ds, err := s.GenerateDecorations(false, model.DisplayHints{}, st, nil)
	require.NoError(t, err)
	require.Len(t, ds, 1)

	sphere, ok := ds[0].(*decoration.Sphere)
	require.True(t, ok)
	assert.EqualValues(t, 0.05, sphere.Radius)
	// Stamped with the base body and the frame's base-relative transform.
	assert.Equal(t, 3, sphere.BodyIndex)
	assert.InDelta(t, 0.1, sphere.Transform.P.X, 1e-6)
	assert.Equal(t, 0, sphere.IndexOnBody)
}

func TestGenerateStaticPassSkipsFrameAttached(t *testing.T) {
	m := model.New("scene")
	b := m.AddBody("block")

	s := NewSphere("marker", 0.05)
	s.SetFrame(b)
	require.NoError(t, s.Connect(m))

	ds, err := s.GenerateDecorations(true, model.DisplayHints{}, m.NewState(), nil)
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestGenerateInputTransform(t *testing.T) {
	m := model.New("scene")
	s := NewSphere("tracker", 0.02)
	s.SetTransformSource(func(st *model.State) spatial.Transform {
		return spatial.Translation(spatial.V3(0, float32(st.Time), 0))
	})
	require.NoError(t, s.Connect(m))

	st := m.NewState()
	st.Time = 1.5

	// An input-posed geometry emits on both pass kinds, in ground.
	for _, fixed := range []bool{true, false} {
		ds, err := s.GenerateDecorations(fixed, model.DisplayHints{}, st, nil)
		require.NoError(t, err)
		require.Len(t, ds, 1)
		assert.Equal(t, 0, ds[0].Shared().BodyIndex)
		assert.InDelta(t, 1.5, ds[0].Shared().Transform.P.Y, 1e-6)
	}
}

func TestGenerateNonPhysicalChain(t *testing.T) {
	lf := &looseFrame{}
	lf.SetName("loose")

	s := NewSphere("marker", 0.05)
	s.SetFrame(lf)

	seed := []decoration.Decoration{&decoration.Line{}}
	ds, err := s.GenerateDecorations(false, model.DisplayHints{}, model.NewState(1), seed)
	var attErr *AttachmentError
	require.ErrorAs(t, err, &attErr)
	assert.Equal(t, "marker", attErr.Name)
	assert.Contains(t, err.Error(), "not attached to a physical frame")
	// Nothing was appended on failure.
	assert.Len(t, ds, 1)
}

func TestGenerateAppearanceAndScale(t *testing.T) {
	m := model.New("scene")
	b := m.AddBody("block")

	s := NewSphere("marker", 0.05)
	s.SetFrame(b)
	s.Scale = spatial.V3(2, 3, 4)
	s.Appearance.Color = spatial.V3(1, 0, 0)
	s.Appearance.Opacity = 0.5
	s.Appearance.Representation = decoration.Wireframe
	require.NoError(t, s.Connect(m))

	ds, err := s.GenerateDecorations(false, model.DisplayHints{}, m.NewState(), nil)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	p := ds[0].Shared()
	assert.Equal(t, spatial.V3(2, 3, 4), p.ScaleFactors)
	assert.Equal(t, spatial.V3(1, 0, 0), p.Appearance.Color)
	assert.EqualValues(t, 0.5, p.Appearance.Opacity)
	assert.Equal(t, decoration.Wireframe, p.Appearance.Representation)

	// An invisible geometry still emits, with a hidden representation.
	s.Appearance.Visible = false
	ds, err = s.GenerateDecorations(false, model.DisplayHints{}, m.NewState(), nil)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, decoration.Hide, ds[0].Shared().Appearance.Representation)
}

func TestGenerateAppendsToBuffer(t *testing.T) {
	m := model.New("scene")
	b := m.AddBody("block")

	first := NewSphere("first", 0.05)
	first.SetFrame(b)
	second := NewBrick("second", spatial.V3(1, 1, 1))
	second.SetFrame(b)
	m.AddComponent(first)
	m.AddComponent(second)
	require.NoError(t, m.Connect())

	st := m.NewState()
	ds, err := first.GenerateDecorations(false, model.DisplayHints{}, st, nil)
	require.NoError(t, err)
	ds, err = second.GenerateDecorations(false, model.DisplayHints{}, st, ds)
	require.NoError(t, err)

	require.Len(t, ds, 2)
	assert.IsType(t, &decoration.Sphere{}, ds[0])
	assert.IsType(t, &decoration.Brick{}, ds[1])
	// Ordinals count per geometry instance, not per buffer.
	assert.Equal(t, 0, ds[0].Shared().IndexOnBody)
	assert.Equal(t, 0, ds[1].Shared().IndexOnBody)
}

func TestErrorsAreMatchable(t *testing.T) {
	cfg := &ConfigurationError{Kind: "Mesh", Name: "m", Reason: "r"}
	att := &AttachmentError{Kind: "Sphere", Name: "s"}

	var cfgTarget *ConfigurationError
	var attTarget *AttachmentError
	assert.True(t, errors.As(error(cfg), &cfgTarget))
	assert.True(t, errors.As(error(att), &attTarget))
	assert.False(t, errors.As(error(cfg), &attTarget))
}
