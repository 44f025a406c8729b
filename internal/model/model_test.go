package model

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

func TestBodyIndices(t *testing.T) {
	m := New("arm")
	a := m.AddBody("humerus")
	b := m.AddBody("radius")

	assert.Equal(t, 0, m.Ground().MobilizedBodyIndex())
	assert.Equal(t, 1, a.MobilizedBodyIndex())
	assert.Equal(t, 2, b.MobilizedBodyIndex())
	assert.Equal(t, 3, m.NumBodies())
}

func TestFindFrame(t *testing.T) {
	m := New("arm")
	b := m.AddBody("humerus")
	m.AddOffsetFrame("elbow", b, spatial.Translation(spatial.V3(0, -0.3, 0)))

	f, ok := m.FindFrame("elbow")
	require.True(t, ok)
	assert.Equal(t, "elbow", f.Name())

	_, ok = m.FindFrame("missing")
	assert.False(t, ok)

	g, ok := m.FindFrame("ground")
	require.True(t, ok)
	assert.Same(t, Frame(m.Ground()), g)
}

func TestOffsetFrameChaining(t *testing.T) {
	m := New("arm")
	b := m.AddBody("humerus")
	elbow := m.AddOffsetFrame("elbow", b, spatial.Translation(spatial.V3(0, -0.3, 0)))
	marker := m.AddOffsetFrame("marker", elbow, spatial.Translation(spatial.V3(0.1, 0, 0)))

	assert.Same(t, Frame(b), marker.FindBaseFrame())

	x := marker.FindTransformInBaseFrame()
	assert.InDelta(t, 0.1, x.P.X, 1e-6)
	assert.InDelta(t, -0.3, x.P.Y, 1e-6)
}

func TestOffsetFrameRotatedChain(t *testing.T) {
	m := New("arm")
	b := m.AddBody("humerus")
	// Parent rotated a quarter turn about Z, child offset along its X.
	turn := spatial.NewTransform(spatial.QuatAxisAngle(spatial.V3(0, 0, 1), math32.Pi/2), spatial.Vec3{})
	pivot := m.AddOffsetFrame("pivot", b, turn)
	tip := m.AddOffsetFrame("tip", pivot, spatial.Translation(spatial.V3(1, 0, 0)))

	p := tip.FindTransformInBaseFrame().Apply(spatial.Vec3{})
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 1, p.Y, 1e-5)
}

func TestRootModel(t *testing.T) {
	m := New("arm")
	b := m.AddBody("humerus")
	assert.Same(t, m, RootModel(b))

	orphan := &Body{}
	orphan.SetName("loose")
	assert.Nil(t, RootModel(orphan))
	assert.Nil(t, RootModel(nil))
}

func TestStateTransforms(t *testing.T) {
	s := NewState(2)
	assert.Equal(t, 2, s.NumBodies())

	x := spatial.Translation(spatial.V3(0, 1, 0))
	s.SetBodyTransform(1, x)
	assert.Equal(t, x, s.BodyTransform(1))

	// Unknown indices read as identity.
	assert.Equal(t, spatial.Identity(), s.BodyTransform(5))
	assert.Equal(t, spatial.Identity(), s.BodyTransform(-1))

	// Setting past the end grows the state.
	s.SetBodyTransform(4, x)
	assert.Equal(t, 5, s.NumBodies())
	assert.Equal(t, x, s.BodyTransform(4))
}

func TestFrameSocketResolve(t *testing.T) {
	m := New("arm")
	m.AddBody("humerus")

	var s FrameSocket
	assert.False(t, s.Connected())

	s.SetConnecteeName("humerus")
	assert.True(t, s.Connected())
	require.NoError(t, s.Resolve(m))
	require.NotNil(t, s.Frame())
	assert.Equal(t, "humerus", s.Frame().Name())

	var bad FrameSocket
	bad.SetConnecteeName("femur")
	err := bad.Resolve(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "femur")
}

func TestFrameSocketRewire(t *testing.T) {
	m := New("arm")
	m.AddBody("humerus")
	m.AddBody("radius")

	var s FrameSocket
	s.SetConnecteeName("humerus")
	require.NoError(t, s.Resolve(m))

	// A new name drops the resolved frame so the next resolve honors it.
	s.SetConnecteeName("radius")
	require.NoError(t, s.Resolve(m))
	require.NotNil(t, s.Frame())
	assert.Equal(t, "radius", s.Frame().Name())

	// Wiring directly clears the recorded name.
	s.SetFrame(m.Ground())
	assert.Equal(t, "", s.ConnecteeName())
	assert.Same(t, Frame(m.Ground()), s.Frame())

	s.SetFrame(nil)
	assert.False(t, s.Connected())
}

func TestTransformInput(t *testing.T) {
	var in TransformInput
	assert.False(t, in.Connected())
	assert.Equal(t, spatial.Identity(), in.Value(nil))

	in.SetSource(func(st *State) spatial.Transform {
		return spatial.Translation(spatial.V3(float32(st.Time), 0, 0))
	})
	require.True(t, in.Connected())

	st := NewState(1)
	st.Time = 2
	assert.InDelta(t, 2, in.Value(st).P.X, 1e-6)

	in.SetSource(nil)
	assert.False(t, in.Connected())
	assert.Equal(t, spatial.Identity(), in.Value(st))
}

// recorder tracks the order connect-time callbacks run in.
type recorder struct {
	ComponentBase
	calls *[]string
	fail  error
}

func (r *recorder) OnPropertiesChanged() {
	*r.calls = append(*r.calls, r.Name()+":props")
}

func (r *recorder) Connect(m *Model) error {
	*r.calls = append(*r.calls, r.Name()+":connect")
	return r.fail
}

func TestConnectOrder(t *testing.T) {
	m := New("arm")
	var calls []string
	a := &recorder{calls: &calls}
	a.SetName("a")
	b := &recorder{calls: &calls}
	b.SetName("b")
	m.AddComponent(a)
	m.AddComponent(b)

	require.NoError(t, m.Connect())
	// Properties refresh for every component before any wiring runs.
	assert.Equal(t, []string{"a:props", "b:props", "a:connect", "b:connect"}, calls)

	assert.True(t, a.HasOwner())
	assert.Same(t, Component(m), a.Owner())
}

func TestConnectStopsAtFirstError(t *testing.T) {
	m := New("arm")
	var calls []string
	bad := &recorder{calls: &calls, fail: errors.New("boom")}
	bad.SetName("bad")
	after := &recorder{calls: &calls}
	after.SetName("after")
	m.AddComponent(bad)
	m.AddComponent(after)

	err := m.Connect()
	require.Error(t, err)
	assert.NotContains(t, calls, "after:connect")
}

func TestRealizeDecorationsShowFrames(t *testing.T) {
	m := New("arm")
	b := m.AddBody("humerus")
	m.AddOffsetFrame("elbow", b, spatial.Translation(spatial.V3(0, -0.3, 0)))

	st := m.NewState()

	// No hints: nothing to draw for an empty model.
	ds, err := m.RealizeDecorations(false, DisplayHints{}, st, nil)
	require.NoError(t, err)
	assert.Empty(t, ds)

	// Frames requested on the dynamic pass: ground, body, offset frame.
	ds, err = m.RealizeDecorations(false, DisplayHints{ShowFrames: true}, st, nil)
	require.NoError(t, err)
	require.Len(t, ds, 3)

	frame, ok := ds[2].(*decoration.Frame)
	require.True(t, ok)
	assert.Equal(t, 1, frame.BodyIndex)
	assert.InDelta(t, -0.3, frame.Transform.P.Y, 1e-6)
	assert.EqualValues(t, 1, frame.AxisLength)

	// The static pass leaves frame markers out.
	ds, err = m.RealizeDecorations(true, DisplayHints{ShowFrames: true}, st, nil)
	require.NoError(t, err)
	assert.Empty(t, ds)
}
