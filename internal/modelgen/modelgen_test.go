package modelgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RussellJ95/opensim-core/internal/decoration"
	"github.com/RussellJ95/opensim-core/internal/model"
)

func TestGenerateDefaultChain(t *testing.T) {
	m := Generate(Default())
	require.NoError(t, m.Connect())

	assert.Equal(t, 4, m.NumBodies())
	assert.Len(t, m.Components(), 7)

	// ground, bracket, three bodies, rod and bob frame per link
	assert.Len(t, m.Frames(), 11)
	_, ok := m.FindFrame("link2_bob")
	assert.True(t, ok)
}

func TestGenerateClampsOptions(t *testing.T) {
	m := Generate(Options{})
	require.NoError(t, m.Connect())

	assert.Equal(t, 2, m.NumBodies())
	assert.Len(t, m.Components(), 3)
}

func TestPoseDeterministic(t *testing.T) {
	opts := Default()
	m := Generate(opts)

	a := m.NewState()
	b := m.NewState()
	Pose(a, opts, 1.25)
	Pose(b, opts, 1.25)

	for i := 0; i < m.NumBodies(); i++ {
		assert.Equal(t, a.BodyTransform(i), b.BodyTransform(i))
	}
	assert.Equal(t, 1.25, a.Time)
}

func TestPoseStraightWhenAmplitudeZero(t *testing.T) {
	opts := Default()
	opts.SwayAmplitude = 0
	m := Generate(opts)

	st := m.NewState()
	Pose(st, opts, 3.7)

	top := float32(opts.Links)*opts.LinkLength + opts.BobRadius*2
	for i := 1; i <= opts.Links; i++ {
		x := st.BodyTransform(i)
		assert.InDelta(t, 0, x.P.X, 1e-5)
		assert.InDelta(t, top-float32(i-1)*opts.LinkLength, x.P.Y, 1e-5)
	}
}

func TestDynamicPassEmitsChain(t *testing.T) {
	opts := Default()
	m := Generate(opts)
	require.NoError(t, m.Connect())

	st := m.NewState()
	Pose(st, opts, 0)

	ds, err := m.RealizeDecorations(false, model.DisplayHints{}, st, nil)
	require.NoError(t, err)
	require.Len(t, ds, 7)

	// bracket stays on ground, link geometry rides its body
	assert.Equal(t, 0, ds[0].Shared().BodyIndex)
	rod, ok := ds[1].(*decoration.Cylinder)
	require.True(t, ok)
	assert.Equal(t, 1, rod.BodyIndex)
	assert.InDelta(t, -opts.LinkLength/2, rod.Transform.P.Y, 1e-6)

	fixed, err := m.RealizeDecorations(true, model.DisplayHints{}, st, nil)
	require.NoError(t, err)
	assert.Empty(t, fixed)
}
