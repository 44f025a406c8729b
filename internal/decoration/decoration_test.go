package decoration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RussellJ95/opensim-core/internal/spatial"
)

func TestDefaults(t *testing.T) {
	p := DefaultProps()
	assert.Equal(t, 0, p.BodyIndex)
	assert.Equal(t, -1, p.IndexOnBody)
	assert.Equal(t, spatial.Ones(), p.ScaleFactors)
	assert.True(t, p.Appearance.Visible)
	assert.Equal(t, Surface, p.Appearance.Representation)
	assert.EqualValues(t, 1, p.Appearance.Opacity)
}

func TestSharedIsAddressable(t *testing.T) {
	s := &Sphere{Props: DefaultProps(), Radius: 0.5}
	var d Decoration = s

	d.Shared().BodyIndex = 3
	d.Shared().IndexOnBody = 7

	assert.Equal(t, 3, s.BodyIndex)
	assert.Equal(t, 7, s.IndexOnBody)
}

func TestVariantsSatisfyDecoration(t *testing.T) {
	ds := []Decoration{
		&Sphere{}, &Ellipsoid{}, &Cylinder{}, &Brick{}, &Cone{},
		&Line{}, &Arrow{}, &Frame{}, &Mesh{},
	}
	for _, d := range ds {
		assert.NotNil(t, d.Shared())
	}
}
