// Package modelgen builds the demo model shown when the viewer starts
// without a model file: a pendulum chain hanging from a bracket, plus a
// parametric sway that poses it each frame.
package modelgen

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/RussellJ95/opensim-core/internal/geometry"
	"github.com/RussellJ95/opensim-core/internal/model"
	"github.com/RussellJ95/opensim-core/internal/spatial"
)

// Options controls the generated pendulum chain.
// Links is the number of chained links; each link is a rod of LinkLength
// capped by a bob of BobRadius. SwayAmplitude is the peak joint angle in
// radians and SwayHz the sway frequency, both used by Pose.
type Options struct {
	Links      int
	LinkLength float32
	RodRadius  float32
	BobRadius  float32

	SwayAmplitude float32
	SwayHz        float32
}

// Default returns the chain generated when no options are given.
func Default() Options {
	return Options{
		Links:         3,
		LinkLength:    0.5,
		RodRadius:     0.02,
		BobRadius:     0.08,
		SwayAmplitude: 0.35,
		SwayHz:        0.4,
	}
}

func (o Options) sanitized() Options {
	if o.Links <= 0 {
		o.Links = 1
	}
	if o.LinkLength <= 0 {
		o.LinkLength = 0.5
	}
	if o.RodRadius <= 0 {
		o.RodRadius = 0.02
	}
	if o.BobRadius <= 0 {
		o.BobRadius = 0.08
	}
	if o.SwayHz <= 0 {
		o.SwayHz = 0.4
	}
	return o
}

// phaseLag is the per-link phase offset of the sway, so the chain whips
// instead of swinging rigidly.
const phaseLag = 0.6

var bobPalette = []spatial.Vec3{
	{X: 0.85, Y: 0.33, Z: 0.31},
	{X: 0.35, Y: 0.62, Z: 0.88},
	{X: 0.42, Y: 0.78, Z: 0.42},
	{X: 0.92, Y: 0.76, Z: 0.31},
}

// Generate builds the pendulum model: a bracket fixed to ground and Links
// chained bodies, each carrying a rod and a bob on offset frames. The
// chain hangs along -Y from the bracket with the lowest bob just above
// the ground plane.
func Generate(opts Options) *model.Model {
	opts = opts.sanitized()

	m := model.New("pendulum")

	bracketFrame := m.AddOffsetFrame("bracket", m.Ground(),
		spatial.Translation(spatial.V3(0, hangHeight(opts), 0)))
	bracket := geometry.NewBrick("bracket_geom",
		spatial.V3(opts.BobRadius*1.5, opts.RodRadius*2, opts.BobRadius*1.5))
	bracket.SetFrame(bracketFrame)
	bracket.Appearance.Color = spatial.V3(0.45, 0.45, 0.5)
	m.AddComponent(bracket)

	for i := 0; i < opts.Links; i++ {
		name := fmt.Sprintf("link%d", i+1)
		body := m.AddBody(name)

		rodFrame := m.AddOffsetFrame(name+"_rod", body,
			spatial.Translation(spatial.V3(0, -opts.LinkLength/2, 0)))
		rod := geometry.NewCylinder(name+"_rod_geom", opts.RodRadius, opts.LinkLength/2)
		rod.SetFrame(rodFrame)
		rod.Appearance.Color = spatial.V3(0.75, 0.75, 0.78)
		m.AddComponent(rod)

		bobFrame := m.AddOffsetFrame(name+"_bob", body,
			spatial.Translation(spatial.V3(0, -opts.LinkLength, 0)))
		bob := geometry.NewSphere(name+"_bob_geom", opts.BobRadius)
		bob.SetFrame(bobFrame)
		bob.Appearance.Color = bobPalette[i%len(bobPalette)]
		m.AddComponent(bob)
	}

	return m
}

// Pose writes the chain's body transforms for time t into st. The sway
// is parametric, not simulated: each joint swings about Z with a phase
// lag down the chain.
func Pose(st *model.State, opts Options, t float32) {
	opts = opts.sanitized()
	st.Time = float64(t)

	x := spatial.Translation(spatial.V3(0, hangHeight(opts), 0))
	for i := 0; i < opts.Links; i++ {
		angle := opts.SwayAmplitude * math32.Sin(2*math32.Pi*opts.SwayHz*t+float32(i)*phaseLag)
		joint := spatial.NewTransform(
			spatial.QuatAxisAngle(spatial.V3(0, 0, 1), angle),
			pivotOffset(opts, i),
		)
		x = x.Compose(joint)
		st.SetBodyTransform(i+1, x)
	}
}

// pivotOffset is the position of a link's pivot in its parent link's
// frame. The first link pivots at the bracket itself.
func pivotOffset(opts Options, link int) spatial.Vec3 {
	if link == 0 {
		return spatial.Vec3{}
	}
	return spatial.V3(0, -opts.LinkLength, 0)
}

// hangHeight puts the lowest bob just above Y=0 when the chain hangs
// straight down.
func hangHeight(opts Options) float32 {
	return float32(opts.Links)*opts.LinkLength + opts.BobRadius*2
}
