package spatial

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

func assertVec3(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps)
	assert.InDelta(t, want.Y, got.Y, eps)
	assert.InDelta(t, want.Z, got.Z, eps)
}

func TestVec3Ops(t *testing.T) {
	v := V3(1, 2, 3)
	u := V3(4, 5, 6)

	assertVec3(t, V3(5, 7, 9), v.Add(u))
	assertVec3(t, V3(-3, -3, -3), v.Sub(u))
	assertVec3(t, V3(2, 4, 6), v.Scale(2))
	assertVec3(t, V3(4, 10, 18), v.Mul(u))
	assert.InDelta(t, 32, v.Dot(u), eps)
	assertVec3(t, V3(-3, 6, -3), v.Cross(u))
	assert.InDelta(t, math32.Sqrt(14), v.Length(), eps)
}

func TestVec3NormalizedZero(t *testing.T) {
	z := Vec3{}
	assertVec3(t, z, z.Normalized())
	assert.True(t, z.IsZero())
	assert.False(t, V3(0, 0, 1).IsZero())
}

func TestQuatRotate(t *testing.T) {
	// Quarter turn about Z maps +X to +Y and +Y to -X.
	q := QuatAxisAngle(V3(0, 0, 1), math32.Pi/2)
	assertVec3(t, V3(0, 1, 0), q.Rotate(V3(1, 0, 0)))
	assertVec3(t, V3(-1, 0, 0), q.Rotate(V3(0, 1, 0)))

	// The opposite turn undoes it.
	back := QuatAxisAngle(V3(0, 0, 1), -math32.Pi/2)
	assertVec3(t, V3(1, 0, 0), back.Rotate(q.Rotate(V3(1, 0, 0))))
}

func TestQuatEulerXYZ(t *testing.T) {
	// A single-axis Euler rotation matches the axis-angle form.
	q := QuatEulerXYZ(0, math32.Pi/2, 0)
	r := QuatAxisAngle(V3(0, 1, 0), math32.Pi/2)
	assertVec3(t, r.Rotate(V3(0, 0, 1)), q.Rotate(V3(0, 0, 1)))
}

func TestTransformCompose(t *testing.T) {
	// Rotate a quarter turn about Z, then translate by (1, 0, 0).
	a := NewTransform(QuatAxisAngle(V3(0, 0, 1), math32.Pi/2), V3(1, 0, 0))
	b := Translation(V3(0, 2, 0))

	// a.Compose(b) applies b first: p -> b(p) -> a(...).
	got := a.Compose(b).Apply(V3(0, 0, 0))
	want := a.Apply(b.Apply(V3(0, 0, 0)))
	assertVec3(t, want, got)
	assertVec3(t, V3(-1, 0, 0).Add(V3(1, 0, 0)), got)
}

func TestTransformApply(t *testing.T) {
	// Rotation first, then translation.
	tr := NewTransform(QuatAxisAngle(V3(0, 0, 1), math32.Pi/2), V3(1, 2, 3))
	assertVec3(t, V3(1, 3, 3), tr.Apply(V3(1, 0, 0)))
	assertVec3(t, V3(1, 2, 3), tr.Apply(Vec3{}))
}
