package spatial

import (
	"github.com/chewxy/math32"
)

// Quat is a unit quaternion representing a rotation.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdent returns the identity rotation.
func QuatIdent() Quat {
	return Quat{W: 1}
}

// QuatAxisAngle returns the rotation of angle radians about axis.
// The axis does not need to be normalized.
func QuatAxisAngle(axis Vec3, angle float32) Quat {
	a := axis.Normalized()
	s := math32.Sin(angle / 2)
	return Quat{
		X: a.X * s,
		Y: a.Y * s,
		Z: a.Z * s,
		W: math32.Cos(angle / 2),
	}
}

// QuatEulerXYZ returns the rotation given by body-fixed X, Y, Z rotations
// applied in that order, angles in radians.
func QuatEulerXYZ(x, y, z float32) Quat {
	qx := QuatAxisAngle(V3(1, 0, 0), x)
	qy := QuatAxisAngle(V3(0, 1, 0), y)
	qz := QuatAxisAngle(V3(0, 0, 1), z)
	return qx.Mul(qy).Mul(qz)
}

// Mul returns the composed rotation q then r applied in r-first order,
// i.e. rotating a vector by q.Mul(r) equals rotating by r, then by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*cross(q.xyz, cross(q.xyz, v) + q.w*v)
	u := V3(q.X, q.Y, q.Z)
	t := u.Cross(v).Add(v.Scale(q.W))
	return v.Add(u.Cross(t).Scale(2))
}
