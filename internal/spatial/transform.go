package spatial

// Transform is a rigid transform, a rotation followed by a translation.
// It maps points measured in one frame to another frame.
type Transform struct {
	R Quat
	P Vec3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{R: QuatIdent()}
}

// NewTransform returns the transform with rotation r and translation p.
func NewTransform(r Quat, p Vec3) Transform {
	return Transform{R: r, P: p}
}

// Translation returns the pure translation by p.
func Translation(p Vec3) Transform {
	return Transform{R: QuatIdent(), P: p}
}

// Compose returns t * u, the transform that applies u first and then t.
// If t maps frame B to frame A and u maps frame C to frame B, the result
// maps frame C to frame A.
func (t Transform) Compose(u Transform) Transform {
	return Transform{
		R: t.R.Mul(u.R),
		P: t.P.Add(t.R.Rotate(u.P)),
	}
}

// Apply maps the point p through the transform.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.R.Rotate(p).Add(t.P)
}
