package mathutil

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Compose builds an affine matrix T · R · S.
func Compose(t mgl64.Vec3, r mgl64.Quat, s mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(r.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

// Translation returns the translation column of an affine matrix.
func Translation(m mgl64.Mat4) mgl64.Vec3 {
	return mgl64.Vec3{m[12], m[13], m[14]}
}

// Decompose splits an affine matrix into translation, rotation and scale.
// A negative determinant is folded into the X scale.
func Decompose(m mgl64.Mat4) (mgl64.Vec3, mgl64.Quat, mgl64.Vec3) {
	t := Translation(m)

	c0 := mgl64.Vec3{m[0], m[1], m[2]}
	c1 := mgl64.Vec3{m[4], m[5], m[6]}
	c2 := mgl64.Vec3{m[8], m[9], m[10]}
	s := mgl64.Vec3{c0.Len(), c1.Len(), c2.Len()}
	if c0.Dot(c1.Cross(c2)) < 0 {
		s[0] = -s[0]
	}

	if s[0] == 0 || s[1] == 0 || s[2] == 0 {
		return t, mgl64.QuatIdent(), s
	}

	c0, c1, c2 = c0.Mul(1/s[0]), c1.Mul(1/s[1]), c2.Mul(1/s[2])
	rot := mgl64.Mat4{
		c0[0], c0[1], c0[2], 0,
		c1[0], c1[1], c1[2], 0,
		c2[0], c2[1], c2[2], 0,
		0, 0, 0, 1,
	}
	return t, mgl64.Mat4ToQuat(rot).Normalize(), s
}

// Rotation returns the rotation component of an affine matrix.
func Rotation(m mgl64.Mat4) mgl64.Quat {
	_, r, _ := Decompose(m)
	return r
}

// IsIdentity checks if the matrix is approximately identity.
func IsIdentity(m mgl64.Mat4) bool {
	id := mgl64.Ident4()
	for i := 0; i < 16; i++ {
		d := m[i] - id[i]
		if d > 1e-8 || d < -1e-8 {
			return false
		}
	}
	return true
}
