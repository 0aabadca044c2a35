package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"rigtool/internal/mathutil"
)

// Transform is a node's local transform. Rotations are Euler XYZ in degrees.
type Transform struct {
	Translation  mgl64.Vec3
	Rotation     mgl64.Vec3
	PreRotation  mgl64.Vec3
	PostRotation mgl64.Vec3
	Scaling      mgl64.Vec3

	// GeometricTranslation offsets only the node's own geometry (destination pivot).
	// It is not inherited by children.
	GeometricTranslation mgl64.Vec3
	PivotActive          bool
}

// IdentityTransform returns a transform with unit scale and everything else zero.
func IdentityTransform() Transform {
	return Transform{Scaling: mgl64.Vec3{1, 1, 1}}
}

// LocalRotation returns Rpre · R · Rpost⁻¹.
func (t Transform) LocalRotation() mgl64.Quat {
	pre := mathutil.EulerToQuat(t.PreRotation)
	rot := mathutil.EulerToQuat(t.Rotation)
	post := mathutil.EulerToQuat(t.PostRotation)
	return pre.Mul(rot).Mul(post.Inverse())
}

// Matrix returns T · Rpre · R · Rpost⁻¹ · S.
func (t Transform) Matrix() mgl64.Mat4 {
	return mathutil.Compose(t.Translation, t.LocalRotation(), t.Scaling)
}
