package mathutil

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EulerToQuat converts Euler XYZ angles in degrees to a unit quaternion.
// X is applied first, then Y, then Z (R = Rz · Ry · Rx).
func EulerToQuat(deg mgl64.Vec3) mgl64.Quat {
	rx, ry, rz := Deg2Rad(deg[0]), Deg2Rad(deg[1]), Deg2Rad(deg[2])
	cx, sx := math.Cos(rx*0.5), math.Sin(rx*0.5)
	cy, sy := math.Cos(ry*0.5), math.Sin(ry*0.5)
	cz, sz := math.Cos(rz*0.5), math.Sin(rz*0.5)

	return mgl64.Quat{
		W: cx*cy*cz + sx*sy*sz,
		V: mgl64.Vec3{
			sx*cy*cz - cx*sy*sz, // x
			cx*sy*cz + sx*cy*sz, // y
			cx*cy*sz - sx*sy*cz, // z
		},
	}
}

// QuatToEuler converts a rotation back to Euler XYZ degrees, the inverse of EulerToQuat.
// At gimbal lock Z is pinned to zero and X absorbs the remaining rotation.
func QuatToEuler(q mgl64.Quat) mgl64.Vec3 {
	m := q.Normalize().Mat4()
	r20 := m.At(2, 0)

	var rx, ry, rz float64
	switch {
	case r20 <= -1+gimbalEpsilon:
		ry = math.Pi / 2
		rx = math.Atan2(m.At(0, 1), m.At(0, 2))
	case r20 >= 1-gimbalEpsilon:
		ry = -math.Pi / 2
		rx = math.Atan2(-m.At(0, 1), -m.At(0, 2))
	default:
		ry = math.Asin(-r20)
		rx = math.Atan2(m.At(2, 1), m.At(2, 2))
		rz = math.Atan2(m.At(1, 0), m.At(0, 0))
	}
	return mgl64.Vec3{Rad2Deg(rx), Rad2Deg(ry), Rad2Deg(rz)}
}

const gimbalEpsilon = 1e-9

// RotateVec rotates v by the unit quaternion q (q · v · q⁻¹).
func RotateVec(q mgl64.Quat, v mgl64.Vec3) mgl64.Vec3 {
	// t = 2 · (q.V × v); v' = v + w·t + q.V × t
	t := q.V.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(q.V.Cross(t))
}
