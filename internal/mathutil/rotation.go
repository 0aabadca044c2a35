package mathutil

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180 / math.Pi
}

// MachineEpsilon is the float64 spacing at 1.0.
const MachineEpsilon = 0x1p-52

// NearlyOne reports whether f differs from 1 by no more than MachineEpsilon.
func NearlyOne(f float64) bool {
	return math.Abs(f-1) <= MachineEpsilon
}
