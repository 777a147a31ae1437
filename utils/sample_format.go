// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// The integer conversions below shift a signal v in [-1, 1] into [0, 1] with
// v*0.5+0.5 and scale it by the target type's maximum, truncating toward
// zero. Values outside [-1, 1] are clamped first and NaN maps to 0.

// Float64ToUint8 maps v onto [0, math.MaxUint8].
func Float64ToUint8(v float64) uint8 {
	return uint8((clampUnit(v)*0.5 + 0.5) * math.MaxUint8)
}

// Float64ToUint16 maps v onto [0, math.MaxUint16].
// 0.0 becomes 32767, 1.0 becomes 65535 and -1.0 becomes 0.
func Float64ToUint16(v float64) uint16 {
	return uint16((clampUnit(v)*0.5 + 0.5) * math.MaxUint16)
}

// Float64ToInt16 maps v onto [0, math.MaxInt16].
// The result is offset like the unsigned conversions rather than centered on
// zero, so -1.0 becomes 0 and 1.0 becomes 32767.
func Float64ToInt16(v float64) int16 {
	return int16((clampUnit(v)*0.5 + 0.5) * math.MaxInt16)
}

// Float64ToFloat32 narrows v without scaling or clamping.
func Float64ToFloat32(v float64) float32 {
	return float32(v)
}

func clampUnit(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	case v != v: // NaN
		return 0
	}
	return v
}
