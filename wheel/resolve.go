package wheel

import "math"

const (
	// PointerOffset rotates the animation angle into the pointer's frame
	PointerOffset = 90.0

	// PointerScreenAngle is where the pointer sits in screen space (top, y grows downward)
	PointerScreenAngle = 270.0
)

// NormalizeDegrees wraps any angle into [0, 360)
// Non-finite input is treated as 0
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	n := math.Mod(deg, 360)
	if n < 0 {
		n += 360
	}
	// -tiny + 360 rounds up to exactly 360 in float64
	if n >= 360 {
		n = 0
	}
	return n
}

// SegmentWidth returns the angular width of one segment in degrees
func SegmentWidth(count int) float64 {
	if count <= 0 {
		return 0
	}
	return 360 / float64(count)
}

// PointerAngle maps a wheel rotation to the wheel-local angle under the pointer
// normalized = (360 - (angle + 90) mod 360) mod 360
func PointerAngle(angle float64) float64 {
	return NormalizeDegrees(360 - NormalizeDegrees(angle+PointerOffset))
}

// SegmentIndex resolves a final wheel rotation to the segment under the pointer
// Result is always in [0, count) for count > 0; count <= 0 yields 0
func SegmentIndex(angle float64, count int) int {
	if count <= 0 {
		return 0
	}
	return clampIndex(int(math.Floor(PointerAngle(angle)/SegmentWidth(count))), count)
}

// SegmentAt returns the segment drawn at a screen angle when the wheel is rotated by rotation degrees
// Segments start at screen angle 0 (positive x) and increase clockwise
func SegmentAt(screenAngle, rotation float64, count int) int {
	if count <= 0 {
		return 0
	}
	local := NormalizeDegrees(screenAngle - rotation)
	return clampIndex(int(math.Floor(local/SegmentWidth(count))), count)
}

func clampIndex(idx, count int) int {
	idx %= count
	if idx < 0 {
		idx += count
	}
	return idx
}
