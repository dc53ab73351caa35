// Package physics provides bounds and collision helpers for the court.
package physics

import "math"

// Clamp limits v to [lo, hi]. When the range is empty (hi < lo), lo wins so
// positions never go negative on a surface smaller than the object.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// InSpan reports whether v lies within [start, start+length], edges included.
func InSpan(v, start, length float64) bool {
	return v >= start && v <= start+length
}

// StepToward moves cur by step toward target, but only when cur lies outside
// the dead zone [target-deadZone, target+deadZone]. It never snaps to target.
func StepToward(cur, target, step, deadZone float64) float64 {
	if cur < target-deadZone {
		return cur + step
	}
	if cur > target+deadZone {
		return cur - step
	}
	return cur
}

// CrossesVertical reports whether a circle at y with radius r pokes outside [0, height].
func CrossesVertical(y, r, height float64) bool {
	return y-r < 0 || y+r > height
}
