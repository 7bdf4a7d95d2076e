// Package physics provides collision detection and motion helpers.
package physics

import "math"

// Rect is an axis-aligned box with its top-left corner at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Shrink returns the rect inset by pad on every side.
// The result never has negative size; it collapses to its centre instead.
func (r Rect) Shrink(pad float64) Rect {
	w := r.W - 2*pad
	h := r.H - 2*pad
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{
		X: r.X + (r.W-w)/2,
		Y: r.Y + (r.H-h)/2,
		W: w,
		H: h,
	}
}

// Overlaps reports whether two rects share interior area. Touching edges do not count.
func Overlaps(a, b Rect) bool {
	return a.X < b.Right() && a.Right() > b.X && a.Y < b.Bottom() && a.Bottom() > b.Y
}

// OverlapsTolerant shrinks both rects by pad before testing, so grazing contact is forgiven.
func OverlapsTolerant(a, b Rect, pad float64) bool {
	return Overlaps(a.Shrink(pad), b.Shrink(pad))
}

// OverlapsX reports horizontal overlap only, with the same tolerance as OverlapsTolerant.
func OverlapsX(a, b Rect, pad float64) bool {
	sa, sb := a.Shrink(pad), b.Shrink(pad)
	return sa.X < sb.Right() && sa.Right() > sb.X
}

// EaseInOutCubic maps t in [0, 1] onto an ease-in-out cubic curve.
// Values outside the range are clamped.
func EaseInOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Approach moves current toward target by the fraction rate*dt (capped at 1),
// giving frame-rate tolerant exponential smoothing.
func Approach(current, target, rate, dt float64) float64 {
	return current + (target-current)*math.Min(1, rate*dt)
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
