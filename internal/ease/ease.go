// Package ease provides the scalar easing and smoothing primitives shared by
// the camera, cursor and transform packages.
package ease

import "math"

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the classic 3t^2-2t^3 curve over [0,1].
// Zero derivative at both ends.
func Smoothstep(t float64) float64 {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// InOutCubic accelerates until the midpoint then decelerates.
func InOutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// InOutQuart is a steeper variant of InOutCubic. Zero derivative at
// t=0 and t=1, which keeps interpolated motion C1-continuous across
// event boundaries.
func InOutQuart(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 4)/2
}

// OutExpo starts fast and lands softly. OutExpo(0) == 0, OutExpo(1) == 1.
func OutExpo(t float64) float64 {
	t = Clamp(t, 0, 1)
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// OutCubic decelerates toward the end of the range.
func OutCubic(t float64) float64 {
	t = Clamp(t, 0, 1)
	return 1 - math.Pow(1-t, 3)
}

// BlendedOut mixes exponential and smoothstep ease-out for a fast start
// with a soft landing. The zoom scale envelope uses ratio 0.7.
func BlendedOut(t, expoRatio float64) float64 {
	return OutExpo(t)*expoRatio + Smoothstep(t)*(1-expoRatio)
}

// ExpSmooth moves prev toward target by factor. Factor 1 snaps, 0 holds.
func ExpSmooth(prev, target, factor float64) float64 {
	return prev + (target-prev)*Clamp(factor, 0, 1)
}
