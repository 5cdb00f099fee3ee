package transform

import (
	"github.com/reelcut/reelcut/internal/ease"
)

// Tilt is a 3D presentation preset for the screen layer: rotation in degrees
// and a CSS-style perspective distance in pixels.
type Tilt struct {
	TiltX       float64
	TiltY       float64
	Perspective float64
	Scale       float64
}

// tiltRampMs is how long a tilt eases in and out at block boundaries.
const tiltRampMs = 500.0

var tiltPresets = map[string]Tilt{
	"subtle":     {TiltX: 4, TiltY: -6, Perspective: 1400, Scale: 0.98},
	"medium":     {TiltX: 8, TiltY: -12, Perspective: 1100, Scale: 0.95},
	"dramatic":   {TiltX: 14, TiltY: -22, Perspective: 850, Scale: 0.9},
	"window":     {TiltX: 2, TiltY: 16, Perspective: 1200, Scale: 0.92},
	"cinematic":  {TiltX: 10, TiltY: 0, Perspective: 950, Scale: 0.93},
	"hero":       {TiltX: 18, TiltY: 0, Perspective: 1000, Scale: 0.88},
	"isometric":  {TiltX: 28, TiltY: -28, Perspective: 1600, Scale: 0.85},
	"flat":       {TiltX: 0, TiltY: 0, Perspective: 0, Scale: 1},
	"tilt-left":  {TiltX: 0, TiltY: 18, Perspective: 1000, Scale: 0.94},
	"tilt-right": {TiltX: 0, TiltY: -18, Perspective: 1000, Scale: 0.94},
}

// TiltPreset returns the named preset; unknown names fall back to flat.
func TiltPreset(name string) Tilt {
	if t, ok := tiltPresets[name]; ok {
		return t
	}
	return tiltPresets["flat"]
}

// Eased scales the tilt by a cubic ramp at the block boundaries so the
// screen never snaps into or out of its pose.
func (t Tilt) Eased(elapsedMs, durationMs float64) Tilt {
	if durationMs <= 0 {
		return t
	}
	ramp := tiltRampMs
	if 2*ramp > durationMs {
		ramp = durationMs / 2
	}

	k := 1.0
	switch {
	case elapsedMs < 0 || elapsedMs > durationMs:
		k = 0
	case ramp > 0 && elapsedMs < ramp:
		k = ease.InOutCubic(elapsedMs / ramp)
	case ramp > 0 && elapsedMs > durationMs-ramp:
		k = ease.InOutCubic((durationMs - elapsedMs) / ramp)
	}

	out := t
	out.TiltX *= k
	out.TiltY *= k
	out.Scale = ease.Lerp(1, t.Scale, k)
	return out
}

// Matrix builds perspective · rotateX · rotateY · scale about the element
// center, composed after the zoom transform by the caller.
func (t Tilt) Matrix(elemW, elemH float64) *Matrix {
	if t.TiltX == 0 && t.TiltY == 0 && (t.Scale == 0 || t.Scale == 1) {
		return Identity()
	}
	s := t.Scale
	if s <= 0 {
		s = 1
	}
	m := Perspective(t.Perspective).
		Mul(RotateX(t.TiltX)).
		Mul(RotateY(t.TiltY)).
		Mul(Scale(s))
	return m.AboutOrigin(elemW/2, elemH/2)
}
