package camera

import "github.com/reelcut/reelcut/internal/ease"

// envelopeExpoRatio blends exponential against smoothstep easing in the
// scale envelope: fast start, soft landing.
const envelopeExpoRatio = 0.7

// ScaleEnvelope returns the zoom scale at elapsedMs into a block of
// durationMs: easing 1 → target over introMs, holding target, then easing
// target → 1 over the final outroMs. Outside the block it returns 1.
func ScaleEnvelope(elapsedMs, durationMs, target, introMs, outroMs float64) float64 {
	if durationMs <= 0 || target <= 1 {
		return 1
	}
	if elapsedMs <= 0 || elapsedMs >= durationMs {
		return 1
	}
	if introMs+outroMs > durationMs {
		ratio := durationMs / (introMs + outroMs)
		introMs *= ratio
		outroMs *= ratio
	}

	switch {
	case introMs > 0 && elapsedMs < introMs:
		t := ease.BlendedOut(elapsedMs/introMs, envelopeExpoRatio)
		return 1 + (target-1)*t
	case outroMs > 0 && elapsedMs > durationMs-outroMs:
		t := ease.BlendedOut((durationMs-elapsedMs)/outroMs, envelopeExpoRatio)
		return 1 + (target-1)*t
	default:
		return target
	}
}
