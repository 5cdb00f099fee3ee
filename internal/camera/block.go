// Package camera implements the virtual camera: the per-frame zoom/pan
// decision that tracks mouse or caret focus inside a zoom block, with
// hysteresis so the camera never oscillates between the two.
package camera

import (
	"github.com/reelcut/reelcut/internal/effects"
)

// Block is the runtime view of a zoom effect, derived (never stored) from
// the timeline entry with fallbacks already applied.
type Block struct {
	ID      string
	StartMs float64
	EndMs   float64

	Scale     float64
	TargetX   float64
	TargetY   float64
	IntroMs   float64
	OutroMs   float64
	Smoothing float64
	Follow    effects.FollowStrategy
}

// BlockFromEffect derives a Block from a zoom timeline entry. Returns false
// when the effect is not a zoom.
func BlockFromEffect(e effects.Effect) (Block, bool) {
	zd, ok := e.Data.(effects.ZoomData)
	if !ok {
		return Block{}, false
	}
	d := zd.Normalized()

	start, end := e.StartMs, e.EndMs
	if end < start {
		end = start
	}

	b := Block{
		ID:        e.ID,
		StartMs:   start,
		EndMs:     end,
		Scale:     d.Scale,
		TargetX:   d.TargetX,
		TargetY:   d.TargetY,
		IntroMs:   d.IntroMs,
		OutroMs:   d.OutroMs,
		Smoothing: d.Smoothing,
		Follow:    d.Follow,
	}

	// Intro and outro can never overlap; a short block splits its window.
	if dur := b.EndMs - b.StartMs; dur > 0 && b.IntroMs+b.OutroMs > dur {
		ratio := dur / (b.IntroMs + b.OutroMs)
		b.IntroMs *= ratio
		b.OutroMs *= ratio
	}
	return b, true
}

// DurationMs returns the block window length.
func (b Block) DurationMs() float64 {
	return b.EndMs - b.StartMs
}
