package events

import (
	"math"
	"sort"

	"github.com/reelcut/reelcut/internal/ease"
)

// jumpThreshold is the euclidean distance, in capture pixels, beyond which
// two adjacent samples are treated as a teleport (display or window switch)
// rather than continuous motion.
const jumpThreshold = 500.0

// momentumWeight scales the glide term carried over from the previous
// interval's velocity. Presentation only; zero at both interval ends.
const momentumWeight = 0.35

// Interpolate returns the position of a normalized, position-carrying event
// stream at tMs. The second return is false only when the stream is empty.
//
// Queries before the first event hold the first position; queries after the
// last hold the last. No extrapolation in either direction.
func Interpolate[E Positioned](evs []E, tMs float64) (Point, bool) {
	return interpolate(evs, tMs, false)
}

// InterpolateGlide is Interpolate with a momentum term blended in from the
// previous interval's velocity, decaying to zero as the interval completes.
func InterpolateGlide[E Positioned](evs []E, tMs float64) (Point, bool) {
	return interpolate(evs, tMs, true)
}

func interpolate[E Positioned](evs []E, tMs float64, glide bool) (Point, bool) {
	if len(evs) == 0 {
		return Point{}, false
	}

	// First event with timestamp > tMs.
	nextIdx := sort.Search(len(evs), func(i int) bool {
		return evs[i].ResolvedMs() > tMs
	})

	if nextIdx == 0 {
		return evs[0].Position(), true
	}
	if nextIdx == len(evs) {
		return evs[len(evs)-1].Position(), true
	}

	prev, next := evs[nextIdx-1], evs[nextIdx]
	p0, p1 := prev.Position(), next.Position()
	t0, t1 := prev.ResolvedMs(), next.ResolvedMs()

	span := t1 - t0
	if span <= 0 {
		// Zero-duration interval: instant transition.
		return p1, true
	}
	progress := ease.Clamp((tMs-t0)/span, 0, 1)

	// A teleport renders as a cut, never a sweep across the screen.
	if dist(p0, p1) > jumpThreshold {
		if progress < 0.5 {
			return p0, true
		}
		return p1, true
	}

	eased := ease.InOutQuart(progress)
	out := Point{
		X: ease.Lerp(p0.X, p1.X, eased),
		Y: ease.Lerp(p0.Y, p1.Y, eased),
	}

	if glide && nextIdx >= 2 {
		pp := evs[nextIdx-2]
		ppT := pp.ResolvedMs()
		if dt := t0 - ppT; dt > 0 {
			ppPos := pp.Position()
			if dist(ppPos, p0) <= jumpThreshold {
				vx := (p0.X - ppPos.X) / dt
				vy := (p0.Y - ppPos.Y) / dt
				// Zero at both ends keeps the hold-at-ends contract intact.
				w := momentumWeight * progress * (1 - progress) * (1 - progress)
				out.X += vx * (tMs - t0) * w
				out.Y += vy * (tMs - t0) * w
			}
		}
	}
	return out, true
}

func dist(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
