package events

import "sort"

// Normalize returns a copy of events ordered by resolved timestamp with any
// remaining regressions clamped up to the running maximum. Events are never
// dropped; a clamped event becomes simultaneous with its predecessor.
//
// Source timestamps are preferred over frame-relative ones, so streams
// recorded across render chunks normalize to one consistent timeline.
func Normalize[E any, P interface {
	*E
	timed
}](evs []E) []E {
	if len(evs) == 0 {
		return nil
	}

	out := make([]E, len(evs))
	copy(out, evs)

	sort.SliceStable(out, func(i, j int) bool {
		return P(&out[i]).ResolvedMs() < P(&out[j]).ResolvedMs()
	})

	maxSeen := P(&out[0]).ResolvedMs()
	for i := 1; i < len(out); i++ {
		p := P(&out[i])
		if t := p.ResolvedMs(); t < maxSeen {
			p.clampTo(maxSeen)
		} else {
			maxSeen = t
		}
	}
	return out
}
