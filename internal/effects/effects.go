// Package effects models the edit timeline: time-windowed, typed effect
// blocks applied during composition. Payloads form a closed tagged union so
// adding an effect kind is a compile-checked change, not a stringly one.
package effects

import (
	"github.com/google/uuid"
)

// Kind identifies an effect payload type.
type Kind int

const (
	Background Kind = iota
	Cursor
	Zoom
	Keystroke
	Screen
	Annotation
)

var kindNames = map[Kind]string{
	Background: "background",
	Cursor:     "cursor",
	Zoom:       "zoom",
	Keystroke:  "keystroke",
	Screen:     "screen",
	Annotation: "annotation",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Payload is the closed set of effect payloads.
type Payload interface {
	Kind() Kind
}

// Effect is a time-windowed, typed configuration block.
type Effect struct {
	ID      string
	StartMs float64
	EndMs   float64
	Enabled bool
	Data    Payload
}

// New returns an enabled effect over [startMs, endMs] with a fresh ID.
func New(startMs, endMs float64, data Payload) Effect {
	return Effect{
		ID:      uuid.NewString(),
		StartMs: startMs,
		EndMs:   endMs,
		Enabled: true,
		Data:    data,
	}
}

// ActiveAt reports whether the effect window contains nowMs, inclusive on
// both ends.
func (e Effect) ActiveAt(nowMs float64) bool {
	return e.Enabled && e.Data != nil && e.StartMs <= nowMs && nowMs <= e.EndMs
}

// Kind returns the payload kind, or Annotation-invalid sentinel -1 when the
// payload is missing.
func (e Effect) Kind() Kind {
	if e.Data == nil {
		return Kind(-1)
	}
	return e.Data.Kind()
}

// DurationMs returns the window length, never negative.
func (e Effect) DurationMs() float64 {
	if e.EndMs < e.StartMs {
		return 0
	}
	return e.EndMs - e.StartMs
}

// Timeline is the ordered effect list produced by the editor.
type Timeline struct {
	Effects []Effect
}

// ActiveAt returns the active effect of the given kind at nowMs.
//
// When several effects of one kind overlap, the first entry in array order
// wins. That tie-break is deliberate and pinned by tests: it matches how the
// editor appends blocks, and changing priority (for example last-added wins)
// is a product decision, not a rendering one.
func (t Timeline) ActiveAt(k Kind, nowMs float64) (Effect, bool) {
	for _, e := range t.Effects {
		if e.Kind() == k && e.ActiveAt(nowMs) {
			return e, true
		}
	}
	return Effect{}, false
}

// AllActiveAt returns at most one active effect per kind at nowMs, using the
// same first-match tie-break as ActiveAt.
func (t Timeline) AllActiveAt(nowMs float64) map[Kind]Effect {
	out := make(map[Kind]Effect)
	for _, e := range t.Effects {
		k := e.Kind()
		if _, seen := out[k]; seen {
			continue
		}
		if e.ActiveAt(nowMs) {
			out[k] = e
		}
	}
	return out
}
