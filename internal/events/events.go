// Package events defines the recorded input telemetry streams and the
// time-series operations over them: normalization to monotonic source time
// and position interpolation at arbitrary query times.
package events

// Point is a 2D position in capture-space pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in capture-space pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Stamp carries the timing fields shared by every recorded event.
// TimeMs is frame-relative and resets per render chunk; SourceTimeMs, when
// present, is relative to the original recording and survives re-chunking.
type Stamp struct {
	TimeMs       float64  `json:"timestamp"`
	SourceTimeMs *float64 `json:"sourceTimestamp,omitempty"`
}

// ResolvedMs returns the source timestamp when present, the frame-relative
// timestamp otherwise.
func (s Stamp) ResolvedMs() float64 {
	if s.SourceTimeMs != nil {
		return *s.SourceTimeMs
	}
	return s.TimeMs
}

// clampTo raises the resolved timestamp to ms without touching the caller's
// original backing data.
func (s *Stamp) clampTo(ms float64) {
	v := ms
	s.TimeMs = ms
	if s.SourceTimeMs != nil {
		s.SourceTimeMs = &v
	}
}

// MouseMoveEvent is a sampled pointer position. CursorKind holds the raw OS
// cursor identifier captured with the sample, mapped to a sprite later.
type MouseMoveEvent struct {
	Stamp
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	CaptureWidth  float64 `json:"captureWidth,omitempty"`
	CaptureHeight float64 `json:"captureHeight,omitempty"`
	CursorKind    string  `json:"cursorType,omitempty"`
}

// Position implements Positioned.
func (e MouseMoveEvent) Position() Point { return Point{X: e.X, Y: e.Y} }

// ClickEvent is a mouse-down at a position.
type ClickEvent struct {
	Stamp
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button int     `json:"button,omitempty"`
}

// Position implements Positioned.
func (e ClickEvent) Position() Point { return Point{X: e.X, Y: e.Y} }

// CaretEvent is a text-cursor position change, optionally with the on-screen
// bounds of the focused element.
type CaretEvent struct {
	Stamp
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Bounds *Rect   `json:"bounds,omitempty"`
}

// Position implements Positioned.
func (e CaretEvent) Position() Point { return Point{X: e.X, Y: e.Y} }

// ScrollEvent is a wheel/trackpad scroll delta at a pointer position.
type ScrollEvent struct {
	Stamp
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	DeltaY float64 `json:"deltaY"`
}

// KeyEvent is a key press, recorded for the keystroke overlay.
type KeyEvent struct {
	Stamp
	Key string `json:"key"`
}

// Positioned is any event that carries a 2D position.
type Positioned interface {
	ResolvedMs() float64
	Position() Point
}

// timed is the mutable view Normalize needs; *Stamp provides it for every
// event type by embedding.
type timed interface {
	ResolvedMs() float64
	clampTo(ms float64)
}
