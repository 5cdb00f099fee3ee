package compose

import (
	"github.com/reelcut/reelcut/internal/camera"
	"github.com/reelcut/reelcut/internal/cursor"
	"github.com/reelcut/reelcut/internal/effects"
	"github.com/reelcut/reelcut/internal/transform"
)

// Layer z-order, bottom to top. Fixed: background, video, keystrokes,
// cursor.
const (
	ZBackground = iota
	ZVideo
	ZKeystrokes
	ZCursor
)

// Window is the time span of the effect block a layer belongs to. Hosts key
// layer mounting on it so layers appear and disappear at block boundaries,
// never per frame.
type Window struct {
	BlockID string
	StartMs float64
	EndMs   float64
}

// BackgroundLayer styles the canvas behind the video.
type BackgroundLayer struct {
	Window       Window
	Color        string
	GradientFrom string
	GradientTo   string
	CornerRadius float64
	Shadow       float64
}

// VideoLayer carries the composed transform for the video element.
type VideoLayer struct {
	Window    Window
	Offset    transform.VideoOffset
	Matrix    *transform.Matrix
	CSS       string
	Camera    camera.Position
	TiltEased transform.Tilt
}

// CursorLayer is the cursor overlay in canvas coordinates, already mapped
// through the video matrix so it stays glued to the content under any zoom
// or tilt.
type CursorLayer struct {
	Window  Window
	Sprite  cursor.Sprite
	Type    cursor.Type
	X       float64
	Y       float64
	Scale   float64
	Opacity float64
	BlurPx  float64
	Trail   []cursor.TrailCopy
	Clicks  []cursor.ClickPulse
}

// AnnotationLayer is a positioned text callout. X and Y are normalized
// canvas coordinates.
type AnnotationLayer struct {
	Window Window
	Text   string
	X      float64
	Y      float64
}

// KeystrokeLayer lists the keys visible in the overlay at this frame.
type KeystrokeLayer struct {
	Window Window
	Keys   []KeyLabel
}

// KeyLabel is one visible keystroke with its fade progress.
type KeyLabel struct {
	Key string
	// Age is 0 when fresh and 1 at the end of the display window.
	Age float64
}

// Frame is the full composition output for one source time.
type Frame struct {
	TimeMs     float64
	Background *BackgroundLayer
	Video      VideoLayer
	Annotation *AnnotationLayer
	Keystrokes *KeystrokeLayer
	Cursor     *CursorLayer
}

func windowOf(e effects.Effect) Window {
	return Window{BlockID: e.ID, StartMs: e.StartMs, EndMs: e.EndMs}
}
