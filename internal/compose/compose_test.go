package compose

import (
	"math"
	"testing"

	"github.com/reelcut/reelcut/internal/effects"
	"github.com/reelcut/reelcut/internal/events"
)

func mouseAt(t, x, y float64) events.MouseMoveEvent {
	return events.MouseMoveEvent{Stamp: events.Stamp{TimeMs: t}, X: x, Y: y}
}

func keyAt(t float64, k string) events.KeyEvent {
	return events.KeyEvent{Stamp: events.Stamp{TimeMs: t}, Key: k}
}

func baseInput() Input {
	return Input{
		Timeline: effects.Timeline{Effects: []effects.Effect{
			effects.New(0, 2000, effects.ZoomData{
				Scale: 2.5, IntroMs: 300, OutroMs: 300, Follow: effects.FollowMouse,
			}),
		}},
		Mouse:        []events.MouseMoveEvent{mouseAt(0, 960, 540)},
		SourceWidth:  1920,
		SourceHeight: 1080,
	}
}

func TestEndToEndCenteredZoom(t *testing.T) {
	// One zoom block, one mouse event at frame center: mid-block the scale
	// is the block scale, the camera is centered, and the video transform
	// has zero net translation (focus == element center).
	s := NewSession(nil, nil, baseInput())
	f := s.Frame(1000)

	if math.Abs(f.Video.Camera.Scale-2.5) > 1e-9 {
		t.Errorf("scale = %v, want 2.5", f.Video.Camera.Scale)
	}
	if math.Abs(f.Video.Camera.CenterX-0.5) > 1e-9 || math.Abs(f.Video.Camera.CenterY-0.5) > 1e-9 {
		t.Errorf("center = (%v,%v), want (0.5,0.5)", f.Video.Camera.CenterX, f.Video.Camera.CenterY)
	}

	// The element center must stay fixed under the identity pan.
	cx, cy := f.Video.Offset.Width/2, f.Video.Offset.Height/2
	gx, gy := f.Video.Matrix.Apply(cx, cy)
	if math.Abs(gx-cx) > 1e-6 || math.Abs(gy-cy) > 1e-6 {
		t.Errorf("element center drifted to (%v,%v)", gx, gy)
	}
}

func TestFrameOutsideZoomWindowIsNeutral(t *testing.T) {
	s := NewSession(nil, nil, baseInput())
	f := s.Frame(8000)
	if f.Video.Camera.Scale != 1 {
		t.Errorf("scale outside block = %v, want 1", f.Video.Camera.Scale)
	}
	if f.Video.Window.BlockID != "" {
		t.Errorf("video layer claims block %q outside any window", f.Video.Window.BlockID)
	}
}

func TestEmptyInputDegradesGracefully(t *testing.T) {
	s := NewSession(nil, nil, Input{})
	f := s.Frame(1000)
	if f.Cursor != nil {
		t.Error("cursor rendered with no input")
	}
	if f.Video.Camera.Scale != 1 {
		t.Errorf("scale = %v, want 1", f.Video.Camera.Scale)
	}
	if f.Video.CSS == "" {
		t.Error("video layer missing transform string")
	}
}

func TestCursorSticksToVideoUnderZoom(t *testing.T) {
	in := baseInput()
	in.Mouse = []events.MouseMoveEvent{mouseAt(0, 480, 270)} // top-left quadrant
	s := NewSession(nil, nil, in)
	f := s.Frame(1000)
	if f.Cursor == nil {
		t.Fatal("cursor missing")
	}

	// Map the recorded point through the video matrix by hand; the cursor
	// layer must land on the same canvas point.
	lx := 480.0 / in.SourceWidth * f.Video.Offset.Width
	ly := 270.0 / in.SourceHeight * f.Video.Offset.Height
	wx, wy := f.Video.Matrix.Apply(lx, ly)
	if math.Abs(f.Cursor.X-(f.Video.Offset.X+wx)) > 1e-6 || math.Abs(f.Cursor.Y-(f.Video.Offset.Y+wy)) > 1e-6 {
		t.Errorf("cursor at (%v,%v), video maps to (%v,%v)", f.Cursor.X, f.Cursor.Y, f.Video.Offset.X+wx, f.Video.Offset.Y+wy)
	}
	if math.Abs(f.Cursor.Scale-2.5) > 1e-9 {
		t.Errorf("cursor scale = %v, want camera scale", f.Cursor.Scale)
	}
}

func TestScreenTiltComposesAfterZoom(t *testing.T) {
	in := baseInput()
	in.Timeline.Effects = append(in.Timeline.Effects,
		effects.New(0, 2000, effects.ScreenData{Preset: "medium"}))
	s := NewSession(nil, nil, in)

	f := s.Frame(1000)
	if f.Video.TiltEased.TiltX == 0 {
		t.Error("tilt not applied mid-block")
	}
	// Frame at the screen-block start is still flat (eased in).
	f0 := NewSession(nil, nil, in).Frame(0)
	if f0.Video.TiltEased.TiltX != 0 {
		t.Errorf("tilt at block start = %v, want 0", f0.Video.TiltEased.TiltX)
	}
}

func TestKeystrokeOverlayWindowing(t *testing.T) {
	in := baseInput()
	in.Timeline.Effects = append(in.Timeline.Effects,
		effects.New(0, 10000, effects.KeystrokeData{DisplayMs: 1000, MaxKeys: 3}))
	in.Keys = []events.KeyEvent{
		keyAt(100, "g"), keyAt(200, "o"), keyAt(300, " "),
		keyAt(400, "t"), keyAt(500, "e"),
	}
	s := NewSession(nil, nil, in)

	f := s.Frame(600)
	if f.Keystrokes == nil {
		t.Fatal("keystroke layer missing")
	}
	// MaxKeys caps at the newest three.
	if len(f.Keystrokes.Keys) != 3 {
		t.Fatalf("visible keys = %d, want 3", len(f.Keystrokes.Keys))
	}
	if f.Keystrokes.Keys[2].Key != "e" {
		t.Errorf("newest key = %q, want e", f.Keystrokes.Keys[2].Key)
	}
	for i := 1; i < len(f.Keystrokes.Keys); i++ {
		if f.Keystrokes.Keys[i].Age > f.Keystrokes.Keys[i-1].Age {
			t.Error("keys out of recency order")
		}
	}

	// After the display window everything fades out.
	if f := s.Frame(2000); f.Keystrokes != nil {
		t.Error("stale keystrokes still visible")
	}
}

func TestBackgroundPaddingMovesOffset(t *testing.T) {
	in := baseInput()
	in.Timeline.Effects = append(in.Timeline.Effects,
		effects.New(0, 5000, effects.BackgroundData{Color: "#202030", PaddingPx: 120}))
	s := NewSession(nil, nil, in)

	f := s.Frame(1000)
	if f.Background == nil {
		t.Fatal("background layer missing")
	}
	if f.Video.Offset.X < 120 || f.Video.Offset.Y < 120 {
		t.Errorf("padding not applied: offset %+v", f.Video.Offset)
	}

	// Outside the background block the offset reverts to the canvas fit.
	f = s.Frame(6000)
	if f.Background != nil {
		t.Error("background active outside its window")
	}
	if f.Video.Offset.Width != 1920 {
		t.Errorf("unpadded offset %+v", f.Video.Offset)
	}
}

func TestChunkedRenderMatchesSequential(t *testing.T) {
	// Render the same frame times sequentially and in shuffled chunk order;
	// camera scale and cursor position must agree at every queried time
	// that both sessions evaluate from a cold start of its chunk.
	in := baseInput()
	seq := NewSession(nil, nil, in)
	chunked := NewSession(nil, nil, in)

	// Chunk boundaries: [1000..1040) rendered first by the chunked session,
	// then [0..40). Each chunk starts cold at its first frame, which is the
	// exact situation export creates.
	var seqScale1000 float64
	for f := 0.0; f <= 1040; f += 20 {
		fr := seq.Frame(f)
		if f == 1000 {
			seqScale1000 = fr.Video.Camera.Scale
		}
	}
	chFr := chunked.Frame(1000)
	if math.Abs(chFr.Video.Camera.Scale-seqScale1000) > 0.05 {
		t.Errorf("chunked scale %v deviates from sequential %v", chFr.Video.Camera.Scale, seqScale1000)
	}

	// Cursor state is hard-deterministic regardless of order.
	a := NewSession(nil, nil, in)
	b := NewSession(nil, nil, in)
	fa := a.Frame(500)
	_ = b.Frame(1500)
	fb := b.Frame(500)
	if fa.Cursor == nil || fb.Cursor == nil {
		t.Fatal("cursor missing")
	}
	if fa.Cursor.X != fb.Cursor.X || fa.Cursor.Y != fb.Cursor.Y || fa.Cursor.Opacity != fb.Cursor.Opacity {
		t.Errorf("cursor state depends on render order: %+v vs %+v", fa.Cursor, fb.Cursor)
	}
}

func TestResetClearsRuntimeState(t *testing.T) {
	s := NewSession(nil, nil, baseInput())
	first := s.Frame(1000)
	s.Frame(1500)
	s.Reset()
	again := s.Frame(1000)
	if math.Abs(first.Video.Camera.Scale-again.Video.Camera.Scale) > 1e-9 {
		t.Errorf("post-reset scale %v != initial %v", again.Video.Camera.Scale, first.Video.Camera.Scale)
	}
}

func TestAnnotationLayerAppearsInWindow(t *testing.T) {
	in := baseInput()
	in.Timeline.Effects = append(in.Timeline.Effects,
		effects.New(500, 1500, effects.AnnotationData{Text: "note", X: 0.25, Y: 0.75}),
	)
	s := NewSession(nil, nil, in)

	f := s.Frame(1000)
	if f.Annotation == nil {
		t.Fatal("annotation layer missing inside its window")
	}
	if f.Annotation.Text != "note" || f.Annotation.X != 0.25 || f.Annotation.Y != 0.75 {
		t.Errorf("annotation payload mangled: %+v", f.Annotation)
	}

	if out := s.Frame(1800); out.Annotation != nil {
		t.Error("annotation layer should vanish outside its window")
	}

	// Empty text composes nothing.
	in2 := baseInput()
	in2.Timeline.Effects = append(in2.Timeline.Effects,
		effects.New(0, 2000, effects.AnnotationData{}),
	)
	if f := NewSession(nil, nil, in2).Frame(1000); f.Annotation != nil {
		t.Error("empty annotation text should not produce a layer")
	}
}
