package video

import (
	"image"
	"image/color"
	"testing"

	"github.com/reelcut/reelcut/internal/compose"
	"github.com/reelcut/reelcut/internal/config"
	"github.com/reelcut/reelcut/internal/effects"
	"github.com/reelcut/reelcut/internal/events"
)

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Canvas.Width = 200
	cfg.Canvas.Height = 100
	cfg.Canvas.Padding = 0
	return cfg
}

func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func newTestRenderer(cfg *config.Config, in compose.Input) *Renderer {
	return NewRenderer(cfg, nil, compose.NewSession(cfg, nil, in), "")
}

func TestParseHexColor(t *testing.T) {
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff0000", color.RGBA{R: 255, A: 255}},
		{"#00FF00", color.RGBA{G: 255, A: 255}},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#123456", color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}},
		{"", fallback},
		{"red", fallback},
		{"#12345", fallback},
		{"#gggggg", fallback},
	}
	for _, c := range cases {
		if got := parseHexColor(c.in, fallback); got != c.want {
			t.Errorf("parseHexColor(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRenderFrameFillsVideoOnCanvas(t *testing.T) {
	cfg := testConfig()
	r := newTestRenderer(cfg, compose.Input{SourceWidth: 200, SourceHeight: 100})

	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	src := solidImage(200, 100, color.RGBA{R: 200, G: 30, B: 30, A: 255})
	r.RenderFrame(dst, src, 0)

	got := dst.RGBAAt(100, 50)
	if got.R < 150 || got.G > 80 {
		t.Fatalf("canvas center should show the video, got %v", got)
	}
}

func TestRenderFrameBackgroundBehindPaddedVideo(t *testing.T) {
	cfg := testConfig()
	in := compose.Input{
		SourceWidth:  200,
		SourceHeight: 100,
		Timeline: effects.Timeline{Effects: []effects.Effect{
			effects.New(0, 10000, effects.BackgroundData{Color: "#0000ff", PaddingPx: 20}),
		}},
	}
	r := newTestRenderer(cfg, in)

	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	src := solidImage(200, 100, color.RGBA{R: 255, A: 255})
	r.RenderFrame(dst, src, 500)

	// Corners are padding: background blue, not video red.
	corner := dst.RGBAAt(2, 2)
	if corner.B < 150 || corner.R > 80 {
		t.Fatalf("padded corner should be background, got %v", corner)
	}
	center := dst.RGBAAt(100, 50)
	if center.R < 150 {
		t.Fatalf("center should be video, got %v", center)
	}
}

func TestRenderFrameGradientBackground(t *testing.T) {
	cfg := testConfig()
	in := compose.Input{
		SourceWidth:  200,
		SourceHeight: 100,
		Timeline: effects.Timeline{Effects: []effects.Effect{
			effects.New(0, 10000, effects.BackgroundData{
				GradientFrom: "#000000",
				GradientTo:   "#ffffff",
				PaddingPx:    40,
			}),
		}},
	}
	r := newTestRenderer(cfg, in)

	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	r.RenderFrame(dst, solidImage(200, 100, color.RGBA{A: 255}), 500)

	top := dst.RGBAAt(2, 0)
	bottom := dst.RGBAAt(2, 99)
	if top.R >= bottom.R {
		t.Fatalf("vertical gradient should brighten downward: top %v bottom %v", top, bottom)
	}
}

func TestRenderFrameZoomKeepsCenterPixel(t *testing.T) {
	cfg := testConfig()
	// Center-left red, rest dark; zoomed on the center the midline pixel
	// keeps its color.
	src := solidImage(200, 100, color.RGBA{R: 10, G: 10, B: 10, A: 255})
	for y := 40; y < 60; y++ {
		for x := 90; x < 110; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 240, A: 255})
		}
	}
	in := compose.Input{
		SourceWidth:  200,
		SourceHeight: 100,
		Mouse: []events.MouseMoveEvent{
			{Stamp: events.Stamp{TimeMs: 0}, X: 100, Y: 50, CaptureWidth: 200, CaptureHeight: 100},
		},
		Timeline: effects.Timeline{Effects: []effects.Effect{
			effects.New(0, 4000, effects.ZoomData{Scale: 2, IntroMs: 300, OutroMs: 300}),
		}},
	}
	r := newTestRenderer(cfg, in)

	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	r.RenderFrame(dst, src, 2000)

	got := dst.RGBAAt(100, 50)
	if got.R < 150 {
		t.Fatalf("zoom focus pixel should stay centered and red, got %v", got)
	}
}

func TestRenderFrameDrawsProceduralCursor(t *testing.T) {
	cfg := testConfig()
	in := compose.Input{
		SourceWidth:  200,
		SourceHeight: 100,
		Mouse: []events.MouseMoveEvent{
			{Stamp: events.Stamp{TimeMs: 0}, X: 50, Y: 50, CaptureWidth: 200, CaptureHeight: 100},
			{Stamp: events.Stamp{TimeMs: 1000}, X: 50, Y: 50, CaptureWidth: 200, CaptureHeight: 100},
		},
	}
	r := newTestRenderer(cfg, in)

	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	r.RenderFrame(dst, solidImage(200, 100, color.RGBA{A: 255}), 500)

	got := dst.RGBAAt(50, 50)
	if got.R < 150 || got.G < 150 || got.B < 150 {
		t.Fatalf("cursor dot should be drawn over dark video, got %v", got)
	}
}

func TestRenderFrameDrawsKeystrokeStrip(t *testing.T) {
	cfg := testConfig()
	in := compose.Input{
		SourceWidth:  200,
		SourceHeight: 100,
		Keys: []events.KeyEvent{
			{Stamp: events.Stamp{TimeMs: 400}, Key: "a"},
		},
		Timeline: effects.Timeline{Effects: []effects.Effect{
			effects.New(0, 10000, effects.KeystrokeData{DisplayMs: 2000, MaxKeys: 3}),
		}},
	}
	r := newTestRenderer(cfg, in)

	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))
	r.RenderFrame(dst, solidImage(200, 100, color.RGBA{A: 255}), 500)

	// The strip sits near the bottom center; at least one pixel there must
	// differ from the pure black video.
	found := false
	for y := 30; y < 100 && !found; y++ {
		for x := 60; x < 140 && !found; x++ {
			c := dst.RGBAAt(x, y)
			if c.R > 10 || c.G > 10 || c.B > 10 {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("keystroke overlay left no visible pixels")
	}
}

func TestAffineExactForZoomOnly(t *testing.T) {
	cfg := testConfig()
	in := compose.Input{
		SourceWidth:  200,
		SourceHeight: 100,
		Mouse: []events.MouseMoveEvent{
			{Stamp: events.Stamp{TimeMs: 0}, X: 100, Y: 50, CaptureWidth: 200, CaptureHeight: 100},
		},
		Timeline: effects.Timeline{Effects: []effects.Effect{
			effects.New(0, 4000, effects.ZoomData{Scale: 2}),
		}},
	}
	s := compose.NewSession(cfg, nil, in)
	f := s.Frame(2000)
	if _, exact := f.Video.Matrix.Affine(); !exact {
		t.Fatal("zoom-only transform should have an exact affine form")
	}
}

func TestProgressBarClampsAndCompletes(t *testing.T) {
	p := NewProgressBar("test", 10)
	p.Set(5)
	p.Set(15)
	p.Complete()
	if p.current != p.total {
		t.Fatalf("Complete should land on total, got %d/%d", p.current, p.total)
	}
}
