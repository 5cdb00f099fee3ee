package project

import (
	"path/filepath"
	"testing"

	"github.com/reelcut/reelcut/internal/effects"
	"github.com/reelcut/reelcut/internal/events"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	src := events.Stamp{TimeMs: 5000}
	milli := 1234.0
	src.SourceTimeMs = &milli

	p := &Project{
		Name: "demo",
		Video: VideoMeta{
			Path: "capture.mp4", Width: 1920, Height: 1080, FPS: 60, DurationMs: 12000,
		},
		Recording: Recording{
			Mouse:  []events.MouseMoveEvent{{Stamp: src, X: 10, Y: 20, CaptureWidth: 1920, CaptureHeight: 1080}},
			Clicks: []events.ClickEvent{{Stamp: events.Stamp{TimeMs: 900}, X: 10, Y: 20}},
			Keys:   []events.KeyEvent{{Stamp: events.Stamp{TimeMs: 950}, Key: "a"}},
		},
		Effects: []effects.Effect{
			effects.New(0, 2000, effects.ZoomData{Scale: 2.5}),
		},
	}

	path := filepath.Join(t.TempDir(), "demo.json")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "demo" || got.Video.Width != 1920 {
		t.Fatalf("metadata mismatch: %+v", got)
	}
	if len(got.Recording.Mouse) != 1 || got.Recording.Mouse[0].ResolvedMs() != 1234 {
		t.Fatalf("mouse stream did not survive round trip: %+v", got.Recording.Mouse)
	}
	if len(got.Effects) != 1 || got.Effects[0].Kind() != effects.Zoom {
		t.Fatalf("effects did not survive round trip: %+v", got.Effects)
	}
	zd, ok := got.Effects[0].Data.(effects.ZoomData)
	if !ok || zd.Scale != 2.5 {
		t.Fatalf("zoom payload mismatch: %#v", got.Effects[0].Data)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestInputCarriesDimensions(t *testing.T) {
	p := &Project{Video: VideoMeta{Width: 1280, Height: 720}}
	in := p.Input()
	if in.SourceWidth != 1280 || in.SourceHeight != 720 {
		t.Fatalf("dimensions not carried: %+v", in)
	}
}
