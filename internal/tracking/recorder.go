// Package tracking records input telemetry while the user works: mouse
// positions sampled at a fixed rate, plus click, key, and scroll events from
// the OS hook. The streams feed the composition engine after recording ends.
package tracking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"
	"go.uber.org/zap"

	"github.com/reelcut/reelcut/internal/config"
	"github.com/reelcut/reelcut/internal/events"
)

// Recorder captures telemetry for one recording session. A Recorder can be
// reused across sessions; Start resets the captured streams.
type Recorder struct {
	config    *config.Config
	log       *zap.Logger
	mu        sync.Mutex
	recording bool
	startTime time.Time

	mouse   []events.MouseMoveEvent
	clicks  []events.ClickEvent
	keys    []events.KeyEvent
	scrolls []events.ScrollEvent

	stopChan chan struct{}
	doneChan chan struct{}
}

func NewRecorder(cfg *config.Config, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{
		config:   cfg,
		log:      log,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins capturing telemetry. It returns immediately; capture runs in
// background goroutines until Stop is called or the context is cancelled.
func (r *Recorder) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		return fmt.Errorf("recording already in progress")
	}
	r.recording = true
	r.startTime = time.Now()
	r.mouse = r.mouse[:0]
	r.clicks = r.clicks[:0]
	r.keys = r.keys[:0]
	r.scrolls = r.scrolls[:0]
	r.mu.Unlock()

	screenW, screenH := robotgo.GetScreenSize()

	go r.sampleMouse(ctx, float64(screenW), float64(screenH))
	go r.runHook(ctx)

	r.log.Info("telemetry recording started",
		zap.Int("sampleHz", r.config.Recording.SampleHz),
		zap.Int("screenWidth", screenW),
		zap.Int("screenHeight", screenH))
	return nil
}

// sampleMouse polls the cursor position at the configured rate so the
// position stream has uniform density even when the OS hook is quiet.
func (r *Recorder) sampleMouse(ctx context.Context, screenW, screenH float64) {
	hz := r.config.Recording.SampleHz
	if hz <= 0 {
		hz = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopChan:
			return
		case <-ticker.C:
			x, y := robotgo.Location()
			ev := events.MouseMoveEvent{
				Stamp:         events.Stamp{TimeMs: r.elapsedMs()},
				X:             float64(x),
				Y:             float64(y),
				CaptureWidth:  screenW,
				CaptureHeight: screenH,
			}
			r.mu.Lock()
			r.mouse = append(r.mouse, ev)
			r.mu.Unlock()
		}
	}
}

// runHook registers OS event handlers and blocks processing hook events
// until Stop calls hook.End.
func (r *Recorder) runHook(ctx context.Context) {
	defer close(r.doneChan)

	hook.Register(hook.MouseDown, []string{}, func(e hook.Event) {
		ev := events.ClickEvent{
			Stamp:  events.Stamp{TimeMs: r.elapsedMs()},
			X:      float64(e.X),
			Y:      float64(e.Y),
			Button: int(e.Button),
		}
		r.mu.Lock()
		r.clicks = append(r.clicks, ev)
		r.mu.Unlock()
	})

	hook.Register(hook.KeyDown, []string{}, func(e hook.Event) {
		key := string(e.Keychar)
		if e.Keychar == 0 {
			key = fmt.Sprintf("raw:%d", e.Rawcode)
		}
		ev := events.KeyEvent{
			Stamp: events.Stamp{TimeMs: r.elapsedMs()},
			Key:   key,
		}
		r.mu.Lock()
		r.keys = append(r.keys, ev)
		r.mu.Unlock()
	})

	hook.Register(hook.MouseWheel, []string{}, func(e hook.Event) {
		ev := events.ScrollEvent{
			Stamp:  events.Stamp{TimeMs: r.elapsedMs()},
			X:      float64(e.X),
			Y:      float64(e.Y),
			DeltaY: float64(e.Rotation),
		}
		r.mu.Lock()
		r.scrolls = append(r.scrolls, ev)
		r.mu.Unlock()
	})

	go func() {
		select {
		case <-ctx.Done():
		case <-r.stopChan:
		}
		hook.End()
	}()

	evChan := hook.Start()
	<-hook.Process(evChan)
}

// Stop ends the capture session and waits for the hook loop to drain.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	if !r.recording {
		r.mu.Unlock()
		return fmt.Errorf("no recording in progress")
	}
	r.recording = false
	r.mu.Unlock()

	close(r.stopChan)
	<-r.doneChan

	r.stopChan = make(chan struct{})
	r.doneChan = make(chan struct{})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.log.Info("telemetry recording stopped",
		zap.Int("mouseSamples", len(r.mouse)),
		zap.Int("clicks", len(r.clicks)),
		zap.Int("keys", len(r.keys)),
		zap.Int("scrolls", len(r.scrolls)))
	return nil
}

func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

func (r *Recorder) elapsedMs() float64 {
	return float64(time.Since(r.startTime)) / float64(time.Millisecond)
}

// Streams returns copies of the captured telemetry, normalized to
// monotonically non-decreasing timestamps.
func (r *Recorder) Streams() ([]events.MouseMoveEvent, []events.ClickEvent, []events.KeyEvent, []events.ScrollEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return events.Normalize(r.mouse),
		events.Normalize(r.clicks),
		events.Normalize(r.keys),
		events.Normalize(r.scrolls)
}
