// Package compose assembles per-frame layers from the effect timeline and
// the recorded telemetry. One Session owns all mutable render state (camera
// runtime, cursor memo); sessions are never shared between a preview and an
// export, and a fresh Session starts from a clean slate.
package compose

import (
	"go.uber.org/zap"

	"github.com/reelcut/reelcut/internal/camera"
	"github.com/reelcut/reelcut/internal/config"
	"github.com/reelcut/reelcut/internal/cursor"
	"github.com/reelcut/reelcut/internal/effects"
	"github.com/reelcut/reelcut/internal/events"
	"github.com/reelcut/reelcut/internal/transform"
)

// Input is everything a composition session consumes. Event streams may be
// raw; the session normalizes them once at construction.
type Input struct {
	Timeline effects.Timeline

	Mouse  []events.MouseMoveEvent
	Clicks []events.ClickEvent
	Carets []events.CaretEvent
	Keys   []events.KeyEvent

	SourceWidth  float64
	SourceHeight float64
}

// Session composes frames for one render run (a preview or one export).
// Not safe for concurrent use.
type Session struct {
	cfg *config.Config
	log *zap.Logger
	in  Input

	machine *camera.Machine
	cursors map[string]*cursor.Calculator

	offset transform.VideoOffset
}

// NewSession builds a session over the given input. nil cfg and log fall
// back to defaults.
func NewSession(cfg *config.Config, log *zap.Logger, in Input) *Session {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	in.Mouse = events.Normalize(in.Mouse)
	in.Clicks = events.Normalize(in.Clicks)
	in.Carets = events.Normalize(in.Carets)
	in.Keys = events.Normalize(in.Keys)

	s := &Session{
		cfg: cfg,
		log: log,
		in:  in,
		machine: camera.NewMachine(camera.Tunables{
			IdlePx:         cfg.Camera.IdlePx,
			IdleWindowMs:   cfg.Camera.IdleWindowMs,
			CaretWindowMs:  cfg.Camera.CaretWindowMs,
			CaretSmoothing: cfg.Camera.CaretSmoothing,
			MouseSmoothing: cfg.Camera.MouseSmoothing,
			ScaleSmoothing: cfg.Camera.ScaleSmoothing,
			EvictAfterMs:   cfg.Camera.EvictAfterMs,
		}),
		cursors: make(map[string]*cursor.Calculator),
	}
	s.offset = s.computeOffset()
	log.Debug("composition session ready",
		zap.Int("effects", len(in.Timeline.Effects)),
		zap.Int("mouseEvents", len(in.Mouse)),
		zap.Float64("sourceW", in.SourceWidth),
		zap.Float64("sourceH", in.SourceHeight),
	)
	return s
}

// Reset drops all cross-frame state, returning the session to its initial
// condition without re-normalizing inputs.
func (s *Session) Reset() {
	s.machine.Reset()
	s.cursors = make(map[string]*cursor.Calculator)
}

// VideoOffset returns the on-canvas rectangle of the video content.
func (s *Session) VideoOffset() transform.VideoOffset {
	return s.offset
}

func (s *Session) computeOffset() transform.VideoOffset {
	padding := s.cfg.Canvas.Padding
	// An active background block's padding wins over the canvas default; the
	// offset is stable because background blocks change it only at block
	// granularity, and padding is re-read per frame in Frame for exactness.
	return transform.ComputeVideoOffset(
		s.cfg.Canvas.Width, s.cfg.Canvas.Height,
		s.in.SourceWidth, s.in.SourceHeight,
		padding,
	)
}

// Frame composes the full layer stack at nowMs. It never fails: missing or
// malformed inputs degrade to a neutral frame (no zoom, centered, no
// cursor).
func (s *Session) Frame(nowMs float64) Frame {
	active := s.in.Timeline.AllActiveAt(nowMs)

	f := Frame{TimeMs: nowMs}

	// Background first: it can move the video offset via padding.
	offset := s.offset
	if bg, ok := active[effects.Background]; ok {
		data := bg.Data.(effects.BackgroundData)
		f.Background = &BackgroundLayer{
			Window:       windowOf(bg),
			Color:        data.Color,
			GradientFrom: data.GradientFrom,
			GradientTo:   data.GradientTo,
			CornerRadius: data.CornerRadius,
			Shadow:       data.ShadowOpacity,
		}
		if data.PaddingPx > 0 {
			offset = transform.ComputeVideoOffset(
				s.cfg.Canvas.Width, s.cfg.Canvas.Height,
				s.in.SourceWidth, s.in.SourceHeight,
				data.PaddingPx,
			)
		}
	}

	// Virtual camera.
	camPos := camera.Identity()
	var camWindow Window
	if ze, ok := active[effects.Zoom]; ok {
		if block, isZoom := camera.BlockFromEffect(ze); isZoom {
			camPos = s.machine.Update(block, nowMs, s.in.Mouse, s.in.Carets, s.in.SourceWidth, s.in.SourceHeight)
			camWindow = windowOf(ze)
		}
	}

	// Video transform: zoom, then the optional screen tilt on top.
	m := transform.Zoom(camPos.Scale, camPos.CenterX, camPos.CenterY, camPos.PanX, camPos.PanY, offset.Width, offset.Height)
	var tilt transform.Tilt
	tilt.Scale = 1
	if se, ok := active[effects.Screen]; ok {
		data := se.Data.(effects.ScreenData)
		preset := transform.TiltPreset(data.Preset)
		if data.TiltX != 0 {
			preset.TiltX = data.TiltX
		}
		if data.TiltY != 0 {
			preset.TiltY = data.TiltY
		}
		if data.Perspective > 0 {
			preset.Perspective = data.Perspective
		}
		tilt = preset.Eased(nowMs-se.StartMs, se.DurationMs())
		m = m.Mul(tilt.Matrix(offset.Width, offset.Height))
		camWindow = mergeWindow(camWindow, windowOf(se))
	}

	f.Video = VideoLayer{
		Window:    camWindow,
		Offset:    offset,
		Matrix:    m,
		CSS:       m.CSS(),
		Camera:    camPos,
		TiltEased: tilt,
	}

	// Text annotation.
	if ae, ok := active[effects.Annotation]; ok {
		data := ae.Data.(effects.AnnotationData)
		if data.Text != "" {
			f.Annotation = &AnnotationLayer{
				Window: windowOf(ae),
				Text:   data.Text,
				X:      data.X,
				Y:      data.Y,
			}
		}
	}

	// Keystroke overlay.
	if ke, ok := active[effects.Keystroke]; ok {
		data := ke.Data.(effects.KeystrokeData).Normalized()
		if keys := visibleKeys(s.in.Keys, nowMs, data); len(keys) > 0 {
			f.Keystrokes = &KeystrokeLayer{Window: windowOf(ke), Keys: keys}
		}
	}

	// Cursor overlay, mapped through the same matrix as the video.
	f.Cursor = s.cursorLayer(active, nowMs, offset, m, camPos)

	return f
}

// cursorLayer derives the cursor overlay. Without an active cursor effect
// the overlay still renders with the configured defaults; an empty mouse
// stream hides it entirely.
func (s *Session) cursorLayer(active map[effects.Kind]effects.Effect, nowMs float64, offset transform.VideoOffset, m *transform.Matrix, camPos camera.Position) *CursorLayer {
	if s.in.SourceWidth <= 0 || s.in.SourceHeight <= 0 {
		return nil
	}
	data := effects.CursorData{
		Size:          s.cfg.Cursor.Size,
		IdleHide:      s.cfg.Cursor.IdleHide,
		IdleTimeoutMs: s.cfg.Cursor.IdleTimeoutMs,
		MotionBlur:    s.cfg.Cursor.MotionBlur,
		Trail:         s.cfg.Cursor.Trail,
		TrailLength:   s.cfg.Cursor.TrailLength,
	}
	window := Window{}
	calcKey := ""
	if ce, ok := active[effects.Cursor]; ok {
		data = ce.Data.(effects.CursorData)
		window = windowOf(ce)
		calcKey = ce.ID
	}

	calc, ok := s.cursors[calcKey]
	if !ok {
		calc = cursor.NewCalculator(data, s.in.Mouse, s.in.Clicks)
		s.cursors[calcKey] = calc
	}

	st := calc.StateAt(nowMs)
	if !st.Visible {
		return nil
	}

	// Capture space → element-local → through the video matrix → canvas.
	lx := st.X / s.in.SourceWidth * offset.Width
	ly := st.Y / s.in.SourceHeight * offset.Height
	tx, ty := m.Apply(lx, ly)

	layer := &CursorLayer{
		Window:  window,
		Sprite:  cursor.SpriteFor(st.Type),
		Type:    st.Type,
		X:       offset.X + tx,
		Y:       offset.Y + ty,
		Scale:   st.Scale * camPos.Scale,
		Opacity: st.Opacity,
		BlurPx:  st.BlurPx,
		Clicks:  st.Clicks,
	}
	// Trail offsets ride the same zoom factor as the sprite.
	for _, tr := range st.Trail {
		layer.Trail = append(layer.Trail, cursor.TrailCopy{
			OffsetX: tr.OffsetX * camPos.Scale,
			OffsetY: tr.OffsetY * camPos.Scale,
			Opacity: tr.Opacity,
		})
	}
	return layer
}

func mergeWindow(a, b Window) Window {
	if a.BlockID == "" {
		return b
	}
	return a
}
