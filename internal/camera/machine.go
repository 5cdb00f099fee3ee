package camera

import (
	"math"

	"github.com/reelcut/reelcut/internal/ease"
	"github.com/reelcut/reelcut/internal/effects"
	"github.com/reelcut/reelcut/internal/events"
)

// FocusMode names the states of the focus-selection machine.
type FocusMode int

const (
	// MouseFollow tracks the interpolated pointer position.
	MouseFollow FocusMode = iota
	// CaretFollow tracks the text caret while typing is recent.
	CaretFollow
	// CaretHold keeps caret focus after typing stopped, until the hold
	// window expires. Transitioning back to MouseFollow any sooner makes
	// the camera pulse when a user alternates typing and small mouse moves.
	CaretHold
)

func (m FocusMode) String() string {
	switch m {
	case MouseFollow:
		return "mouse"
	case CaretFollow:
		return "caret"
	case CaretHold:
		return "caret-hold"
	default:
		return "unknown"
	}
}

// Tunables are the focus machine thresholds. Zero values are replaced by
// DefaultTunables.
type Tunables struct {
	// IdlePx is the pointer travel below which the mouse counts as idle.
	IdlePx float64
	// IdleWindowMs is the lookback window for idle detection.
	IdleWindowMs float64
	// CaretWindowMs is how recent a caret event must be to count as typing.
	CaretWindowMs float64
	// CaretSmoothing / MouseSmoothing are the per-frame exponential factors
	// for moving the camera center. Caret moves are intentional and sparse,
	// so they track snappily; mouse following stays gentle.
	CaretSmoothing float64
	MouseSmoothing float64
	// ScaleSmoothing damps steady-phase target-scale changes.
	ScaleSmoothing float64
	// EvictAfterMs is how far outside its window a block keeps state.
	EvictAfterMs float64
}

// DefaultTunables returns the standard thresholds.
func DefaultTunables() Tunables {
	return Tunables{
		IdlePx:         3,
		IdleWindowMs:   150,
		CaretWindowMs:  300,
		CaretSmoothing: 0.85,
		MouseSmoothing: 0.25,
		ScaleSmoothing: 0.3,
		EvictAfterMs:   5000,
	}
}

// caretHoldMs derives the hold-window length from the recency window.
func (t Tunables) caretHoldMs() float64 {
	return math.Max(t.CaretWindowMs+300, 800)
}

// Position is the virtual-camera output for one frame.
type Position struct {
	Scale   float64
	CenterX float64 // normalized [0.02, 0.98]
	CenterY float64
	PanX    float64
	PanY    float64
	Mode    FocusMode
}

// Identity is the camera at rest: no zoom, centered.
func Identity() Position {
	return Position{Scale: 1, CenterX: 0.5, CenterY: 0.5}
}

// blockState is the mutable runtime state for one zoom block, owned
// exclusively by one Machine.
type blockState struct {
	window [2]float64

	centerX, centerY float64
	panX, panY       float64
	targetScale      float64
	mode             FocusMode
	lastCaretMs      float64
	holdUntilMs      float64
	heldMaxScale     float64
	lastApplied      float64
	initialized      bool

	scaleSpring *ease.Spring
}

// Machine runs the zoom/pan state machine for every block in one render
// session. Not safe for concurrent use; each session owns its own Machine.
type Machine struct {
	tun    Tunables
	states map[string]*blockState
}

// NewMachine returns a machine with the given tunables; zero-value fields
// fall back to defaults.
func NewMachine(tun Tunables) *Machine {
	def := DefaultTunables()
	if tun.IdlePx <= 0 {
		tun.IdlePx = def.IdlePx
	}
	if tun.IdleWindowMs <= 0 {
		tun.IdleWindowMs = def.IdleWindowMs
	}
	if tun.CaretWindowMs <= 0 {
		tun.CaretWindowMs = def.CaretWindowMs
	}
	if tun.CaretSmoothing <= 0 {
		tun.CaretSmoothing = def.CaretSmoothing
	}
	if tun.MouseSmoothing <= 0 {
		tun.MouseSmoothing = def.MouseSmoothing
	}
	if tun.ScaleSmoothing <= 0 {
		tun.ScaleSmoothing = def.ScaleSmoothing
	}
	if tun.EvictAfterMs <= 0 {
		tun.EvictAfterMs = def.EvictAfterMs
	}
	return &Machine{tun: tun, states: make(map[string]*blockState)}
}

// Reset drops all per-block state. Call between render sessions.
func (m *Machine) Reset() {
	m.states = make(map[string]*blockState)
}

// Mode returns the current focus mode for a block, MouseFollow if unseen.
func (m *Machine) Mode(blockID string) FocusMode {
	if s, ok := m.states[blockID]; ok {
		return s.mode
	}
	return MouseFollow
}

// Update advances the camera for the active block at nowMs and returns the
// resulting position. Mouse and caret streams must be normalized. videoW and
// videoH are the source dimensions in capture pixels.
func (m *Machine) Update(block Block, nowMs float64, mouse []events.MouseMoveEvent, carets []events.CaretEvent, videoW, videoH float64) Position {
	m.evict(nowMs)

	if videoW <= 0 || videoH <= 0 {
		return Identity()
	}

	s, ok := m.states[block.ID]
	if !ok {
		s = m.initState(block, mouse, carets, videoW, videoH)
		m.states[block.ID] = s
	}

	elapsed := nowMs - block.StartMs

	// Focus decision.
	mouseIdle := m.mouseIdle(mouse, nowMs)
	lastCaretMs, caretRecent := m.caretRecency(carets, nowMs)
	if caretRecent {
		s.lastCaretMs = lastCaretMs
	}
	holdActive := s.holdUntilMs > nowMs

	var useCaret bool
	switch block.Follow {
	case effects.FollowCaret:
		useCaret = caretRecent || holdActive
	case effects.FollowMouse:
		useCaret = false
	case effects.FollowAutoMouseFirst:
		inCaret := s.mode == CaretFollow || s.mode == CaretHold
		useCaret = (inCaret && holdActive) || (caretRecent && mouseIdle)
	}

	if useCaret {
		if caretRecent {
			s.mode = CaretFollow
			s.holdUntilMs = math.Max(s.holdUntilMs, s.lastCaretMs+m.tun.caretHoldMs())
		} else {
			s.mode = CaretHold
		}
	} else {
		s.mode = MouseFollow
		if !holdActive {
			s.heldMaxScale = 0
		}
	}
	holdActive = s.holdUntilMs > nowMs

	// Target scale.
	rawScale := block.Scale
	if useCaret {
		if bw := caretBoundsWidth(carets, nowMs); bw > 0 {
			desired := ease.Clamp(0.9*videoW/bw, 5, 7)
			if holdActive {
				s.heldMaxScale = math.Max(s.heldMaxScale, desired)
				desired = s.heldMaxScale
			}
			rawScale = desired
		}
	}
	// Steady-phase changes (caret bounds resizing, focus switches) smooth
	// in rather than snapping.
	s.targetScale = ease.ExpSmooth(s.targetScale, rawScale, m.tun.ScaleSmoothing)

	applied := ScaleEnvelope(elapsed, block.DurationMs(), s.targetScale, block.IntroMs, block.OutroMs)
	applied = s.scaleSpring.Update(applied, nowMs)
	// While a caret hold is active the applied scale is floored at its own
	// maximum so the frame never visibly shrinks mid-hold.
	if useCaret && holdActive {
		applied = math.Max(applied, s.lastApplied)
	}
	s.lastApplied = applied

	// Center target.
	target, haveTarget := m.focusPoint(useCaret, mouse, carets, nowMs)
	if haveTarget {
		factor := m.tun.MouseSmoothing
		if useCaret {
			factor = m.tun.CaretSmoothing
		}
		nx := clampCenter(target.X / videoW)
		ny := clampCenter(target.Y / videoH)
		s.centerX = clampCenter(ease.ExpSmooth(s.centerX, nx, factor))
		s.centerY = clampCenter(ease.ExpSmooth(s.centerY, ny, factor))
	}

	return Position{
		Scale:   applied,
		CenterX: s.centerX,
		CenterY: s.centerY,
		PanX:    s.panX,
		PanY:    s.panY,
		Mode:    s.mode,
	}
}

// initState determines the initial focus point the first time a block is
// seen: caret at-or-before block start for caret-follow, else mouse at block
// start, else caret, else frame center or the block's manual target.
func (m *Machine) initState(block Block, mouse []events.MouseMoveEvent, carets []events.CaretEvent, videoW, videoH float64) *blockState {
	s := &blockState{
		window:      [2]float64{block.StartMs, block.EndMs},
		targetScale: block.Scale,
		centerX:     0.5,
		centerY:     0.5,
		mode:        MouseFollow,
		scaleSpring: ease.NewSpring(170, 28),
	}
	if block.TargetX > 0 || block.TargetY > 0 {
		s.centerX = clampCenter(block.TargetX)
		s.centerY = clampCenter(block.TargetY)
	}

	var p events.Point
	found := false
	if block.Follow == effects.FollowCaret {
		if cp, ok := caretAtOrBefore(carets, block.StartMs); ok {
			p, found = cp, true
			s.mode = CaretFollow
		}
	}
	if !found {
		if mp, ok := events.Interpolate(mouse, block.StartMs); ok {
			p, found = mp, true
		}
	}
	if !found {
		if cp, ok := caretAtOrBefore(carets, block.StartMs); ok {
			p, found = cp, true
		}
	}
	if found {
		s.centerX = clampCenter(p.X / videoW)
		s.centerY = clampCenter(p.Y / videoH)
	}
	s.initialized = true
	return s
}

// mouseIdle reports whether the pointer traveled less than IdlePx over the
// trailing idle window. An empty stream counts as idle so caret focus can
// engage on keyboard-only recordings.
func (m *Machine) mouseIdle(mouse []events.MouseMoveEvent, nowMs float64) bool {
	if len(mouse) == 0 {
		return true
	}
	now, ok := events.Interpolate(mouse, nowMs)
	if !ok {
		return true
	}
	then, ok := events.Interpolate(mouse, nowMs-m.tun.IdleWindowMs)
	if !ok {
		return true
	}
	return math.Hypot(now.X-then.X, now.Y-then.Y) < m.tun.IdlePx
}

// caretRecency returns the timestamp of the most recent caret event at or
// before nowMs and whether it falls inside the recency window.
func (m *Machine) caretRecency(carets []events.CaretEvent, nowMs float64) (float64, bool) {
	idx := lastAtOrBefore(carets, nowMs)
	if idx < 0 {
		return 0, false
	}
	t := carets[idx].ResolvedMs()
	return t, nowMs-t <= m.tun.CaretWindowMs
}

func (m *Machine) focusPoint(useCaret bool, mouse []events.MouseMoveEvent, carets []events.CaretEvent, nowMs float64) (events.Point, bool) {
	if useCaret {
		if p, ok := caretAtOrBefore(carets, nowMs); ok {
			return p, true
		}
	}
	if p, ok := events.Interpolate(mouse, nowMs); ok {
		return p, true
	}
	if p, ok := caretAtOrBefore(carets, nowMs); ok {
		return p, true
	}
	return events.Point{}, false
}

// evict drops state for blocks further than EvictAfterMs outside their own
// window, bounding memory across long timelines.
func (m *Machine) evict(nowMs float64) {
	for id, s := range m.states {
		if nowMs < s.window[0]-m.tun.EvictAfterMs || nowMs > s.window[1]+m.tun.EvictAfterMs {
			delete(m.states, id)
		}
	}
}

func caretAtOrBefore(carets []events.CaretEvent, tMs float64) (events.Point, bool) {
	idx := lastAtOrBefore(carets, tMs)
	if idx < 0 {
		return events.Point{}, false
	}
	return carets[idx].Position(), true
}

// caretBoundsWidth returns the focused element width from the most recent
// caret event at or before tMs that carries bounds, looking back a few
// events since not every caret sample repeats them.
func caretBoundsWidth(carets []events.CaretEvent, tMs float64) float64 {
	idx := lastAtOrBefore(carets, tMs)
	for i := idx; i >= 0 && i > idx-8; i-- {
		if b := carets[i].Bounds; b != nil && b.Width > 0 {
			return b.Width
		}
	}
	return 0
}

// lastAtOrBefore returns the index of the last caret event with timestamp
// <= tMs, or -1.
func lastAtOrBefore(carets []events.CaretEvent, tMs float64) int {
	lo, hi := 0, len(carets)
	for lo < hi {
		mid := (lo + hi) / 2
		if carets[mid].ResolvedMs() <= tMs {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo - 1
}

// clampCenter keeps the camera from zooming past the frame edge.
func clampCenter(v float64) float64 {
	return ease.Clamp(v, 0.02, 0.98)
}
