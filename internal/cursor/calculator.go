package cursor

import (
	"math"

	"github.com/reelcut/reelcut/internal/ease"
	"github.com/reelcut/reelcut/internal/effects"
	"github.com/reelcut/reelcut/internal/events"
)

const (
	// clickPulseMs is the click animation window. The sprite shrinks to 0.8
	// over the first 40% then recovers over the remaining 60%.
	clickPulseMs    = 300.0
	clickPulseDepth = 0.2
	clickShrinkFrac = 0.4

	// speedWindowMs is the lookback used for velocity, blur and trails.
	speedWindowMs = 100.0
	// blurSpeedThreshold is px/ms above which motion blur engages.
	blurSpeedThreshold = 0.8
	maxBlurPx          = 12.0

	// idleFadeMs is how long the idle-hide fade takes once the timeout hits.
	idleFadeMs = 300.0

	// idleMovePx is the travel below which the pointer counts as stationary.
	idleMovePx = 3.0
)

// ClickPulse is one in-flight click animation.
type ClickPulse struct {
	Progress float64
}

// TrailCopy is a faded cursor copy behind the live sprite.
type TrailCopy struct {
	OffsetX float64
	OffsetY float64
	Opacity float64
}

// State is the complete cursor render state for one source time.
type State struct {
	Visible bool
	Type    Type
	X       float64
	Y       float64
	Scale   float64
	Opacity float64
	BlurPx  float64
	Trail   []TrailCopy
	Clicks  []ClickPulse
}

// Calculator derives cursor states from the recorded streams. States are
// memoized by integer-rounded source time; computing any key is idempotent,
// so chunks may render in any order. Build a fresh Calculator whenever the
// input streams or the cursor effect settings change identity.
type Calculator struct {
	data   effects.CursorData
	mouse  []events.MouseMoveEvent
	clicks []events.ClickEvent
	cache  map[int64]State
}

// NewCalculator returns a calculator over normalized streams.
func NewCalculator(data effects.CursorData, mouse []events.MouseMoveEvent, clicks []events.ClickEvent) *Calculator {
	return &Calculator{
		data:   data.Normalized(),
		mouse:  mouse,
		clicks: clicks,
		cache:  make(map[int64]State),
	}
}

// Invalidate clears the memo without touching the input streams.
func (c *Calculator) Invalidate() {
	c.cache = make(map[int64]State)
}

// StateAt returns the cursor state at sourceMs.
func (c *Calculator) StateAt(sourceMs float64) State {
	key := int64(math.Round(sourceMs))
	if s, ok := c.cache[key]; ok {
		return s
	}
	s := c.compute(float64(key))
	c.cache[key] = s
	return s
}

// compute is the from-scratch simulation: everything below depends only on
// sourceMs and the immutable streams.
func (c *Calculator) compute(sourceMs float64) State {
	pos, ok := events.InterpolateGlide(c.mouse, sourceMs)
	if !ok {
		return State{Visible: false, Scale: 1, Opacity: 0}
	}

	s := State{
		Visible: true,
		Type:    c.typeAt(sourceMs),
		X:       pos.X,
		Y:       pos.Y,
		Scale:   c.data.Size,
		Opacity: 1,
	}

	// Click pulses.
	for _, click := range c.clicks {
		ct := click.ResolvedMs()
		if sourceMs < ct || sourceMs >= ct+clickPulseMs {
			continue
		}
		p := (sourceMs - ct) / clickPulseMs
		s.Clicks = append(s.Clicks, ClickPulse{Progress: p})
		s.Scale *= pulseScale(p)
	}

	// Idle fade.
	if c.data.IdleHide {
		idleFor := sourceMs - c.lastMovementBefore(sourceMs, pos)
		if over := idleFor - c.data.IdleTimeoutMs; over > 0 {
			s.Opacity = 1 - ease.Clamp(over/idleFadeMs, 0, 1)
			if s.Opacity == 0 {
				s.Visible = false
			}
		}
	}

	// Velocity-driven blur and trail.
	speed, dirX, dirY := c.velocityAt(sourceMs, pos)
	if c.data.MotionBlur && speed > blurSpeedThreshold {
		s.BlurPx = math.Min((speed-blurSpeedThreshold)*4, maxBlurPx)
	}
	if c.data.Trail && speed > blurSpeedThreshold {
		n := int(ease.Clamp(speed/1.5, 1, float64(c.data.TrailLength)))
		for i := 1; i <= n; i++ {
			back := float64(i) * speed * speedWindowMs / float64(n+1) * 0.25
			s.Trail = append(s.Trail, TrailCopy{
				OffsetX: -dirX * back,
				OffsetY: -dirY * back,
				Opacity: 0.5 * (1 - float64(i)/float64(n+1)),
			})
		}
	}
	return s
}

// pulseScale implements the two-phase click animation.
func pulseScale(p float64) float64 {
	if p < clickShrinkFrac {
		return 1 - clickPulseDepth*ease.Smoothstep(p/clickShrinkFrac)
	}
	return (1 - clickPulseDepth) + clickPulseDepth*ease.Smoothstep((p-clickShrinkFrac)/(1-clickShrinkFrac))
}

// typeAt picks the cursor shape from the nearest-in-time sample carrying
// shape metadata.
func (c *Calculator) typeAt(sourceMs float64) Type {
	bestDt := math.Inf(1)
	raw := ""
	for i := range c.mouse {
		if c.mouse[i].CursorKind == "" {
			continue
		}
		dt := math.Abs(c.mouse[i].ResolvedMs() - sourceMs)
		if dt < bestDt {
			bestDt = dt
			raw = c.mouse[i].CursorKind
		}
	}
	return TypeFromRaw(raw)
}

// lastMovementBefore returns the source time of the last sample further
// than idleMovePx from the current position, which is the moment the
// pointer last moved.
func (c *Calculator) lastMovementBefore(sourceMs float64, pos events.Point) float64 {
	last := sourceMs
	for i := len(c.mouse) - 1; i >= 0; i-- {
		t := c.mouse[i].ResolvedMs()
		if t > sourceMs {
			continue
		}
		p := c.mouse[i].Position()
		if math.Hypot(p.X-pos.X, p.Y-pos.Y) > idleMovePx {
			return last
		}
		last = t
	}
	if len(c.mouse) > 0 {
		return math.Min(last, c.mouse[0].ResolvedMs())
	}
	return last
}

// velocityAt returns speed in px/ms and the unit motion direction over the
// trailing speed window.
func (c *Calculator) velocityAt(sourceMs float64, pos events.Point) (speed, dirX, dirY float64) {
	then, ok := events.Interpolate(c.mouse, sourceMs-speedWindowMs)
	if !ok {
		return 0, 0, 0
	}
	dx := pos.X - then.X
	dy := pos.Y - then.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return 0, 0, 0
	}
	return d / speedWindowMs, dx / d, dy / d
}
