package ease

// Spring is a critically-dampable spring integrator used to smooth
// frame-to-frame scalar deltas (zoom scale, pan). It is owned by the
// per-block camera runtime state and must be Reset whenever the block
// identity changes so momentum never leaks across discontinuous blocks.
type Spring struct {
	Stiffness float64
	Damping   float64

	velocity    float64
	lastValue   float64
	lastTimeMs  float64
	initialized bool
}

// NewSpring returns a spring with the given stiffness and damping.
// Damping at 2*sqrt(stiffness) is critical; below that it overshoots.
func NewSpring(stiffness, damping float64) *Spring {
	return &Spring{Stiffness: stiffness, Damping: damping}
}

// Update advances the spring toward target at the given source time and
// returns the smoothed value. The first call snaps to the target so a new
// block starts without a visible settle.
func (s *Spring) Update(target, nowMs float64) float64 {
	if !s.initialized {
		s.lastValue = target
		s.lastTimeMs = nowMs
		s.velocity = 0
		s.initialized = true
		return target
	}

	dt := (nowMs - s.lastTimeMs) / 1000
	if dt <= 0 {
		// Same or earlier source time: idempotent, return the cached value.
		return s.lastValue
	}
	// Large gaps happen when a render chunk starts mid-block; integrating
	// a multi-second step would overshoot wildly, so snap instead.
	if dt > 0.5 {
		s.lastValue = target
		s.lastTimeMs = nowMs
		s.velocity = 0
		return target
	}

	accel := s.Stiffness*(target-s.lastValue) - s.Damping*s.velocity
	s.velocity += accel * dt
	s.lastValue += s.velocity * dt
	s.lastTimeMs = nowMs
	return s.lastValue
}

// Value returns the current smoothed value without advancing time.
func (s *Spring) Value() float64 {
	return s.lastValue
}

// Reset clears all momentum and position state.
func (s *Spring) Reset() {
	s.velocity = 0
	s.lastValue = 0
	s.lastTimeMs = 0
	s.initialized = false
}
