package events

import (
	"math"
	"math/rand"
	"testing"
)

func ms(v float64) *float64 { return &v }

func mouseAt(t, x, y float64) MouseMoveEvent {
	return MouseMoveEvent{Stamp: Stamp{TimeMs: t}, X: x, Y: y}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize[MouseMoveEvent](nil); got != nil {
		t.Errorf("normalize(nil) = %v, want nil", got)
	}
	if got := Normalize[MouseMoveEvent]([]MouseMoveEvent{}); got != nil {
		t.Errorf("normalize(empty) = %v, want nil", got)
	}
}

func TestNormalizeSortsAndClamps(t *testing.T) {
	in := []MouseMoveEvent{
		mouseAt(100, 1, 1),
		mouseAt(50, 2, 2),
		mouseAt(75, 3, 3),
	}
	out := Normalize(in)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].ResolvedMs() < out[i-1].ResolvedMs() {
			t.Errorf("timestamps regress at %d: %v < %v", i, out[i].ResolvedMs(), out[i-1].ResolvedMs())
		}
	}
	// Input order untouched.
	if in[0].TimeMs != 100 {
		t.Errorf("input mutated: %v", in[0].TimeMs)
	}
}

func TestNormalizePrefersSourceTime(t *testing.T) {
	// Frame-relative times restart per chunk; source times do not.
	in := []MouseMoveEvent{
		{Stamp: Stamp{TimeMs: 0, SourceTimeMs: ms(5000)}, X: 1},
		{Stamp: Stamp{TimeMs: 500, SourceTimeMs: ms(1000)}, X: 2},
	}
	out := Normalize(in)
	if out[0].X != 2 || out[1].X != 1 {
		t.Errorf("expected source-time ordering, got %v then %v", out[0].X, out[1].X)
	}
}

func TestNormalizeMonotonicRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(40)
		in := make([]MouseMoveEvent, n)
		for i := range in {
			in[i] = mouseAt(rng.Float64()*10000, rng.Float64()*1920, rng.Float64()*1080)
			if rng.Intn(3) == 0 {
				in[i].SourceTimeMs = ms(rng.Float64() * 10000)
			}
		}
		out := Normalize(in)
		for i := 1; i < len(out); i++ {
			if out[i].ResolvedMs() < out[i-1].ResolvedMs() {
				t.Fatalf("trial %d: non-monotonic at %d", trial, i)
			}
		}
	}
}

func TestInterpolateEmpty(t *testing.T) {
	if _, ok := Interpolate[MouseMoveEvent](nil, 100); ok {
		t.Error("expected no position for empty stream")
	}
}

func TestInterpolateHoldsAtEnds(t *testing.T) {
	evs := []MouseMoveEvent{
		mouseAt(100, 10, 20),
		mouseAt(200, 30, 40),
	}
	if p, _ := Interpolate(evs, -50); p.X != 10 || p.Y != 20 {
		t.Errorf("before first: got %+v", p)
	}
	if p, _ := Interpolate(evs, 5000); p.X != 30 || p.Y != 40 {
		t.Errorf("after last: got %+v", p)
	}
}

func TestInterpolateJumpSnapping(t *testing.T) {
	evs := []MouseMoveEvent{
		mouseAt(0, 0, 0),
		mouseAt(100, 1000, 0), // distance 1000 > threshold
	}
	if p, _ := Interpolate(evs, 40); p.X != 0 || p.Y != 0 {
		t.Errorf("progress 0.4 should snap to prev, got %+v", p)
	}
	if p, _ := Interpolate(evs, 60); p.X != 1000 || p.Y != 0 {
		t.Errorf("progress 0.6 should snap to next, got %+v", p)
	}
}

func TestInterpolateEasedMidpoint(t *testing.T) {
	evs := []MouseMoveEvent{
		mouseAt(0, 0, 0),
		mouseAt(100, 100, 0),
	}
	p, _ := Interpolate(evs, 50)
	if math.Abs(p.X-50) > 1e-9 {
		t.Errorf("symmetric ease midpoint should be 50, got %v", p.X)
	}
	// Quartic easing is slower than linear early in the interval.
	p, _ = Interpolate(evs, 25)
	if p.X >= 25 {
		t.Errorf("eased progress at 0.25 should lag linear, got %v", p.X)
	}
}

func TestInterpolateZeroDurationInterval(t *testing.T) {
	evs := []MouseMoveEvent{
		mouseAt(100, 0, 0),
		mouseAt(100, 50, 50),
		mouseAt(200, 80, 80),
	}
	p, ok := Interpolate(evs, 100)
	if !ok {
		t.Fatal("expected a position")
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		t.Fatalf("zero-duration interval produced NaN: %+v", p)
	}
}

func TestInterpolateGlideRespectsEndpoints(t *testing.T) {
	evs := []MouseMoveEvent{
		mouseAt(0, 0, 0),
		mouseAt(100, 100, 0),
		mouseAt(200, 150, 0),
	}
	if p, _ := InterpolateGlide(evs, 100); math.Abs(p.X-100) > 1e-9 {
		t.Errorf("glide must pass through samples, got %v at t=100", p.X)
	}
	if p, _ := InterpolateGlide(evs, 200); math.Abs(p.X-150) > 1e-9 {
		t.Errorf("glide must end at the final sample, got %v", p.X)
	}
}

func TestInterpolateDeterministic(t *testing.T) {
	evs := []MouseMoveEvent{
		mouseAt(0, 0, 0),
		mouseAt(90, 60, 30),
		mouseAt(250, 200, 120),
	}
	for _, q := range []float64{-10, 0, 45, 90, 130, 250, 400} {
		a, _ := Interpolate(evs, q)
		b, _ := Interpolate(evs, q)
		if a != b {
			t.Errorf("t=%v: %+v != %+v", q, a, b)
		}
	}
}
