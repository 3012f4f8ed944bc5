package wheel

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/prize-wheel/engine"
)

// fixedRNG returns the same value on every draw
type fixedRNG float64

func (f fixedRNG) Float64() float64 { return float64(f) }

var testStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func letterPrizes() []Prize {
	return []Prize{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}, {Name: "E"}}
}

func easedMotion(rotation float64, duration time.Duration) Motion {
	m := DefaultMotion()
	m.Model = ModelEased
	m.MinRotation, m.MaxRotation = rotation, rotation
	m.MinDuration, m.MaxDuration = duration, duration
	m.Easing = EasingCubic
	return m
}

// harness wires an animator to a frame loop driven by mock time
type harness struct {
	anim    *Animator
	loop    *engine.FrameLoop
	clock   *engine.MockTimeProvider
	results []Result
	angles  []float64
}

func newHarness(t *testing.T, motion Motion, rng RandomSource) *harness {
	t.Helper()
	h := &harness{
		loop:  engine.NewFrameLoop(),
		clock: engine.NewMockTimeProvider(testStart),
	}
	anim, err := New(letterPrizes(), motion,
		WithClock(h.clock),
		WithRandom(rng),
		WithScheduler(h.loop),
		OnFrame(func(a float64) { h.angles = append(h.angles, a) }),
		OnStopped(func(r Result) {
			if anim := h.anim; anim.Spinning() {
				t.Errorf("Expected idle state when result is emitted")
			}
			h.results = append(h.results, r)
		}),
	)
	if err != nil {
		t.Fatalf("Failed to create animator: %v", err)
	}
	h.anim = anim
	return h
}

// runUntilIdle ticks the loop at a fixed interval until no frame is pending
func (h *harness) runUntilIdle(t *testing.T, step time.Duration, maxTicks int) int {
	t.Helper()
	ticks := 0
	for h.loop.Pending() > 0 {
		if ticks >= maxTicks {
			t.Fatalf("Spin did not stop within %d ticks", maxTicks)
		}
		h.loop.Tick(h.clock.Advance(step))
		ticks++
	}
	return ticks
}

func TestNewRejectsDegenerateConfig(t *testing.T) {
	if _, err := New(nil, DefaultMotion()); !errors.Is(err, ErrNoPrizes) {
		t.Errorf("Expected ErrNoPrizes for empty list, got %v", err)
	}

	bad := DefaultMotion()
	bad.Decay = 1.5
	if _, err := New(letterPrizes(), bad); !errors.Is(err, ErrInvalidMotion) {
		t.Errorf("Expected ErrInvalidMotion for decay 1.5, got %v", err)
	}
}

func TestNewStartsIdleAtZero(t *testing.T) {
	h := newHarness(t, DefaultMotion(), fixedRNG(0.5))

	if h.anim.State() != StateIdle {
		t.Errorf("Expected IDLE, got %v", h.anim.State())
	}
	if h.anim.Angle() != 0 {
		t.Errorf("Expected angle 0, got %v", h.anim.Angle())
	}
	if h.anim.SegmentWidth() != 72 {
		t.Errorf("Expected segment width 72, got %v", h.anim.SegmentWidth())
	}
}

// TestEasedEndToEnd verifies five full turns from rest land on D
func TestEasedEndToEnd(t *testing.T) {
	h := newHarness(t, easedMotion(1800, 5*time.Second), fixedRNG(0))

	if !h.anim.Spin() {
		t.Fatal("Expected spin to start")
	}
	h.runUntilIdle(t, 16*time.Millisecond, 1000)

	if len(h.results) != 1 {
		t.Fatalf("Expected exactly 1 result, got %d", len(h.results))
	}
	res := h.results[0]
	if res.Prize.Name != "D" || res.Index != 3 {
		t.Errorf("Expected prize D at index 3, got %q at %d", res.Prize.Name, res.Index)
	}
	if res.Angle != 0 {
		t.Errorf("Expected final angle 0, got %v", res.Angle)
	}
	if h.anim.Angle() != res.Angle {
		t.Errorf("Expected stored angle %v to equal emitted angle %v", h.anim.Angle(), res.Angle)
	}
	if h.anim.Progress() != 1 {
		t.Errorf("Expected progress 1 after stop, got %v", h.anim.Progress())
	}
}

// TestEasedAnglesDecelerate verifies the per-frame advance shrinks under ease-out
func TestEasedAnglesDecelerate(t *testing.T) {
	m := easedMotion(300, 3*time.Second)
	h := newHarness(t, m, fixedRNG(0))

	h.anim.Spin()
	h.runUntilIdle(t, 100*time.Millisecond, 100)

	// 300 degrees never wraps, so raw deltas are the advance per frame
	prev := math.Inf(1)
	for i := 1; i < len(h.angles); i++ {
		delta := h.angles[i] - h.angles[i-1]
		if delta < -1e-9 {
			t.Fatalf("Angle moved backwards at frame %d: %v -> %v", i, h.angles[i-1], h.angles[i])
		}
		if delta > prev+1e-9 {
			t.Fatalf("Advance grew at frame %d: %v > %v", i, delta, prev)
		}
		prev = delta
	}
	if last := h.angles[len(h.angles)-1]; last != 300 {
		t.Errorf("Expected final angle 300, got %v", last)
	}
}

// TestSpinIgnoredWhileSpinning verifies re-entrant triggers change nothing
func TestSpinIgnoredWhileSpinning(t *testing.T) {
	h := newHarness(t, DefaultMotion(), fixedRNG(0.5))

	if !h.anim.Spin() {
		t.Fatal("Expected first spin to start")
	}
	h.loop.Tick(h.clock.Advance(16 * time.Millisecond))
	velocity := h.anim.Velocity()
	angle := h.anim.Angle()

	if h.anim.Spin() {
		t.Error("Expected second spin to be ignored")
	}
	if h.anim.Spins() != 1 {
		t.Errorf("Expected 1 started spin, got %d", h.anim.Spins())
	}
	if h.loop.Pending() != 1 {
		t.Errorf("Expected a single pending frame, got %d", h.loop.Pending())
	}
	if h.anim.Velocity() != velocity || h.anim.Angle() != angle {
		t.Error("Expected ignored spin to leave motion state untouched")
	}

	h.runUntilIdle(t, 16*time.Millisecond, 5000)
	if len(h.results) != 1 {
		t.Errorf("Expected exactly 1 result, got %d", len(h.results))
	}
}

// TestVelocityTermination verifies the frame count stays within log(threshold/v0)/log(decay)
func TestVelocityTermination(t *testing.T) {
	tests := []struct {
		name  string
		step  time.Duration
		decay float64
		rng   float64
	}{
		{"Nominal frames", 16 * time.Millisecond, 0.99, 0.5},
		{"Slow frames", 33 * time.Millisecond, 0.99, 0.5},
		{"Fast decay", 16 * time.Millisecond, 0.9, 0.99},
		{"Max velocity draw", 16 * time.Millisecond, 0.99, 0.999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMotion()
			m.Decay = tt.decay
			h := newHarness(t, m, fixedRNG(tt.rng))

			h.anim.Spin()
			v0 := h.anim.Velocity()
			h.runUntilIdle(t, tt.step, 100000)

			scale := float64(m.FrameRef) / float64(tt.step)
			bound := math.Log(m.StopThreshold/v0) / math.Log(m.Decay) * scale
			frames := float64(h.anim.Frames())
			if frames > math.Ceil(bound)+1 {
				t.Errorf("Expected at most %v frames, took %v", math.Ceil(bound)+1, frames)
			}
			if frames < math.Floor(bound) {
				t.Errorf("Expected at least %v frames, took %v", math.Floor(bound), frames)
			}
			if len(h.results) != 1 {
				t.Errorf("Expected 1 result, got %d", len(h.results))
			}
		})
	}
}

// TestVelocityInitialDraw verifies the uniform velocity range
func TestVelocityInitialDraw(t *testing.T) {
	tests := []struct {
		rng      float64
		expected float64
	}{
		{0, 30},
		{0.5, 40},
		{0.25, 35},
	}

	for _, tt := range tests {
		h := newHarness(t, DefaultMotion(), fixedRNG(tt.rng))
		h.anim.Spin()
		if v := h.anim.Velocity(); math.Abs(v-tt.expected) > 1e-9 {
			t.Errorf("Expected initial velocity %v for draw %v, got %v", tt.expected, tt.rng, v)
		}
	}
}

// TestRepeatedSpinsAreIndependent verifies a second spin starts fresh from the stopped angle
func TestRepeatedSpinsAreIndependent(t *testing.T) {
	h := newHarness(t, easedMotion(1890, 2*time.Second), fixedRNG(0))

	h.anim.Spin()
	h.runUntilIdle(t, 16*time.Millisecond, 1000)
	first := h.results[0]
	if first.Angle != 90 {
		t.Fatalf("Expected first spin to stop at 90, got %v", first.Angle)
	}

	if !h.anim.Spin() {
		t.Fatal("Expected second spin to start after stop")
	}
	if h.anim.Progress() != 0 {
		t.Errorf("Expected progress reset, got %v", h.anim.Progress())
	}
	h.runUntilIdle(t, 16*time.Millisecond, 1000)

	if len(h.results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(h.results))
	}
	second := h.results[1]
	if second.Angle != 180 {
		t.Errorf("Expected second spin to continue from 90 to 180, got %v", second.Angle)
	}
	if second.Index != SegmentIndex(180, 5) {
		t.Errorf("Expected index %d, got %d", SegmentIndex(180, 5), second.Index)
	}
	if h.anim.Spins() != 2 {
		t.Errorf("Expected 2 spins, got %d", h.anim.Spins())
	}
}

// TestCancelSuppressesResult verifies cancel drops the pending frame and emits nothing
func TestCancelSuppressesResult(t *testing.T) {
	h := newHarness(t, DefaultMotion(), fixedRNG(0.5))

	if h.anim.Cancel() {
		t.Error("Expected cancel on idle wheel to be a no-op")
	}

	h.anim.Spin()
	for i := 0; i < 10; i++ {
		h.loop.Tick(h.clock.Advance(16 * time.Millisecond))
	}
	if !h.anim.Cancel() {
		t.Fatal("Expected cancel to stop an active spin")
	}
	if h.anim.State() != StateIdle {
		t.Errorf("Expected IDLE after cancel, got %v", h.anim.State())
	}

	frames := len(h.angles)
	h.loop.Tick(h.clock.Advance(16 * time.Millisecond))
	if len(h.angles) != frames {
		t.Error("Expected stale frame callback to be suppressed")
	}
	if h.loop.Pending() != 0 {
		t.Errorf("Expected no rescheduled frame, got %d pending", h.loop.Pending())
	}
	if len(h.results) != 0 {
		t.Errorf("Expected no result after cancel, got %d", len(h.results))
	}

	if !h.anim.Spin() {
		t.Fatal("Expected spin to start after cancel")
	}
	h.runUntilIdle(t, 16*time.Millisecond, 5000)
	if len(h.results) != 1 {
		t.Errorf("Expected 1 result after the fresh spin, got %d", len(h.results))
	}
}

// TestFrameWithoutScheduler verifies callers can step the animator directly
func TestFrameWithoutScheduler(t *testing.T) {
	clock := engine.NewMockTimeProvider(testStart)
	var got []Result
	anim, err := New(letterPrizes(), easedMotion(1800, time.Second),
		WithClock(clock),
		WithRandom(fixedRNG(0)),
		OnStopped(func(r Result) { got = append(got, r) }),
	)
	if err != nil {
		t.Fatalf("Failed to create animator: %v", err)
	}

	if anim.Frame(testStart) {
		t.Error("Expected Frame on idle animator to return false")
	}

	anim.Spin()
	steps := 0
	for anim.Frame(clock.Advance(50 * time.Millisecond)) {
		steps++
		if steps > 100 {
			t.Fatal("Spin did not stop")
		}
	}

	if len(got) != 1 || got[0].Prize.Name != "D" {
		t.Errorf("Expected a single D result, got %+v", got)
	}
}

// TestAnglesStayNormalized verifies published angles never leave [0, 360)
func TestAnglesStayNormalized(t *testing.T) {
	h := newHarness(t, DefaultMotion(), fixedRNG(0.999))

	h.anim.Spin()
	h.runUntilIdle(t, 16*time.Millisecond, 5000)

	if len(h.angles) == 0 {
		t.Fatal("Expected frame callbacks")
	}
	for i, a := range h.angles {
		if a < 0 || a >= 360 {
			t.Fatalf("Frame %d published out-of-range angle %v", i, a)
		}
	}
}

// TestWobbleNearStop verifies the pointer only jiggles while slow and stays bounded
func TestWobbleNearStop(t *testing.T) {
	h := newHarness(t, DefaultMotion(), fixedRNG(0.5))

	h.anim.Spin()
	h.loop.Tick(h.clock.Advance(16 * time.Millisecond))
	if w := h.anim.Wobble(); w != 0 {
		t.Errorf("Expected no wobble at full speed, got %v", w)
	}

	for h.loop.Pending() > 0 {
		h.loop.Tick(h.clock.Advance(16 * time.Millisecond))
		if w := h.anim.Wobble(); math.Abs(w) > 2.5+1e-9 {
			t.Fatalf("Wobble %v exceeds 2.5 degrees", w)
		}
	}
	if w := h.anim.Wobble(); w != 0 {
		t.Errorf("Expected no wobble at rest, got %v", w)
	}
}

func TestResolvePrize(t *testing.T) {
	h := newHarness(t, DefaultMotion(), fixedRNG(0))

	res := h.anim.ResolvePrize(0)
	if res.Prize.Name != "D" || res.Index != 3 {
		t.Errorf("Expected D at index 3 for angle 0, got %q at %d", res.Prize.Name, res.Index)
	}

	res = h.anim.ResolvePrize(-450)
	if res.Angle != 270 {
		t.Errorf("Expected normalized angle 270, got %v", res.Angle)
	}
	if res.Prize.Name != "A" {
		t.Errorf("Expected A for angle 270, got %q", res.Prize.Name)
	}
}

func TestStateString(t *testing.T) {
	if StateIdle.String() != "IDLE" || StateSpinning.String() != "SPINNING" {
		t.Errorf("Unexpected state names %q %q", StateIdle, StateSpinning)
	}
	if State(9).String() != "UNKNOWN" {
		t.Errorf("Expected UNKNOWN for invalid state, got %q", State(9))
	}
}
