package wheel

import (
	"math"
	"time"

	"github.com/lixenwraith/prize-wheel/constants"
)

// State is the animator's lifecycle state
type State uint8

const (
	StateIdle State = iota
	StateSpinning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateSpinning:
		return "SPINNING"
	default:
		return "UNKNOWN"
	}
}

// Clock supplies frame timestamps
type Clock interface {
	Now() time.Time
}

// Scheduler runs a callback on the next display frame with that frame's timestamp
type Scheduler interface {
	RequestFrame(fn func(time.Time))
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures an Animator
type Option func(*Animator)

// WithClock sets the clock read by Spin
func WithClock(c Clock) Option {
	return func(a *Animator) { a.clock = c }
}

// WithRandom sets the random source for motion parameters
func WithRandom(r RandomSource) Option {
	return func(a *Animator) { a.rng = r }
}

// WithScheduler sets the frame scheduler
// Without one, the caller drives the spin by calling Frame
func WithScheduler(s Scheduler) Option {
	return func(a *Animator) { a.scheduler = s }
}

// OnFrame registers the per-frame angle callback
func OnFrame(fn func(angle float64)) Option {
	return func(a *Animator) { a.onFrame = fn }
}

// OnStopped registers the completion callback
func OnStopped(fn func(Result)) Option {
	return func(a *Animator) { a.onStopped = fn }
}

// Animator owns the wheel rotation state machine
// Not safe for concurrent use; all calls come from the frame loop goroutine
type Animator struct {
	prizes []Prize
	motion Motion
	ease   Easing
	width  float64

	clock     Clock
	rng       RandomSource
	scheduler Scheduler
	onFrame   func(float64)
	onStopped func(Result)

	state State
	angle float64

	// Velocity model
	velocity float64
	lastTime time.Time

	// Eased model
	startAngle float64
	rotation   float64
	startTime  time.Time
	duration   time.Duration
	progress   float64

	// Bumped on every spin start, stop and cancel; stale frame callbacks compare against it
	generation uint64
	spins      uint64
	frames     uint64
}

// New creates an idle animator at angle 0
func New(prizes []Prize, motion Motion, opts ...Option) (*Animator, error) {
	if len(prizes) == 0 {
		return nil, ErrNoPrizes
	}
	if err := motion.Validate(); err != nil {
		return nil, err
	}
	ease := Easing(EaseOutCubic)
	if motion.Model == ModelEased {
		ease, _ = EasingByName(motion.Easing)
	}

	a := &Animator{
		prizes: append([]Prize(nil), prizes...),
		motion: motion,
		ease:   ease,
		width:  SegmentWidth(len(prizes)),
		clock:  systemClock{},
		rng:    DefaultRNG(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Spin starts a new spin, ignored while one is active
func (a *Animator) Spin() bool {
	if a.state == StateSpinning {
		return false
	}

	now := a.clock.Now()
	a.state = StateSpinning
	a.generation++
	a.spins++
	a.frames = 0
	a.startTime = now
	a.lastTime = now
	a.startAngle = a.angle
	a.progress = 0

	switch a.motion.Model {
	case ModelVelocity:
		a.velocity = uniform(a.rng, a.motion.MinVelocity, a.motion.MaxVelocity)
	case ModelEased:
		a.rotation = uniform(a.rng, a.motion.MinRotation, a.motion.MaxRotation)
		a.duration = time.Duration(uniform(a.rng, float64(a.motion.MinDuration), float64(a.motion.MaxDuration)))
	}

	a.schedule()
	return true
}

// Cancel aborts the active spin without emitting a result
func (a *Animator) Cancel() bool {
	if a.state != StateSpinning {
		return false
	}
	a.state = StateIdle
	a.velocity = 0
	a.generation++
	a.angle = NormalizeDegrees(a.angle)
	return true
}

// Frame advances the active spin to timestamp ts
// Returns true while the spin continues
func (a *Animator) Frame(ts time.Time) bool {
	if a.state != StateSpinning {
		return false
	}
	a.frames++

	switch a.motion.Model {
	case ModelEased:
		return a.stepEased(ts)
	default:
		return a.stepVelocity(ts)
	}
}

func (a *Animator) stepVelocity(ts time.Time) bool {
	dt := ts.Sub(a.lastTime)
	if dt < 0 {
		dt = 0
	}
	a.lastTime = ts

	a.velocity *= math.Pow(a.motion.Decay, float64(dt)/float64(a.motion.FrameRef))
	if a.velocity < a.motion.StopThreshold {
		a.velocity = 0
		a.stop()
		return false
	}

	a.angle = NormalizeDegrees(a.angle + a.velocity)
	a.publish()
	return true
}

func (a *Animator) stepEased(ts time.Time) bool {
	elapsed := ts.Sub(a.startTime)
	if elapsed >= a.duration {
		a.progress = 1
		a.angle = NormalizeDegrees(a.startAngle + a.rotation)
		a.stop()
		return false
	}

	a.progress = clamp01(float64(elapsed) / float64(a.duration))
	a.angle = NormalizeDegrees(a.startAngle + a.rotation*a.ease(a.progress))
	a.publish()
	return true
}

// stop transitions to idle before the result is emitted
func (a *Animator) stop() {
	a.angle = NormalizeDegrees(a.angle)
	a.state = StateIdle
	a.generation++
	a.publish()

	res := a.ResolvePrize(a.angle)
	if a.onStopped != nil {
		a.onStopped(res)
	}
}

func (a *Animator) publish() {
	if a.onFrame != nil {
		a.onFrame(a.angle)
	}
}

func (a *Animator) schedule() {
	if a.scheduler == nil {
		return
	}
	gen := a.generation
	a.scheduler.RequestFrame(func(ts time.Time) {
		if gen != a.generation {
			return
		}
		if a.Frame(ts) {
			a.schedule()
		}
	})
}

// ResolvePrize maps any final angle to the prize under the pointer
func (a *Animator) ResolvePrize(finalAngle float64) Result {
	idx := SegmentIndex(finalAngle, len(a.prizes))
	return Result{
		Prize: a.prizes[idx],
		Index: idx,
		Angle: NormalizeDegrees(finalAngle),
	}
}

// Wobble returns the pointer jiggle in degrees near the end of a spin
func (a *Animator) Wobble() float64 {
	if a.state != StateSpinning {
		return 0
	}

	var slack float64
	switch a.motion.Model {
	case ModelVelocity:
		slack = constants.WobbleVelocity - a.velocity
	case ModelEased:
		// Map the tail of the curve onto the same 0..WobbleVelocity slack
		tail := (a.progress - constants.WobbleProgress) / (1 - constants.WobbleProgress)
		slack = clamp01(tail) * constants.WobbleVelocity
	}
	if slack <= 0 {
		return 0
	}
	return math.Sin(a.angle*0.1) * slack * 0.5
}

// State returns the lifecycle state
func (a *Animator) State() State { return a.state }

// Spinning reports whether a spin is active
func (a *Animator) Spinning() bool { return a.state == StateSpinning }

// Angle returns the current rotation in [0, 360)
func (a *Animator) Angle() float64 { return a.angle }

// Velocity returns the current velocity, zero outside the velocity model
func (a *Animator) Velocity() float64 { return a.velocity }

// Progress returns eased progress in [0,1], zero outside the eased model
func (a *Animator) Progress() float64 { return a.progress }

// Spins returns the number of started spins
func (a *Animator) Spins() uint64 { return a.spins }

// Frames returns the number of frames processed in the current or last spin
func (a *Animator) Frames() uint64 { return a.frames }

// Prizes returns a copy of the prize list
func (a *Animator) Prizes() []Prize { return append([]Prize(nil), a.prizes...) }

// SegmentWidth returns the angular width of one segment
func (a *Animator) SegmentWidth() float64 { return a.width }

// Motion returns the motion envelope
func (a *Animator) Motion() Motion { return a.motion }
