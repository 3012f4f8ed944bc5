package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/prize-wheel/asset"
	"github.com/lixenwraith/prize-wheel/constants"
	"github.com/lixenwraith/prize-wheel/core"
	"github.com/lixenwraith/prize-wheel/effect"
	"github.com/lixenwraith/prize-wheel/engine"
	"github.com/lixenwraith/prize-wheel/render"
	"github.com/lixenwraith/prize-wheel/wheel"
)

// ErrNoScreen is returned when the game is created without a screen
var ErrNoScreen = errors.New("game needs a screen")

// Sound is the audio surface the game drives
type Sound interface {
	PlaySpin()
	StopSpin()
	PlayTick(now time.Time) bool
	PlayWin()
}

type silent struct{}

func (silent) PlaySpin() {}
func (silent) StopSpin() {}
func (silent) PlayTick(time.Time) bool { return false }
func (silent) PlayWin() {}

// Options wires the game's collaborators
type Options struct {
	Screen   tcell.Screen
	Prizes   []wheel.Prize
	Motion   wheel.Motion
	RNG      wheel.RandomSource  // Crypto-backed when nil
	Clock    engine.TimeProvider // Monotonic when nil
	Sound    Sound               // Silent when nil
	Icons    *asset.Set
	FPS      int
	Cooldown time.Duration
	Confetti int
	Logger   *zap.Logger
}

// Game owns the wheel scene and its event loop
// Everything except the input reader runs on the Run goroutine
type Game struct {
	screen   tcell.Screen
	clock    engine.TimeProvider
	loop     *engine.FrameLoop
	anim     *wheel.Animator
	renderer *render.Renderer
	confetti *effect.Confetti
	sound    Sound
	logger   *zap.Logger

	fps      int
	cooldown time.Duration
	count    int

	popup         *wheel.Result
	last          *wheel.Result
	cooldownUntil time.Time
	segment       int
	mouseDown     bool
}

// New builds a game around an initialized screen
func New(opts Options) (*Game, error) {
	if opts.Screen == nil {
		return nil, ErrNoScreen
	}

	g := &Game{
		screen:   opts.Screen,
		clock:    opts.Clock,
		loop:     engine.NewFrameLoop(),
		sound:    opts.Sound,
		logger:   opts.Logger,
		fps:      opts.FPS,
		cooldown: opts.Cooldown,
		count:    len(opts.Prizes),
	}
	if g.clock == nil {
		g.clock = engine.NewMonotonicTimeProvider()
	}
	if g.sound == nil {
		g.sound = silent{}
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.fps <= 0 {
		g.fps = constants.DefaultFPS
	}
	rng := opts.RNG
	if rng == nil {
		rng = wheel.DefaultRNG()
	}

	anim, err := wheel.New(opts.Prizes, opts.Motion,
		wheel.WithClock(g.clock),
		wheel.WithRandom(rng),
		wheel.WithScheduler(g.loop),
		wheel.OnFrame(g.onFrame),
		wheel.OnStopped(g.onStopped),
	)
	if err != nil {
		return nil, fmt.Errorf("create wheel: %w", err)
	}
	g.anim = anim
	g.segment = wheel.SegmentIndex(anim.Angle(), g.count)
	g.renderer = render.NewRenderer(opts.Screen, opts.Prizes, opts.Icons)
	g.confetti = effect.NewConfetti(rng, opts.Confetti)
	return g, nil
}

// Run processes input and frames until quit or ctx is cancelled
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, constants.EventQueueSize)
	done := make(chan struct{})
	defer close(done)

	// PollEvent returns nil once the screen is finalized, which ends the reader
	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	ticker := time.NewTicker(engine.FrameInterval(g.fps))
	defer ticker.Stop()

	g.logger.Info("wheel ready",
		zap.Int("prizes", g.count),
		zap.String("model", string(g.anim.Motion().Model)),
		zap.Int("fps", g.fps))
	g.Tick(g.clock.Now())

	for {
		select {
		case <-ctx.Done():
			g.logger.Info("shutting down", zap.Error(ctx.Err()))
			return nil
		case ev := <-events:
			if !g.HandleEvent(ev) {
				g.logger.Info("quit requested")
				return nil
			}
		case <-ticker.C:
			g.Tick(g.clock.Now())
		}
	}
}

// Tick advances one display frame: pending animation frames, confetti, draw
func (g *Game) Tick(now time.Time) {
	g.loop.Tick(now)
	g.confetti.Update(now)
	g.draw(now)
}

func (g *Game) draw(now time.Time) {
	g.renderer.Draw(render.View{
		Angle:         g.anim.Angle(),
		Wobble:        g.anim.Wobble(),
		ButtonEnabled: g.ButtonEnabled(now),
		Status:        g.status(),
		Popup:         g.popup,
		Confetti:      g.confetti.Pieces(now),
	})
}

// HandleEvent applies one terminal event, returns false when the game should exit
func (g *Game) HandleEvent(ev tcell.Event) bool {
	now := g.clock.Now()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyEscape:
			g.ClosePopup()
		case tcell.KeyEnter:
			g.Spin(now)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				g.Spin(now)
			case 'c', 'C':
				g.Cancel()
			case 'q', 'Q':
				return false
			}
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		// Act on the press edge only, drags and held buttons repeat events
		if pressed && !g.mouseDown {
			g.click(ev.Position())
		}
		g.mouseDown = pressed

	case *tcell.EventResize:
		w, h := ev.Size()
		g.renderer.Resize(w, h)
		g.screen.Sync()
		g.logger.Debug("resized", zap.Int("width", w), zap.Int("height", h))
	}

	g.draw(now)
	return true
}

func (g *Game) click(x, y int) {
	if g.popup != nil {
		if !g.renderer.PopupContains(x, y) {
			g.ClosePopup()
		}
		return
	}
	if g.renderer.ButtonContains(x, y) {
		g.Spin(g.clock.Now())
	}
}

// Spin starts the wheel unless a spin is running, the popup is open or the cooldown has not elapsed
func (g *Game) Spin(now time.Time) bool {
	if !g.ButtonEnabled(now) {
		return false
	}
	if !g.anim.Spin() {
		return false
	}
	g.sound.PlaySpin()
	g.logger.Debug("spin started",
		zap.Uint64("spin", g.anim.Spins()),
		zap.Float64("angle", g.anim.Angle()))
	return true
}

// Cancel aborts a running spin without a result
func (g *Game) Cancel() bool {
	if !g.anim.Cancel() {
		return false
	}
	g.sound.StopSpin()
	g.logger.Info("spin cancelled",
		zap.Uint64("spin", g.anim.Spins()),
		zap.Float64("angle", g.anim.Angle()))
	return true
}

// ClosePopup hides the result popup
func (g *Game) ClosePopup() {
	g.popup = nil
}

// ButtonEnabled reports whether SPIN would be accepted at now
func (g *Game) ButtonEnabled(now time.Time) bool {
	return !g.anim.Spinning() && g.popup == nil && !now.Before(g.cooldownUntil)
}

// onFrame plays a tick each time a segment border passes the pointer
func (g *Game) onFrame(angle float64) {
	seg := wheel.SegmentIndex(angle, g.count)
	if seg == g.segment {
		return
	}
	g.segment = seg
	g.sound.PlayTick(g.loop.LastTick())
}

func (g *Game) onStopped(res wheel.Result) {
	now := g.loop.LastTick()

	g.popup = &res
	g.last = &res
	g.cooldownUntil = now.Add(g.cooldown)
	g.confetti.Burst(now, g.renderer.Colors())
	g.sound.PlayWin()

	g.logger.Info("spin stopped",
		zap.String("prize", res.Prize.Name),
		zap.Int("index", res.Index),
		zap.Float64("angle", res.Angle),
		zap.Uint64("spin", g.anim.Spins()),
		zap.Uint64("frames", g.anim.Frames()))
}

func (g *Game) status() string {
	s := fmt.Sprintf("%s %5.1f°", g.anim.State(), g.anim.Angle())
	if g.last != nil {
		s += " | Last: " + g.last.Prize.Name
	}
	return s
}

// Animator exposes the wheel state machine
func (g *Game) Animator() *wheel.Animator { return g.anim }

// Popup returns the result on display, nil when closed
func (g *Game) Popup() *wheel.Result { return g.popup }

// Last returns the most recent result, nil before the first spin completes
func (g *Game) Last() *wheel.Result { return g.last }

// Renderer exposes the renderer for hit-testing
func (g *Game) Renderer() *render.Renderer { return g.renderer }

// Confetti exposes the celebration burst
func (g *Game) Confetti() *effect.Confetti { return g.confetti }
