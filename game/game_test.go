package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lixenwraith/prize-wheel/engine"
	"github.com/lixenwraith/prize-wheel/wheel"
)

type fixedRNG float64

func (f fixedRNG) Float64() float64 { return float64(f) }

// fakeSound counts calls instead of playing audio
type fakeSound struct {
	spins, stops, ticks, wins int
}

func (f *fakeSound) PlaySpin() { f.spins++ }
func (f *fakeSound) StopSpin() { f.stops++ }
func (f *fakeSound) PlayWin() { f.wins++ }
func (f *fakeSound) PlayTick(time.Time) bool {
	f.ticks++
	return true
}

var testStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

const frameStep = 16 * time.Millisecond

type fixture struct {
	game   *Game
	clock  *engine.MockTimeProvider
	sound  *fakeSound
	screen tcell.SimulationScreen
	logs   *observer.ObservedLogs
}

// newFixture builds a game whose eased spin lands on Skins after three full turns
func newFixture(t *testing.T) *fixture {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	motion := wheel.DefaultMotion()
	motion.Model = wheel.ModelEased
	motion.MinRotation, motion.MaxRotation = 3*360+270, 3*360+270
	motion.MinDuration, motion.MaxDuration = time.Second, time.Second

	core, logs := observer.New(zap.DebugLevel)
	f := &fixture{
		clock:  engine.NewMockTimeProvider(testStart),
		sound:  &fakeSound{},
		screen: screen,
		logs:   logs,
	}
	g, err := New(Options{
		Screen: screen,
		Prizes: []wheel.Prize{
			{Name: "Skins"}, {Name: "Customization"}, {Name: "Gems"}, {Name: "Name Tags"}, {Name: "Crowns"},
		},
		Motion:   motion,
		RNG:      fixedRNG(0),
		Clock:    f.clock,
		Sound:    f.sound,
		FPS:      60,
		Cooldown: 500 * time.Millisecond,
		Confetti: 10,
		Logger:   zap.New(core),
	})
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	f.game = g
	g.Tick(f.clock.Now())
	return f
}

// runSpin ticks until the animator goes idle
func (f *fixture) runSpin(t *testing.T) {
	t.Helper()
	for i := 0; f.game.Animator().Spinning(); i++ {
		if i > 1000 {
			t.Fatalf("Spin did not stop")
		}
		f.game.Tick(f.clock.Advance(frameStep))
	}
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestNewRequiresScreen(t *testing.T) {
	_, err := New(Options{Prizes: []wheel.Prize{{Name: "A"}}, Motion: wheel.DefaultMotion()})
	if !errors.Is(err, ErrNoScreen) {
		t.Errorf("Expected ErrNoScreen, got %v", err)
	}
}

func TestNewRejectsEmptyWheel(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()

	_, err := New(Options{Screen: screen, Motion: wheel.DefaultMotion()})
	if !errors.Is(err, wheel.ErrNoPrizes) {
		t.Errorf("Expected ErrNoPrizes, got %v", err)
	}
}

func TestSpaceStartsSpinAndShowsPopup(t *testing.T) {
	f := newFixture(t)

	if !f.game.HandleEvent(key(' ')) {
		t.Fatal("Expected space not to quit")
	}
	if !f.game.Animator().Spinning() {
		t.Fatal("Expected space to start a spin")
	}
	if f.sound.spins != 1 {
		t.Errorf("Expected 1 spin sound, got %d", f.sound.spins)
	}

	f.runSpin(t)

	popup := f.game.Popup()
	if popup == nil {
		t.Fatal("Expected popup after the spin stopped")
	}
	if popup.Prize.Name != "Skins" {
		t.Errorf("Expected Skins, got %s (angle %v)", popup.Prize.Name, popup.Angle)
	}
	if f.sound.wins != 1 {
		t.Errorf("Expected 1 win sound, got %d", f.sound.wins)
	}
	if !f.game.Confetti().Active() {
		t.Error("Expected confetti burst after the result")
	}
	if n := f.logs.FilterMessage("spin stopped").Len(); n != 1 {
		t.Errorf("Expected 1 stop log, got %d", n)
	}
}

func TestEnterStartsSpin(t *testing.T) {
	f := newFixture(t)
	f.game.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if !f.game.Animator().Spinning() {
		t.Error("Expected enter to start a spin")
	}
}

func TestTicksOnSegmentCrossing(t *testing.T) {
	f := newFixture(t)
	f.game.HandleEvent(key(' '))
	f.runSpin(t)

	// 1350 degrees over 72 degree segments crosses at least 18 borders
	if f.sound.ticks < 18 {
		t.Errorf("Expected at least 18 ticks, got %d", f.sound.ticks)
	}
}

func TestPopupAndCooldownBlockSpin(t *testing.T) {
	f := newFixture(t)
	f.game.HandleEvent(key(' '))
	f.runSpin(t)

	if f.game.Spin(f.clock.Now()) {
		t.Error("Expected spin to be blocked while the popup is open")
	}

	f.game.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if f.game.Popup() != nil {
		t.Fatal("Expected escape to close the popup")
	}
	if f.game.Spin(f.clock.Now()) {
		t.Error("Expected spin to be blocked during the cooldown")
	}
	if f.game.ButtonEnabled(f.clock.Now()) {
		t.Error("Expected button disabled during the cooldown")
	}

	now := f.clock.Advance(500 * time.Millisecond)
	if !f.game.ButtonEnabled(now) {
		t.Error("Expected button enabled once the cooldown elapsed")
	}
	if !f.game.Spin(now) {
		t.Error("Expected spin after the cooldown")
	}
	if got := f.game.Animator().Spins(); got != 2 {
		t.Errorf("Expected 2 spins, got %d", got)
	}
}

func TestSpinIgnoredWhileSpinning(t *testing.T) {
	f := newFixture(t)
	f.game.HandleEvent(key(' '))
	f.game.Tick(f.clock.Advance(frameStep))
	f.game.HandleEvent(key(' '))

	if got := f.game.Animator().Spins(); got != 1 {
		t.Errorf("Expected 1 spin, got %d", got)
	}
	if f.sound.spins != 1 {
		t.Errorf("Expected 1 spin sound, got %d", f.sound.spins)
	}
}

func TestCancelKey(t *testing.T) {
	f := newFixture(t)
	f.game.HandleEvent(key(' '))
	f.game.Tick(f.clock.Advance(frameStep))
	f.game.HandleEvent(key('c'))

	if f.game.Animator().Spinning() {
		t.Fatal("Expected cancel to stop the spin")
	}
	if f.sound.stops != 1 {
		t.Errorf("Expected 1 stop sound, got %d", f.sound.stops)
	}

	// Stale frames must not deliver a result
	for i := 0; i < 100; i++ {
		f.game.Tick(f.clock.Advance(frameStep))
	}
	if f.game.Popup() != nil || f.game.Last() != nil {
		t.Error("Expected no result after cancel")
	}
	if !f.game.ButtonEnabled(f.clock.Now()) {
		t.Error("Expected button enabled after cancel")
	}
	if f.game.Cancel() {
		t.Error("Expected cancel on an idle wheel to be ignored")
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		quit bool
	}{
		{"q", key('q'), true},
		{"Q", key('Q'), true},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), true},
		{"other rune", key('x'), false},
		{"resize", tcell.NewEventResize(100, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if got := !f.game.HandleEvent(tt.ev); got != tt.quit {
				t.Errorf("Expected quit=%v, got %v", tt.quit, got)
			}
		})
	}
}

func TestMouseClickOnButton(t *testing.T) {
	f := newFixture(t)
	b := f.game.Renderer().Layout().Button

	f.game.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	f.game.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	if f.game.Animator().Spinning() {
		t.Fatal("Expected a click off the button to be ignored")
	}

	f.game.HandleEvent(tcell.NewEventMouse(b.X+1, b.Y, tcell.Button1, tcell.ModNone))
	if !f.game.Animator().Spinning() {
		t.Fatal("Expected a click on the button to start a spin")
	}
	f.game.HandleEvent(tcell.NewEventMouse(b.X+1, b.Y, tcell.ButtonNone, tcell.ModNone))

	f.runSpin(t)
	if f.game.Popup() == nil {
		t.Fatal("Expected popup after the spin")
	}

	// Click outside the popup closes it
	f.game.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	if f.game.Popup() != nil {
		t.Error("Expected a click outside the popup to close it")
	}
}

func TestHeldButtonDoesNotRepeat(t *testing.T) {
	f := newFixture(t)
	b := f.game.Renderer().Layout().Button

	f.game.HandleEvent(tcell.NewEventMouse(b.X+1, b.Y, tcell.Button1, tcell.ModNone))
	f.runSpin(t)
	f.game.ClosePopup()
	f.clock.Advance(time.Second)

	// Still held: no second spin
	f.game.HandleEvent(tcell.NewEventMouse(b.X+2, b.Y, tcell.Button1, tcell.ModNone))
	if got := f.game.Animator().Spins(); got != 1 {
		t.Errorf("Expected 1 spin while the button is held, got %d", got)
	}
}

func TestResizeRelayouts(t *testing.T) {
	f := newFixture(t)
	f.screen.SetSize(120, 40)
	f.game.HandleEvent(tcell.NewEventResize(120, 40))

	l := f.game.Renderer().Layout()
	if l.Width != 120 || l.Height != 40 {
		t.Errorf("Expected 120x40 layout, got %dx%d", l.Width, l.Height)
	}
}

func TestStatusShowsLastPrize(t *testing.T) {
	f := newFixture(t)
	if got := f.game.status(); got != "IDLE   0.0°" {
		t.Errorf("Expected idle status, got %q", got)
	}

	f.game.HandleEvent(key(' '))
	f.runSpin(t)
	if got := f.game.status(); got != "IDLE 270.0° | Last: Skins" {
		t.Errorf("Expected status with last prize, got %q", got)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	f := newFixture(t)
	done := make(chan error, 1)
	go func() { done <- f.game.Run(context.Background()) }()

	f.screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.game.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
