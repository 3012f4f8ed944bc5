package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/prize-wheel/asset"
	"github.com/lixenwraith/prize-wheel/audio"
	"github.com/lixenwraith/prize-wheel/config"
	"github.com/lixenwraith/prize-wheel/core"
	"github.com/lixenwraith/prize-wheel/game"
	"github.com/lixenwraith/prize-wheel/logging"
	"github.com/lixenwraith/prize-wheel/render"
	"github.com/lixenwraith/prize-wheel/wheel"
)

// flags holds the command-line overrides, applied after the config file and environment
type flags struct {
	configPath string
	debug      bool
	seed       uint64
	seeded     bool
	model      string
	mute       bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("prize-wheel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", config.DefaultPath, "Path to the YAML config file")
	fs.BoolVar(&f.debug, "debug", false, "Write logs to the configured log directory")
	fs.Uint64Var(&f.seed, "seed", 0, "Seed for reproducible spins (crypto random when unset)")
	fs.StringVar(&f.model, "model", "", "Motion model override: velocity or eased")
	fs.BoolVar(&f.mute, "mute", false, "Disable audio")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "seed" {
			f.seeded = true
		}
	})
	return f, nil
}

// apply layers the flags over the loaded config and revalidates
func (f *flags) apply(cfg *config.Config) error {
	if f.model != "" {
		cfg.Motion.Model = f.model
	}
	if f.mute {
		cfg.Audio.Enabled = false
	}
	return cfg.Validate()
}

func (f *flags) rng() wheel.RandomSource {
	if f.seeded {
		return wheel.NewSeededRNG(f.seed)
	}
	return wheel.DefaultRNG()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	f, err := parseFlags(args, os.Stderr)
	if err != nil {
		return 2
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if err := f.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid flags: %v\n", err)
		return 1
	}

	logger, logCloser, err := logging.New(cfg.Log, f.debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		return 1
	}
	defer logCloser.Close()
	defer logger.Sync()

	motion, err := cfg.WheelMotion()
	if err != nil {
		logger.Error("invalid motion", zap.Error(err))
		return 1
	}
	prizes := cfg.WheelPrizes()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	// Crash path restores the terminal before printing the stack
	core.SetResetHook(screen.Fini)
	core.SetCrashLogger(logger)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	// Audio failure is non-fatal, the wheel runs silent
	sound := audio.NewSoundManager(audio.SettingsFromConfig(cfg.Audio))
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer sound.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	icons, err := asset.Load(ctx, prizes, render.SegmentColors(prizes), cfg.UI.IconWidth, logger)
	if err != nil {
		logger.Error("load prize icons", zap.Error(err))
		return 1
	}

	g, err := game.New(game.Options{
		Screen:   screen,
		Prizes:   prizes,
		Motion:   motion,
		RNG:      f.rng(),
		Sound:    sound,
		Icons:    icons,
		FPS:      cfg.UI.FPS,
		Cooldown: cfg.UI.Cooldown,
		Confetti: cfg.UI.Confetti,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("create game", zap.Error(err))
		return 1
	}

	if err := g.Run(ctx); err != nil {
		logger.Error("game loop", zap.Error(err))
		return 1
	}
	return 0
}
