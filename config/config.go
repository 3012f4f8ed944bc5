package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/prize-wheel/constants"
	"github.com/lixenwraith/prize-wheel/wheel"
)

// DefaultPath is the config file read when -config is not given
const DefaultPath = "prize-wheel.yaml"

// Sentinel errors
var (
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the full application configuration
// Precedence: defaults < YAML file < environment < command-line flags
type Config struct {
	Prizes []PrizeConfig `yaml:"prizes"`
	Motion MotionConfig  `yaml:"motion"`
	UI     UIConfig      `yaml:"ui"`
	Audio  AudioConfig   `yaml:"audio"`
	Log    LogConfig     `yaml:"log"`
}

type PrizeConfig struct {
	Name  string `yaml:"name"`
	Image string `yaml:"image"`
	Color string `yaml:"color"`
}

type MotionConfig struct {
	Model         string        `yaml:"model"`
	MinVelocity   float64       `yaml:"min_velocity"`
	MaxVelocity   float64       `yaml:"max_velocity"`
	Decay         float64       `yaml:"decay"`
	FrameRef      time.Duration `yaml:"frame_ref"`
	StopThreshold float64       `yaml:"stop_threshold"`
	MinRotation   float64       `yaml:"min_rotation"`
	MaxRotation   float64       `yaml:"max_rotation"`
	MinDuration   time.Duration `yaml:"min_duration"`
	MaxDuration   time.Duration `yaml:"max_duration"`
	Easing        string        `yaml:"easing"`
}

type UIConfig struct {
	FPS       int           `yaml:"fps"`
	Cooldown  time.Duration `yaml:"cooldown"`
	Confetti  int           `yaml:"confetti"`
	IconWidth int           `yaml:"icon_width"`
}

type AudioConfig struct {
	Enabled      bool               `yaml:"enabled"`
	MasterVolume float64            `yaml:"master_volume"`
	SampleRate   int                `yaml:"sample_rate"`
	Volumes      map[string]float64 `yaml:"volumes"` // Keys: spin, tick, win
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the built-in configuration with the classic five prizes
func Default() *Config {
	m := wheel.DefaultMotion()
	return &Config{
		Prizes: []PrizeConfig{
			{Name: "Skins", Image: "images/skins.png", Color: constants.DefaultPalette[0]},
			{Name: "Customization", Image: "images/customization.png", Color: constants.DefaultPalette[1]},
			{Name: "Gems", Image: "images/gems.png", Color: constants.DefaultPalette[2]},
			{Name: "Name Tags", Image: "images/name_tags.png", Color: constants.DefaultPalette[3]},
			{Name: "Crowns", Image: "images/crowns.png", Color: constants.DefaultPalette[4]},
		},
		Motion: MotionConfig{
			Model:         string(m.Model),
			MinVelocity:   m.MinVelocity,
			MaxVelocity:   m.MaxVelocity,
			Decay:         m.Decay,
			FrameRef:      m.FrameRef,
			StopThreshold: m.StopThreshold,
			MinRotation:   m.MinRotation,
			MaxRotation:   m.MaxRotation,
			MinDuration:   m.MinDuration,
			MaxDuration:   m.MaxDuration,
			Easing:        m.Easing,
		},
		UI: UIConfig{
			FPS:       constants.DefaultFPS,
			Cooldown:  constants.DefaultSpinCooldown,
			Confetti:  constants.DefaultConfettiCount,
			IconWidth: constants.DefaultIconWidth,
		},
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: constants.DefaultMasterVolume,
			SampleRate:   constants.AudioSampleRate,
			Volumes: map[string]float64{
				"spin": constants.DefaultSpinVolume,
				"tick": constants.DefaultTickVolume,
				"win":  constants.DefaultWinVolume,
			},
		},
		Log: LogConfig{
			Level:      "info",
			Dir:        "logs",
			File:       "prize-wheel.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and validates
// A missing file is not an error: the defaults are used
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.readYAML(path); err != nil {
		return nil, err
	}
	ApplyEnv(cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readYAML decodes the file on top of the current values
// Keys absent from the file keep their defaults, a prizes list replaces the default list
func (c *Config) readYAML(path string) error {
	if path == "" {
		return nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate fails fast on configurations the wheel cannot run with
func (c *Config) Validate() error {
	if len(c.Prizes) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, wheel.ErrNoPrizes)
	}
	for i, p := range c.Prizes {
		if p.Name == "" {
			return fmt.Errorf("%w: prize %d has no name", ErrInvalidConfig, i)
		}
		if p.Color != "" {
			if _, err := colorful.Hex(p.Color); err != nil {
				return fmt.Errorf("%w: prize %q color %q: %v", ErrInvalidConfig, p.Name, p.Color, err)
			}
		}
	}

	motion, err := c.WheelMotion()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := motion.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.UI.FPS <= 0 || c.UI.FPS > constants.MaxFPS {
		return fmt.Errorf("%w: fps %d outside [1,%d]", ErrInvalidConfig, c.UI.FPS, constants.MaxFPS)
	}
	if c.UI.Cooldown < 0 {
		return fmt.Errorf("%w: cooldown %v is negative", ErrInvalidConfig, c.UI.Cooldown)
	}
	if c.UI.Confetti < 0 {
		return fmt.Errorf("%w: confetti count %d is negative", ErrInvalidConfig, c.UI.Confetti)
	}
	if c.UI.IconWidth < 0 || c.UI.IconWidth > constants.MaxIconWidth {
		return fmt.Errorf("%w: icon width %d outside [0,%d]", ErrInvalidConfig, c.UI.IconWidth, constants.MaxIconWidth)
	}

	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("%w: master volume %v outside [0,1]", ErrInvalidConfig, c.Audio.MasterVolume)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d must be positive", ErrInvalidConfig, c.Audio.SampleRate)
	}
	for name, v := range c.Audio.Volumes {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s volume %v outside [0,1]", ErrInvalidConfig, name, v)
		}
	}
	return nil
}

// WheelPrizes converts the prize list for the animator
func (c *Config) WheelPrizes() []wheel.Prize {
	prizes := make([]wheel.Prize, len(c.Prizes))
	for i, p := range c.Prizes {
		prizes[i] = wheel.Prize{Name: p.Name, Image: p.Image, Color: p.Color}
	}
	return prizes
}

// WheelMotion converts the motion section for the animator
func (c *Config) WheelMotion() (wheel.Motion, error) {
	model, err := wheel.ParseModel(c.Motion.Model)
	if err != nil {
		return wheel.Motion{}, err
	}
	return wheel.Motion{
		Model:         model,
		MinVelocity:   c.Motion.MinVelocity,
		MaxVelocity:   c.Motion.MaxVelocity,
		Decay:         c.Motion.Decay,
		FrameRef:      c.Motion.FrameRef,
		StopThreshold: c.Motion.StopThreshold,
		MinRotation:   c.Motion.MinRotation,
		MaxRotation:   c.Motion.MaxRotation,
		MinDuration:   c.Motion.MinDuration,
		MaxDuration:   c.Motion.MaxDuration,
		Easing:        c.Motion.Easing,
	}, nil
}
