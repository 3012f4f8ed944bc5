package config

import (
	"strconv"
	"time"
)

// Environment variables recognized by ApplyEnv
const (
	EnvAudioEnabled = "PRIZE_WHEEL_AUDIO_ENABLED"
	EnvMasterVolume = "PRIZE_WHEEL_MASTER_VOLUME" // 0-100
	EnvModel        = "PRIZE_WHEEL_MODEL"
	EnvFPS          = "PRIZE_WHEEL_FPS"
	EnvLogLevel     = "PRIZE_WHEEL_LOG_LEVEL"
	EnvCooldown     = "PRIZE_WHEEL_COOLDOWN"
)

// ApplyEnv overrides config values from the environment
// Unparseable values are ignored and the previous value is kept
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if enabled := getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Audio.Enabled = val
		}
	}

	// Master volume arrives as 0-100 and is clamped into 0.0-1.0
	if volume := getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			v := float64(val) / 100.0
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			cfg.Audio.MasterVolume = v
		}
	}

	if model := getenv(EnvModel); model != "" {
		cfg.Motion.Model = model
	}

	if fps := getenv(EnvFPS); fps != "" {
		if val, err := strconv.Atoi(fps); err == nil && val > 0 {
			cfg.UI.FPS = val
		}
	}

	if level := getenv(EnvLogLevel); level != "" {
		cfg.Log.Level = level
	}

	if cooldown := getenv(EnvCooldown); cooldown != "" {
		if val, err := time.ParseDuration(cooldown); err == nil && val >= 0 {
			cfg.UI.Cooldown = val
		}
	}
}
