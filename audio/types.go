package audio

import (
	"time"

	"github.com/lixenwraith/prize-wheel/config"
	"github.com/lixenwraith/prize-wheel/constants"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundSpin SoundType = iota // Whoosh when a spin starts
	SoundTick                  // Click as a segment boundary passes the pointer
	SoundWin                   // Bell and coin chime on a result
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundSpin:
		return "spin"
	case SoundTick:
		return "tick"
	case SoundWin:
		return "win"
	default:
		return "unknown"
	}
}

// Settings holds audio parameters
type Settings struct {
	Enabled       bool
	MasterVolume  float64
	EffectVolumes map[SoundType]float64
	MinSoundGap   time.Duration
	SampleRate    int
}

// DefaultSettings returns the built-in audio settings
func DefaultSettings() *Settings {
	return &Settings{
		Enabled:      true,
		MasterVolume: constants.DefaultMasterVolume,
		EffectVolumes: map[SoundType]float64{
			SoundSpin: constants.DefaultSpinVolume,
			SoundTick: constants.DefaultTickVolume,
			SoundWin:  constants.DefaultWinVolume,
		},
		MinSoundGap: constants.MinSoundGap,
		SampleRate:  constants.AudioSampleRate,
	}
}

// SettingsFromConfig maps the audio config section, missing effect volumes keep defaults
func SettingsFromConfig(cfg config.AudioConfig) *Settings {
	s := DefaultSettings()
	s.Enabled = cfg.Enabled
	s.MasterVolume = cfg.MasterVolume
	if cfg.SampleRate > 0 {
		s.SampleRate = cfg.SampleRate
	}
	for st := SoundType(0); st < soundTypeCount; st++ {
		if v, ok := cfg.Volumes[st.String()]; ok {
			s.EffectVolumes[st] = v
		}
	}
	return s
}
