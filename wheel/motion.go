package wheel

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/prize-wheel/constants"
)

// Model selects how a spin advances the angle
type Model string

const (
	// ModelVelocity decays an initial angular velocity until it drops below the stop threshold
	ModelVelocity Model = "velocity"
	// ModelEased runs a fixed rotation over a fixed duration through an ease-out curve
	ModelEased Model = "eased"
)

// Sentinel errors
var (
	ErrNoPrizes      = errors.New("wheel needs at least one prize")
	ErrInvalidMotion = errors.New("invalid motion config")
)

// Motion is the randomized motion envelope of a spin
type Motion struct {
	Model Model

	// Velocity model, velocities in degrees per nominal frame
	MinVelocity   float64
	MaxVelocity   float64
	Decay         float64       // Per-FrameRef attenuation, in (0,1)
	FrameRef      time.Duration // Nominal frame the decay is scaled to
	StopThreshold float64

	// Eased model
	MinRotation float64 // Degrees
	MaxRotation float64
	MinDuration time.Duration
	MaxDuration time.Duration
	Easing      string
}

// DefaultMotion returns the velocity model tuned like the classic wheel
func DefaultMotion() Motion {
	return Motion{
		Model:         ModelVelocity,
		MinVelocity:   constants.DefaultMinVelocity,
		MaxVelocity:   constants.DefaultMaxVelocity,
		Decay:         constants.DefaultDecay,
		FrameRef:      constants.DefaultFrameRef,
		StopThreshold: constants.DefaultStopThreshold,
		MinRotation:   constants.DefaultMinRotation,
		MaxRotation:   constants.DefaultMaxRotation,
		MinDuration:   constants.DefaultMinDuration,
		MaxDuration:   constants.DefaultMaxDuration,
		Easing:        EasingCubic,
	}
}

// Validate checks the fields used by the selected model
func (m Motion) Validate() error {
	switch m.Model {
	case ModelVelocity:
		if m.MinVelocity <= 0 {
			return fmt.Errorf("%w: min velocity %v must be positive", ErrInvalidMotion, m.MinVelocity)
		}
		if m.MaxVelocity < m.MinVelocity {
			return fmt.Errorf("%w: max velocity %v below min %v", ErrInvalidMotion, m.MaxVelocity, m.MinVelocity)
		}
		if m.Decay <= 0 || m.Decay >= 1 {
			return fmt.Errorf("%w: decay %v outside (0,1)", ErrInvalidMotion, m.Decay)
		}
		if m.FrameRef <= 0 {
			return fmt.Errorf("%w: frame ref %v must be positive", ErrInvalidMotion, m.FrameRef)
		}
		if m.StopThreshold <= 0 {
			return fmt.Errorf("%w: stop threshold %v must be positive", ErrInvalidMotion, m.StopThreshold)
		}
	case ModelEased:
		if m.MinRotation < 0 {
			return fmt.Errorf("%w: min rotation %v is negative", ErrInvalidMotion, m.MinRotation)
		}
		if m.MaxRotation < m.MinRotation {
			return fmt.Errorf("%w: max rotation %v below min %v", ErrInvalidMotion, m.MaxRotation, m.MinRotation)
		}
		if m.MinDuration <= 0 {
			return fmt.Errorf("%w: min duration %v must be positive", ErrInvalidMotion, m.MinDuration)
		}
		if m.MaxDuration < m.MinDuration {
			return fmt.Errorf("%w: max duration %v below min %v", ErrInvalidMotion, m.MaxDuration, m.MinDuration)
		}
		if _, err := EasingByName(m.Easing); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown model %q", ErrInvalidMotion, m.Model)
	}
	return nil
}

// ParseModel accepts the config spelling of a model
func ParseModel(s string) (Model, error) {
	switch Model(s) {
	case ModelVelocity, ModelEased:
		return Model(s), nil
	default:
		return "", fmt.Errorf("%w: unknown model %q", ErrInvalidMotion, s)
	}
}
