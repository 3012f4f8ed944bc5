package wheel

import (
	"fmt"
	"math"
)

// Easing maps normalized progress [0,1] to eased progress [0,1]
type Easing func(t float64) float64

// Easing names accepted by EasingByName
const (
	EasingQuad  = "quad"
	EasingCubic = "cubic"
	EasingQuart = "quart"
	EasingExpo  = "expo"
)

func EaseOutQuad(t float64) float64 {
	t = clamp01(t)
	return 1 - (1-t)*(1-t)
}

func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

func EaseOutQuart(t float64) float64 {
	t = clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv*inv
}

// EaseOutExpo is rescaled so the curve reaches exactly 1 at t=1
func EaseOutExpo(t float64) float64 {
	t = clamp01(t)
	return (1 - math.Pow(2, -10*t)) / (1 - math.Pow(2, -10))
}

// EasingByName resolves a configured easing, empty selects cubic
func EasingByName(name string) (Easing, error) {
	switch name {
	case "", EasingCubic:
		return EaseOutCubic, nil
	case EasingQuad:
		return EaseOutQuad, nil
	case EasingQuart:
		return EaseOutQuart, nil
	case EasingExpo:
		return EaseOutExpo, nil
	default:
		return nil, fmt.Errorf("%w: unknown easing %q", ErrInvalidMotion, name)
	}
}

func clamp01(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
