package constants

import "time"

// Velocity Model Defaults
const (
	// DefaultMinVelocity and DefaultMaxVelocity bound the initial spin speed in degrees per nominal frame
	DefaultMinVelocity = 30.0
	DefaultMaxVelocity = 50.0

	// DefaultDecay is the velocity multiplier per DefaultFrameRef of elapsed time
	DefaultDecay = 0.99

	// DefaultFrameRef is the nominal frame the decay is scaled against
	DefaultFrameRef = 16 * time.Millisecond

	// DefaultStopThreshold ends the spin once velocity drops below it
	DefaultStopThreshold = 0.1
)

// Eased Model Defaults
const (
	DefaultMinRotation = 1800.0 // 5 turns
	DefaultMaxRotation = 3240.0 // 9 turns
	DefaultMinDuration = 4 * time.Second
	DefaultMaxDuration = 6 * time.Second
)

// Wobble
const (
	// WobbleVelocity is the speed below which the pointer starts to jiggle
	WobbleVelocity = 5.0

	// WobbleProgress is the eased progress past which the pointer starts to jiggle
	WobbleProgress = 0.85
)
