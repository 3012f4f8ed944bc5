package effect

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/prize-wheel/constants"
)

// Random supplies uniform values in [0,1)
type Random interface {
	Float64() float64
}

// Confetti glyphs by shape and size
const (
	GlyphRoundLarge  = '●'
	GlyphRoundSmall  = '•'
	GlyphSquareLarge = '■'
	GlyphSquareSmall = '▪'
)

// Particle is one piece of a burst, positions are fractions of the screen
type Particle struct {
	X        float64 // Start column in [0,1)
	Drift    float64 // Sideways travel over the fall
	Size     float64
	Round    bool
	Color    colorful.Color
	Delay    time.Duration
	Duration time.Duration
}

// Glyph picks the rune for the particle's shape and size
func (p Particle) Glyph() rune {
	large := p.Size >= constants.ConfettiLargeSize
	switch {
	case p.Round && large:
		return GlyphRoundLarge
	case p.Round:
		return GlyphRoundSmall
	case large:
		return GlyphSquareLarge
	default:
		return GlyphSquareSmall
	}
}

// Piece is a particle placed at a moment of its fall
type Piece struct {
	X, Y  float64 // Fractions of the screen, Y runs from above the top edge to below the bottom
	Glyph rune
	Color colorful.Color
}

// Confetti is the celebration burst shown with a result
type Confetti struct {
	rng       Random
	count     int
	particles []Particle
	start     time.Time
	active    bool
}

// NewConfetti creates an idle burst of count particles
func NewConfetti(rng Random, count int) *Confetti {
	return &Confetti{rng: rng, count: count}
}

// Burst randomizes every particle and starts the fall at now
// Colors are drawn from the segment palette
func (c *Confetti) Burst(now time.Time, colors []colorful.Color) {
	if c.count <= 0 {
		return
	}
	if len(colors) == 0 {
		colors = []colorful.Color{{R: 1, G: 1, B: 1}}
	}

	c.particles = c.particles[:0]
	for i := 0; i < c.count; i++ {
		c.particles = append(c.particles, Particle{
			X:        c.rng.Float64(),
			Drift:    (c.rng.Float64()*2 - 1) * constants.ConfettiMaxDrift,
			Size:     constants.ConfettiMinSize + c.rng.Float64()*(constants.ConfettiMaxSize-constants.ConfettiMinSize),
			Round:    c.rng.Float64() > 0.5,
			Color:    colors[int(c.rng.Float64()*float64(len(colors)))%len(colors)],
			Delay:    time.Duration(c.rng.Float64() * float64(constants.ConfettiMaxDelay)),
			Duration: constants.ConfettiMinDuration + time.Duration(c.rng.Float64()*float64(constants.ConfettiMaxDuration-constants.ConfettiMinDuration)),
		})
	}
	c.start = now
	c.active = true
}

// Update clears the burst once the reset window has passed
// Returns whether the burst is still active
func (c *Confetti) Update(now time.Time) bool {
	if c.active && now.Sub(c.start) >= constants.ConfettiResetAfter {
		c.Reset()
	}
	return c.active
}

// Reset hides the burst immediately
func (c *Confetti) Reset() {
	c.active = false
	c.particles = c.particles[:0]
}

// Active reports whether a burst is showing
func (c *Confetti) Active() bool { return c.active }

// Particles returns the current burst
func (c *Confetti) Particles() []Particle { return c.particles }

// Pieces places every falling particle at now
// Particles still in their delay or already landed are omitted
func (c *Confetti) Pieces(now time.Time) []Piece {
	if !c.active {
		return nil
	}
	elapsed := now.Sub(c.start)

	pieces := make([]Piece, 0, len(c.particles))
	for _, p := range c.particles {
		t := float64(elapsed-p.Delay) / float64(p.Duration)
		if t < 0 || t >= 1 {
			continue
		}
		// Ease-in: slow release, accelerating fall
		fall := t * t
		pieces = append(pieces, Piece{
			X:     p.X + p.Drift*t,
			Y:     -0.1 + 1.2*fall,
			Glyph: p.Glyph(),
			Color: p.Color,
		})
	}
	return pieces
}
