package constants

import "time"

// Frame Timing
const (
	// DefaultFPS is the frame loop rate
	DefaultFPS = 60

	// MaxFPS caps the configurable frame rate
	MaxFPS = 240

	// DefaultSpinCooldown keeps the SPIN button disabled after a result
	DefaultSpinCooldown = 1 * time.Second

	// EventQueueSize buffers terminal events between the reader and the game loop
	EventQueueSize = 100
)

// Wheel Layout
const (
	// WheelTopMargin leaves room for the pointer above the wheel
	WheelTopMargin = 2

	// WheelBottomMargin leaves room for the button and status line
	WheelBottomMargin = 4

	// CellAspect is the height:width ratio of a terminal cell
	CellAspect = 2.0

	// IconRadius places prize icons along each segment's mid-angle, as a fraction of the radius
	IconRadius = 0.6

	// HubRadius is the center hub size as a fraction of the radius
	HubRadius = 0.18

	// HubInnerRadius is the lighter inner disc of the hub
	HubInnerRadius = 0.07

	// GradientInner and GradientOuter bound the segment radial gradient
	GradientInner = 0.3
	GradientOuter = 0.9

	// SegmentLighten is how far the gradient lightens toward the hub
	SegmentLighten = 0.2

	// BorderBlend is the white mix on segment borders
	BorderBlend = 0.4

	// RimShade is the dark mix on the outer rim ring
	RimShade = 0.1

	// MinWheelRadius is the smallest wheel radius in rows worth drawing
	MinWheelRadius = 3
)

// Prize Icons
const (
	// DefaultIconWidth is the prize icon width in columns
	DefaultIconWidth = 8

	// MaxIconWidth caps the configurable icon width
	MaxIconWidth = 32
)

// Text
const (
	ButtonLabel   = "  SPIN  "
	PopupTitleFmt = "You won %s!"
	PopupHint     = "[esc] close"
	HelpText      = "[space] spin  [c] cancel  [q] quit"
	PointerRune   = '▼'
)

// Confetti
const (
	// DefaultConfettiCount is the number of particles per burst
	DefaultConfettiCount = 60

	// ConfettiResetAfter clears the burst once every particle has landed
	ConfettiResetAfter = 5 * time.Second

	ConfettiMaxDelay    = 500 * time.Millisecond
	ConfettiMinDuration = 2 * time.Second
	ConfettiMaxDuration = 5 * time.Second
	ConfettiMinSize     = 6.0
	ConfettiMaxSize     = 18.0

	// ConfettiLargeSize splits particles into large and small glyphs
	ConfettiLargeSize = 12.0

	// ConfettiMaxDrift is the sideways travel as a fraction of the screen width
	ConfettiMaxDrift = 0.05
)

// DefaultPalette colors segments without an explicit color
var DefaultPalette = []string{
	"#2a75bb", "#ff5722", "#4caf50", "#9c27b0", "#ffeb3b",
}

// Hub and accent colors
const (
	HubInnerColor  = "#ffeb3b"
	HubOuterColor  = "#ff9800"
	PointerColor   = "#ffffff"
	ButtonColor    = "#ff9800"
	BackgroundHex  = "#1a1b26"
	PopupBorderHex = "#ffeb3b"
)

// Pointer and popup
const (
	// PointerWobbleScale converts pointer wobble degrees to a column offset
	PointerWobbleScale = 0.5

	// PopupPadding is the blank columns between the popup border and its text
	PopupPadding = 2

	// SmallScreenText replaces the wheel when the terminal cannot fit it
	SmallScreenText = "terminal too small"
)
