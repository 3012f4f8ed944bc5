package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/prize-wheel/constants"
	"github.com/lixenwraith/prize-wheel/wheel"
)

// Fixed UI colors
var (
	RgbBackground  = toTCell(hexColor(constants.BackgroundHex))
	RgbHubInner    = toTCell(hexColor(constants.HubInnerColor))
	RgbHubOuter    = toTCell(hexColor(constants.HubOuterColor))
	RgbPointer     = toTCell(hexColor(constants.PointerColor))
	RgbButton      = toTCell(hexColor(constants.ButtonColor))
	RgbPopupBorder = toTCell(hexColor(constants.PopupBorderHex))

	RgbButtonDisabled = tcell.NewRGBColor(90, 90, 90)    // Gray while spinning or cooling down
	RgbButtonText     = tcell.NewRGBColor(0, 0, 0)       // Dark text on the button
	RgbStatusText     = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbPopupBg        = tcell.NewRGBColor(40, 42, 58)    // Slightly lifted from the background
	RgbPopupText      = tcell.NewRGBColor(255, 255, 255) // White

	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// hexColor parses a compile-time constant, the palette is covered by tests
func hexColor(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return black
	}
	return c
}

// toTCell converts to a truecolor terminal color, tcell downsamples on 256-color terminals
func toTCell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// SegmentColors resolves one color per prize
// Prizes without a valid color cycle through the default palette
func SegmentColors(prizes []wheel.Prize) []colorful.Color {
	colors := make([]colorful.Color, len(prizes))
	for i, p := range prizes {
		if p.Color != "" {
			if c, err := colorful.Hex(p.Color); err == nil {
				colors[i] = c
				continue
			}
		}
		colors[i] = hexColor(constants.DefaultPalette[i%len(constants.DefaultPalette)])
	}
	return colors
}

// segmentShade applies the radial gradient: lighter toward the hub, full color toward the rim
func segmentShade(base colorful.Color, frac float64) colorful.Color {
	light := base.BlendRgb(white, constants.SegmentLighten)
	t := (frac - constants.GradientInner) / (constants.GradientOuter - constants.GradientInner)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return light.BlendRgb(base, t)
}
