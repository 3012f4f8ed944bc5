package render

import (
	"github.com/lixenwraith/prize-wheel/constants"
)

// Rect is a screen rectangle in cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell x,y lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout places the wheel and its controls for a screen size
// Wheel geometry is measured in rows; one row spans CellAspect columns
type Layout struct {
	Width, Height int

	CX, CY float64 // Wheel center in cell coordinates
	Radius float64 // Rows

	PointerY int
	Button   Rect
	StatusY  int

	TooSmall bool
}

// NewLayout computes the layout for a width x height screen
func NewLayout(width, height int) Layout {
	l := Layout{Width: width, Height: height}

	avail := height - constants.WheelTopMargin - constants.WheelBottomMargin
	radius := (avail - 1) / 2
	if byWidth := int(float64(width-2) / (2 * constants.CellAspect)); byWidth < radius {
		radius = byWidth
	}
	if radius < constants.MinWheelRadius {
		l.TooSmall = true
		return l
	}

	l.Radius = float64(radius)
	l.CX = float64(width / 2)
	l.CY = float64(constants.WheelTopMargin + radius)
	l.PointerY = constants.WheelTopMargin - 1

	labelW := len(constants.ButtonLabel)
	l.Button = Rect{
		X: width/2 - labelW/2,
		Y: constants.WheelTopMargin + 2*radius + 2,
		W: labelW,
		H: 1,
	}
	l.StatusY = height - 1
	return l
}
