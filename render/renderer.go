package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/prize-wheel/asset"
	"github.com/lixenwraith/prize-wheel/constants"
	"github.com/lixenwraith/prize-wheel/effect"
	"github.com/lixenwraith/prize-wheel/wheel"
)

// View is everything one frame shows
type View struct {
	Angle         float64 // Wheel rotation in degrees
	Wobble        float64 // Pointer jiggle in degrees
	ButtonEnabled bool
	Status        string
	Popup         *wheel.Result // Result shown in the popup, nil when closed
	Confetti      []effect.Piece
}

// Renderer draws the wheel scene onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	prizes []wheel.Prize
	colors []colorful.Color
	icons  *asset.Set

	layout Layout
	popup  Rect // Last drawn popup, zero when closed
}

// NewRenderer creates a renderer sized to the current screen
func NewRenderer(screen tcell.Screen, prizes []wheel.Prize, icons *asset.Set) *Renderer {
	r := &Renderer{
		screen: screen,
		prizes: append([]wheel.Prize(nil), prizes...),
		colors: SegmentColors(prizes),
		icons:  icons,
	}
	r.Resize(screen.Size())
	return r
}

// Resize recomputes the layout after a terminal resize
func (r *Renderer) Resize(width, height int) {
	r.layout = NewLayout(width, height)
}

// Layout returns the current layout
func (r *Renderer) Layout() Layout { return r.layout }

// Colors returns the resolved segment colors
func (r *Renderer) Colors() []colorful.Color { return r.colors }

// Draw renders a full frame and shows it
func (r *Renderer) Draw(v View) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	if r.layout.TooSmall {
		r.drawText(0, 0, constants.SmallScreenText, defaultStyle.Foreground(RgbStatusText))
		r.popup = Rect{}
		r.screen.Show()
		return
	}

	r.drawWheel(v.Angle)
	r.drawIcons(v.Angle)
	r.drawPointer(v.Wobble, defaultStyle)
	r.drawButton(v.ButtonEnabled)
	r.drawStatus(v.Status, defaultStyle)
	r.drawConfetti(v.Confetti)
	r.drawPopup(v.Popup)

	r.screen.Show()
}

// polar converts a cell to wheel polar coordinates: distance in rows and screen angle in degrees
func (r *Renderer) polar(x, y int) (float64, float64) {
	dx := (float64(x) - r.layout.CX) / constants.CellAspect
	dy := float64(y) - r.layout.CY
	dist := math.Hypot(dx, dy)
	angle := wheel.NormalizeDegrees(math.Atan2(dy, dx) * 180 / math.Pi)
	return dist, angle
}

// SegmentAtCell returns the segment drawn at cell x,y for a rotation, ok is false off the wheel or on the hub
func (r *Renderer) SegmentAtCell(x, y int, rotation float64) (int, bool) {
	if r.layout.TooSmall || len(r.prizes) == 0 {
		return 0, false
	}
	dist, angle := r.polar(x, y)
	if dist > r.layout.Radius+0.5 || dist <= constants.HubRadius*r.layout.Radius {
		return 0, false
	}
	return wheel.SegmentAt(angle, rotation, len(r.prizes)), true
}

func (r *Renderer) drawWheel(rotation float64) {
	l := r.layout
	n := len(r.prizes)
	width := wheel.SegmentWidth(n)
	hub := constants.HubRadius * l.Radius
	hubInner := constants.HubInnerRadius * l.Radius

	x0 := int(l.CX - (l.Radius+1)*constants.CellAspect)
	x1 := int(l.CX + (l.Radius+1)*constants.CellAspect)
	y0 := int(l.CY - l.Radius - 1)
	y1 := int(l.CY + l.Radius + 1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dist, angle := r.polar(x, y)
			if dist > l.Radius+0.5 {
				continue
			}

			if dist <= hubInner {
				r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(RgbHubInner))
				continue
			}
			if dist <= hub {
				r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(RgbHubOuter))
				continue
			}

			seg := wheel.SegmentAt(angle, rotation, n)
			c := segmentShade(r.colors[seg], dist/l.Radius)

			// Borders are measured as arc length so they stay one cell wide at every radius
			if n > 1 {
				local := math.Mod(wheel.NormalizeDegrees(angle-rotation), width)
				edge := math.Min(local, width-local) * math.Pi / 180 * dist
				if edge < 0.5 {
					c = c.BlendRgb(white, constants.BorderBlend)
				}
			}
			if dist > l.Radius-0.5 {
				c = c.BlendRgb(black, constants.RimShade)
			}

			r.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(toTCell(c)))
		}
	}
}

// drawIcons places each prize icon along its segment's mid-angle
func (r *Renderer) drawIcons(rotation float64) {
	if r.icons.Len() == 0 {
		return
	}
	l := r.layout
	width := wheel.SegmentWidth(len(r.prizes))

	for i := range r.prizes {
		art := r.icons.Get(i)
		if art == nil || art.Width == 0 {
			continue
		}
		// Icons need room between hub and rim
		if float64(art.Height) > l.Radius*(1-constants.HubRadius) {
			continue
		}

		mid := (rotation + (float64(i)+0.5)*width) * math.Pi / 180
		cx := l.CX + math.Cos(mid)*constants.IconRadius*l.Radius*constants.CellAspect
		cy := l.CY + math.Sin(mid)*constants.IconRadius*l.Radius
		left := int(math.Round(cx)) - art.Width/2
		top := int(math.Round(cy)) - art.Height/2

		for ay := 0; ay < art.Height; ay++ {
			for ax := 0; ax < art.Width; ax++ {
				cell, _ := art.At(ax, ay)
				if cell.Clear || cell.Rune == 0 {
					continue
				}
				x, y := left+ax, top+ay
				if dist, _ := r.polar(x, y); dist > l.Radius-0.5 {
					continue
				}

				style := tcell.StyleDefault.Foreground(cell.Fg).Bold(cell.Bold)
				if cell.ClearBg {
					_, _, under, _ := r.screen.GetContent(x, y)
					_, bg, _ := under.Decompose()
					style = style.Background(bg)
				} else {
					style = style.Background(cell.Bg)
				}
				r.screen.SetContent(x, y, cell.Rune, nil, style)
			}
		}
	}
}

func (r *Renderer) drawPointer(wobble float64, defaultStyle tcell.Style) {
	l := r.layout
	offset := int(math.Round(wobble * constants.PointerWobbleScale))
	x := int(l.CX) + offset
	r.screen.SetContent(x, l.PointerY, constants.PointerRune, nil, defaultStyle.Foreground(RgbPointer).Bold(true))
}

// ButtonContains reports whether cell x,y is on the SPIN button
func (r *Renderer) ButtonContains(x, y int) bool {
	return !r.layout.TooSmall && r.layout.Button.Contains(x, y)
}

func (r *Renderer) drawButton(enabled bool) {
	b := r.layout.Button
	bg := RgbButton
	if !enabled {
		bg = RgbButtonDisabled
	}
	r.drawText(b.X, b.Y, constants.ButtonLabel, tcell.StyleDefault.Foreground(RgbButtonText).Background(bg).Bold(true))
}

func (r *Renderer) drawStatus(status string, defaultStyle tcell.Style) {
	l := r.layout
	style := defaultStyle.Foreground(RgbStatusText)
	r.drawText(0, l.StatusY, constants.HelpText, style)
	if status != "" {
		x := l.Width - runewidth.StringWidth(status)
		if x < runewidth.StringWidth(constants.HelpText)+1 {
			return
		}
		r.drawText(x, l.StatusY, status, style)
	}
}

func (r *Renderer) drawConfetti(pieces []effect.Piece) {
	l := r.layout
	for _, p := range pieces {
		x := int(p.X * float64(l.Width))
		y := int(p.Y * float64(l.Height))
		if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
			continue
		}
		_, _, under, _ := r.screen.GetContent(x, y)
		_, bg, _ := under.Decompose()
		r.screen.SetContent(x, y, p.Glyph, nil, tcell.StyleDefault.Foreground(toTCell(p.Color)).Background(bg))
	}
}

// PopupContains reports whether cell x,y is inside the result popup
func (r *Renderer) PopupContains(x, y int) bool {
	return r.popup.Contains(x, y)
}

// drawPopup shows the won prize with its icon inside a bordered box
func (r *Renderer) drawPopup(res *wheel.Result) {
	if res == nil {
		r.popup = Rect{}
		return
	}
	l := r.layout

	title := fmt.Sprintf(constants.PopupTitleFmt, res.Prize.Name)
	art := r.icons.Get(res.Index)

	inner := runewidth.StringWidth(title)
	if w := runewidth.StringWidth(constants.PopupHint); w > inner {
		inner = w
	}
	artRows := 0
	if art != nil && art.Width > 0 {
		if art.Width > inner {
			inner = art.Width
		}
		artRows = art.Height + 1
	}

	w := inner + 2*constants.PopupPadding + 2
	h := 5 + artRows
	if w > l.Width {
		w = l.Width
	}
	if h > l.Height {
		h = l.Height
	}
	rect := Rect{X: (l.Width - w) / 2, Y: (l.Height - h) / 2, W: w, H: h}
	r.popup = rect

	border := tcell.StyleDefault.Foreground(RgbPopupBorder).Background(RgbPopupBg)
	fill := tcell.StyleDefault.Foreground(RgbPopupText).Background(RgbPopupBg)

	for y := rect.Y; y < rect.Y+rect.H; y++ {
		for x := rect.X; x < rect.X+rect.W; x++ {
			ch := ' '
			style := fill
			top, bottom := y == rect.Y, y == rect.Y+rect.H-1
			left, right := x == rect.X, x == rect.X+rect.W-1
			switch {
			case top && left:
				ch = '╭'
			case top && right:
				ch = '╮'
			case bottom && left:
				ch = '╰'
			case bottom && right:
				ch = '╯'
			case top || bottom:
				ch = '─'
			case left || right:
				ch = '│'
			}
			if ch != ' ' {
				style = border
			}
			r.screen.SetContent(x, y, ch, nil, style)
		}
	}

	r.drawCentered(rect.Y+2, rect, title, fill.Bold(true))

	if artRows > 0 {
		left := rect.X + (rect.W-art.Width)/2
		top := rect.Y + 3
		for ay := 0; ay < art.Height; ay++ {
			for ax := 0; ax < art.Width; ax++ {
				cell, _ := art.At(ax, ay)
				if cell.Clear || cell.Rune == 0 {
					continue
				}
				bg := cell.Bg
				if cell.ClearBg {
					bg = RgbPopupBg
				}
				r.screen.SetContent(left+ax, top+ay, cell.Rune, nil, tcell.StyleDefault.Foreground(cell.Fg).Background(bg).Bold(cell.Bold))
			}
		}
	}

	r.drawCentered(rect.Y+rect.H-2, rect, constants.PopupHint, fill.Foreground(RgbStatusText))
}

func (r *Renderer) drawCentered(y int, rect Rect, text string, style tcell.Style) {
	x := rect.X + (rect.W-runewidth.StringWidth(text))/2
	r.drawText(x, y, text, style)
}

// drawText writes a string left to right, wide runes advance by their display width
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		r.screen.SetContent(x, y, ch, nil, style)
		x += runewidth.RuneWidth(ch)
	}
}
