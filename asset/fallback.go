package asset

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Fallback builds a solid tile in the segment color with the prize name centered in bold white
func Fallback(name string, bg colorful.Color, width int) *Art {
	if width <= 0 {
		return &Art{Fallback: true}
	}
	height := width / 2
	if height < 1 {
		height = 1
	}

	r, g, b := bg.RGB255()
	bgColor := tcell.NewRGBColor(int32(r), int32(g), int32(b))

	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Cell{Rune: ' ', Fg: tcell.ColorWhite, Bg: bgColor}
	}

	label := runewidth.Truncate(name, width, "")
	x := (width - runewidth.StringWidth(label)) / 2
	y := height / 2
	for _, ch := range label {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		cells[y*width+x].Rune = ch
		cells[y*width+x].Bold = true
		// Wide runes occupy the following cell as well
		for k := 1; k < w && x+k < width; k++ {
			cells[y*width+x+k].Rune = 0
		}
		x += w
	}

	return &Art{Cells: cells, Width: width, Height: height, Fallback: true}
}
