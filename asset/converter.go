package asset

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// QuadrantChars maps 4-bit patterns to Unicode quadrant characters
// Bit order: 0=UL, 1=UR, 2=LL, 3=LR (1 = foreground)
var QuadrantChars = [16]rune{
	' ', // 0000 - empty
	'▘', // 0001 - upper-left
	'▝', // 0010 - upper-right
	'▀', // 0011 - upper half
	'▖', // 0100 - lower-left
	'▌', // 0101 - left half
	'▞', // 0110 - anti-diagonal
	'▛', // 0111 - UL + UR + LL
	'▗', // 1000 - lower-right
	'▚', // 1001 - diagonal
	'▐', // 1010 - right half
	'▜', // 1011 - UL + UR + LR
	'▄', // 1100 - lower half
	'▙', // 1101 - UL + LL + LR
	'▟', // 1110 - UR + LL + LR
	'█', // 1111 - full block
}

// RenderMode determines the rendering approach
type RenderMode int

const (
	ModeBackgroundOnly RenderMode = iota
	ModeQuadrant
)

// Cell is one terminal cell of converted art
type Cell struct {
	Rune rune
	Fg   tcell.Color
	Bg   tcell.Color
	// Clear cells have no opaque pixels and leave the wheel underneath visible
	Clear bool
	// ClearBg cells draw Fg over whatever background the wheel has there
	ClearBg bool
	Bold    bool
}

// Art is a prize icon ready to blit onto the wheel
type Art struct {
	Cells    []Cell
	Width    int
	Height   int
	Fallback bool // Generated because the image could not be loaded
}

// At returns the cell at x,y, ok is false outside the art
func (a *Art) At(x, y int) (Cell, bool) {
	if a == nil || x < 0 || y < 0 || x >= a.Width || y >= a.Height {
		return Cell{}, false
	}
	return a.Cells[y*a.Width+x], true
}

// pixel is one sampled source pixel; colors are averaged in linear RGB
type pixel struct {
	c      colorful.Color
	opaque bool
}

func cellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ConvertImage converts an image to terminal cells
// targetWidth: desired output width in terminal columns
// mode: background-only or quadrant rendering
func ConvertImage(img image.Image, targetWidth int, mode RenderMode) *Art {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	if srcW == 0 || srcH == 0 || targetWidth <= 0 {
		return &Art{Width: 0, Height: 0}
	}

	// Terminal chars are roughly 2:1 (height:width), so halve the height
	aspectRatio := float64(srcH) / float64(srcW)
	charAspect := 0.5

	outW := targetWidth
	outH := int(float64(targetWidth) * aspectRatio * charAspect)
	if outH < 1 {
		outH = 1
	}

	cells := make([]Cell, outW*outH)

	switch mode {
	case ModeBackgroundOnly:
		convertBackground(img, cells, outW, outH)
	case ModeQuadrant:
		convertQuadrant(img, cells, outW, outH)
	}

	return &Art{
		Cells:  cells,
		Width:  outW,
		Height: outH,
	}
}

// sample maps a grid position to a source pixel, clamped to bounds
func sample(img image.Image, gx, gy, gridW, gridH int) pixel {
	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()

	sx := bounds.Min.X + (gx*srcW+srcW/2)/gridW
	sy := bounds.Min.Y + (gy*srcH+srcH/2)/gridH
	if sx >= bounds.Max.X {
		sx = bounds.Max.X - 1
	}
	if sy >= bounds.Max.Y {
		sy = bounds.Max.Y - 1
	}
	return colorToPixel(img.At(sx, sy))
}

// convertBackground renders using background colors only (1 cell = 1 sampled region)
func convertBackground(img image.Image, cells []Cell, outW, outH int) {
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			p := sample(img, x, y, outW, outH)
			idx := y*outW + x
			cells[idx].Rune = ' '
			if !p.opaque {
				cells[idx].Clear = true
				continue
			}
			cells[idx].Bg = cellColor(p.c)
		}
	}
}

// convertQuadrant renders using quadrant characters with fg/bg colors (2x effective resolution)
func convertQuadrant(img image.Image, cells []Cell, outW, outH int) {
	gridW := outW * 2
	gridH := outH * 2

	// Sample positions: [0]=UL, [1]=UR, [2]=LL, [3]=LR
	offsets := [4][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}

	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			var pixels [4]pixel
			for i, off := range offsets {
				pixels[i] = sample(img, x*2+off[0], y*2+off[1], gridW, gridH)
			}

			idx := y*outW + x
			cells[idx] = quadrantCell(pixels)
		}
	}
}

// quadrantCell picks the glyph for a 2x2 block
// Transparent pixels become holes: the opaque ones form the foreground over the wheel's own background
func quadrantCell(pixels [4]pixel) Cell {
	mask := 0
	for i, p := range pixels {
		if p.opaque {
			mask |= 1 << i
		}
	}

	switch mask {
	case 0:
		return Cell{Rune: ' ', Clear: true}
	case 0xF:
		pattern, fg, bg := bestSplit(pixels)
		return Cell{Rune: QuadrantChars[pattern], Fg: cellColor(fg), Bg: cellColor(bg)}
	default:
		fg, _, _ := splitColors(pixels, mask)
		return Cell{Rune: QuadrantChars[mask], Fg: cellColor(fg), ClearBg: true}
	}
}

// bestSplit tries all 16 fg/bg partitions of the block and keeps the one with the least error
func bestSplit(pixels [4]pixel) (int, colorful.Color, colorful.Color) {
	best := math.Inf(1)
	var pattern int
	var fg, bg colorful.Color

	for p := 0; p < 16; p++ {
		f, b, e := splitColors(pixels, p)
		if e < best {
			best, pattern, fg, bg = e, p, f, b
		}
	}
	return pattern, fg, bg
}

// splitColors averages each side of the partition and sums the squared distance of every pixel to its side's mean
func splitColors(pixels [4]pixel, pattern int) (fg, bg colorful.Color, sqErr float64) {
	var sum [2][3]float64
	var count [2]int

	for i, p := range pixels {
		side := 0
		if pattern&(1<<i) == 0 {
			side = 1
		}
		r, g, b := p.c.LinearRgb()
		sum[side][0] += r
		sum[side][1] += g
		sum[side][2] += b
		count[side]++
	}

	var mean [2]colorful.Color
	for side := range mean {
		if n := float64(count[side]); n > 0 {
			mean[side] = colorful.LinearRgb(sum[side][0]/n, sum[side][1]/n, sum[side][2]/n)
		}
	}

	for i, p := range pixels {
		target := mean[1]
		if pattern&(1<<i) != 0 {
			target = mean[0]
		}
		d := p.c.DistanceRgb(target)
		sqErr += d * d
	}
	return mean[0], mean[1], sqErr
}

// alphaCutoff is the 16-bit alpha below which a pixel counts as transparent
const alphaCutoff = 0x8000

// colorToPixel un-premultiplies a color and classifies its alpha
func colorToPixel(c color.Color) pixel {
	_, _, _, a := c.RGBA()
	if a == 0 {
		return pixel{}
	}
	// MakeColor rejects zero alpha only, handled above
	cc, _ := colorful.MakeColor(c)
	return pixel{c: cc, opaque: a >= alphaCutoff}
}
