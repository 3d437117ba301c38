// Package terminal implements the render contracts in a text terminal with
// tcell. Each character cell shows two vertically stacked pixels using the
// upper half block glyph, so a W x H terminal is a W x 2H surface.
package terminal

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/render"
)

// upperHalf paints the top pixel as foreground and the bottom as background.
const upperHalf = '▀'

type glyph struct {
	r  rune
	fg colorful.Color
}

// Canvas is an in-memory pixel buffer plus a text overlay. It implements
// render.Surface; Present copies it to a tcell screen.
type Canvas struct {
	width, height int
	pixels        []colorful.Color
	text          map[int]glyph // keyed by cell index col + row*width
}

// NewCanvas creates a canvas of width x height pixels.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Resize changes the pixel dimensions and clears the canvas.
func (c *Canvas) Resize(width, height int) {
	c.width, c.height = max(width, 0), max(height, 0)
	c.pixels = make([]colorful.Color, c.width*c.height)
	c.text = make(map[int]glyph)
}

// Size returns the pixel dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Pixel returns the colour at (x, y), or black outside the canvas.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return colorful.Color{}
	}
	return c.pixels[x+y*c.width]
}

// Glyph returns the overlay rune at terminal cell (col, row), if any.
func (c *Canvas) Glyph(col, row int) (rune, bool) {
	g, ok := c.text[col+row*c.width]
	return g.r, ok
}

func toColorful(col render.Color) colorful.Color {
	r, g, b := col.RGB255()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func (c *Canvas) blend(idx int, src colorful.Color, alpha float64) {
	if alpha >= 1 {
		c.pixels[idx] = src
		return
	}
	c.pixels[idx] = c.pixels[idx].BlendRgb(src, alpha).Clamped()
}

// Clear fills every pixel and drops the text overlay.
func (c *Canvas) Clear(col render.Color) {
	fill := toColorful(col)
	for i := range c.pixels {
		c.pixels[i] = fill
	}
	clear(c.text)
}

// span returns the pixel indices whose centres fall in [from, from+size),
// clipped to [0, limit).
func span(from, size float64, limit int) (lo, hi int) {
	lo = int(math.Ceil(from - 0.5))
	hi = int(math.Ceil(from + size - 0.5))
	return max(lo, 0), min(hi, limit)
}

// DrawRect fills the pixels whose centres lie inside the rectangle.
func (c *Canvas) DrawRect(x, y, w, h float64, col render.Color) {
	if w <= 0 || h <= 0 || col.A <= 0 {
		return
	}
	fill := toColorful(col)
	x0, x1 := span(x, w, c.width)
	y0, y1 := span(y, h, c.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.blend(px+py*c.width, fill, col.A)
		}
	}
}

// DrawCircle fills the pixels whose centres lie within radius of (x, y).
func (c *Canvas) DrawCircle(x, y, radius float64, col render.Color) {
	c.fillDisc(x, y, radius, col, func(float64, float64) bool { return true })
}

// DrawPie fills the part of the disc between startAngle and endAngle.
func (c *Canvas) DrawPie(x, y, radius, startAngle, endAngle float64, col render.Color) {
	c.fillDisc(x, y, radius, col, func(dx, dy float64) bool {
		return geom.AngleWithin(math.Atan2(dy, dx), startAngle, endAngle)
	})
}

func (c *Canvas) fillDisc(x, y, radius float64, col render.Color, keep func(dx, dy float64) bool) {
	if radius <= 0 || col.A <= 0 {
		return
	}
	fill := toColorful(col)
	x0, x1 := span(x-radius, 2*radius, c.width)
	y0, y1 := span(y-radius, 2*radius, c.height)
	r2 := radius * radius
	for py := y0; py < y1; py++ {
		dy := float64(py) + 0.5 - y
		for px := x0; px < x1; px++ {
			dx := float64(px) + 0.5 - x
			if dx*dx+dy*dy > r2 || !keep(dx, dy) {
				continue
			}
			c.blend(px+py*c.width, fill, col.A)
		}
	}
}

// DrawText places runes on the terminal cell grid starting at the cell
// containing (x, y). Terminals have one font, so font and size are ignored.
func (c *Canvas) DrawText(text string, x, y float64, col render.Color, _ render.Font, _ float64) {
	row := int(y) / 2
	if row < 0 || row >= (c.height+1)/2 {
		return
	}
	fg := toColorful(col)
	cx := int(x)
	for _, r := range text {
		if cx >= c.width {
			break
		}
		if cx >= 0 {
			c.text[cx+row*c.width] = glyph{r: r, fg: fg}
		}
		cx++
	}
}

func tcellColor(col colorful.Color) tcell.Color {
	r, g, b := col.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Present writes the canvas to the screen. Text glyphs keep the colour of
// the lower pixel behind them as background.
func (c *Canvas) Present(screen tcell.Screen) {
	rows := (c.height + 1) / 2
	for row := 0; row < rows; row++ {
		for col := 0; col < c.width; col++ {
			top := c.Pixel(col, row*2)
			bottom := c.Pixel(col, row*2+1)

			if g, ok := c.text[col+row*c.width]; ok {
				style := tcell.StyleDefault.Foreground(tcellColor(g.fg)).Background(tcellColor(bottom))
				screen.SetContent(col, row, g.r, nil, style)
				continue
			}

			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
}
