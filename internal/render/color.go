package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a numeric HSL colour with alpha. H is in degrees [0, 360),
// S, L and A are in [0, 1]. It satisfies color.Color so backends can hand
// it straight to their drawing calls.
type Color struct {
	H, S, L float64
	A       float64
}

// HSL returns an opaque colour.
func HSL(h, s, l float64) Color {
	return Color{H: h, S: s, L: l, A: 1}
}

// Gray returns an opaque achromatic colour of the given lightness.
func Gray(l float64) Color {
	return Color{L: l, A: 1}
}

// Common colours
var (
	Black = Gray(0)
	White = Gray(1)
)

// WithLightness returns a copy with L replaced (clamped to [0, 1]).
func (c Color) WithLightness(l float64) Color {
	c.L = clamp01(l)
	return c
}

// WithAlpha returns a copy with A replaced (clamped to [0, 1]).
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// RGB255 converts to 8-bit sRGB components, ignoring alpha.
func (c Color) RGB255() (r, g, b uint8) {
	return colorful.Hsl(c.H, clamp01(c.S), clamp01(c.L)).Clamped().RGB255()
}

// RGBA implements color.Color (alpha-premultiplied, 16-bit).
func (c Color) RGBA() (r, g, b, a uint32) {
	cr, cg, cb := c.RGB255()
	return color.NRGBA{R: cr, G: cg, B: cb, A: uint8(clamp01(c.A)*255 + 0.5)}.RGBA()
}

// Hex formats the colour as #rrggbb.
func (c Color) Hex() string {
	return colorful.Hsl(c.H, clamp01(c.S), clamp01(c.L)).Clamped().Hex()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
