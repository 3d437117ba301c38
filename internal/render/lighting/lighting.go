// Package lighting provides the linear light falloff ramps used to shade
// the ceiling, the walls and the floor of the raycast view.
package lighting

import "chosenoffset.com/raycaster/internal/render"

// Ramp is a linear lightness ramp: From at t=0, To at t=1.
type Ramp struct {
	From float64
	To   float64
}

// At returns the lightness at t, with t clamped to [0, 1].
func (r Ramp) At(t float64) float64 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return r.From + (r.To-r.From)*t
}

// Palette holds the base colours and the three independent ramps.
type Palette struct {
	Wall    render.Color // Hue and saturation used for walls
	Ceiling render.Color
	Floor   render.Color

	WallRamp    Ramp // keyed to distance / depth
	CeilingRamp Ramp // keyed to row / horizon
	FloorRamp   Ramp // keyed to (row - horizon) / horizon
}

// DefaultPalette returns the stock blue-grey walls, dusk sky and earth floor.
func DefaultPalette() Palette {
	return Palette{
		Wall:        render.HSL(220, 0.2, 0),
		Ceiling:     render.HSL(210, 0.5, 0),
		Floor:       render.HSL(30, 0.25, 0),
		WallRamp:    Ramp{From: 0.6, To: 0},
		CeilingRamp: Ramp{From: 0.35, To: 0},
		FloorRamp:   Ramp{From: 0, To: 0.35},
	}
}

// WallShade darkens walls linearly with distance: 1 - distance/depth.
func (p Palette) WallShade(distance, depth float64) render.Color {
	if depth <= 0 {
		return p.Wall.WithLightness(p.WallRamp.From)
	}
	return p.Wall.WithLightness(p.WallRamp.At(distance / depth))
}

// CeilingShade shades a ceiling row; row 0 is the top of the view.
func (p Palette) CeilingShade(row, resY int) render.Color {
	horizon := float64(resY) / 2
	if horizon <= 0 {
		return p.Ceiling.WithLightness(p.CeilingRamp.From)
	}
	return p.Ceiling.WithLightness(p.CeilingRamp.At(float64(row) / horizon))
}

// FloorShade shades a floor row, mirroring the ceiling about the horizon.
func (p Palette) FloorShade(row, resY int) render.Color {
	horizon := float64(resY) / 2
	if horizon <= 0 {
		return p.Floor.WithLightness(p.FloorRamp.To)
	}
	return p.Floor.WithLightness(p.FloorRamp.At((float64(row) - horizon) / horizon))
}
