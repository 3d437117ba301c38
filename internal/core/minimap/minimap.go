// Package minimap draws a top-down view of the tile map with the player's
// position and view cone in the top-left corner of the surface.
package minimap

import (
	"fmt"
	"math"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/tilemap"
)

// Fraction of the surface the minimap viewport occupies on each axis.
const Fraction = 0.25

// Style holds the minimap colours and sizes.
type Style struct {
	Wall       render.Color
	Player     render.Color
	Cone       render.Color
	Text       render.Color
	PointSize  float64 // Player point radius in pixels
	ConeLength float64 // View cone radius in tiles
	TextSize   float64
}

// DefaultStyle returns light walls, a red player point and a translucent
// yellow view cone.
func DefaultStyle() Style {
	return Style{
		Wall:       render.HSL(0, 0, 0.85),
		Player:     render.HSL(0, 0.9, 0.55),
		Cone:       render.HSL(55, 1, 0.6).WithAlpha(0.35),
		Text:       render.White,
		PointSize:  2,
		ConeLength: 3,
		TextSize:   12,
	}
}

// Layout is the minimap placement on a surface of a given size.
type Layout struct {
	Viewport render.Rect
	CellW    float64
	CellH    float64
}

// Stats reports what one Draw call produced.
type Stats struct {
	Walls int
}

// Minimap projects a TileMap into the corner of a surface.
type Minimap struct {
	tiles *tilemap.TileMap
	style Style
}

// New creates a minimap over tiles.
func New(tiles *tilemap.TileMap, style Style) *Minimap {
	return &Minimap{tiles: tiles, style: style}
}

// Layout computes the viewport and per-tile cell size. Cell sizes are
// floored, so maps that do not divide the viewport evenly leave a strip
// on the right and bottom edges.
func (m *Minimap) Layout(surfaceW, surfaceH int) Layout {
	vw := math.Floor(Fraction * float64(surfaceW))
	vh := math.Floor(Fraction * float64(surfaceH))
	return Layout{
		Viewport: render.Rect{X: 0, Y: 0, W: vw, H: vh},
		CellW:    math.Floor(vw / float64(m.tiles.Width())),
		CellH:    math.Floor(vh / float64(m.tiles.Height())),
	}
}

// Draw renders the wall cells, the player point, the view cone and the
// position readout.
func (m *Minimap) Draw(s render.Surface, pose geom.Pose) Stats {
	w, h := s.Size()
	l := m.Layout(w, h)

	var stats Stats
	rw := math.Max(l.CellW-2, 0)
	rh := math.Max(l.CellH-2, 0)
	for y := 0; y < m.tiles.Height(); y++ {
		for x := 0; x < m.tiles.Width(); x++ {
			if !m.tiles.CellAt(x, y) {
				continue
			}
			px := l.Viewport.X + float64(x)*l.CellW + 1
			py := l.Viewport.Y + float64(y)*l.CellH + 1
			s.DrawRect(px, py, rw, rh, m.style.Wall)
			stats.Walls++
		}
	}

	px, py := m.PlayerPoint(l, pose)
	radius := m.style.ConeLength * math.Min(l.CellW, l.CellH)
	s.DrawPie(px, py, radius, pose.Angle-pose.FOV/2, pose.Angle+pose.FOV/2, m.style.Cone)
	s.DrawCircle(px, py, m.style.PointSize, m.style.Player)

	s.DrawText(Readout(pose), l.Viewport.X+2, l.Viewport.Y+l.Viewport.H+2,
		m.style.Text, render.FontMono, m.style.TextSize)

	return stats
}

// PlayerPoint returns the player's pixel position inside the layout,
// truncated to whole pixels.
func (m *Minimap) PlayerPoint(l Layout, pose geom.Pose) (x, y float64) {
	x = l.Viewport.X + float64(int(pose.X*l.CellW))
	y = l.Viewport.Y + float64(int(pose.Y*l.CellH))
	return x, y
}

// Readout formats the position and the facing in degrees, both truncated.
func Readout(pose geom.Pose) string {
	return fmt.Sprintf("x:%d y:%d a:%d°", int(pose.X), int(pose.Y), int(geom.Degrees(pose.Angle)))
}
