package raycast

import (
	"math"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/render"
)

// Stats summarises one rendered view.
type Stats struct {
	Columns int
	Hits    int     // Columns whose ray struck a wall (including the map edge)
	Nearest float64 // Shortest ray distance this frame
}

// Draw renders the view for pose into target, upscaling each logical cell
// to a ceil(W/ResX) x ceil(H/ResY) block. Consecutive wall rows of a
// column share a colour and are drawn as one rectangle.
func (r *Raycaster) Draw(s render.Surface, target render.Rect, pose geom.Pose) Stats {
	cols := r.Columns(pose)
	resY := r.cfg.ResY

	cellW := math.Ceil(target.W / float64(r.cfg.ResX))
	cellH := math.Ceil(target.H / float64(resY))

	stats := Stats{Columns: len(cols), Nearest: r.depth}
	for x, col := range cols {
		if col.Hit {
			stats.Hits++
		}
		stats.Nearest = math.Min(stats.Nearest, col.Distance)

		px := target.X + float64(x)*cellW
		wallStart := -1
		for y := 0; y < resY; y++ {
			fy := float64(y)
			py := target.Y + fy*cellH

			switch {
			case fy <= col.Ceiling:
				s.DrawRect(px, py, cellW, cellH, r.palette.CeilingShade(y, resY))
			case fy <= col.Floor:
				if wallStart < 0 {
					wallStart = y
				}
				continue
			default:
				if wallStart >= 0 {
					r.drawWall(s, target, px, cellW, cellH, wallStart, y, col.Wall)
					wallStart = -1
				}
				s.DrawRect(px, py, cellW, cellH, r.palette.FloorShade(y, resY))
			}
		}
		if wallStart >= 0 {
			r.drawWall(s, target, px, cellW, cellH, wallStart, resY, col.Wall)
		}
	}

	return stats
}

// drawWall fills logical rows [from, to) of one column.
func (r *Raycaster) drawWall(s render.Surface, target render.Rect, px, cellW, cellH float64, from, to int, c render.Color) {
	py := target.Y + float64(from)*cellH
	s.DrawRect(px, py, cellW, float64(to-from)*cellH, c)
}
