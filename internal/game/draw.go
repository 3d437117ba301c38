package game

import (
	"chosenoffset.com/raycaster/internal/render"
)

// Draw renders the game to the surface: the first-person view fills it,
// the minimap overlays the top-left corner, and messages sit bottom-left.
func (g *Game) Draw(s render.Surface) {
	w, h := s.Size()
	s.Clear(render.Black)

	pose := g.Player.Pose()
	view := g.Raycaster.Draw(s, render.Rect{W: float64(w), H: float64(h)}, pose)
	mm := g.Minimap.Draw(s, pose)

	g.drawUI(s, h)
	g.recordFrame(FrameStats{View: view, Walls: mm.Walls})
}

func (g *Game) drawUI(s render.Surface, h int) {
	const lineHeight = 20.0

	// Newest message at the bottom
	y := float64(h) - lineHeight*float64(len(g.Messages)) - 10
	for _, msg := range g.Messages {
		alpha := msg.TimeLeft / msg.MaxTime
		s.DrawText(msg.Text, 20, y, render.White.WithAlpha(alpha), render.FontBold, 16)
		y += lineHeight
	}
}
