package minimap

import (
	"math"
	"testing"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/tilemap"
)

type pie struct {
	x, y, r, start, end float64
}

type recordingSurface struct {
	w, h    int
	rects   []render.Rect
	circles int
	pies    []pie
	texts   []string
}

func (s *recordingSurface) Clear(render.Color) {}
func (s *recordingSurface) DrawRect(x, y, w, h float64, _ render.Color) {
	s.rects = append(s.rects, render.Rect{X: x, Y: y, W: w, H: h})
}
func (s *recordingSurface) DrawCircle(float64, float64, float64, render.Color) { s.circles++ }
func (s *recordingSurface) DrawPie(x, y, r, start, end float64, _ render.Color) {
	s.pies = append(s.pies, pie{x, y, r, start, end})
}
func (s *recordingSurface) DrawText(text string, _, _ float64, _ render.Color, _ render.Font, _ float64) {
	s.texts = append(s.texts, text)
}
func (s *recordingSurface) Size() (int, int) { return s.w, s.h }

func TestLayout(t *testing.T) {
	tiles, err := tilemap.New([]string{
		"#####",
		"#...#",
		"#####",
	}, '.')
	if err != nil {
		t.Fatalf("tilemap.New() error: %v", err)
	}
	m := New(tiles, DefaultStyle())

	tests := []struct {
		w, h         int
		vw, vh       float64
		cellW, cellH float64
	}{
		{800, 600, 200, 150, 40, 50},
		{640, 480, 160, 120, 32, 40},
		{103, 50, 25, 12, 5, 4},
		{10, 10, 2, 2, 0, 0},
	}

	for _, tt := range tests {
		l := m.Layout(tt.w, tt.h)
		if l.Viewport.W != tt.vw || l.Viewport.H != tt.vh {
			t.Errorf("Layout(%d, %d) viewport = %vx%v, want %vx%v", tt.w, tt.h, l.Viewport.W, l.Viewport.H, tt.vw, tt.vh)
		}
		if l.CellW != tt.cellW || l.CellH != tt.cellH {
			t.Errorf("Layout(%d, %d) cell = %vx%v, want %vx%v", tt.w, tt.h, l.CellW, l.CellH, tt.cellW, tt.cellH)
		}
	}
}

func TestDrawOneRectPerWall(t *testing.T) {
	sample, err := tilemap.Sample()
	if err != nil {
		t.Fatalf("Sample() error: %v", err)
	}
	m := New(sample.Tiles, DefaultStyle())

	s := &recordingSurface{w: 800, h: 800}
	pose := geom.Pose{X: 10, Y: 5, Angle: 0, FOV: math.Pi / 2}
	stats := m.Draw(s, pose)

	want := sample.Tiles.WallCount()
	if stats.Walls != want {
		t.Errorf("Stats.Walls = %d, want %d", stats.Walls, want)
	}
	if len(s.rects) != want {
		t.Errorf("drew %d rects, want one per wall (%d)", len(s.rects), want)
	}

	// 200px viewport over 20 tiles gives 10px cells, inset to 8px.
	for _, r := range s.rects {
		if r.W != 8 || r.H != 8 {
			t.Errorf("wall rect %+v, want 8x8 inset cell", r)
			break
		}
	}
	if first := s.rects[0]; first.X != 1 || first.Y != 1 {
		t.Errorf("first wall rect at (%v, %v), want (1, 1)", first.X, first.Y)
	}
}

func TestDrawPlayerConeAndReadout(t *testing.T) {
	tiles, _ := tilemap.New([]string{
		"####",
		"#..#",
		"#..#",
		"####",
	}, '.')
	m := New(tiles, DefaultStyle())

	s := &recordingSurface{w: 160, h: 160}
	pose := geom.Pose{X: 1.75, Y: 2.5, Angle: math.Pi / 2, FOV: math.Pi / 2}
	m.Draw(s, pose)

	if s.circles != 1 {
		t.Errorf("drew %d circles, want 1 player point", s.circles)
	}
	if len(s.pies) != 1 {
		t.Fatalf("drew %d pies, want 1 view cone", len(s.pies))
	}

	// 40px viewport over 4 tiles: 10px cells.
	p := s.pies[0]
	if p.x != 17 || p.y != 25 {
		t.Errorf("cone centre = (%v, %v), want (17, 25)", p.x, p.y)
	}
	if math.Abs(p.start-math.Pi/4) > 1e-12 || math.Abs(p.end-3*math.Pi/4) > 1e-12 {
		t.Errorf("cone span = [%v, %v], want [π/4, 3π/4]", p.start, p.end)
	}

	if len(s.texts) != 1 || s.texts[0] != "x:1 y:2 a:90°" {
		t.Errorf("readout = %q, want [\"x:1 y:2 a:90°\"]", s.texts)
	}
}

func TestReadout(t *testing.T) {
	tests := []struct {
		pose geom.Pose
		want string
	}{
		{geom.Pose{X: 0, Y: 0, Angle: 0}, "x:0 y:0 a:0°"},
		{geom.Pose{X: 10.9, Y: 5.1, Angle: math.Pi}, "x:10 y:5 a:180°"},
		{geom.Pose{X: 3.5, Y: 17.99, Angle: 3 * math.Pi / 2}, "x:3 y:17 a:270°"},
		{geom.Pose{X: 1.5, Y: 1.5, Angle: 0.785}, "x:1 y:1 a:44°"},
		{geom.Pose{X: 2, Y: 2, Angle: 0.9999 * math.Pi / 180}, "x:2 y:2 a:0°"},
	}

	for _, tt := range tests {
		if got := Readout(tt.pose); got != tt.want {
			t.Errorf("Readout(%+v) = %q, want %q", tt.pose, got, tt.want)
		}
	}
}
