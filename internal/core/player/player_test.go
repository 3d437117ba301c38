package player

import (
	"math"
	"testing"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/tilemap"
)

const eps = 1e-9

func mustTiles(t *testing.T, rows ...string) *tilemap.TileMap {
	t.Helper()
	tiles, err := tilemap.New(rows, '.')
	if err != nil {
		t.Fatalf("tilemap.New() error: %v", err)
	}
	return tiles
}

func held(actions ...render.Action) *render.ActionSet {
	var in render.ActionSet
	for _, a := range actions {
		in.Set(a, true)
	}
	return &in
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNewStartsAtSpawn(t *testing.T) {
	tiles := mustTiles(t, "...", "...")
	c := New(tiles, Spawn{X: 1.5, Y: 0.5, Angle: 1.25}, DefaultConfig())

	want := geom.Pose{X: 1.5, Y: 0.5, Angle: 1.25, FOV: math.Pi / 2}
	if got := c.Pose(); got != want {
		t.Errorf("Pose() = %+v, want %+v", got, want)
	}
}

func TestWalkForwardAndBackward(t *testing.T) {
	tiles := mustTiles(t,
		"#######",
		"#.....#",
		"#######",
	)
	c := New(tiles, Spawn{X: 3.5, Y: 1.5}, DefaultConfig())

	if blocked := c.Update(0.25, held(render.MoveForward)); blocked {
		t.Fatal("forward step into open space reported blocked")
	}
	if p := c.Pose(); !near(p.X, 4.25) || !near(p.Y, 1.5) {
		t.Errorf("after forward: (%v, %v), want (4.25, 1.5)", p.X, p.Y)
	}

	c.Update(0.5, held(render.MoveBackward))
	if p := c.Pose(); !near(p.X, 2.75) || !near(p.Y, 1.5) {
		t.Errorf("after backward: (%v, %v), want (2.75, 1.5)", p.X, p.Y)
	}
}

func TestForwardBeatsBackward(t *testing.T) {
	tiles := mustTiles(t,
		"#######",
		"#.....#",
		"#######",
	)
	c := New(tiles, Spawn{X: 3.5, Y: 1.5}, DefaultConfig())
	c.Update(0.1, held(render.MoveForward, render.MoveBackward))

	if p := c.Pose(); !near(p.X, 3.8) {
		t.Errorf("forward+backward moved to x=%v, want 3.8", p.X)
	}
}

func TestBlockedStepKeepsPositionButStillTurns(t *testing.T) {
	tiles := mustTiles(t,
		"#######",
		"#..#..#",
		"#######",
	)
	spawn := Spawn{X: 2.5, Y: 1.5, Angle: 0}
	c := New(tiles, spawn, DefaultConfig())

	blocked := c.Update(0.5, held(render.MoveForward, render.TurnRight))
	if !blocked {
		t.Error("step into a wall should report blocked")
	}

	p := c.Pose()
	if p.X != spawn.X || p.Y != spawn.Y {
		t.Errorf("blocked step moved player to (%v, %v)", p.X, p.Y)
	}
	if !near(p.Angle, 1.0) {
		t.Errorf("Angle = %v, want 1.0 after half a second turning right", p.Angle)
	}
}

func TestLeftBeatsRight(t *testing.T) {
	tiles := mustTiles(t, "...")
	c := New(tiles, Spawn{X: 1.5, Y: 0.5, Angle: 1}, DefaultConfig())

	c.Update(0.25, held(render.TurnLeft, render.TurnRight))
	if got := c.Pose().Angle; !near(got, 0.5) {
		t.Errorf("Angle = %v, want 0.5 (left wins)", got)
	}
}

func TestTurningNormalizesAngle(t *testing.T) {
	tiles := mustTiles(t, "...")
	c := New(tiles, Spawn{X: 1.5, Y: 0.5, Angle: 0}, DefaultConfig())

	c.Update(0.5, held(render.TurnLeft))
	if got, want := c.Pose().Angle, 2*math.Pi-1; !near(got, want) {
		t.Errorf("Angle = %v, want %v", got, want)
	}

	for i := 0; i < 20; i++ {
		c.Update(1, held(render.TurnRight))
		if a := c.Pose().Angle; a < 0 || a >= 2*math.Pi {
			t.Fatalf("Angle = %v escaped [0, 2π)", a)
		}
	}
}

func TestResetRestoresSpawnExactly(t *testing.T) {
	tiles := mustTiles(t,
		"#######",
		"#.....#",
		"#.....#",
		"#######",
	)
	// A spawn angle outside [0, 2π) is kept as given.
	spawn := Spawn{X: 2.25, Y: 1.75, Angle: 7.5}
	c := New(tiles, spawn, DefaultConfig())

	c.Update(0.2, held(render.MoveForward, render.TurnLeft))
	c.Update(0.3, held(render.MoveBackward))
	c.Reset()

	p := c.Pose()
	if p.X != spawn.X || p.Y != spawn.Y || p.Angle != spawn.Angle {
		t.Errorf("after Reset: %+v, want spawn %+v", p, spawn)
	}
	if c.Spawn() != spawn {
		t.Errorf("Spawn() = %+v, want %+v", c.Spawn(), spawn)
	}
}

func TestLargeStepTunnelsThroughThinWall(t *testing.T) {
	rows := []string{
		"###########",
		"#....#....#",
		"###########",
	}

	tests := []struct {
		name    string
		dt      float64
		blocked bool
		wantX   float64
	}{
		// 3 tiles/s: one tile lands inside the wall at x=5.
		{"endpoint in wall", 1.0 / 3, true, 4.5},
		// Two tiles lands past the wall; only the endpoint is checked.
		{"endpoint past wall", 2.0 / 3, false, 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(mustTiles(t, rows...), Spawn{X: 4.5, Y: 1.5}, DefaultConfig())
			blocked := c.Update(tt.dt, held(render.MoveForward))
			if blocked != tt.blocked {
				t.Errorf("blocked = %v, want %v", blocked, tt.blocked)
			}
			if got := c.Pose().X; !near(got, tt.wantX) {
				t.Errorf("X = %v, want %v", got, tt.wantX)
			}
		})
	}
}

func TestNoInputIsANoop(t *testing.T) {
	tiles := mustTiles(t, "...")
	c := New(tiles, Spawn{X: 1.5, Y: 0.5, Angle: 0.3}, DefaultConfig())
	before := c.Pose()

	if c.Update(10, held()) {
		t.Error("no input reported blocked")
	}
	if c.Pose() != before {
		t.Errorf("Pose changed without input: %+v -> %+v", before, c.Pose())
	}
}
