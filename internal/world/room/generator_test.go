package room

import (
	"errors"
	"testing"

	"chosenoffset.com/raycaster/internal/world/tilemap"
)

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.Seed = 42

	a, _, err := NewGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	b, _, err := NewGenerator(cfg).Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	rowsA, rowsB := a.Tiles.Rows('#', '.'), b.Tiles.Rows('#', '.')
	for y := range rowsA {
		if rowsA[y] != rowsB[y] {
			t.Fatalf("row %d differs for the same seed:\n%s\n%s", y, rowsA[y], rowsB[y])
		}
	}
}

func TestGeneratedLevelIsEnclosedAndConnected(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		cfg := DefaultGeneratorConfig()
		cfg.Seed = seed

		m, rooms, err := NewGenerator(cfg).Generate()
		if err != nil {
			t.Fatalf("seed %d: Generate() error: %v", seed, err)
		}
		tiles := m.Tiles

		if tiles.Width() != cfg.Width || tiles.Height() != cfg.Height {
			t.Fatalf("seed %d: size %dx%d, want %dx%d", seed, tiles.Width(), tiles.Height(), cfg.Width, cfg.Height)
		}
		if len(rooms) == 0 || len(rooms) > cfg.MaxRooms {
			t.Errorf("seed %d: %d rooms, want 1..%d", seed, len(rooms), cfg.MaxRooms)
		}

		for x := 0; x < tiles.Width(); x++ {
			if !tiles.CellAt(x, 0) || !tiles.CellAt(x, tiles.Height()-1) {
				t.Fatalf("seed %d: border open at column %d", seed, x)
			}
		}
		for y := 0; y < tiles.Height(); y++ {
			if !tiles.CellAt(0, y) || !tiles.CellAt(tiles.Width()-1, y) {
				t.Fatalf("seed %d: border open at row %d", seed, y)
			}
		}

		spawn := m.SpawnPoint()
		if tiles.IsWall(spawn.X, spawn.Y) {
			t.Fatalf("seed %d: spawn (%v, %v) is in a wall", seed, spawn.X, spawn.Y)
		}

		open := tiles.Width()*tiles.Height() - tiles.WallCount()
		if got := FloodFill(tiles, int(spawn.X), int(spawn.Y)); got != open {
			t.Errorf("seed %d: %d of %d open tiles reachable from spawn", seed, got, open)
		}
	}
}

func TestGenerateTooSmall(t *testing.T) {
	_, _, err := NewGenerator(GeneratorConfig{Width: 4, Height: 4, MinRoomSize: 5, Seed: 1}).Generate()
	if !errors.Is(err, ErrNoRoom) {
		t.Errorf("Generate() = %v, want ErrNoRoom", err)
	}
}

func TestFloodFill(t *testing.T) {
	tiles, err := tilemap.New([]string{
		"#######",
		"#..#..#",
		"#..#..#",
		"#######",
	}, '.')
	if err != nil {
		t.Fatal(err)
	}

	if got := FloodFill(tiles, 1, 1); got != 4 {
		t.Errorf("FloodFill(left room) = %d, want 4", got)
	}
	if got := FloodFill(tiles, 3, 1); got != 0 {
		t.Errorf("FloodFill(from wall) = %d, want 0", got)
	}
	if got := FloodFill(tiles, -1, 1); got != 0 {
		t.Errorf("FloodFill(outside) = %d, want 0", got)
	}
}
