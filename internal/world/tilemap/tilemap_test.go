package tilemap

import (
	"errors"
	"math"
	"testing"
)

var testRows = []string{
	"#####",
	"#...#",
	"#.#.#",
	"#...#",
	"#####",
}

func mustNew(t *testing.T, rows []string) *TileMap {
	t.Helper()
	m, err := New(rows, '.')
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return m
}

func TestNewDimensions(t *testing.T) {
	m := mustNew(t, testRows)

	if m.Width() != 5 || m.Height() != 5 {
		t.Errorf("New() size = %dx%d, want 5x5", m.Width(), m.Height())
	}
	if m.Depth() != 5 {
		t.Errorf("Depth() = %v, want 5", m.Depth())
	}
	if got := m.WallCount(); got != 17 {
		t.Errorf("WallCount() = %d, want 17", got)
	}
}

func TestNewRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want error
	}{
		{"no rows", nil, ErrEmptyMap},
		{"empty first row", []string{""}, ErrEmptyMap},
		{"ragged", []string{"###", "#.", "###"}, ErrRaggedRows},
	}

	for _, tt := range tests {
		_, err := New(tt.rows, '.')
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: New() error = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestIsWallInBoundsMatchesLayout(t *testing.T) {
	m := mustNew(t, testRows)

	for y, row := range testRows {
		for x, r := range row {
			want := r != '.'
			// Sample the centre and a corner of every tile.
			if got := m.IsWall(float64(x)+0.5, float64(y)+0.5); got != want {
				t.Errorf("IsWall(%d.5, %d.5) = %v, want %v", x, y, got, want)
			}
			if got := m.IsWall(float64(x), float64(y)); got != want {
				t.Errorf("IsWall(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestIsWallOutOfBoundsIsOpen(t *testing.T) {
	m := mustNew(t, testRows)

	tests := []struct {
		x, y float64
	}{
		{0, -1},
		{-3, -3},
		{0, 5},
		{2, 100},
		{4.9, 5.0},
		{-1000, -1000},
	}

	for _, tt := range tests {
		if m.IsWall(tt.x, tt.y) {
			t.Errorf("IsWall(%v, %v) = true, want false outside the grid", tt.x, tt.y)
		}
	}
}

func TestIsWallOutsideEverySideIsOpen(t *testing.T) {
	// Walls sit just across each edge from the sampled points, so a
	// flattened lookup that wrapped rows would report them.
	m := mustNew(t, []string{
		".....",
		"#...#",
		".....",
	})

	tests := []struct {
		name string
		x, y float64
	}{
		{"east of row 0", 5.5, 0.5},
		{"east of row 1", 5.0, 1.5},
		{"west of row 2", -0.5, 2.5},
		{"west of row 1", -1.5, 1.5},
		{"north", 0.5, -0.5},
		{"south", 4.5, 3.0},
		{"NaN", math.NaN(), 1.5},
		{"infinite", math.Inf(1), 1.5},
	}

	for _, tt := range tests {
		if m.IsWall(tt.x, tt.y) {
			t.Errorf("%s: IsWall(%v, %v) = true, want false outside the grid", tt.name, tt.x, tt.y)
		}
		if m.InBounds(tt.x, tt.y) {
			t.Errorf("%s: InBounds(%v, %v) = true, want false", tt.name, tt.x, tt.y)
		}
	}

	if !m.IsWall(4.5, 1.5) || !m.IsWall(0, 1) {
		t.Error("edge walls inside the grid should still be walls")
	}
}

func TestCellAtAndContains(t *testing.T) {
	m := mustNew(t, testRows)

	if !m.CellAt(2, 2) {
		t.Error("CellAt(2, 2) = false, want true")
	}
	if m.CellAt(1, 1) {
		t.Error("CellAt(1, 1) = true, want false")
	}
	if m.CellAt(-1, 0) || m.Contains(-1, 0) {
		t.Error("CellAt/Contains(-1, 0) should be false")
	}
	if m.Contains(5, 0) {
		t.Error("Contains(5, 0) = true, want false")
	}
}

func TestRowsRoundTrip(t *testing.T) {
	m := mustNew(t, testRows)
	got := m.Rows('#', '.')
	for i := range testRows {
		if got[i] != testRows[i] {
			t.Errorf("Rows()[%d] = %q, want %q", i, got[i], testRows[i])
		}
	}
}
