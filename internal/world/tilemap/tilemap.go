// Package tilemap holds the occupancy grid the raycaster, minimap and
// player controller read from.
package tilemap

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrEmptyMap is returned when a layout has no rows or no columns.
	ErrEmptyMap = errors.New("tilemap: layout is empty")
	// ErrRaggedRows is returned when layout rows differ in length.
	ErrRaggedRows = errors.New("tilemap: rows have unequal length")
)

// TileMap is an immutable row-major grid of wall flags.
type TileMap struct {
	width  int
	height int
	cells  []bool // index = x + y*width
}

// New builds a TileMap from equal-length rows. A rune equal to open is an
// open cell; every other rune is a wall.
func New(rows []string, open rune) (*TileMap, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}

	width := utf8.RuneCountInString(rows[0])
	if width == 0 {
		return nil, ErrEmptyMap
	}

	cells := make([]bool, 0, width*len(rows))
	for y, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedRows, y, n, width)
		}
		for _, r := range row {
			cells = append(cells, r != open)
		}
	}

	return &TileMap{
		width:  width,
		height: len(rows),
		cells:  cells,
	}, nil
}

// Width returns the number of columns.
func (m *TileMap) Width() int {
	return m.width
}

// Height returns the number of rows.
func (m *TileMap) Height() int {
	return m.height
}

// Depth is the longest distance a ray may travel: max(width, height).
func (m *TileMap) Depth() float64 {
	return float64(max(m.width, m.height))
}

// IsWall truncates (x, y) toward zero and looks up the cell. Any point
// outside [0, width) x [0, height) is reported as open: unknown space is
// passable.
func (m *TileMap) IsWall(x, y float64) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.cells[int(x)+int(y)*m.width]
}

// InBounds reports whether the point (x, y) lies inside the grid.
// NaN and infinite coordinates are never inside.
func (m *TileMap) InBounds(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(m.width) && y < float64(m.height)
}

// Contains reports whether the tile (ix, iy) lies inside the grid.
func (m *TileMap) Contains(ix, iy int) bool {
	return ix >= 0 && ix < m.width && iy >= 0 && iy < m.height
}

// CellAt returns the wall flag of tile (ix, iy), or false outside the grid.
func (m *TileMap) CellAt(ix, iy int) bool {
	if !m.Contains(ix, iy) {
		return false
	}
	return m.cells[ix+iy*m.width]
}

// WallCount returns the number of wall cells.
func (m *TileMap) WallCount() int {
	count := 0
	for _, wall := range m.cells {
		if wall {
			count++
		}
	}
	return count
}

// Rows renders the grid back into strings using the given runes.
func (m *TileMap) Rows(wall, open rune) []string {
	rows := make([]string, m.height)
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		sb.Reset()
		for x := 0; x < m.width; x++ {
			if m.cells[x+y*m.width] {
				sb.WriteRune(wall)
			} else {
				sb.WriteRune(open)
			}
		}
		rows[y] = sb.String()
	}
	return rows
}
