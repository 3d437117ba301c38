// Package room generates random maps of rectangular rooms joined by
// corridors.
package room

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"chosenoffset.com/raycaster/internal/world/tilemap"
)

const (
	wallRune  = '#'
	floorRune = '.'
)

// ErrNoRoom is returned when not even the first room fits the level.
var ErrNoRoom = errors.New("room: level too small for a room")

// PlacedRoom is a room's floor rectangle in tile coordinates.
type PlacedRoom struct {
	X, Y          int
	Width, Height int
}

// Center returns the room's centre tile.
func (r PlacedRoom) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// overlaps reports whether r and o come within margin tiles of each other.
func (r PlacedRoom) overlaps(o PlacedRoom, margin int) bool {
	return r.X-margin < o.X+o.Width && o.X-margin < r.X+r.Width &&
		r.Y-margin < o.Y+o.Height && o.Y-margin < r.Y+r.Height
}

// GeneratorConfig holds configuration for level generation
type GeneratorConfig struct {
	Width       int   // Level width in tiles, border included
	Height      int   // Level height in tiles, border included
	MinRooms    int   // Rooms to aim for at least
	MaxRooms    int   // Rooms to place at most
	MinRoomSize int   // Smallest room side
	MaxRoomSize int   // Largest room side
	Seed        int64 // Random seed (0 = use current time)
}

// DefaultGeneratorConfig returns a 32x32 level of four to eight rooms.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Width:       32,
		Height:      32,
		MinRooms:    4,
		MaxRooms:    8,
		MinRoomSize: 3,
		MaxRoomSize: 7,
	}
}

// Generator handles procedural level generation
type Generator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewGenerator creates a new level generator
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()
	if config.Width <= 0 {
		config.Width = def.Width
	}
	if config.Height <= 0 {
		config.Height = def.Height
	}
	if config.MinRoomSize <= 0 {
		config.MinRoomSize = def.MinRoomSize
	}
	if config.MaxRoomSize < config.MinRoomSize {
		config.MaxRoomSize = config.MinRoomSize
	}
	if config.MinRooms <= 0 {
		config.MinRooms = 1
	}
	if config.MaxRooms < config.MinRooms {
		config.MaxRooms = config.MinRooms
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		config: config,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Generate creates a new level. Every room is joined to the one placed
// before it, so all floor is reachable from the spawn in the first room.
func (g *Generator) Generate() (*tilemap.Map, []PlacedRoom, error) {
	numRooms := g.config.MinRooms
	if g.config.MaxRooms > g.config.MinRooms {
		numRooms += g.rng.Intn(g.config.MaxRooms - g.config.MinRooms + 1)
	}

	rooms := g.placeRooms(numRooms)
	if len(rooms) == 0 {
		return nil, nil, ErrNoRoom
	}

	grid := g.newGrid()
	for i, r := range rooms {
		g.carveRoom(grid, r)
		if i > 0 {
			g.carveCorridor(grid, rooms[i-1], r)
		}
	}

	rows := make([]string, len(grid))
	for y, row := range grid {
		rows[y] = string(row)
	}

	sx, sy := rooms[0].Center()
	m, err := tilemap.FromData(&tilemap.MapData{
		Name:  fmt.Sprintf("Generated %dx%d", g.config.Width, g.config.Height),
		Open:  string(floorRune),
		Rows:  rows,
		Spawn: &tilemap.SpawnPoint{X: float64(sx) + 0.5, Y: float64(sy) + 0.5},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("generated map is invalid: %w", err)
	}
	return m, rooms, nil
}

func (g *Generator) newGrid() [][]rune {
	grid := make([][]rune, g.config.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(wallRune), g.config.Width))
	}
	return grid
}

// placeRooms scatters up to n non-touching rooms inside the border.
func (g *Generator) placeRooms(n int) []PlacedRoom {
	const attemptsPerRoom = 30

	var placed []PlacedRoom
	for attempt := 0; attempt < n*attemptsPerRoom && len(placed) < n; attempt++ {
		w := g.roomSide()
		h := g.roomSide()
		// One tile of border wall on every side
		maxX := g.config.Width - 1 - w
		maxY := g.config.Height - 1 - h
		if maxX < 1 || maxY < 1 {
			continue
		}
		candidate := PlacedRoom{
			X:      1 + g.rng.Intn(maxX),
			Y:      1 + g.rng.Intn(maxY),
			Width:  w,
			Height: h,
		}
		if g.canPlaceRoom(candidate, placed) {
			placed = append(placed, candidate)
		}
	}
	return placed
}

func (g *Generator) roomSide() int {
	span := g.config.MaxRoomSize - g.config.MinRoomSize + 1
	return g.config.MinRoomSize + g.rng.Intn(span)
}

// canPlaceRoom checks the room keeps a wall between itself and the others
func (g *Generator) canPlaceRoom(r PlacedRoom, placed []PlacedRoom) bool {
	for _, p := range placed {
		if r.overlaps(p, 1) {
			return false
		}
	}
	return true
}

func (g *Generator) carveRoom(grid [][]rune, r PlacedRoom) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			grid[y][x] = floorRune
		}
	}
}

// carveCorridor joins two room centres with an L-shaped corridor, turning
// horizontally or vertically first at random.
func (g *Generator) carveCorridor(grid [][]rune, from, to PlacedRoom) {
	x1, y1 := from.Center()
	x2, y2 := to.Center()

	if g.rng.Intn(2) == 0 {
		carveH(grid, x1, x2, y1)
		carveV(grid, y1, y2, x2)
	} else {
		carveV(grid, y1, y2, x1)
		carveH(grid, x1, x2, y2)
	}
}

func carveH(grid [][]rune, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		grid[y][x] = floorRune
	}
}

func carveV(grid [][]rune, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		grid[y][x] = floorRune
	}
}

// FloodFill returns how many open tiles are reachable from (startX, startY)
// moving in the four cardinal directions.
func FloodFill(tiles *tilemap.TileMap, startX, startY int) int {
	type point struct{ x, y int }

	if tiles.CellAt(startX, startY) || !tiles.Contains(startX, startY) {
		return 0
	}

	visited := make([]bool, tiles.Width()*tiles.Height())
	queue := []point{{startX, startY}}
	visited[startX+startY*tiles.Width()] = true
	dirs := []point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

	count := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		count++

		for _, d := range dirs {
			next := point{current.x + d.x, current.y + d.y}
			if !tiles.Contains(next.x, next.y) || tiles.CellAt(next.x, next.y) {
				continue
			}
			idx := next.x + next.y*tiles.Width()
			if visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue, next)
		}
	}
	return count
}
