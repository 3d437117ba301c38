package tilemap

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// builtinFS embeds the maps shipped with the binary.
//
//go:embed maps/*.json
var builtinFS embed.FS

// DefaultOpen is the open-cell marker used when a map file omits one.
const DefaultOpen = "."

// SpawnPoint defines the player spawn location and facing (radians)
type SpawnPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// MapData represents a map file on disk
type MapData struct {
	Name  string      `json:"name"`
	Open  string      `json:"open"`            // Single character marking open cells
	Rows  []string    `json:"rows"`            // Layout rows, top to bottom
	Spawn *SpawnPoint `json:"spawn,omitempty"` // Defaults to the map centre facing +x
}

// Map represents a loaded map with its occupancy grid
type Map struct {
	Data  *MapData
	Tiles *TileMap
}

// LoadMap loads a map from a JSON file
func LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}
	return ParseMap(data, mapPath)
}

// LoadBuiltin loads one of the embedded maps by file name (e.g. "sample.json").
func LoadBuiltin(name string) (*Map, error) {
	data, err := builtinFS.ReadFile("maps/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded map %s: %w", name, err)
	}
	return ParseMap(data, name)
}

// Sample returns the embedded 20x20 sample map.
func Sample() (*Map, error) {
	return LoadBuiltin("sample.json")
}

// ParseMap decodes and validates map JSON. source is only used in errors.
func ParseMap(data []byte, source string) (*Map, error) {
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map file %s: %w", source, err)
	}

	m, err := FromData(&mapData)
	if err != nil {
		return nil, fmt.Errorf("invalid map data in %s: %w", source, err)
	}
	return m, nil
}

// FromData validates data, fills its defaults and builds the tile grid.
func FromData(data *MapData) (*Map, error) {
	if err := validateMapData(data); err != nil {
		return nil, err
	}

	open, _ := utf8.DecodeRuneInString(data.Open)
	tiles, err := New(data.Rows, open)
	if err != nil {
		return nil, err
	}

	return &Map{
		Data:  data,
		Tiles: tiles,
	}, nil
}

// validateMapData checks if the map data is valid and fills defaults
func validateMapData(data *MapData) error {
	if data.Open == "" {
		data.Open = DefaultOpen
	}
	if utf8.RuneCountInString(data.Open) != 1 {
		return fmt.Errorf("open marker must be a single character, got %q", data.Open)
	}

	if len(data.Rows) == 0 {
		return ErrEmptyMap
	}

	if data.Name == "" {
		data.Name = "untitled"
	}

	if s := data.Spawn; s != nil {
		if s.X < 0 || s.Y < 0 {
			return errors.New("spawn position must not be negative")
		}
	}

	return nil
}

// SpawnPoint returns the configured spawn, or the map centre facing +x.
func (m *Map) SpawnPoint() SpawnPoint {
	if m.Data.Spawn != nil {
		return *m.Data.Spawn
	}
	return SpawnPoint{
		X: float64(m.Tiles.Width()) / 2,
		Y: float64(m.Tiles.Height()) / 2,
	}
}

// Name returns the display name of the map.
func (m *Map) Name() string {
	return m.Data.Name
}
