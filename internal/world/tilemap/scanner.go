package tilemap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MapEntry describes a map file discovered on disk
type MapEntry struct {
	Name   string // Display name from the map file
	Path   string // Path to the JSON file
	Width  int
	Height int
	Walls  int
}

// ScanMapDirectory scans a directory for loadable map files.
// Files that fail to parse are skipped; the returned slice is sorted by path.
func ScanMapDirectory(dir string) ([]MapEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read map directory: %w", err)
	}

	var maps []MapEntry
	for _, entry := range entries {
		// Skip directories and hidden files
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		m, err := LoadMap(path)
		if err != nil {
			// Skip files that aren't valid maps
			continue
		}

		maps = append(maps, MapEntry{
			Name:   m.Name(),
			Path:   path,
			Width:  m.Tiles.Width(),
			Height: m.Tiles.Height(),
			Walls:  m.Tiles.WallCount(),
		})
	}

	sort.Slice(maps, func(i, j int) bool { return maps[i].Path < maps[j].Path })
	return maps, nil
}
