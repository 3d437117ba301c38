// Package raycast renders the first-person view by marching one ray per
// logical column through the tile map.
package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/lighting"
	"chosenoffset.com/raycaster/internal/world/tilemap"
)

// Config controls the logical resolution and march granularity.
type Config struct {
	ResX        int     // Logical columns (one ray each)
	ResY        int     // Logical rows
	Step        float64 // March increment in tile units
	MinDistance float64 // Floor applied to distances before projection
}

// DefaultConfig returns a 160x100 view marched at 0.1 tiles per step.
func DefaultConfig() Config {
	return Config{
		ResX:        160,
		ResY:        100,
		Step:        0.1,
		MinDistance: 0.1,
	}
}

// Ray is the result of marching one column.
type Ray struct {
	Angle    float64
	Distance float64
	Hit      bool // false only when the ray ran out of depth inside the map
}

// Column is a ray plus its projected wall span and wall shade.
type Column struct {
	Ray
	Ceiling float64 // Rows <= Ceiling are ceiling
	Floor   float64 // Rows in (Ceiling, Floor] are wall, the rest floor
	Wall    render.Color
}

// Raycaster marches rays through a TileMap.
type Raycaster struct {
	tiles   *tilemap.TileMap
	cfg     Config
	palette lighting.Palette
	depth   float64
}

// New creates a raycaster over tiles. Non-positive config values fall back
// to DefaultConfig.
func New(tiles *tilemap.TileMap, cfg Config, palette lighting.Palette) *Raycaster {
	def := DefaultConfig()
	if cfg.ResX <= 0 {
		cfg.ResX = def.ResX
	}
	if cfg.ResY <= 0 {
		cfg.ResY = def.ResY
	}
	if cfg.Step <= 0 {
		cfg.Step = def.Step
	}
	if cfg.MinDistance <= 0 {
		cfg.MinDistance = def.MinDistance
	}

	return &Raycaster{
		tiles:   tiles,
		cfg:     cfg,
		palette: palette,
		depth:   tiles.Depth(),
	}
}

// Config returns the effective configuration.
func (r *Raycaster) Config() Config {
	return r.cfg
}

// Depth returns the maximum ray length.
func (r *Raycaster) Depth() float64 {
	return r.depth
}

// RayAngle returns the world angle of column x. Columns sample the field
// of view uniformly; there is no screen-plane correction.
func (r *Raycaster) RayAngle(pose geom.Pose, x int) float64 {
	return pose.Angle - pose.FOV/2 + (float64(x)/float64(r.cfg.ResX))*pose.FOV
}

// March steps a ray from origin along angle until it reaches a wall, leaves
// the map, or exhausts the depth budget.
func (r *Raycaster) March(origin mgl64.Vec2, angle float64) Ray {
	dir := geom.Direction(angle)
	ray := Ray{Angle: angle}

	for ray.Distance < r.depth {
		ray.Distance += r.cfg.Step
		probe := origin.Add(dir.Mul(ray.Distance))

		// Leaving the map counts as a distant wall
		if !r.tiles.InBounds(probe.X(), probe.Y()) {
			ray.Hit = true
			ray.Distance = r.depth
			return ray
		}

		if r.tiles.IsWall(probe.X(), probe.Y()) {
			ray.Hit = true
			return ray
		}
	}

	ray.Distance = r.depth
	return ray
}

// Cast marches every column for the pose. It depends only on the pose and
// the map.
func (r *Raycaster) Cast(pose geom.Pose) []Ray {
	origin := pose.Origin()
	rays := make([]Ray, r.cfg.ResX)
	for x := range rays {
		rays[x] = r.March(origin, r.RayAngle(pose, x))
	}
	return rays
}

// Project converts a distance into the ceiling and floor rows of a wall
// slice. The distance is Euclidean (uncorrected), so straight walls bow
// at the edges of wide fields of view.
func (r *Raycaster) Project(distance float64) (ceiling, floor float64) {
	d := math.Max(distance, r.cfg.MinDistance)
	resY := float64(r.cfg.ResY)
	ceiling = resY/2 - resY/d
	floor = resY - ceiling
	return ceiling, floor
}

// Columns casts and projects every column.
func (r *Raycaster) Columns(pose geom.Pose) []Column {
	rays := r.Cast(pose)
	cols := make([]Column, len(rays))
	for x, ray := range rays {
		ceiling, floor := r.Project(ray.Distance)
		cols[x] = Column{
			Ray:     ray,
			Ceiling: ceiling,
			Floor:   floor,
			Wall:    r.palette.WallShade(ray.Distance, r.depth),
		}
	}
	return cols
}
