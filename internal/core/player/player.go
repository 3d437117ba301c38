// Package player integrates the player's turning and walking against the
// tile map once per frame.
package player

import (
	"math"

	"chosenoffset.com/raycaster/internal/core/geom"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/world/tilemap"
)

// Spawn is the pose the controller starts in and returns to on Reset.
type Spawn struct {
	X, Y  float64
	Angle float64
}

// Config holds movement speeds and the view cone width.
type Config struct {
	WalkSpeed float64 // tiles per second
	TurnSpeed float64 // radians per second
	FOV       float64 // radians
}

// DefaultConfig returns 3 tiles/s walking, 2 rad/s turning and a 90° view.
func DefaultConfig() Config {
	return Config{
		WalkSpeed: 3.0,
		TurnSpeed: 2.0,
		FOV:       math.Pi / 2,
	}
}

// Controller owns the player pose. Only Update and Reset mutate it.
type Controller struct {
	tiles *tilemap.TileMap
	cfg   Config
	spawn Spawn
	pose  geom.Pose
}

// New creates a controller at spawn. The spawn is not checked against the
// map; placing it on an open tile is the caller's job.
func New(tiles *tilemap.TileMap, spawn Spawn, cfg Config) *Controller {
	c := &Controller{
		tiles: tiles,
		cfg:   cfg,
		spawn: spawn,
	}
	c.Reset()
	return c
}

// Pose returns the current pose.
func (c *Controller) Pose() geom.Pose {
	return c.pose
}

// Spawn returns the spawn pose.
func (c *Controller) Spawn() Spawn {
	return c.spawn
}

// Reset puts the player back on the spawn pose exactly.
func (c *Controller) Reset() {
	c.pose = geom.Pose{
		X:     c.spawn.X,
		Y:     c.spawn.Y,
		Angle: c.spawn.Angle,
		FOV:   c.cfg.FOV,
	}
}

// Update applies one frame of input. Turning happens before walking so the
// step follows the new facing. Left beats right and forward beats backward
// when both are held.
//
// Only the endpoint of the step is tested against the map. A step longer
// than a wall is thick passes straight through it, so hosts should bound
// dt. Update reports whether a requested step was blocked.
func (c *Controller) Update(dt float64, in render.Input) (blocked bool) {
	if render.Left(in) {
		c.pose.Angle = geom.NormalizeAngle(c.pose.Angle - c.cfg.TurnSpeed*dt)
	} else if render.Right(in) {
		c.pose.Angle = geom.NormalizeAngle(c.pose.Angle + c.cfg.TurnSpeed*dt)
	}

	var sign float64
	if render.Up(in) {
		sign = 1
	} else if render.Down(in) {
		sign = -1
	} else {
		return false
	}

	step := geom.Direction(c.pose.Angle).Mul(sign * c.cfg.WalkSpeed * dt)
	next := c.pose.Origin().Add(step)

	// No sliding: a blocked step is dropped on both axes
	if c.tiles.IsWall(next.X(), next.Y()) {
		return true
	}

	c.pose.X, c.pose.Y = next.X(), next.Y()
	return false
}
