package geom

import "github.com/go-gl/mathgl/mgl64"

// Pose is the player's position and facing in the world.
// Angle is in radians; FOV is the full view cone width in radians.
type Pose struct {
	X, Y  float64
	Angle float64
	FOV   float64
}

// Origin returns the pose position as a vector.
func (p Pose) Origin() mgl64.Vec2 {
	return mgl64.Vec2{p.X, p.Y}
}
