// Package geom holds the small amount of 2D math shared by the raycaster,
// the minimap and the player controller.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TwoPi is a full turn in radians.
const TwoPi = 2 * math.Pi

// Direction returns the unit vector for an angle in radians.
// Angle 0 faces +x; positive angles turn toward +y (screen "down").
func Direction(angle float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
}

// NormalizeAngle wraps an angle into [0, 2π).
func NormalizeAngle(angle float64) float64 {
	a := math.Mod(angle, TwoPi)
	if a < 0 {
		a += TwoPi
	}
	// math.Mod of a tiny negative value can round up to exactly 2π
	if a >= TwoPi {
		a = 0
	}
	return a
}

// Degrees converts radians to degrees.
func Degrees(angle float64) float64 {
	return mgl64.RadToDeg(angle)
}

// AngleWithin reports whether angle lies on the arc that starts at start
// and sweeps clockwise in screen space (increasing angle) to end.
// An arc of 2π or more contains every angle.
func AngleWithin(angle, start, end float64) bool {
	sweep := end - start
	if sweep >= TwoPi {
		return true
	}
	if sweep < 0 {
		return false
	}
	return NormalizeAngle(angle-start) <= sweep
}
