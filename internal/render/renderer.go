// Package render defines the backend-neutral contracts the game is written
// against: a drawing surface, an input source, and an engine that owns the
// frame loop. Backends live in subpackages.
package render

import "errors"

// ErrQuit is returned from Game.Update to end the frame loop cleanly.
var ErrQuit = errors.New("render: quit requested")

// Rect is an axis-aligned rectangle in surface pixels.
type Rect struct {
	X, Y, W, H float64
}

// Font selects one of the typefaces a backend provides.
type Font int

// Font constants
const (
	FontRegular Font = iota
	FontMono
	FontBold
)

// Surface is a pixel surface that can be drawn on with simple shapes.
// Angles are in radians and increase clockwise on screen (toward +y).
type Surface interface {
	// Clear fills the whole surface.
	Clear(c Color)

	// Shape operations
	DrawRect(x, y, w, h float64, c Color)
	DrawCircle(x, y, radius float64, c Color)
	DrawPie(x, y, radius, startAngle, endAngle float64, c Color)

	// DrawText draws a single line with its top-left corner at (x, y).
	DrawText(text string, x, y float64, c Color, font Font, size float64)

	// Size returns the surface dimensions in pixels.
	Size() (width, height int)
}

// Game represents the game interface that the engine will call.
type Game interface {
	// Update advances the game by dt seconds. It is called once per frame.
	Update(dt float64) error

	// Draw draws the current state onto the surface.
	Draw(s Surface)
}

// Engine represents the game engine that manages the frame loop.
type Engine interface {
	// SetWindowSize sets the window size in pixels. Backends without
	// windows ignore it.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// Input returns the action state sampled for the current frame.
	Input() Input

	// RunGame runs the frame loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
