package game

import (
	"chosenoffset.com/raycaster/internal/core/minimap"
	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/lighting"
	"chosenoffset.com/raycaster/internal/world/tilemap"

	"go.opentelemetry.io/otel/trace"
)

// Options configures a Game.
type Options struct {
	Map   *tilemap.Map
	Input render.Input

	// Zero values fall back to each package's defaults
	View    raycast.Config
	Player  player.Config
	Palette lighting.Palette
	Minimap minimap.Style

	// MaxFrameTime bounds the dt passed to the player controller, in
	// seconds. Zero disables the bound.
	MaxFrameTime float64

	// Tracer receives game.init and frame.stats spans; nil disables them.
	Tracer      trace.Tracer
	SampleEvery int // Frames between frame.stats spans
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text     string
	TimeLeft float64 // Seconds remaining
	MaxTime  float64 // Initial duration
}

// FrameStats is what the last Draw produced.
type FrameStats struct {
	View  raycast.Stats
	Walls int // Minimap wall rects
}
