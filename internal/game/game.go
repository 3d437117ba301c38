// Package game wires the player controller, the raycaster and the minimap
// into the per-frame Update and Draw calls an engine drives.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"chosenoffset.com/raycaster/internal/core/minimap"
	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/render"
	"chosenoffset.com/raycaster/internal/render/lighting"
	"chosenoffset.com/raycaster/internal/telemetry"
	"chosenoffset.com/raycaster/internal/world/tilemap"
)

// MessageDuration is how long an on-screen message stays up, in seconds.
const MessageDuration = 3.0

// Game holds all game state and logic.
type Game struct {
	Map       *tilemap.Map
	Player    *player.Controller
	Raycaster *raycast.Raycaster
	Minimap   *minimap.Minimap
	Input     render.Input

	MaxFrameTime float64

	// UI state
	Messages []Message

	// Reset fires on the press, not while held
	resetHeld bool

	// Telemetry
	tracer      trace.Tracer
	sampleEvery int
	FrameCount  int
	elapsed     float64 // Seconds since the last frame.stats span
	sampled     int     // FrameCount at the last frame.stats span
	Last        FrameStats

	log *logrus.Entry
}

// New builds a game on opts.Map with the player at the map's spawn.
func New(ctx context.Context, opts Options) (*Game, error) {
	if opts.Map == nil || opts.Map.Tiles == nil {
		return nil, errors.New("game: no map")
	}
	if opts.Input == nil {
		return nil, errors.New("game: no input")
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = telemetry.NoopTracer()
	}
	_, span := tracer.Start(ctx, "game.init")
	defer span.End()

	if opts.Player == (player.Config{}) {
		opts.Player = player.DefaultConfig()
	}
	if opts.Palette == (lighting.Palette{}) {
		opts.Palette = lighting.DefaultPalette()
	}
	if opts.Minimap == (minimap.Style{}) {
		opts.Minimap = minimap.DefaultStyle()
	}

	sp := opts.Map.SpawnPoint()
	spawn := player.Spawn{X: sp.X, Y: sp.Y, Angle: sp.Angle}
	tiles := opts.Map.Tiles

	g := &Game{
		Map:          opts.Map,
		Player:       player.New(tiles, spawn, opts.Player),
		Raycaster:    raycast.New(tiles, opts.View, opts.Palette),
		Minimap:      minimap.New(tiles, opts.Minimap),
		Input:        opts.Input,
		MaxFrameTime: opts.MaxFrameTime,
		tracer:       tracer,
		sampleEvery:  opts.SampleEvery,
		log:          logger.For("game"),
	}

	span.SetAttributes(
		attribute.String("map.name", opts.Map.Name()),
		attribute.Int("map.width", tiles.Width()),
		attribute.Int("map.height", tiles.Height()),
		attribute.Int("map.walls", tiles.WallCount()),
		attribute.Float64("spawn.x", spawn.X),
		attribute.Float64("spawn.y", spawn.Y),
		attribute.Float64("spawn.angle", spawn.Angle),
	)

	if tiles.IsWall(spawn.X, spawn.Y) {
		g.log.WithFields(logrus.Fields{"x": spawn.X, "y": spawn.Y}).Warn("Spawn is inside a wall")
	}
	g.log.WithFields(logrus.Fields{
		"map":   opts.Map.Name(),
		"size":  fmt.Sprintf("%dx%d", tiles.Width(), tiles.Height()),
		"walls": tiles.WallCount(),
		"depth": tiles.Depth(),
	}).Info("Game initialised")

	g.ShowMessage(opts.Map.Name())
	return g, nil
}

// Update advances the game by dt seconds. It returns render.ErrQuit when
// the quit action is held.
func (g *Game) Update(dt float64) error {
	if g.Input.Pressed(render.ActionB) {
		g.log.Info("Quit requested")
		return render.ErrQuit
	}

	// Frame rate is measured on wall time, before the clamp
	if dt > 0 {
		g.elapsed += dt
	}
	dt = g.clampFrameTime(dt)
	g.updateMessages(dt)

	reset := g.Input.Pressed(render.ActionA)
	if reset && !g.resetHeld {
		g.Player.Reset()
		g.ShowMessage("Back to spawn")
		g.log.Debug("Player reset to spawn")
	}
	g.resetHeld = reset

	g.Player.Update(dt, g.Input)
	return nil
}

// clampFrameTime keeps dt in [0, MaxFrameTime]. Long stalls would
// otherwise move the player far enough to pass through walls.
func (g *Game) clampFrameTime(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if g.MaxFrameTime > 0 && dt > g.MaxFrameTime {
		return g.MaxFrameTime
	}
	return dt
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: MessageDuration,
		MaxTime:  MessageDuration,
	})
}

// recordFrame stores the frame's stats and emits a frame.stats span every
// sampleEvery frames.
func (g *Game) recordFrame(stats FrameStats) {
	g.Last = stats
	g.FrameCount++

	if g.sampleEvery <= 0 || g.FrameCount-g.sampled < g.sampleEvery {
		return
	}

	frames := g.FrameCount - g.sampled
	fps := 0.0
	if g.elapsed > 0 {
		fps = float64(frames) / g.elapsed
	}

	pose := g.Player.Pose()
	_, span := g.tracer.Start(context.Background(), "frame.stats")
	span.SetAttributes(
		attribute.Int("frame", g.FrameCount),
		attribute.Float64("fps", fps),
		attribute.Int("rays.columns", stats.View.Columns),
		attribute.Int("rays.hits", stats.View.Hits),
		attribute.Float64("rays.nearest", stats.View.Nearest),
		attribute.Int("minimap.walls", stats.Walls),
		attribute.Float64("pose.x", pose.X),
		attribute.Float64("pose.y", pose.Y),
		attribute.Float64("pose.angle", pose.Angle),
	)
	span.End()

	g.sampled = g.FrameCount
	g.elapsed = 0
}
