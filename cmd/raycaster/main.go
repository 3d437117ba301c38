package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"chosenoffset.com/raycaster/internal/config"
	"chosenoffset.com/raycaster/internal/core/minimap"
	"chosenoffset.com/raycaster/internal/core/player"
	"chosenoffset.com/raycaster/internal/core/raycast"
	"chosenoffset.com/raycaster/internal/game"
	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/render"
	ebitenrender "chosenoffset.com/raycaster/internal/render/ebiten"
	"chosenoffset.com/raycaster/internal/render/lighting"
	"chosenoffset.com/raycaster/internal/render/terminal"
	"chosenoffset.com/raycaster/internal/telemetry"
	"chosenoffset.com/raycaster/internal/world/room"
	"chosenoffset.com/raycaster/internal/world/tilemap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "raycaster:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "JSON config file")
	mapPath := flag.String("map", "", "Map file to load (default: built-in sample)")
	backend := flag.String("backend", "", "Renderer backend: ebiten or terminal")
	list := flag.Bool("list", false, "List the maps in the map directory and exit")
	width := flag.Int("width", 0, "Window width in pixels")
	height := flag.Int("height", 0, "Window height in pixels")
	fov := flag.Float64("fov", 0, "Field of view in degrees")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	generate := flag.Bool("generate", false, "Play a randomly generated map instead of -map")
	seed := flag.Int64("seed", 0, "Seed for -generate (default: time based)")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		logger.Log.WithError(err).Warn(".env file not loaded")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	// Flags override file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "map":
			cfg.MapPath = *mapPath
		case "backend":
			cfg.Backend = *backend
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "fov":
			cfg.Player.FOVDegrees = *fov
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.For("main")

	if *list {
		return listMaps(os.Stdout, cfg.MapDir)
	}

	ctx := context.Background()
	tracer := telemetry.NoopTracer()
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint)
		if err != nil {
			log.WithError(err).Warn("Telemetry setup failed, running without traces")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.WithError(err).Error("Telemetry shutdown failed")
				}
			}()
			tracer = telemetry.Tracer("game")
		}
	}

	var m *tilemap.Map
	if *generate {
		m, err = generateMap(*seed)
	} else {
		m, err = loadMap(ctx, tracer, cfg.MapPath)
	}
	if err != nil {
		return err
	}

	var engine render.Engine
	switch cfg.Backend {
	case config.BackendTerminal:
		engine = terminal.NewEngine(cfg.TerminalFPS)
	default:
		engine = ebitenrender.NewEngine()
	}

	g, err := game.New(ctx, game.Options{
		Map:   m,
		Input: engine.Input(),
		View: raycast.Config{
			ResX:        cfg.View.ResX,
			ResY:        cfg.View.ResY,
			Step:        cfg.View.Step,
			MinDistance: cfg.View.MinDistance,
		},
		Player: player.Config{
			WalkSpeed: cfg.Player.WalkSpeed,
			TurnSpeed: cfg.Player.TurnSpeed,
			FOV:       cfg.Player.FOVDegrees * math.Pi / 180,
		},
		Palette:      lighting.DefaultPalette(),
		Minimap:      minimap.DefaultStyle(),
		MaxFrameTime: cfg.MaxFrameTime,
		Tracer:       tracer,
		SampleEvery:  cfg.Telemetry.SampleEvery,
	})
	if err != nil {
		return err
	}

	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, m.Name()))

	log.WithFields(logrus.Fields{
		"backend": cfg.Backend,
		"map":     m.Name(),
	}).Info("Starting game")

	if err := engine.RunGame(g); err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	log.WithField("frames", g.FrameCount).Info("Game ended")
	return nil
}

// setupLogging applies the configured level and output. The terminal
// backend owns the screen, so without a log file its logs are dropped.
func setupLogging(cfg *config.Config) (func(), error) {
	var out io.Writer
	closeFn := func() {}

	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case cfg.Backend == config.BackendTerminal:
		out = io.Discard
	}

	if err := logger.Setup(cfg.Log.Level, out); err != nil {
		closeFn()
		return nil, err
	}
	return closeFn, nil
}

// loadMap loads path, or the built-in sample when path is empty.
func loadMap(ctx context.Context, tracer trace.Tracer, path string) (*tilemap.Map, error) {
	_, span := tracer.Start(ctx, "map.load")
	defer span.End()

	var (
		m   *tilemap.Map
		err error
	)
	if path == "" {
		m, err = tilemap.Sample()
	} else {
		m, err = tilemap.LoadMap(path)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("map.path", path),
		attribute.String("map.name", m.Name()),
		attribute.Int("map.walls", m.Tiles.WallCount()),
	)
	logger.For("main").WithFields(logrus.Fields{
		"name":   m.Name(),
		"width":  m.Tiles.Width(),
		"height": m.Tiles.Height(),
	}).Info("Map loaded")
	return m, nil
}

// generateMap builds a random room-and-corridor map.
func generateMap(seed int64) (*tilemap.Map, error) {
	gc := room.DefaultGeneratorConfig()
	gc.Seed = seed
	m, rooms, err := room.NewGenerator(gc).Generate()
	if err != nil {
		return nil, err
	}
	logger.For("main").WithFields(logrus.Fields{
		"seed":  seed,
		"rooms": len(rooms),
		"walls": m.Tiles.WallCount(),
	}).Info("Map generated")
	return m, nil
}

// listMaps prints every valid map in dir.
func listMaps(w io.Writer, dir string) error {
	maps, err := tilemap.ScanMapDirectory(dir)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tWALLS\tPATH")
	for _, m := range maps {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%s\n", m.Name, m.Width, m.Height, m.Walls, m.Path)
	}
	return tw.Flush()
}
