// Package config provides the runtime settings for the raycaster.
// Settings come from defaults, then an optional JSON file, then RAYCASTER_*
// environment variables; command-line flags are applied last by main.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names
const (
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "RAYCASTER_"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all runtime settings
type Config struct {
	Backend string `json:"backend"` // "ebiten" or "terminal"

	// Map selection: MapPath wins; empty plays the built-in sample
	MapPath string `json:"map"`
	MapDir  string `json:"map_dir"` // Directory listed by -list

	Window    WindowConfig    `json:"window"`
	View      ViewConfig      `json:"view"`
	Player    PlayerConfig    `json:"player"`
	Log       LogConfig       `json:"log"`
	Telemetry TelemetryConfig `json:"telemetry"`

	// Longest frame the game integrates in one step, in seconds
	MaxFrameTime float64 `json:"max_frame_time"`
	TerminalFPS  int     `json:"terminal_fps"`
}

// WindowConfig sizes the ebiten window
type WindowConfig struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

// ViewConfig sets the raycaster's logical resolution
type ViewConfig struct {
	ResX        int     `json:"res_x"`
	ResY        int     `json:"res_y"`
	Step        float64 `json:"step"`
	MinDistance float64 `json:"min_distance"`
}

// PlayerConfig sets movement speeds and the field of view
type PlayerConfig struct {
	WalkSpeed  float64 `json:"walk_speed"`  // tiles per second
	TurnSpeed  float64 `json:"turn_speed"`  // radians per second
	FOVDegrees float64 `json:"fov_degrees"` // full view cone
}

// LogConfig controls logrus output
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"` // Empty logs to stderr (discarded in terminal mode)
}

// TelemetryConfig controls OpenTelemetry tracing
type TelemetryConfig struct {
	Enabled     bool   `json:"enabled"`
	Endpoint    string `json:"endpoint"`     // OTLP/HTTP URL; empty uses OTEL_* env
	SampleEvery int    `json:"sample_every"` // Frames between frame.stats spans
}

// DefaultConfig returns the stock settings
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendEbiten,
		MapDir:  "maps",
		Window: WindowConfig{
			Width:  960,
			Height: 600,
			Title:  "Raycaster",
		},
		View: ViewConfig{
			ResX:        160,
			ResY:        100,
			Step:        0.1,
			MinDistance: 0.1,
		},
		Player: PlayerConfig{
			WalkSpeed:  3.0,
			TurnSpeed:  2.0,
			FOVDegrees: 90,
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			SampleEvery: 300,
		},
		MaxFrameTime: 0.1,
		TerminalFPS:  30,
	}
}

// LoadConfig loads config from a JSON file over the defaults. An empty
// path or a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return config, nil
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables already set. Files that do not exist are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from RAYCASTER_* variables found by lookup.
// Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	strs := map[string]*string{
		"BACKEND":       &c.Backend,
		"MAP":           &c.MapPath,
		"MAP_DIR":       &c.MapDir,
		"TITLE":         &c.Window.Title,
		"LOG_LEVEL":     &c.Log.Level,
		"LOG_FILE":      &c.Log.File,
		"OTLP_ENDPOINT": &c.Telemetry.Endpoint,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"WIDTH":        &c.Window.Width,
		"HEIGHT":       &c.Window.Height,
		"RES_X":        &c.View.ResX,
		"RES_Y":        &c.View.ResY,
		"TERMINAL_FPS": &c.TerminalFPS,
		"SAMPLE_EVERY": &c.Telemetry.SampleEvery,
	}
	for name, dst := range ints {
		if v, ok := get(name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	floats := map[string]*float64{
		"STEP":           &c.View.Step,
		"MIN_DISTANCE":   &c.View.MinDistance,
		"WALK_SPEED":     &c.Player.WalkSpeed,
		"TURN_SPEED":     &c.Player.TurnSpeed,
		"FOV":            &c.Player.FOVDegrees,
		"MAX_FRAME_TIME": &c.MaxFrameTime,
	}
	for name, dst := range floats {
		if v, ok := get(name); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
			*dst = f
		}
	}

	if v, ok := get("TELEMETRY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sTELEMETRY: %w", EnvPrefix, err)
		}
		c.Telemetry.Enabled = b
	}

	return nil
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendEbiten, BackendTerminal:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.View.ResX <= 0 || c.View.ResY <= 0 {
		return fmt.Errorf("%w: view resolution %dx%d", ErrInvalid, c.View.ResX, c.View.ResY)
	}
	if c.View.Step <= 0 || c.View.MinDistance <= 0 {
		return fmt.Errorf("%w: step and min_distance must be positive", ErrInvalid)
	}
	if c.Player.FOVDegrees <= 0 || c.Player.FOVDegrees >= 360 {
		return fmt.Errorf("%w: fov_degrees %v outside (0, 360)", ErrInvalid, c.Player.FOVDegrees)
	}
	if c.Player.WalkSpeed < 0 || c.Player.TurnSpeed < 0 {
		return fmt.Errorf("%w: speeds must not be negative", ErrInvalid)
	}
	if c.MaxFrameTime <= 0 {
		return fmt.Errorf("%w: max_frame_time must be positive", ErrInvalid)
	}
	if c.Telemetry.SampleEvery <= 0 {
		return fmt.Errorf("%w: telemetry sample_every must be positive", ErrInvalid)
	}
	return nil
}
