package terminal

import (
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/raycaster/internal/logger"
	"chosenoffset.com/raycaster/internal/render"
)

var log = logger.For("terminal")

// DefaultFPS is the frame rate the engine ticks at.
const DefaultFPS = 30

// Engine runs a game in the terminal with a ticker-driven frame loop.
type Engine struct {
	fps    int
	title  string
	input  *Input
	canvas *Canvas
}

// NewEngine creates a terminal engine ticking at fps; zero selects
// DefaultFPS.
func NewEngine(fps int) *Engine {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Engine{
		fps:    fps,
		input:  NewInput(0),
		canvas: NewCanvas(0, 0),
	}
}

// SetWindowSize is a no-op; the terminal decides the size.
func (e *Engine) SetWindowSize(width, height int) {}

// SetWindowTitle sets the terminal title when the frame loop starts.
func (e *Engine) SetWindowTitle(title string) {
	e.title = title
}

// Input returns the key-driven input source.
func (e *Engine) Input() render.Input {
	return e.input
}

// RunGame takes over the terminal until the game returns render.ErrQuit,
// another error, or Ctrl-C is pressed.
func (e *Engine) RunGame(game render.Game) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal screen: %w", err)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	screen.HideCursor()
	if e.title != "" {
		screen.SetTitle(e.title)
	}
	screen.Clear()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(screen, events, done)

	cols, rows := screen.Size()
	e.canvas.Resize(cols, rows*2)
	log.WithField("cols", cols).WithField("rows", rows).Info("Terminal frame loop started")

	ticker := time.NewTicker(time.Second / time.Duration(e.fps))
	defer ticker.Stop()

	last := time.Now()
	for now := range ticker.C {
		for pending := true; pending; {
			select {
			case ev := <-events:
				if quit := e.handle(screen, ev, now); quit {
					return nil
				}
			default:
				pending = false
			}
		}

		e.input.Sample(now)
		dt := now.Sub(last).Seconds()
		last = now

		if err := game.Update(dt); err != nil {
			if errors.Is(err, render.ErrQuit) {
				return nil
			}
			return err
		}

		game.Draw(e.canvas)
		e.canvas.Present(screen)
		screen.Show()
	}
	return nil
}

// handle applies one event and reports whether the loop should stop.
func (e *Engine) handle(screen tcell.Screen, ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return true
		}
		e.input.Handle(ev, now)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		e.canvas.Resize(cols, rows*2)
		screen.Sync()
	}
	return false
}

// pumpEvents forwards screen events until the screen is finalised or the
// loop exits.
func pumpEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
