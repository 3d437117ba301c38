package terminal

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/raycaster/internal/render"
)

// DefaultHold is how long a key counts as held after its last press or
// repeat event. Terminals do not report key releases.
const DefaultHold = 200 * time.Millisecond

// Input turns key events into held actions that expire after a hold time.
type Input struct {
	hold    time.Duration
	expires map[render.Action]time.Time
	now     time.Time
}

// NewInput creates an input with the given hold time; zero selects
// DefaultHold.
func NewInput(hold time.Duration) *Input {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Input{
		hold:    hold,
		expires: make(map[render.Action]time.Time),
	}
}

// Handle records a key event received at t. It reports false for keys
// with no binding.
func (in *Input) Handle(ev *tcell.EventKey, t time.Time) bool {
	action, ok := ActionFor(ev)
	if !ok {
		return false
	}
	in.expires[action] = t.Add(in.hold)
	return true
}

// Sample fixes the time Pressed is evaluated at for this frame.
func (in *Input) Sample(now time.Time) {
	in.now = now
}

// Pressed reports whether the action was seen within the hold time.
func (in *Input) Pressed(a render.Action) bool {
	exp, ok := in.expires[a]
	return ok && in.now.Before(exp)
}

// ActionFor maps a key event to an action: arrows or WASD move and turn,
// R resets, Esc or Q quits, Enter and Space are the spare buttons.
func ActionFor(ev *tcell.EventKey) (render.Action, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return render.MoveForward, true
	case tcell.KeyDown:
		return render.MoveBackward, true
	case tcell.KeyLeft:
		return render.TurnLeft, true
	case tcell.KeyRight:
		return render.TurnRight, true
	case tcell.KeyEscape:
		return render.ActionB, true
	case tcell.KeyEnter:
		return render.ActionX, true
	case tcell.KeyRune:
		switch unicode.ToLower(ev.Rune()) {
		case 'w':
			return render.MoveForward, true
		case 's':
			return render.MoveBackward, true
		case 'a':
			return render.TurnLeft, true
		case 'd':
			return render.TurnRight, true
		case 'r':
			return render.ActionA, true
		case 'q':
			return render.ActionB, true
		case ' ':
			return render.ActionY, true
		}
	}
	return 0, false
}
