package render

// Action is a logical input button, independent of any device encoding.
type Action int

// Action constants
const (
	MoveForward Action = iota
	MoveBackward
	TurnLeft
	TurnRight
	ActionA
	ActionB
	ActionX
	ActionY

	actionCount
)

// Actions lists every action in declaration order.
func Actions() []Action {
	all := make([]Action, 0, actionCount)
	for a := MoveForward; a < actionCount; a++ {
		all = append(all, a)
	}
	return all
}

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case MoveForward:
		return "move_forward"
	case MoveBackward:
		return "move_backward"
	case TurnLeft:
		return "turn_left"
	case TurnRight:
		return "turn_right"
	case ActionA:
		return "a"
	case ActionB:
		return "b"
	case ActionX:
		return "x"
	case ActionY:
		return "y"
	default:
		return "unknown"
	}
}

// Input reports the frame-sampled state of each action.
type Input interface {
	Pressed(a Action) bool
}

// Up reports whether MoveForward is held.
func Up(in Input) bool { return in.Pressed(MoveForward) }

// Down reports whether MoveBackward is held.
func Down(in Input) bool { return in.Pressed(MoveBackward) }

// Left reports whether TurnLeft is held.
func Left(in Input) bool { return in.Pressed(TurnLeft) }

// Right reports whether TurnRight is held.
func Right(in Input) bool { return in.Pressed(TurnRight) }

// ActionSet is a fixed set of held actions. It implements Input and is
// what backends fill in once per frame.
type ActionSet [actionCount]bool

// Pressed reports whether the action is held.
func (s *ActionSet) Pressed(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s[a]
}

// Set marks an action as held or released.
func (s *ActionSet) Set(a Action, held bool) {
	if a < 0 || a >= actionCount {
		return
	}
	s[a] = held
}

// Reset releases every action.
func (s *ActionSet) Reset() {
	*s = ActionSet{}
}
