package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionFire           // Space - forward cannons
	ActionSpecial        // E - shockwave
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
	ActionDebug          // G - collision overlay
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionSpecial:
		return "Special"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionDebug:
		return "Debug"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Direction returns the movement intent of this frame as (dx, dy), each in
// {-1, 0, 1}. Screen coordinates: +y is down.
func (f InputFrame) Direction() (dx, dy int) {
	if f.Has(ActionLeft) {
		dx--
	}
	if f.Has(ActionRight) {
		dx++
	}
	if f.Has(ActionUp) {
		dy--
	}
	if f.Has(ActionDown) {
		dy++
	}
	return dx, dy
}
