package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // Up arrow, W, K - slide tiles up
	ActionDown              // Down arrow, S, J - slide tiles down
	ActionLeft              // Left arrow, A, H - slide tiles left
	ActionRight             // Right arrow, D, L - slide tiles right
	ActionUndo              // U, Backspace - undo the last move
	ActionRestart           // R - start a new game
	ActionToggleUndo        // X - enable/disable undo before the first move
	ActionGrow              // + - larger board before the first move
	ActionShrink            // - - smaller board before the first move
	ActionQuit              // Q, Ctrl+C - exit
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
	case ActionUndo:
		return "Undo"
	case ActionRestart:
		return "Restart"
	case ActionToggleUndo:
		return "ToggleUndo"
	case ActionGrow:
		return "Grow"
	case ActionShrink:
		return "Shrink"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// order keeps the sequence keys arrived in, so two quick moves in one tick
	// are applied in the order they were pressed.
	order []Action
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
	f.order = append(f.order, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Sequence returns the triggered actions in arrival order, repeats included.
func (f InputFrame) Sequence() []Action {
	return append([]Action(nil), f.order...)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.order = f.order[:0]
}
