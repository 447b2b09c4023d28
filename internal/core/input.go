package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // Left arrow, A - shift left
	ActionRight           // Right arrow, D - shift right
	ActionDown            // Down arrow, S - soft drop one row
	ActionRotate          // Up arrow, W, X - rotate clockwise
	ActionHardDrop        // Space - drop and lock
	ActionHold            // C - swap with the hold slot
	ActionPause           // P, Escape - pause/unpause game
	ActionRestart         // R - start a new game
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B - go back to menu
	ActionQuit            // Q, Ctrl+C - exit game/session
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionLeft:     "left",
	ActionRight:    "right",
	ActionDown:     "down",
	ActionRotate:   "rotate",
	ActionHardDrop: "hard_drop",
	ActionHold:     "hold",
	ActionPause:    "pause",
	ActionRestart:  "restart",
	ActionConfirm:  "confirm",
	ActionBack:     "back",
	ActionQuit:     "quit",
}

// String returns the stable name of the action.
// Names are persisted in replay logs, so they must not change.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction converts a name produced by String back into an Action.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame holds the actions triggered during one simulation tick,
// in the order they arrived.
type InputFrame struct {
	actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame. ActionNone is dropped.
// Repeated actions are kept so two quick presses move a piece twice.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.actions = append(f.actions, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, got := range f.actions {
		if got == a {
			return true
		}
	}
	return false
}

// Actions returns the triggered actions in arrival order.
func (f InputFrame) Actions() []Action {
	out := make([]Action, len(f.actions))
	copy(out, f.actions)
	return out
}

// Len returns the number of actions in this frame.
func (f InputFrame) Len() int {
	return len(f.actions)
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.actions = nil
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{actions: f.Actions()}
}
