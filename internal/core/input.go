package core

import (
	"maps"
	"slices"
)

// Action is a semantic game action, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // move the cursor up
	ActionDown           // move the cursor down
	ActionLeft           // move the cursor left
	ActionRight          // move the cursor right
	ActionSelect         // Space/Enter on the board - select a ball or move to the cursor
	ActionBack           // Escape - back to the menu
	ActionRestart        // R or N - start a new game
	ActionQuit           // Q, Ctrl+C - exit
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionSelect:  "Select",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// PointerKind distinguishes mouse motion from clicks.
type PointerKind int

const (
	PointerMove PointerKind = iota
	PointerClick
	PointerLeave
)

// PointerEvent is a mouse event in screen cells.
type PointerEvent struct {
	X, Y int
	Kind PointerKind
}

// InputFrame collects the input for one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Pointer holds mouse events in arrival order.
	Pointer []PointerEvent
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
	return f.Actions[a]
}

// Point records a mouse event for this frame.
func (f *InputFrame) Point(ev PointerEvent) {
	f.Pointer = append(f.Pointer, ev)
}

// Empty reports whether the frame carries no input.
func (f InputFrame) Empty() bool {
	for _, on := range f.Actions {
		if on {
			return false
		}
	}
	return len(f.Pointer) == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.Pointer = f.Pointer[:0]
}

// Clone copies the frame; the copy shares nothing with f.
func (f InputFrame) Clone() InputFrame {
	return InputFrame{
		Actions: maps.Clone(f.Actions),
		Pointer: slices.Clone(f.Pointer),
	}
}
