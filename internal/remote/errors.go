package remote

import "errors"

// Common errors for remote operations.
var (
	// ErrNoCommandSelected is returned by PressButton before any SetCommand.
	ErrNoCommandSelected = errors.New("no command selected")

	// ErrNothingToUndo is returned when the history stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)
