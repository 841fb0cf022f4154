package script

import "errors"

// ErrTimeout is returned when a script exceeds its time budget.
var ErrTimeout = errors.New("script timed out")

// Error reports a failure inside a script. Its message is the underlying
// error alone; Lua errors already carry the chunk name and line.
type Error struct {
	// Script is the chunk name; the file's base name for RunFile.
	Script string
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
