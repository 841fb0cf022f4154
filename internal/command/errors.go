package command

import "errors"

// Registry errors.
var (
	// ErrCommandNotFound is returned when no command is registered under a name.
	ErrCommandNotFound = errors.New("command not found")

	// ErrCommandExists is returned when registering a name twice.
	ErrCommandExists = errors.New("command already registered")

	// ErrInvalidName is returned for empty command names.
	ErrInvalidName = errors.New("invalid command name")

	// ErrNilCommand is returned when registering a nil command.
	ErrNilCommand = errors.New("command cannot be nil")
)
