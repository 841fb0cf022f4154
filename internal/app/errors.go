// Package app wires the light, its commands and the remote together and
// drives them from the demo sequence, a script or the interactive remote.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrNoScript indicates RunScript was called without a path.
	ErrNoScript = errors.New("no script configured")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "demo", "script", "interactive")
	Target string // Target of the operation (e.g., script path)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
