package remote

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/lightremote/internal/command"
	"github.com/dshills/lightremote/internal/event"
	"github.com/dshills/lightremote/internal/logging"
)

// MessageNothingToUndo is the canonical line for an undo on empty history.
const MessageNothingToUndo = "No command to undo."

const source = "remote"

// RemoteControl invokes the selected command and records it for undo.
type RemoteControl struct {
	mu sync.Mutex

	selected command.Command
	history  *History

	pub    event.Publisher
	logger *zap.Logger
}

// Option configures a RemoteControl.
type Option func(*RemoteControl)

// WithPublisher sets where the remote reports its activity.
func WithPublisher(pub event.Publisher) Option {
	return func(rc *RemoteControl) {
		if pub != nil {
			rc.pub = pub
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(rc *RemoteControl) {
		rc.logger = logging.OrNop(logger)
	}
}

// WithMaxHistory caps the history depth. Zero means unbounded.
func WithMaxHistory(n int) Option {
	return func(rc *RemoteControl) {
		rc.history.SetMaxEntries(n)
	}
}

// New creates a remote control with nothing selected and empty history.
func New(opts ...Option) *RemoteControl {
	rc := &RemoteControl{
		history: NewHistory(0),
		pub:     event.Discard,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// SetCommand replaces the selected command. It has no effect on the
// receiver or the history. A nil command clears the selection.
func (rc *RemoteControl) SetCommand(cmd command.Command) {
	rc.mu.Lock()
	rc.selected = cmd
	rc.mu.Unlock()

	if cmd == nil {
		rc.logger.Debug("selection cleared")
		return
	}
	rc.logger.Debug("command selected", zap.String("command", cmd.Description()))
	rc.publish(event.TopicCommandSelected, cmd.Description())
}

// Selected returns the selected command, or nil.
func (rc *RemoteControl) Selected() command.Command {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.selected
}

// PressButton executes the selected command and pushes it onto the history.
// A command whose Execute fails is not recorded.
func (rc *RemoteControl) PressButton() error {
	rc.mu.Lock()
	cmd := rc.selected
	rc.mu.Unlock()

	if cmd == nil {
		rc.logger.Warn("button pressed with no command selected")
		return ErrNoCommandSelected
	}

	// Execute without holding the lock; commands publish events whose
	// handlers may query the remote.
	if err := cmd.Execute(); err != nil {
		rc.logger.Error("command failed", zap.String("command", cmd.Description()), zap.Error(err))
		return fmt.Errorf("execute %s: %w", cmd.Description(), err)
	}

	rc.mu.Lock()
	info := rc.history.Push(cmd)
	depth := rc.history.Len()
	rc.mu.Unlock()

	rc.logger.Info("command executed",
		zap.String("command", info.Description),
		zap.String("entry", info.ID),
		zap.Int("depth", depth),
	)
	rc.publish(event.TopicButtonPressed, info.Description)
	return nil
}

// PressUndo undoes the most recently executed command and removes it from
// the history. It reports false when the history is empty; that case is not
// an error. If Undo fails the entry stays on the history.
func (rc *RemoteControl) PressUndo() (bool, error) {
	rc.mu.Lock()
	e, err := rc.history.pop()
	rc.mu.Unlock()

	if err != nil {
		rc.logger.Info("nothing to undo")
		rc.publish(event.TopicNothingToUndo, MessageNothingToUndo)
		return false, nil
	}

	if err := e.command.Undo(); err != nil {
		rc.mu.Lock()
		rc.history.push(e)
		rc.mu.Unlock()
		rc.logger.Error("undo failed", zap.String("command", e.command.Description()), zap.Error(err))
		return false, fmt.Errorf("undo %s: %w", e.command.Description(), err)
	}

	rc.logger.Info("command undone",
		zap.String("command", e.command.Description()),
		zap.String("entry", e.id.String()),
	)
	rc.publish(event.TopicUndoPerformed, e.command.Description())
	return true, nil
}

// CanUndo returns true if the history is non-empty.
func (rc *RemoteControl) CanUndo() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.history.Len() > 0
}

// UndoCount returns the number of commands that can be undone.
func (rc *RemoteControl) UndoCount() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.history.Len()
}

// PeekUndo returns info about the next command PressUndo would reverse.
func (rc *RemoteControl) PeekUndo() (EntryInfo, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.history.Peek()
}

// History returns info about every recorded command, oldest first.
func (rc *RemoteControl) History() []EntryInfo {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.history.Entries()
}

// Clear drops the history without undoing anything.
func (rc *RemoteControl) Clear() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.history.Clear()
}

func (rc *RemoteControl) publish(t event.Topic, msg string) {
	if err := rc.pub.Publish(context.Background(), event.New(t, source, msg)); err != nil {
		rc.logger.Warn("publish remote event", zap.Stringer("topic", t), zap.Error(err))
	}
}
