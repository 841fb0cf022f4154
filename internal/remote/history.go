package remote

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/lightremote/internal/command"
)

// entry wraps a command with metadata.
type entry struct {
	id        uuid.UUID
	command   command.Command
	timestamp time.Time
}

func (e *entry) info() EntryInfo {
	return EntryInfo{
		ID:          e.id.String(),
		Description: e.command.Description(),
		Timestamp:   e.timestamp,
	}
}

// EntryInfo describes a history entry.
type EntryInfo struct {
	ID          string
	Description string
	Timestamp   time.Time
}

// History is a LIFO stack of executed commands.
// It is not safe for concurrent use; RemoteControl guards it.
type History struct {
	entries []*entry

	// maxEntries caps the stack depth; zero means unbounded.
	maxEntries int
}

// NewHistory creates a history. A maxEntries of zero or less means unbounded.
func NewHistory(maxEntries int) *History {
	if maxEntries < 0 {
		maxEntries = 0
	}
	return &History{maxEntries: maxEntries}
}

// Push adds a command to the top of the stack.
func (h *History) Push(cmd command.Command) EntryInfo {
	e := &entry{
		id:        uuid.New(),
		command:   cmd,
		timestamp: time.Now(),
	}
	h.push(e)
	return e.info()
}

func (h *History) push(e *entry) {
	h.entries = append(h.entries, e)
	h.trim()
}

func (h *History) trim() {
	if h.maxEntries > 0 && len(h.entries) > h.maxEntries {
		excess := len(h.entries) - h.maxEntries
		h.entries = h.entries[excess:]
	}
}

// pop removes and returns the most recent entry.
func (h *History) pop() (*entry, error) {
	if len(h.entries) == 0 {
		return nil, ErrNothingToUndo
	}
	e := h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = nil
	h.entries = h.entries[:len(h.entries)-1]
	return e, nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Peek returns info about the most recent entry without removing it.
func (h *History) Peek() (EntryInfo, bool) {
	if len(h.entries) == 0 {
		return EntryInfo{}, false
	}
	return h.entries[len(h.entries)-1].info(), true
}

// Entries returns info about all entries, oldest first.
func (h *History) Entries() []EntryInfo {
	result := make([]EntryInfo, len(h.entries))
	for i, e := range h.entries {
		result[i] = e.info()
	}
	return result
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = nil
}

// SetMaxEntries changes the maximum depth.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max < 0 {
		max = 0
	}
	h.maxEntries = max
	h.trim()
}

// MaxEntries returns the maximum depth; zero means unbounded.
func (h *History) MaxEntries() int {
	return h.maxEntries
}
