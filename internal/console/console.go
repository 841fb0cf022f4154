// Package console renders light and remote events as human-readable lines.
package console

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dshills/lightremote/internal/event"
	"github.com/dshills/lightremote/internal/light"
	"github.com/dshills/lightremote/internal/remote"
)

// Messages are the lines written for each observable outcome.
type Messages struct {
	On            string
	Off           string
	NothingToUndo string
}

// DefaultMessages returns the canonical lines.
func DefaultMessages() Messages {
	return Messages{
		On:            light.MessageOn,
		Off:           light.MessageOff,
		NothingToUndo: remote.MessageNothingToUndo,
	}
}

// Sink writes one line per observable outcome.
type Sink struct {
	mu   sync.Mutex
	w    io.Writer
	msgs Messages
	subs []*event.Subscription
	last string
}

// NewSink creates a sink writing to w.
func NewSink(w io.Writer, msgs Messages) *Sink {
	return &Sink{w: w, msgs: msgs}
}

// Attach subscribes the sink to bus.
func (s *Sink) Attach(bus *event.Bus) error {
	for _, pattern := range []event.Topic{event.TopicPatternLight, event.TopicNothingToUndo} {
		sub, err := bus.Subscribe(pattern, s)
		if err != nil {
			s.Detach()
			return fmt.Errorf("attach console sink: %w", err)
		}
		s.subs = append(s.subs, sub)
	}
	return nil
}

// Detach removes the sink's subscriptions.
func (s *Sink) Detach() {
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
}

// Handle implements event.Handler.
func (s *Sink) Handle(_ context.Context, ev event.Event) error {
	line, ok := s.line(ev)
	if !ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last = line
	_, err := fmt.Fprintln(s.w, line)
	return err
}

// Last returns the most recent line written.
func (s *Sink) Last() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Sink) line(ev event.Event) (string, bool) {
	switch ev.Topic {
	case event.TopicLightOn:
		return s.msgs.On, true
	case event.TopicLightOff:
		return s.msgs.Off, true
	case event.TopicNothingToUndo:
		return s.msgs.NothingToUndo, true
	default:
		return "", false
	}
}
