package event

import (
	"context"
	"time"

	"github.com/dshills/lightremote/internal/event/topic"
)

// Topic is an alias for topic.Topic for convenience.
type Topic = topic.Topic

// Well-known topics.
const (
	TopicLightOn          topic.Topic = "light.on"
	TopicLightOff         topic.Topic = "light.off"
	TopicCommandSelected  topic.Topic = "remote.command.selected"
	TopicButtonPressed    topic.Topic = "remote.button.pressed"
	TopicUndoPerformed    topic.Topic = "remote.undo.performed"
	TopicNothingToUndo    topic.Topic = "remote.undo.empty"
	TopicPatternLight     topic.Topic = "light.*"
	TopicPatternRemoteAll topic.Topic = "remote.**"
)

// Event is a single observable occurrence.
type Event struct {
	// Topic identifies what happened.
	Topic topic.Topic

	// Source names the component that published the event.
	Source string

	// Message is an optional human-readable description.
	Message string

	// Time is when the event was created.
	Time time.Time
}

// New creates an event stamped with the current time.
func New(t topic.Topic, source, message string) Event {
	return Event{
		Topic:   t,
		Source:  source,
		Message: message,
		Time:    time.Now(),
	}
}

// Handler processes delivered events.
type Handler interface {
	Handle(ctx context.Context, ev Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, ev Event) error

// Handle calls f(ctx, ev).
func (f HandlerFunc) Handle(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Publisher is the narrow interface components use to emit events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, ev Event) error

// Publish calls f(ctx, ev).
func (f PublisherFunc) Publish(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Discard is a Publisher that drops every event.
var Discard Publisher = PublisherFunc(func(context.Context, Event) error { return nil })
