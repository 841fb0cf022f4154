// Package light provides the receiver the remote control operates on.
package light

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/lightremote/internal/event"
	"github.com/dshills/lightremote/internal/logging"
)

// Canonical output lines.
const (
	MessageOn  = "The light is ON."
	MessageOff = "The light is OFF."
)

// Light is a switchable light. On and Off never fail; every call publishes
// an event, even when the light is already in the requested state.
type Light struct {
	name   string
	pub    event.Publisher
	logger *zap.Logger
	on     atomic.Bool
}

// Option configures a Light.
type Option func(*Light)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Light) {
		l.logger = logging.OrNop(logger)
	}
}

// New creates a light that reports its changes to pub.
// A nil publisher discards events.
func New(name string, pub event.Publisher, opts ...Option) *Light {
	if pub == nil {
		pub = event.Discard
	}
	l := &Light{
		name:   name,
		pub:    pub,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With(zap.String("light", name))
	return l
}

// Name returns the light's name.
func (l *Light) Name() string {
	return l.name
}

// IsOn reports whether the last operation turned the light on.
func (l *Light) IsOn() bool {
	return l.on.Load()
}

// On turns the light on.
func (l *Light) On() {
	l.on.Store(true)
	l.emit(event.TopicLightOn, MessageOn)
}

// Off turns the light off.
func (l *Light) Off() {
	l.on.Store(false)
	l.emit(event.TopicLightOff, MessageOff)
}

func (l *Light) emit(t event.Topic, msg string) {
	l.logger.Debug("light switched", zap.Stringer("topic", t))
	if err := l.pub.Publish(context.Background(), event.New(t, l.name, msg)); err != nil {
		l.logger.Warn("publish light event", zap.Error(err))
	}
}
