package event

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/lightremote/internal/event/topic"
)

// Stats contains bus counters.
type Stats struct {
	EventsPublished  uint64
	EventsDelivered  uint64
	HandlerErrors    uint64
	HandlerPanics    uint64
	SubscriptionsNow int
}

// Subscription is a registered handler for a topic pattern.
type Subscription struct {
	id      string
	pattern topic.Topic
	handler Handler
	bus     *Bus
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed topic pattern.
func (s *Subscription) Topic() topic.Topic { return s.pattern }

// Cancel removes the subscription from its bus.
// Safe to call more than once.
func (s *Subscription) Cancel() {
	_ = s.bus.Unsubscribe(s)
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used to report handler failures.
func WithLogger(logger *zap.Logger) BusOption {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Bus is a synchronous in-process event bus.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	nextID atomic.Uint64

	logger *zap.Logger

	published atomic.Uint64
	delivered atomic.Uint64
	errs      atomic.Uint64
	panics    atomic.Uint64
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers handler for every event whose topic matches pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler) (*Subscription, error) {
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if handler == nil {
		return nil, ErrNilHandler
	}

	sub := &Subscription{
		id:      "sub-" + strconv.FormatUint(b.nextID.Add(1), 10),
		pattern: pattern,
		handler: handler,
		bus:     b,
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return sub, nil
}

// SubscribeFunc registers a function handler.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilHandler
	}
	return b.Subscribe(pattern, fn)
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers ev to every matching subscription, in subscription order.
// Handler failures are logged and joined into the returned error; they do not
// stop delivery to later handlers.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if !ev.Topic.IsValid() || ev.Topic.IsWildcard() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, ev.Topic)
	}

	b.published.Add(1)

	b.mu.RLock()
	subs := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if ev.Topic.Matches(s.pattern) {
			subs = append(subs, s)
		}
	}
	b.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if err := b.deliver(ctx, s, ev); err != nil {
			b.errs.Add(1)
			b.logger.Warn("event handler failed",
				zap.String("subscription", s.id),
				zap.Stringer("topic", ev.Topic),
				zap.Error(err),
			)
			errs = append(errs, &HandlerError{SubscriptionID: s.id, Topic: ev.Topic.String(), Err: err})
			continue
		}
		b.delivered.Add(1)
	}

	return errors.Join(errs...)
}

func (b *Bus) deliver(ctx context.Context, s *Subscription, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return s.handler.Handle(ctx, ev)
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	n := len(b.subs)
	b.mu.RUnlock()

	return Stats{
		EventsPublished:  b.published.Load(),
		EventsDelivered:  b.delivered.Load(),
		HandlerErrors:    b.errs.Load(),
		HandlerPanics:    b.panics.Load(),
		SubscriptionsNow: n,
	}
}
