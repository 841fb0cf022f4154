package console

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/lightremote/internal/event"
)

func publishAll(t *testing.T, bus *event.Bus, topics ...event.Topic) {
	t.Helper()
	for _, tp := range topics {
		if err := bus.Publish(context.Background(), event.New(tp, "test", "")); err != nil {
			t.Fatalf("Publish(%s): %v", tp, err)
		}
	}
}

func TestSinkWritesCanonicalLines(t *testing.T) {
	var buf bytes.Buffer
	bus := event.NewBus()
	sink := NewSink(&buf, DefaultMessages())
	if err := sink.Attach(bus); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	publishAll(t, bus,
		event.TopicLightOn,
		event.TopicButtonPressed,
		event.TopicLightOff,
		event.TopicNothingToUndo,
	)

	want := "The light is ON.\nThe light is OFF.\nNo command to undo.\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
	if sink.Last() != "No command to undo." {
		t.Errorf("Last = %q", sink.Last())
	}
}

func TestSinkCustomMessages(t *testing.T) {
	var buf bytes.Buffer
	bus := event.NewBus()
	sink := NewSink(&buf, Messages{On: "lumos", Off: "nox", NothingToUndo: "nothing"})
	sink.Attach(bus)

	publishAll(t, bus, event.TopicLightOn, event.TopicLightOff, event.TopicNothingToUndo)

	if diff := cmp.Diff("lumos\nnox\nnothing\n", buf.String()); diff != "" {
		t.Errorf("output (-want +got):\n%s", diff)
	}
}

func TestSinkDetach(t *testing.T) {
	var buf bytes.Buffer
	bus := event.NewBus()
	sink := NewSink(&buf, DefaultMessages())
	sink.Attach(bus)
	sink.Detach()

	publishAll(t, bus, event.TopicLightOn)

	if buf.Len() != 0 {
		t.Errorf("detached sink wrote %q", buf.String())
	}
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestSinkWriteError(t *testing.T) {
	bus := event.NewBus()
	sink := NewSink(errWriter{}, DefaultMessages())
	sink.Attach(bus)

	err := bus.Publish(context.Background(), event.New(event.TopicLightOn, "test", ""))
	if err == nil {
		t.Error("expected write error to surface from Publish")
	}
}
