package command

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	l, _ := newTestLight("hall")
	r := NewRegistry()

	on := NewLightOn(l)
	if err := r.Register("on", on); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register("off", NewLightOff(l)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := r.Get("on")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != Command(on) {
		t.Error("Get returned a different command")
	}
	if !r.Has("off") || r.Has("dim") {
		t.Error("Has returned wrong result")
	}
	if diff := cmp.Diff([]string{"off", "on"}, r.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
}

func TestRegistryErrors(t *testing.T) {
	l, _ := newTestLight("hall")
	r := NewRegistry()

	if err := r.Register("", NewLightOn(l)); !errors.Is(err, ErrInvalidName) {
		t.Errorf("empty name: got %v", err)
	}
	if err := r.Register("on", nil); !errors.Is(err, ErrNilCommand) {
		t.Errorf("nil command: got %v", err)
	}
	r.Register("on", NewLightOn(l))
	if err := r.Register("on", NewLightOn(l)); !errors.Is(err, ErrCommandExists) {
		t.Errorf("duplicate: got %v", err)
	}
	if _, err := r.Get("dim"); !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("missing: got %v", err)
	}
}

func TestRegistryUnregister(t *testing.T) {
	l, _ := newTestLight("hall")
	r := NewRegistry()
	r.Register("on", NewLightOn(l))

	r.Unregister("on")
	if r.Has("on") {
		t.Error("command should be removed")
	}
	if err := r.Register("on", NewLightOn(l)); err != nil {
		t.Errorf("re-register after unregister: %v", err)
	}
}
