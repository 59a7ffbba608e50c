package component

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

type mockComponent struct {
	name     string
	startErr error
	stopErr  error
	health   Health
	events   *[]string
}

func (m *mockComponent) Name() string { return m.name }

func (m *mockComponent) Start(context.Context) error {
	if m.events != nil {
		*m.events = append(*m.events, "start:"+m.name)
	}
	return m.startErr
}

func (m *mockComponent) Stop(context.Context) error {
	if m.events != nil {
		*m.events = append(*m.events, "stop:"+m.name)
	}
	return m.stopErr
}

func (m *mockComponent) Health(context.Context) Health { return m.health }

type describedComponent struct{ mockComponent }

func (d *describedComponent) Describe() Description {
	return Description{Type: "httpclient", Details: "https://api.example.com"}
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.Register(&mockComponent{name: "api"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&mockComponent{name: "api"}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}

func TestRegistry_StartStopOrder(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "telemetry", events: &events})
	_ = r.Register(&describedComponent{mockComponent{name: "api", events: &events}})
	_ = r.Register(&mockComponent{name: "echo", events: &events})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatalf("StopAll failed: %v", err)
	}

	want := []string{"start:telemetry", "start:api", "start:echo", "stop:echo", "stop:api", "stop:telemetry"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestRegistry_StartFailureStopsStarted(t *testing.T) {
	var events []string
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "a", events: &events})
	_ = r.Register(&mockComponent{name: "b", startErr: errors.New("boom"), events: &events})
	_ = r.Register(&mockComponent{name: "c", events: &events})

	err := r.StartAll(context.Background())
	if err == nil || !strings.Contains(err.Error(), "failed to start b") {
		t.Fatalf("expected start failure for b, got %v", err)
	}
	want := []string{"start:a", "start:b", "stop:a"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("expected %v, got %v", want, events)
	}
}

func TestRegistry_StopAllCombinesErrors(t *testing.T) {
	r := NewRegistry(nil)
	_ = r.Register(&mockComponent{name: "a", stopErr: errors.New("a down")})
	_ = r.Register(&mockComponent{name: "b", stopErr: errors.New("b down")})
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll failed: %v", err)
	}

	err := r.StopAll(context.Background())
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected 2 combined errors, got %d: %v", got, err)
	}

	if err := r.StopAll(context.Background()); err != nil {
		t.Errorf("second StopAll should be a no-op, got %v", err)
	}
}

func TestRegistry_HealthAndLookup(t *testing.T) {
	r := NewRegistry(nil)
	api := &mockComponent{name: "api", health: Health{Name: "api", Status: StatusHealthy}}
	_ = r.Register(api)
	_ = r.Register(&mockComponent{name: "echo", health: Health{Name: "echo", Status: StatusDegraded}})

	health := r.HealthAll(context.Background())
	if len(health) != 2 || health[0].Status != StatusHealthy || health[1].Status != StatusDegraded {
		t.Errorf("unexpected health: %+v", health)
	}
	if r.Get("api") != api {
		t.Error("expected Get to return the registered component")
	}
	if r.Get("missing") != nil {
		t.Error("expected nil for unknown component")
	}
	if len(r.All()) != 2 {
		t.Errorf("expected 2 components, got %d", len(r.All()))
	}
}
