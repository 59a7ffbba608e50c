package interceptor

import (
	"context"
	"sync"
	"sync/atomic"
)

// Fulfilled transforms the current value of a chain. Returning a nil value
// keeps the current value unchanged.
type Fulfilled[T any] func(ctx context.Context, v *T) (*T, error)

// Rejected handles an error raised earlier in a chain. Returning a non-nil
// value with a nil error recovers from it.
type Rejected[T any] func(ctx context.Context, err error) (*T, error)

// HandlerID identifies a registered slot. Ids are never reused.
type HandlerID int

type slot[T any] struct {
	onFulfilled Fulfilled[T]
	onRejected  Rejected[T]
	ejected     atomic.Bool
}

func (s *slot[T]) active() bool { return !s.ejected.Load() }

// Manager is an ordered registry of handler pairs. It is safe for concurrent
// use: Use and Eject may be called while chains are running.
type Manager[T any] struct {
	mu    sync.RWMutex
	slots []*slot[T]
}

// NewManager creates an empty manager.
func NewManager[T any]() *Manager[T] {
	return &Manager[T]{}
}

// Use appends a handler pair and returns its id. Either handler may be nil.
func (m *Manager[T]) Use(onFulfilled Fulfilled[T], onRejected Rejected[T]) HandlerID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = append(m.slots, &slot[T]{onFulfilled: onFulfilled, onRejected: onRejected})
	return HandlerID(len(m.slots) - 1)
}

// Eject deactivates the slot with the given id. Ejecting an unknown or
// already ejected id is a no-op.
func (m *Manager[T]) Eject(id HandlerID) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id < 0 || int(id) >= len(m.slots) {
		return
	}
	m.slots[id].ejected.Store(true)
}

// Len returns the number of active slots.
func (m *Manager[T]) Len() int {
	n := 0
	for _, s := range m.snapshot() {
		if s.active() {
			n++
		}
	}
	return n
}

// snapshot returns the slots registered so far. Slots appended after the
// call are not visible to the caller; tombstones set later are.
func (m *Manager[T]) snapshot() []*slot[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.slots[:len(m.slots):len(m.slots)]
}

// RunFulfilled passes v through every active Fulfilled handler in
// registration order.
//
// When a Fulfilled handler fails and its own slot has a Rejected handler,
// that handler gets the error and the chain continues with the next slot.
// Otherwise the error is returned immediately and remaining slots are
// skipped.
func (m *Manager[T]) RunFulfilled(ctx context.Context, v *T) (*T, error) {
	current := v
	for _, s := range m.snapshot() {
		if !s.active() || s.onFulfilled == nil {
			continue
		}

		next, err := s.onFulfilled(ctx, current)
		if err != nil {
			if s.onRejected == nil {
				return nil, err
			}
			next, err = s.onRejected(ctx, err)
			if err != nil {
				return nil, err
			}
		}
		if next != nil {
			current = next
		}
	}
	return current, nil
}

// RunRejected offers err to every active Rejected handler in registration
// order. The first handler that returns a value ends the chain and that
// value is returned with a nil error. A handler that returns an error
// replaces the current error. If no handler recovers, the last error is
// returned.
func (m *Manager[T]) RunRejected(ctx context.Context, err error) (*T, error) {
	current := err
	for _, s := range m.snapshot() {
		if !s.active() || s.onRejected == nil {
			continue
		}

		recovered, herr := s.onRejected(ctx, current)
		if herr != nil {
			current = herr
			continue
		}
		if recovered != nil {
			return recovered, nil
		}
	}
	return nil, current
}
