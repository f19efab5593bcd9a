package services

import (
	"context"
	"sync"
)

// Mutation tracks one create/update/delete operation's lifecycle:
// loading while in flight, then either success with the returned
// record retained, or a normalized error. Flags are sticky until
// Reset: callers clear state explicitly before the next attempt and
// pair a success with the list store's Refetch.
type Mutation[T any] struct {
	mu      sync.Mutex
	loading bool
	err     error
	success bool
	result  T
}

// Do runs the mutation function and records its outcome. Returns true
// on success. Each call is independent; concurrent calls are not
// queued and simply race on the flags, which mirrors how the forms
// disabled their submit button rather than serialize requests.
func (m *Mutation[T]) Do(ctx context.Context, fn func(context.Context) (T, error)) bool {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()

	result, err := fn(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loading = false
	if err != nil {
		m.err = err
		m.success = false
		return false
	}
	m.result = result
	m.err = nil
	m.success = true
	return true
}

// Reset clears all flags and the retained result.
func (m *Mutation[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero T
	m.loading = false
	m.err = nil
	m.success = false
	m.result = zero
}

// Loading reports whether a call is in flight.
func (m *Mutation[T]) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Err returns the error of the last attempt, or nil.
func (m *Mutation[T]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Success reports whether the last attempt succeeded.
func (m *Mutation[T]) Success() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.success
}

// Result returns the record retained from the last successful call.
func (m *Mutation[T]) Result() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.result
}
