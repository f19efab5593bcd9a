package services

import (
	"sync"
	"time"
)

// Debouncer delays propagation of a rapidly-changing value until it
// has been stable for the configured quiet period. It gates free-text
// search input so one request fires per pause in typing rather than
// one per keystroke, and settles bursts of file events in the import
// watcher.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	emit    func(T)
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer that calls emit with the final
// value once the input has been quiet for delay. emit runs on a timer
// goroutine.
func NewDebouncer[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, emit: emit}
}

// Set feeds a new value, cancelling any pending propagation. Each call
// advances a generation; the timer callback re-checks it under the
// lock, so a timer that fired just as a newer Set arrived cannot slip
// the superseded value through (timer.Stop cannot recall a callback
// already in flight).
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if d.stopped || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()
		d.emit(value)
	})
}

// Stop cancels any pending propagation permanently. Called on view
// teardown so a late timer cannot touch dead state.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
