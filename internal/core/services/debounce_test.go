package services

import (
	"sync"
	"testing"
	"time"
)

type emitRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *emitRecorder) emit(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, v)
}

func (r *emitRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebouncerCollapsesRapidChangesToFinalValue(t *testing.T) {
	rec := &emitRecorder{}
	d := NewDebouncer(50*time.Millisecond, rec.emit)
	defer d.Stop()

	// A user typing "Mon" inside the quiet period.
	d.Set("M")
	d.Set("Mo")
	d.Set("Mon")

	time.Sleep(200 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("expected exactly one propagation, got %d: %v", len(got), got)
	}
	if got[0] != "Mon" {
		t.Errorf("propagated value = %q, want final value Mon", got[0])
	}
}

func TestDebouncerEmitsAgainAfterQuietPeriod(t *testing.T) {
	rec := &emitRecorder{}
	d := NewDebouncer(30*time.Millisecond, rec.emit)
	defer d.Stop()

	d.Set("first")
	time.Sleep(120 * time.Millisecond)
	d.Set("second")
	time.Sleep(120 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("expected [first second], got %v", got)
	}
}

func TestDebouncerNeverEmitsSupersededValueOutOfOrder(t *testing.T) {
	rec := &emitRecorder{}
	delay := 2 * time.Millisecond
	d := NewDebouncer(delay, rec.emit)
	defer d.Stop()

	// Space the sets right at the quiet-period boundary so timer expiry
	// races the next Set. A fired timer must not emit its value once a
	// newer Set has advanced the generation.
	values := []string{"a", "ab", "abc", "abcd", "abcde"}
	for _, v := range values {
		d.Set(v)
		time.Sleep(delay)
	}
	time.Sleep(20 * delay)

	got := rec.snapshot()
	if len(got) == 0 {
		t.Fatal("expected at least the final value to propagate")
	}
	if got[len(got)-1] != "abcde" {
		t.Errorf("last propagated value = %q, want abcde", got[len(got)-1])
	}
	// Whatever subset settles must preserve Set order.
	idx := -1
	for _, v := range got {
		found := -1
		for i, want := range values {
			if v == want {
				found = i
				break
			}
		}
		if found < 0 {
			t.Fatalf("propagated unknown value %q", v)
		}
		if found <= idx {
			t.Errorf("values propagated out of order: %v", got)
		}
		idx = found
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	rec := &emitRecorder{}
	d := NewDebouncer(30*time.Millisecond, rec.emit)

	d.Set("never")
	d.Stop()

	time.Sleep(120 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("stopped debouncer must not propagate, got %v", got)
	}

	// Sets after Stop are ignored.
	d.Set("still never")
	time.Sleep(120 * time.Millisecond)
	if got := rec.snapshot(); len(got) != 0 {
		t.Errorf("set after stop must be ignored, got %v", got)
	}
}
