package notify

import (
	"sync"
	"time"
)

// Kind classifies a notification for rendering.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Message is one transient notification.
type Message struct {
	Kind Kind
	Text string
	At   time.Time
}

// Bus is a process-wide publish/subscribe channel for notifications.
// Publishing never blocks and is safe before any subscriber attaches:
// messages queue and are drained to the first subscriber. Deep call
// sites (stores, the HTTP interceptor) publish without holding any
// reference to a renderer.
type Bus struct {
	mu      sync.Mutex
	nextID  int
	subs    map[int]chan Message
	pending []Message
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Message)}
}

// Publish enqueues a message. With no subscribers attached the message
// is buffered; otherwise it is delivered to every subscriber whose
// channel has room (slow subscribers drop rather than block the app).
func (b *Bus) Publish(kind Kind, text string) {
	msg := Message{Kind: kind, Text: text, At: time.Now()}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.subs) == 0 {
		b.pending = append(b.pending, msg)
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Subscribe attaches a renderer. Buffered messages published before
// the first subscriber are replayed immediately. The returned cancel
// function detaches and closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Message, func()) {
	if buffer < 1 {
		buffer = 16
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	ch := make(chan Message, buffer)
	for _, msg := range b.pending {
		select {
		case ch <- msg:
		default:
		}
	}
	b.pending = nil
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Drain returns and clears any buffered messages without subscribing.
// One-shot commands use this to flush banners before exiting.
func (b *Bus) Drain() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	msgs := b.pending
	b.pending = nil
	return msgs
}

// Default is the application-wide bus, injected at startup into the
// renderers and reachable from anywhere via the package helpers.
var Default = NewBus()

// Success publishes a success message on the default bus.
func Success(text string) { Default.Publish(KindSuccess, text) }

// Error publishes an error message on the default bus.
func Error(text string) { Default.Publish(KindError, text) }

// Info publishes an info message on the default bus.
func Info(text string) { Default.Publish(KindInfo, text) }

// Warning publishes a warning message on the default bus.
func Warning(text string) { Default.Publish(KindWarning, text) }
