package notify

import (
	"testing"
	"time"
)

func TestPublishBeforeSubscribeBuffers(t *testing.T) {
	bus := NewBus()

	// Must not panic or block with no renderer attached.
	bus.Publish(KindError, "session expired")
	bus.Publish(KindWarning, "no data to export")

	ch, cancel := bus.Subscribe(8)
	defer cancel()

	first := receive(t, ch)
	if first.Kind != KindError || first.Text != "session expired" {
		t.Errorf("unexpected first message: %+v", first)
	}
	second := receive(t, ch)
	if second.Kind != KindWarning {
		t.Errorf("unexpected second message: %+v", second)
	}
}

func TestPublishDeliversToSubscriber(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(8)
	defer cancel()

	bus.Publish(KindSuccess, "asset created")

	msg := receive(t, ch)
	if msg.Kind != KindSuccess || msg.Text != "asset created" {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(1)
	cancel()

	// Channel must be closed after cancel.
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after unsubscribe")
	}

	// Publishing after the last unsubscribe buffers again.
	bus.Publish(KindInfo, "later")
	msgs := bus.Drain()
	if len(msgs) != 1 || msgs[0].Text != "later" {
		t.Errorf("expected buffered message after unsubscribe, got %+v", msgs)
	}
}

func TestDrainClearsPending(t *testing.T) {
	bus := NewBus()
	bus.Publish(KindInfo, "one")
	bus.Publish(KindInfo, "two")

	msgs := bus.Drain()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 drained messages, got %d", len(msgs))
	}
	if extra := bus.Drain(); len(extra) != 0 {
		t.Errorf("expected empty bus after drain, got %d messages", len(extra))
	}
}

func receive(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}
