package events_test

import (
	"testing"
	"time"

	"exchange-office-backend/internal/events"

	"github.com/google/uuid"
)

func TestPublishReachesEverySubscriber(t *testing.T) {
	bus := events.NewBus()

	first, cancelFirst := bus.Subscribe(4)
	defer cancelFirst()
	second, cancelSecond := bus.Subscribe(4)
	defer cancelSecond()

	id := uuid.New()
	bus.Publish(events.Event{Type: events.TransactionCreated, EntityID: id})

	for name, ch := range map[string]<-chan events.Event{"first": first, "second": second} {
		select {
		case ev := <-ch:
			if ev.Type != events.TransactionCreated || ev.EntityID != id {
				t.Fatalf("%s subscriber got %+v", name, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s subscriber got nothing", name)
		}
	}
}

func TestCancelClosesChannel(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(1)

	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("channel still open after cancel")
	}
	// Publishing after cancel must not panic on the closed channel.
	bus.Publish(events.Event{Type: events.RateUpdated})

	cancel() // idempotent
}

func TestPublishNeverBlocks(t *testing.T) {
	bus := events.NewBus()
	_, cancel := bus.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Nobody drains the subscriber; extra events are dropped instead of
		// stalling the publisher.
		for i := 0; i < 100; i++ {
			bus.Publish(events.Event{Type: events.TransactionConfirmed})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}
