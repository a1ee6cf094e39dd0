// Package events carries change notifications between the settlement
// workflow and whoever renders its results. Views subscribe instead of
// polling the store.
package events

import (
	"sync"

	"github.com/google/uuid"
)

type Type string

const (
	TransactionCreated   Type = "transaction.created"
	TransactionConfirmed Type = "transaction.confirmed"
	TransactionApproved  Type = "transaction.approved"
	TransactionCancelled Type = "transaction.cancelled"
	RateUpdated          Type = "rate.updated"
	DataReset            Type = "data.reset"
)

type Event struct {
	Type     Type           `json:"type"`
	EntityID uuid.UUID      `json:"entity_id,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
}

type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber. Delivery never blocks:
// a subscriber that stopped draining its channel misses events rather than
// stalling the workflow.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
