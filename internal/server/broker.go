package server

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// Event is the envelope broadcast to a session's members after every
// successful mutation.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Broker is an in-process pub/sub keyed by game id. It implements
// session.Publisher; subscribing is how a client becomes a member of a
// session's notification group.
type Broker struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[uuid.UUID]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the
// given game.
func (b *Broker) Subscribe(gameID uuid.UUID) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan []byte]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the game's group.
func (b *Broker) Unsubscribe(gameID uuid.UUID, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// Publish sends an event to every subscriber of the given game. Delivery
// is fire-and-forget.
func (b *Broker) Publish(gameID uuid.UUID, event string, payload any) {
	data, _ := json.Marshal(Event{Type: event, Payload: payload})
	b.mu.RLock()
	for ch := range b.subs[gameID] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
