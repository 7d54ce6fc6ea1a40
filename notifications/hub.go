package notifications

import (
	"log"
	"sync"
)

const (
	EventNewOrder     = "new-order"
	EventOrderUpdated = "order-updated"
)

// Event is the wire format pushed to admin clients.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Publisher is the outbound side of the hub. Publish never blocks and never
// fails the caller: delivery is best-effort.
type Publisher interface {
	Publish(event string, payload interface{})
}

// Subscription is one admin client's view of the event stream. Events arrive
// in publish order. There is no replay: events published before Subscribe or
// after Close are never seen.
type Subscription struct {
	events chan Event
	hub    *Hub
}

// Events yields the subscriber's stream. The channel is closed when the
// subscription ends, either by Close or by the hub dropping a slow consumer.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

func (s *Subscription) Close() {
	s.hub.unsubscribe(s)
}

// Hub fans published order events out to every subscriber. A single
// dispatcher goroutine drains the queue, so publishing is decoupled from
// delivery and a request handler never waits on a client connection.
type Hub struct {
	mu          sync.Mutex
	subscribers map[*Subscription]bool
	queue       chan Event
	done        chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscription]bool),
		queue:       make(chan Event, 256),
		done:        make(chan struct{}),
	}
}

// Run drains the queue until Stop is called. Call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case event := <-h.queue:
			h.broadcast(event)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Publish enqueues an event for broadcast. If the queue is full the event is
// dropped and logged; the originating request is never blocked or failed.
func (h *Hub) Publish(event string, payload interface{}) {
	select {
	case h.queue <- Event{Event: event, Payload: payload}:
	default:
		log.Printf("notifications: queue full, dropping %q event", event)
	}
}

func (h *Hub) Subscribe() *Subscription {
	sub := &Subscription{
		events: make(chan Event, 16),
		hub:    h,
	}
	h.mu.Lock()
	h.subscribers[sub] = true
	h.mu.Unlock()
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[sub] {
		delete(h.subscribers, sub)
		close(sub.events)
	}
}

func (h *Hub) broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.events <- event:
		default:
			// A consumer that cannot keep up is dropped rather than
			// allowed to stall the dispatcher.
			log.Println("notifications: dropping slow subscriber")
			delete(h.subscribers, sub)
			close(sub.events)
		}
	}
}
