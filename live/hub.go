package live

import (
	"sync"

	"github.com/ShashankBagda/AI-Restaurant/utils"
)

// Event types delivered to live viewers.
const (
	EventOrderCreated = "order_created"
	EventOrderStatus  = "order_status"
	EventPayment      = "payment"
	EventRating       = "rating"
)

// Event is the flat JSON shape pushed over /ws/orders.
type Event struct {
	Type    string  `json:"type"`
	OrderID uint    `json:"order_id"`
	Status  string  `json:"status,omitempty"`
	Total   float64 `json:"total,omitempty"`
	Method  string  `json:"method,omitempty"`
	Rating  int     `json:"rating,omitempty"`
	TableID string  `json:"table_id,omitempty"`
}

// subscriberBuffer bounds how far a slow viewer may fall behind before the
// hub drops it.
const subscriberBuffer = 16

// Hub fans out coordination events to every subscribed viewer. It is an
// injected instance, not a package global, so tests get fresh state. A
// subscriber that cannot keep up is unsubscribed and its channel closed;
// publishing never blocks and never errors.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new viewer channel.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes the channel. Safe to call twice: the hub
// may already have dropped a stale subscriber on a failed publish. The
// close happens under the lock so it can never land between a publisher's
// membership check and its send.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

// Publish delivers the event to every current subscriber. The whole fan-out
// runs under the lock: every send is a non-blocking select against a
// buffered channel, so holding the lock is cheap, and it makes sends
// mutually exclusive with the close in Unsubscribe. A full buffer means the
// viewer is stale, and it gets dropped rather than backpressuring the
// publisher.
func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			utils.InfoLogger.Printf("Dropping stale live viewer (type=%s, order=%d)", ev.Type, ev.OrderID)
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// Count reports the current number of subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
