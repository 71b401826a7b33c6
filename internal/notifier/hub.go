// Package notifier provides the fan-out broadcast point for committed
// transactions. One producer side (the transaction processor) feeds zero or
// more live subscribers, each with its own bounded buffer.
package notifier

import (
	"log/slog"
	"sync"

	"github.com/bankx/transactions-service/internal/domain"
)

// DefaultBuffer is the per-subscriber channel capacity used when the
// configured buffer size is not positive.
const DefaultBuffer = 64

// Hub broadcasts committed transactions to all current subscribers.
// Publish never blocks and never fails: a subscriber that is not reading has
// its oldest buffered item dropped to make room for the newest. Each
// subscriber receives transactions in publish order; a subscriber only sees
// transactions published after it subscribed.
type Hub struct {
	mu     sync.Mutex
	subs   map[uint64]chan domain.Transaction
	nextID uint64
	buffer int
	closed bool
	logger *slog.Logger
}

// NewHub creates a Hub with the given per-subscriber buffer capacity.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[uint64]chan domain.Transaction),
		buffer: buffer,
		logger: logger,
	}
}

// Publish delivers tx to every current subscriber. Best-effort: if a
// subscriber's buffer is full its oldest item is discarded, and publishing to
// a closed hub is a no-op. The internal lock serializes publish order.
func (h *Hub) Publish(tx domain.Transaction) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	for id, ch := range h.subs {
		select {
		case ch <- tx:
		default:
			// Buffer full: drop the oldest buffered item, then retry once.
			// Only Publish sends on ch and we hold the lock, so the second
			// send cannot block.
			select {
			case <-ch:
				h.logger.Warn("subscriber buffer full, dropping oldest transaction", "subscriber", id)
			default:
			}
			select {
			case ch <- tx:
			default:
			}
		}
	}
}

// Subscribe registers a new live subscriber. It returns the subscriber's
// channel and a cancel function; cancel unregisters the subscriber and closes
// the channel. The channel is also closed when the hub shuts down.
func (h *Hub) Subscribe() (<-chan domain.Transaction, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan domain.Transaction, h.buffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close terminates the hub: all subscriber channels are closed and further
// publishes are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
