package application

import (
	"sync"

	"coinwatch/internal/domain"
)

// Update is one poll result published by the shared poller.
type Update struct {
	Snapshot domain.SnapshotSet
	Err      error
}

// Hub fans out poll results to live-update subscribers. Each subscriber
// holds at most one pending update; a newer one replaces it.
type Hub struct {
	mu     sync.Mutex
	subs   map[chan Update]struct{}
	latest *Update
}

func NewHub() *Hub {
	return &Hub{subs: map[chan Update]struct{}{}}
}

// Subscribe registers a subscriber. The latest update, failed or not, is
// delivered right away. The returned func unsubscribes and must be called.
func (h *Hub) Subscribe() (<-chan Update, func()) {
	ch := make(chan Update, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	if h.latest != nil {
		ch <- *h.latest
	}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

func (h *Hub) Publish(u Update) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = &u
	for ch := range h.subs {
		select {
		case ch <- u:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- u
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
