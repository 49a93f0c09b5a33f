// Package memory keeps the most recent events in a bounded ring buffer and
// streams new ones to live subscribers.
package memory

import (
	"context"
	"sync"

	"hipstertrail/internal/app/ports"
)

const (
	DefaultCapacity   = 200
	subscriberBacklog = 64
)

type Ring struct {
	mu      sync.Mutex
	buf     []ports.Event
	next    int
	full    bool
	subs    map[uint64]chan ports.Event
	nextSub uint64
	dropped uint64
}

func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		buf:  make([]ports.Event, capacity),
		subs: map[uint64]chan ports.Event{},
	}
}

// Publish stores evt, overwriting the oldest entry when full. Slow
// subscribers miss events rather than blocking the caller.
func (r *Ring) Publish(_ context.Context, evt ports.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = evt
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
	for _, ch := range r.subs {
		select {
		case ch <- evt:
		default:
			r.dropped++
		}
	}
}

// Recent returns up to limit events, oldest first. limit <= 0 means all.
func (r *Ring) Recent(limit int) []ports.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	size := r.next
	start := 0
	if r.full {
		size = len(r.buf)
		start = r.next
	}
	if limit <= 0 || limit > size {
		limit = size
	}
	out := make([]ports.Event, 0, limit)
	for i := size - limit; i < size; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// Subscribe returns a channel of events published from now on. Call cancel
// to release it; the channel is closed afterwards.
func (r *Ring) Subscribe() (<-chan ports.Event, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextSub
	r.nextSub++
	ch := make(chan ports.Event, subscriberBacklog)
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.subs, id)
			close(ch)
		})
	}
}

// Dropped reports how many subscriber deliveries were skipped.
func (r *Ring) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}
