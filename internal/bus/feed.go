package bus

import "sync"

// Feed broadcasts snapshots of T to any number of subscribers. The
// zero value is ready to use.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   map[int]chan T
	nextID int
	last   T
	seeded bool
	closed bool
}

// Subscribe registers a receiver. The returned channel has capacity
// one and is overwritten rather than blocked on: a subscriber that
// falls behind sees only the newest snapshot. If a snapshot was
// published before subscribing it is delivered immediately.
//
// The cancel function releases the subscription; the channel is
// closed once cancelled or once the feed itself is closed.
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan T, 1)
	if f.closed {
		close(ch)
		return ch, func() {}
	}
	if f.subs == nil {
		f.subs = make(map[int]chan T)
	}
	id := f.nextID
	f.nextID++
	f.subs[id] = ch
	if f.seeded {
		ch <- f.last
	}

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if sub, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers v to every subscriber, replacing any snapshot a
// subscriber has not yet consumed. Publishing on a closed feed is a
// no-op.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.last = v
	f.seeded = true
	for _, ch := range f.subs {
		select {
		case ch <- v:
		default:
			// Full buffer: displace the stale snapshot
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}

// Latest returns the most recently published snapshot, if any
func (f *Feed[T]) Latest() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last, f.seeded
}

// Close closes every subscriber channel and rejects further
// publishes. Close is idempotent.
func (f *Feed[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	for id, ch := range f.subs {
		delete(f.subs, id)
		close(ch)
	}
}
