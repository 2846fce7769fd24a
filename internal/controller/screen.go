package controller

import (
	"context"
	"sync"

	"github.com/lettucelabs/lettucectl/internal/bus"
	"github.com/lettucelabs/lettucectl/internal/store"
)

// transitioner is any store state with a pure transition function
type transitioner[S any] interface {
	Apply(ev store.Event) S
}

// screen is the per-controller state harness: the current snapshot,
// the context that scopes every gateway call, and the feed renderers
// subscribe to. Dispatch is the only writer.
type screen[S transitioner[S]] struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	state S
	feed  bus.Feed[S]
}

func newScreen[S transitioner[S]](initial S) *screen[S] {
	ctx, cancel := context.WithCancel(context.Background())
	s := &screen[S]{ctx: ctx, cancel: cancel, state: initial}
	s.feed.Publish(initial)
	return s
}

// dispatch applies ev and publishes the new snapshot. After Close the
// event is discarded, so a slow call finishing late cannot clobber
// state a newer owner has replaced.
func (s *screen[S]) dispatch(ev store.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return
	}
	s.state = s.state.Apply(ev)
	s.feed.Publish(s.state)
}

// State returns the current snapshot
func (s *screen[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Watch subscribes to snapshot broadcasts; see bus.Feed.Subscribe
func (s *screen[S]) Watch() (<-chan S, func()) {
	return s.feed.Subscribe()
}

// Close cancels in-flight calls and stops the feed. Results that
// arrive afterwards are dropped.
func (s *screen[S]) Close() {
	s.cancel()
	s.feed.Close()
}
