package tree

import (
	"slices"
	"sync"
)

// Signal tells subscribers that the tree root changed and every expanded
// branch must be recomputed. It carries no payload.
type Signal struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// Subscribe registers fn and returns a function that removes it.
func (s *Signal) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func())
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Fire calls every subscriber in subscription order.
func (s *Signal) Fire() {
	s.mu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	fns := make([]func(), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribe registers fn to be called on Refresh.
func (c *Composer) Subscribe(fn func()) (unsubscribe func()) {
	return c.signal.Subscribe(fn)
}

// Refresh signals that the whole tree is stale.
func (c *Composer) Refresh() {
	c.logger.Debug("refresh", "tree", c.kind)
	c.signal.Fire()
}
