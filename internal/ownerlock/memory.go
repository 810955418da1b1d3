package ownerlock

import (
	"context"
	"sync"
)

// Memory is an in-process Locker. Waiters are served through a one-slot
// channel per owner, so a cancelled waiter simply stops waiting.
type Memory struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	ch   chan struct{}
	refs int
}

var _ Locker = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{slots: make(map[string]*slot)}
}

func (m *Memory) Lock(ctx context.Context, ownerID string) (Unlock, error) {
	s := m.acquireSlot(ownerID)

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		m.releaseSlot(ownerID, s)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() error {
		once.Do(func() {
			<-s.ch
			m.releaseSlot(ownerID, s)
		})
		return nil
	}, nil
}

// acquireSlot registers interest in an owner's slot, creating it on demand
func (m *Memory) acquireSlot(ownerID string) *slot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.slots[ownerID]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		m.slots[ownerID] = s
	}
	s.refs++
	return s
}

// releaseSlot drops interest and forgets idle owners
func (m *Memory) releaseSlot(ownerID string, s *slot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(m.slots, ownerID)
	}
}

// owners reports how many owners currently have holders or waiters
func (m *Memory) owners() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}
