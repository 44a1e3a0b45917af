package session

import (
	"RomiioBot/internal/entity"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	mu      sync.Mutex
	state   *entity.ConversationState
	removed bool
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewMemoryStore keeps sessions in process memory. With a TTL a janitor
// goroutine evicts idle sessions until Close is called.
func NewMemoryStore(opts Options) Store {
	s := &memoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      opts.TTL,
		done:     make(chan struct{}),
	}

	if s.ttl > 0 {
		s.wg.Add(1)
		go s.janitor(opts.sweepInterval())
	}

	return s
}

func (m *memoryStore) Get(_ context.Context, customerID string) (*entity.ConversationState, error) {
	m.mu.RLock()
	e, ok := m.sessions[customerID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.removed {
		return nil, ErrSessionNotFound
	}
	return e.state.Clone(), nil
}

func (m *memoryStore) GetOrCreate(ctx context.Context, customerID string, now time.Time) (*entity.ConversationState, error) {
	return m.Update(ctx, customerID, now, func(*entity.ConversationState) error { return nil })
}

func (m *memoryStore) Update(ctx context.Context, customerID string, now time.Time, fn UpdateFunc) (*entity.ConversationState, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e := m.entry(customerID, now)
		committed, live, err := e.apply(fn)
		if !live {
			// evicted between lookup and lock
			continue
		}
		return committed, err
	}
}

func (e *memoryEntry) apply(fn UpdateFunc) (*entity.ConversationState, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.removed {
		return nil, false, nil
	}

	working := e.state.Clone()
	if err := fn(working); err != nil {
		return nil, true, err
	}
	e.state = working
	return working.Clone(), true, nil
}

func (m *memoryStore) Delete(_ context.Context, customerID string) error {
	m.mu.Lock()
	e, ok := m.sessions[customerID]
	delete(m.sessions, customerID)
	m.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.removed = true
		e.mu.Unlock()
	}
	return nil
}

func (m *memoryStore) Close() error {
	m.once.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
	return nil
}

func (m *memoryStore) entry(customerID string, now time.Time) *memoryEntry {
	m.mu.RLock()
	e, ok := m.sessions[customerID]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok = m.sessions[customerID]; ok {
		return e
	}
	e = &memoryEntry{state: entity.NewConversationState(customerID, now)}
	m.sessions[customerID] = e
	return e
}

func (m *memoryStore) janitor(interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.evictIdle(now)
		}
	}
}

func (m *memoryStore) evictIdle(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, e := range m.sessions {
		// a locked entry is being updated right now
		if !e.mu.TryLock() {
			continue
		}
		if now.Sub(e.state.LastActivity) > m.ttl {
			e.removed = true
			delete(m.sessions, id)
			evicted++
		}
		e.mu.Unlock()
	}
	return evicted
}

func (m *memoryStore) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
