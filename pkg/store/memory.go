package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Persistence. Watchers see every write and erase.
type Memory struct {
	mu       sync.Mutex
	values   map[string][]byte
	watchers map[chan Event]struct{}
	writes   int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values:   make(map[string][]byte),
		watchers: make(map[chan Event]struct{}),
	}
}

var _ Persistence = (*Memory)(nil)

func (m *Memory) Read(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), val...), nil
}

func (m *Memory) Write(key string, val []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), val...)
	m.writes++
	m.broadcast(Event{Type: EventKeyChanged, Key: key})
	return nil
}

func (m *Memory) Erase(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; !ok {
		return nil
	}
	delete(m.values, key)
	m.broadcast(Event{Type: EventKeyChanged, Key: key})
	return nil
}

func (m *Memory) Keys(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for key := range m.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Watch registers a watcher until ctx is done.
func (m *Memory) Watch(ctx context.Context) (<-chan Event, error) {
	ch := make(chan Event, 64)
	m.mu.Lock()
	m.watchers[ch] = struct{}{}
	m.mu.Unlock()

	go func() {
		<-ctx.Done()
		m.mu.Lock()
		delete(m.watchers, ch)
		close(ch)
		m.mu.Unlock()
	}()
	return ch, nil
}

// Writes counts successful writes, for tests asserting nothing was persisted.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// broadcast must be called with m.mu held.
func (m *Memory) broadcast(ev Event) {
	for ch := range m.watchers {
		select {
		case ch <- ev:
		default:
		}
	}
}
