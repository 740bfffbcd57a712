package audit

import (
	"context"
	"sync"
)

// DefaultMemoryRetention caps the events kept per reader by the in-memory
// store.
const DefaultMemoryRetention = 1000

// InMemoryStore keeps the newest events per reader in append order. Older
// events are discarded once a reader exceeds the retention.
type InMemoryStore struct {
	mu        sync.RWMutex
	events    map[string][]Event
	retention int
}

func NewInMemoryStore() *InMemoryStore {
	return NewInMemoryStoreWithRetention(DefaultMemoryRetention)
}

// NewInMemoryStoreWithRetention keeps at most retention events per reader.
// A non-positive retention keeps everything.
func NewInMemoryStoreWithRetention(retention int) *InMemoryStore {
	return &InMemoryStore{events: make(map[string][]Event), retention: retention}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := append(s.events[event.ReaderID], event)
	if s.retention > 0 && len(list) > s.retention {
		list = append([]Event(nil), list[len(list)-s.retention:]...)
	}
	s.events[event.ReaderID] = list
	return nil
}

func (s *InMemoryStore) ListByReader(_ context.Context, readerID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events[readerID]))
	copy(out, s.events[readerID])
	return out, nil
}
