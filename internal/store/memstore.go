package store

import (
	"context"
	"fmt"
	"sync"

	"koridor-relay/internal/relay"
)

// MemoryStore is the in-memory persistence gateway, used when no document
// store is configured and as the gateway in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]relay.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: map[string]relay.Record{},
	}
}

func (m *MemoryStore) SaveRoom(_ context.Context, rec relay.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms[rec.Code] = rec
	return nil
}

func (m *MemoryStore) UpdateRoomField(_ context.Context, code, field string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rooms[code]
	if !ok {
		return relay.ErrRoomNotFound
	}
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("unsupported value type %T for field %q", value, field)
	}
	switch field {
	case relay.FieldPlayerTwo:
		rec.PlayerTwo = &s
	case relay.FieldWinner:
		rec.Winner = &s
	default:
		return fmt.Errorf("unknown room field %q", field)
	}
	m.rooms[code] = rec
	return nil
}

func (m *MemoryStore) FindRoomByCode(_ context.Context, code string) (relay.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.rooms[code]
	if !ok {
		return relay.Record{}, relay.ErrRoomNotFound
	}
	return rec, nil
}
