package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/RuvinSL/url-analysis-queue/pkg/interfaces"
	"github.com/RuvinSL/url-analysis-queue/pkg/models"
)

// SlotKey is the key the entry list is stored under.
const SlotKey = "urls"

// MemoryPersister keeps the serialized entry list in process memory.
// The list round-trips through JSON so callers never share slices with it.
type MemoryPersister struct {
	mu   sync.RWMutex
	slot []byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// Load returns the stored entries, or nil when nothing was saved yet.
func (m *MemoryPersister) Load(ctx context.Context) ([]models.URLEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return decodeEntries(m.slot)
}

func (m *MemoryPersister) Save(ctx context.Context, entries []models.URLEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeEntries(entries)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.slot = data
	m.mu.Unlock()
	return nil
}

// CheckHealth always succeeds.
func (m *MemoryPersister) CheckHealth(ctx context.Context) error {
	return nil
}

func encodeEntries(entries []models.URLEntry) ([]byte, error) {
	if entries == nil {
		entries = []models.URLEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode %s slot: %w", SlotKey, err)
	}
	return data, nil
}

func decodeEntries(data []byte) ([]models.URLEntry, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var entries []models.URLEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s slot: %w", SlotKey, err)
	}
	return entries, nil
}

var (
	_ interfaces.EntryPersister = (*MemoryPersister)(nil)
	_ interfaces.HealthChecker  = (*MemoryPersister)(nil)
)
