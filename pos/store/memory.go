// Package store provides Store implementations.
package store

import (
	"context"
	"encoding/json"
	"sync"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps snapshots in a map. Values are stored as encoded JSON so the
// round-trip behaves exactly like a durable store would.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

// Load decodes the stored value into out. Missing keys and values that fail
// to decode both report (false, nil) per the Store contract.
func (m *Memory) Load(_ context.Context, key string, out any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, nil
	}
	return true, nil
}

// Save overwrites the value under key.
func (m *Memory) Save(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()
	return nil
}

// Clear removes the key.
func (m *Memory) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// Put stores a raw value without going through JSON encoding. Test helper for
// simulating malformed snapshots.
func (m *Memory) Put(key string, raw []byte) {
	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()
}
