package theme

import (
	"context"
	"sync"
)

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
	scope  string
	parent *MemoryStore
}

// NewMemoryStore creates an empty store with the default scope.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scopes: make(map[string]map[string]string)}
}

// Scope returns a view of the store that only sees visitorID's keys.
func (m *MemoryStore) Scope(visitorID string) Store {
	return &MemoryStore{scope: visitorID, parent: m.root()}
}

func (m *MemoryStore) root() *MemoryStore {
	if m.parent != nil {
		return m.parent
	}
	return m
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	r := m.root()
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.scopes[m.scope][key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	r := m.root()
	r.mu.Lock()
	defer r.mu.Unlock()
	kv, ok := r.scopes[m.scope]
	if !ok {
		kv = make(map[string]string)
		r.scopes[m.scope] = kv
	}
	kv[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	r := m.root()
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scopes[m.scope], key)
	return nil
}
