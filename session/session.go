// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store is the session-scoped key/value persistence interface. It mirrors
// browser session storage: string keys, string values, durable across page
// navigation within one session, gone when the session ends. Keeping it
// this small lets the ranking and pipeline logic run against an in-memory
// map in tests.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

// memStore is the in-memory Store implementation backing live sessions.
type memStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewStore returns an empty in-memory Store.
func NewStore() Store {
	return &memStore{values: make(map[string]string)}
}

func (s *memStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *memStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *memStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Manager owns all live sessions, keyed by opaque token. Each browser
// session holds exactly one Store; there is no shared state between
// sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]Store
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]Store)}
}

// Create allocates a fresh session and returns its token and store.
func (m *Manager) Create() (string, Store) {
	token := uuid.NewString()
	store := NewStore()

	m.mu.Lock()
	m.sessions[token] = store
	m.mu.Unlock()

	return token, store
}

// Lookup returns the store for a token, if the session exists.
func (m *Manager) Lookup(token string) (Store, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	store, ok := m.sessions[token]
	return store, ok
}

// Drop removes a session entirely.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
