// Package session persists the last visited routes in per-tab storage.
//
// Every operation is best-effort: a backend failure or an undecodable value
// is logged and then treated exactly like an absent value.
package session

import (
	"encoding"
	"errors"
	"sync"

	"github.com/Its-donkey/menu-restore/internal/route"
	"github.com/Its-donkey/menu-restore/logging"
)

// Storage keys shared with previously deployed builds.
const (
	CurrentRouteKey   = "aice.current_route"
	CurrentSubmenuKey = "aice.current_submenu"
)

// ErrUnavailable is returned by backends that have no storage to talk to.
var ErrUnavailable = errors.New("session storage unavailable")

// Backend is a raw string key-value store scoped to one browsing tab.
type Backend interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Store is the typed facade over a Backend.
type Store struct {
	backend Backend
	logger  *logging.Logger
}

// NewStore wraps backend. A nil logger discards diagnostics.
func NewStore(backend Backend, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{backend: backend, logger: logger}
}

// MainRoute returns the stored top-level route, if any.
func (s *Store) MainRoute() (route.MainRoute, bool) {
	raw, ok := s.get(CurrentRouteKey)
	if !ok {
		return route.Home, false
	}
	r, err := route.DecodeMain(raw)
	if err != nil {
		s.logger.Warn("session", "discarding stored main route", map[string]any{"value": raw, "error": err.Error()})
		return route.Home, false
	}
	return r, true
}

// SetMainRoute stores the top-level route.
func (s *Store) SetMainRoute(r route.MainRoute) {
	s.set(CurrentRouteKey, r)
}

// Submenu returns the stored /menu1 route, if any.
func (s *Store) Submenu() (route.Menu1Route, bool) {
	raw, ok := s.get(CurrentSubmenuKey)
	if !ok {
		return route.Index, false
	}
	r, err := route.DecodeMenu1(raw)
	if err != nil {
		s.logger.Warn("session", "discarding stored submenu route", map[string]any{"value": raw, "error": err.Error()})
		return route.Index, false
	}
	return r, true
}

// SetSubmenu stores the /menu1 route.
func (s *Store) SetSubmenu(r route.Menu1Route) {
	s.set(CurrentSubmenuKey, r)
}

// DeleteSubmenu clears the /menu1 slot.
func (s *Store) DeleteSubmenu() {
	if s.backend == nil {
		return
	}
	if err := s.backend.RemoveItem(CurrentSubmenuKey); err != nil {
		s.logger.Debug("session", "remove failed", map[string]any{"key": CurrentSubmenuKey, "error": err.Error()})
	}
}

func (s *Store) get(key string) (string, bool) {
	if s.backend == nil {
		return "", false
	}
	raw, ok, err := s.backend.GetItem(key)
	if err != nil {
		s.logger.Debug("session", "read failed", map[string]any{"key": key, "error": err.Error()})
		return "", false
	}
	return raw, ok
}

func (s *Store) set(key string, v encoding.TextMarshaler) {
	if s.backend == nil {
		return
	}
	raw, err := route.Encode(v)
	if err != nil {
		s.logger.Warn("session", "encode failed", map[string]any{"key": key, "error": err.Error()})
		return
	}
	if err := s.backend.SetItem(key, raw); err != nil {
		s.logger.Debug("session", "write failed", map[string]any{"key": key, "error": err.Error()})
	}
}

// MemoryBackend keeps items in a map. It stands in for sessionStorage in
// tests and outside the browser.
type MemoryBackend struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryBackend returns an empty MemoryBackend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{items: make(map[string]string)}
}

// GetItem implements Backend.
func (m *MemoryBackend) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem implements Backend.
func (m *MemoryBackend) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// RemoveItem implements Backend.
func (m *MemoryBackend) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Snapshot returns a copy of all items.
func (m *MemoryBackend) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cp := make(map[string]string, len(m.items))
	for k, v := range m.items {
		cp[k] = v
	}
	return cp
}

// Unavailable returns a Backend whose every call fails with ErrUnavailable,
// for contexts where the browser exposes no session storage.
func Unavailable() Backend {
	return unavailableBackend{}
}

type unavailableBackend struct{}

func (unavailableBackend) GetItem(string) (string, bool, error) { return "", false, ErrUnavailable }
func (unavailableBackend) SetItem(string, string) error          { return ErrUnavailable }
func (unavailableBackend) RemoveItem(string) error               { return ErrUnavailable }
