// Package session holds the signed-in state shared by the gateway, the
// route guard and the pages. Manager is the only writer.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

var ErrEmptyToken = errors.New("session: token must not be empty")

// Reader is the read-only view handed to consumers.
type Reader interface {
	Token() (string, bool)
	Role() (domain.Role, bool)
}

// Event is published once when a live session is invalidated.
type Event struct {
	Reason string
	At     time.Time
}

type Manager struct {
	mu      sync.RWMutex
	store   Store
	current Session
	subs    map[int]func(Event)
	nextSub int
	log     zerolog.Logger
	now     func() time.Time
}

// NewManager restores the session held by store.
func NewManager(store Store, log zerolog.Logger) (*Manager, error) {
	s, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Manager{
		store:   store,
		current: s,
		subs:    make(map[int]func(Event)),
		log:     log,
		now:     time.Now,
	}, nil
}

// Set stores both values after a successful login.
func (m *Manager) Set(token string, role domain.Role) error {
	if token == "" {
		return ErrEmptyToken
	}
	if !role.Valid() {
		return fmt.Errorf("session: %w: %q", domain.ErrUnknownRole, role)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := Session{Token: token, Role: role}
	if err := m.store.Save(s); err != nil {
		return err
	}
	m.current = s
	m.log.Debug().Str("role", string(role)).Msg("session started")
	return nil
}

func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Token, m.current.Token != ""
}

func (m *Manager) Role() (domain.Role, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Role, m.current.Role != ""
}

// Clear removes both values. Clearing an empty session is a no-op.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked()
}

func (m *Manager) clearLocked() error {
	m.current = Session{}
	return m.store.Clear()
}

// Invalidate clears the session and notifies subscribers. Only the call that
// moves the session from present to absent publishes; it reports whether it
// did.
func (m *Manager) Invalidate(reason string) bool {
	m.mu.Lock()
	if !m.current.Present() {
		m.mu.Unlock()
		return false
	}
	if err := m.clearLocked(); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	subs := make([]func(Event), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	m.log.Info().Str("reason", reason).Msg("session invalidated")
	evt := Event{Reason: reason, At: m.now()}
	for _, fn := range subs {
		fn(evt)
	}
	return true
}

// Subscribe registers fn for invalidation events and returns a function that
// removes it.
func (m *Manager) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs, id)
	}
}

// View returns a read-only view of the session.
func (m *Manager) View() Reader {
	return view{m: m}
}

type view struct{ m *Manager }

func (v view) Token() (string, bool)     { return v.m.Token() }
func (v view) Role() (domain.Role, bool) { return v.m.Role() }
