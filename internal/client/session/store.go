package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/smartshelf/inventory-system/internal/core/domain"
)

// Session is the persisted login state. The zero value means signed out.
type Session struct {
	Token string
	Role  domain.Role
}

// Present reports whether the session holds a token.
func (s Session) Present() bool {
	return s.Token != ""
}

// Store persists a Session between runs.
type Store interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// MemoryStore keeps the session for the life of the process.
type MemoryStore struct {
	mu sync.Mutex
	s  Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = s
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s = Session{}
	return nil
}

// fileSession is the on-disk layout: exactly two keys.
type fileSession struct {
	Token string `yaml:"token"`
	Role  string `yaml:"role"`
}

// FileStore keeps the session in a YAML file readable only by the owner.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load returns the stored session. A missing file, an empty token or a role
// outside the known set all load as signed out.
func (f *FileStore) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session: %w", err)
	}

	var fs fileSession
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return Session{}, nil
	}

	role, err := domain.ParseRole(fs.Role)
	if err != nil || fs.Token == "" {
		return Session{}, nil
	}
	return Session{Token: fs.Token, Role: role}, nil
}

func (f *FileStore) Save(s Session) error {
	data, err := yaml.Marshal(fileSession{Token: s.Token, Role: string(s.Role)})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
