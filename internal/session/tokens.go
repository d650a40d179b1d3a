package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore persists the single session token. Token returns "" when none
// is stored.
type TokenStore interface {
	Token() string
	Save(token string) error
	Clear() error
}

// FileTokens keeps the token in a file readable only by the current user.
type FileTokens struct {
	path string
}

// NewFileTokens returns a TokenStore backed by the file at path.
func NewFileTokens(path string) *FileTokens {
	return &FileTokens{path: path}
}

// Path returns the token file location.
func (f *FileTokens) Path() string { return f.path }

// Token reads the file on every call so other processes' logins and
// logouts are observed.
func (f *FileTokens) Token() string {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func (f *FileTokens) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("session.FileTokens.Save: create dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("session.FileTokens.Save: %w", err)
	}
	return nil
}

// Clear removes the token file. A missing file is not an error.
func (f *FileTokens) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session.FileTokens.Clear: %w", err)
	}
	return nil
}

// MemoryTokens is an in-process TokenStore.
type MemoryTokens struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokens returns a MemoryTokens holding token.
func NewMemoryTokens(token string) *MemoryTokens {
	return &MemoryTokens{token: token}
}

func (m *MemoryTokens) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *MemoryTokens) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
