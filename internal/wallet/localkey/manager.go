package localkey

import (
	"crypto/ed25519"
	"sync"

	"github.com/pkg/errors"
)

// manager implements Manager with thread-safe access.
type manager struct {
	mu          sync.RWMutex
	key         ed25519.PrivateKey
	path        string
	initialized bool
}

// NewManager creates a new key Manager deriving along the given path.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager(derivationPath string) Manager {
	return &manager{
		path: derivationPath,
	}
}

// Initialize derives and stores the key.
func (m *manager) Initialize(secret, password string) error {
	key, err := DerivePrivateKey(secret, password, m.path)
	if err != nil {
		return errors.Wrap(err, "failed to derive local key")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.key = key
	m.initialized = true

	return nil
}

// PrivateKey returns a copy to prevent external modification.
func (m *manager) PrivateKey() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return nil
	}

	keyCopy := make([]byte, len(m.key))
	copy(keyCopy, m.key)

	return keyCopy
}

// IsInitialized checks if a key is held.
func (m *manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.initialized
}

// Clear wipes the held key.
func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.key {
		m.key[i] = 0
	}

	m.key = nil
	m.initialized = false
}
