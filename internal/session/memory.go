package session

import "sync"

// MemoryStore keeps the credential for the life of the process only.
type MemoryStore struct {
	mu  sync.Mutex
	c   Credential
	set bool
}

func (m *MemoryStore) Load() (Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return Credential{}, ErrNoCredential
	}
	return m.c, nil
}

func (m *MemoryStore) Save(c Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c, m.set = c, true
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.c, m.set = Credential{}, false
	return nil
}
