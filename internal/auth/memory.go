package auth

import (
	"context"
	"sync"
)

// MemoryUsers is a map-backed UserStore, used in tests and local runs
// without Postgres.
type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]*User // by id
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: map[string]*User{}}
}

func (m *MemoryUsers) UserByID(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryUsers) UserByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MemoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemoryUsers) InsertUser(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

// MemorySessions is a map-backed SessionStore.
type MemorySessions struct {
	mu       sync.RWMutex
	sessions map[string]string // token -> user id
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: map[string]string{}}
}

func (m *MemorySessions) Put(ctx context.Context, token, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = userID
	return nil
}

func (m *MemorySessions) Get(ctx context.Context, token string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[token], nil
}

func (m *MemorySessions) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}
