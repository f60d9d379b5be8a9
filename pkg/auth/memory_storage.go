package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage is an in-process Storage keyed by email.
type MemoryStorage struct {
	mu    sync.RWMutex
	users map[string]User
	now   func() time.Time
}

// NewMemoryStorage creates an empty in-memory account store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users: make(map[string]User),
		now:   time.Now,
	}
}

func (m *MemoryStorage) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (m *MemoryStorage) CreateUser(_ context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Email]; ok {
		return ErrEmailAlreadyExists
	}
	m.users[user.Email] = *user
	return nil
}

func (m *MemoryStorage) MarkVerified(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[email]
	if !ok {
		return ErrUserNotFound
	}
	if user.IsVerified {
		return nil
	}

	now := m.now()
	user.IsVerified = true
	user.VerifiedAt = &now
	m.users[email] = user
	return nil
}

// Len reports the number of stored accounts.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}
