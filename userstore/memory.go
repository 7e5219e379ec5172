package userstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory user store.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]*User // keyed by ID
	byEmail map[string]string
	byPhone map[string]string
	byOpen  map[string]string
}

// NewMemoryStore creates a new in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
		byPhone: make(map[string]string),
		byOpen:  make(map[string]string),
	}
}

// FindByID retrieves a user by id.
func (s *MemoryStore) FindByID(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyOut(s.users[id])
}

// FindByEmail retrieves a user by email address.
func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyOut(s.users[s.byEmail[email]])
}

// FindByPhone retrieves a user by phone number.
func (s *MemoryStore) FindByPhone(_ context.Context, phone string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyOut(s.users[s.byPhone[phone]])
}

// FindByWechatOpenID retrieves a user by wechat open id.
func (s *MemoryStore) FindByWechatOpenID(_ context.Context, openID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyOut(s.users[s.byOpen[openID]])
}

// Create stores a new user. The ID, CreatedAt, and UpdatedAt fields are
// assigned here; any caller-provided values are ignored.
func (s *MemoryStore) Create(_ context.Context, u *User) (*User, error) {
	if u.Email == "" && u.Phone == "" && u.WechatOpenID == "" {
		return nil, ErrMissingIdentifier
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.taken(u) {
		return nil, ErrDuplicate
	}

	now := time.Now()
	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.users[stored.ID] = &stored
	s.index(&stored)

	out := stored
	return &out, nil
}

// Update replaces a stored user's fields. The ID and CreatedAt are
// preserved; UpdatedAt is stamped here.
func (s *MemoryStore) Update(_ context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.users[u.ID]
	if !ok {
		return nil, ErrNotFound
	}

	s.unindex(prev)
	if s.taken(u) {
		s.index(prev)
		return nil, ErrDuplicate
	}

	stored := *u
	stored.CreatedAt = prev.CreatedAt
	stored.UpdatedAt = time.Now()

	s.users[stored.ID] = &stored
	s.index(&stored)

	out := stored
	return &out, nil
}

// RecordLogin stamps login time and IP and bumps the counter.
func (s *MemoryStore) RecordLogin(_ context.Context, id, ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}

	u.LastLoginAt = time.Now()
	u.LastLoginIP = ip
	u.LoginCount++
	u.UpdatedAt = u.LastLoginAt
	return nil
}

// taken reports whether any of u's identifiers belongs to another user.
// Callers hold the write lock.
func (s *MemoryStore) taken(u *User) bool {
	if id, ok := s.byEmail[u.Email]; ok && u.Email != "" && id != u.ID {
		return true
	}
	if id, ok := s.byPhone[u.Phone]; ok && u.Phone != "" && id != u.ID {
		return true
	}
	if id, ok := s.byOpen[u.WechatOpenID]; ok && u.WechatOpenID != "" && id != u.ID {
		return true
	}
	return false
}

func (s *MemoryStore) index(u *User) {
	if u.Email != "" {
		s.byEmail[u.Email] = u.ID
	}
	if u.Phone != "" {
		s.byPhone[u.Phone] = u.ID
	}
	if u.WechatOpenID != "" {
		s.byOpen[u.WechatOpenID] = u.ID
	}
}

func (s *MemoryStore) unindex(u *User) {
	delete(s.byEmail, u.Email)
	delete(s.byPhone, u.Phone)
	delete(s.byOpen, u.WechatOpenID)
}

func (s *MemoryStore) copyOut(u *User) (*User, error) {
	if u == nil {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
