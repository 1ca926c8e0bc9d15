package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Directory using in-memory storage
type MemoryStore struct {
	mu        sync.Mutex
	byID      map[string]*User
	bySubject map[string]string
	now       func() time.Time
}

// creates a new in-memory directory
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:      make(map[string]*User),
		bySubject: make(map[string]string),
		now:       time.Now,
	}
}

func (s *MemoryStore) FindOrCreate(_ context.Context, identity Identity) (*User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.bySubject[identity.SubjectID]; ok {
		return s.byID[id].clone(), false, nil
	}

	now := s.now()
	user := &User{
		ID:            uuid.NewString(),
		SubjectID:     identity.SubjectID,
		Email:         identity.Email,
		DisplayName:   identity.DisplayName,
		PictureURL:    identity.PictureURL,
		ProfileStatus: StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.byID[user.ID] = user
	s.bySubject[user.SubjectID] = user.ID

	return user.clone(), true, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	return user.clone(), nil
}

func (s *MemoryStore) UpdateProfile(_ context.Context, id string, patch ProfilePatch) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	user.applyPatch(patch)
	user.UpdatedAt = s.now()

	return user.clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}

	delete(s.byID, id)
	delete(s.bySubject, user.SubjectID)

	return nil
}

// returns the number of stored records
func (s *MemoryStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (u *User) clone() *User {
	c := *u
	return &c
}

var _ Directory = (*MemoryStore)(nil)
