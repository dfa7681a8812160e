package access

import (
	"context"
	"sync"

	"allograft/internal/sentinel"
	id "allograft/pkg/domain"
)

// GrantStore persists (actor, role) pairs.
type GrantStore interface {
	// Grant records the pair; it is idempotent-safe at the store level and
	// returns sentinel.ErrAlreadyUsed if the grant already exists.
	Grant(ctx context.Context, actor id.ActorID, role Role) error
	// Revoke removes the pair, returning sentinel.ErrNotFound if absent.
	Revoke(ctx context.Context, actor id.ActorID, role Role) error
	// HasRole reports whether the actor holds the role.
	HasRole(ctx context.Context, actor id.ActorID, role Role) (bool, error)
	// RolesOf lists the actor's roles in a stable order.
	RolesOf(ctx context.Context, actor id.ActorID) ([]Role, error)
}

// InMemoryGrantStore keeps grants in memory.
type InMemoryGrantStore struct {
	mu     sync.RWMutex
	grants map[id.ActorID]map[Role]struct{}
}

func NewInMemoryGrantStore() *InMemoryGrantStore {
	return &InMemoryGrantStore{grants: make(map[id.ActorID]map[Role]struct{})}
}

func (s *InMemoryGrantStore) Grant(_ context.Context, actor id.ActorID, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.grants[actor]
	if !ok {
		set = make(map[Role]struct{})
		s.grants[actor] = set
	}
	if _, exists := set[role]; exists {
		return sentinel.ErrAlreadyUsed
	}
	set[role] = struct{}{}
	return nil
}

func (s *InMemoryGrantStore) Revoke(_ context.Context, actor id.ActorID, role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.grants[actor]
	if !ok {
		return sentinel.ErrNotFound
	}
	if _, exists := set[role]; !exists {
		return sentinel.ErrNotFound
	}
	delete(set, role)
	return nil
}

func (s *InMemoryGrantStore) HasRole(_ context.Context, actor id.ActorID, role Role) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.grants[actor]
	if !ok {
		return false, nil
	}
	_, exists := set[role]
	return exists, nil
}

func (s *InMemoryGrantStore) RolesOf(_ context.Context, actor id.ActorID) ([]Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.grants[actor]
	if !ok {
		return nil, nil
	}
	roles := make([]Role, 0, len(set))
	for r := RoleDoctor; r <= RoleAdmin; r++ {
		if _, exists := set[r]; exists {
			roles = append(roles, r)
		}
	}
	return roles, nil
}
