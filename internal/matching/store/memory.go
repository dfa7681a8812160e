// Package store persists committed donor-patient matches.
package store

import (
	"context"
	"sync"

	"allograft/internal/matching/models"
	"allograft/internal/sentinel"
	id "allograft/pkg/domain"
)

// MatchStore owns the committed pairings. Each donor and each patient is
// allowed at most one entry.
type MatchStore interface {
	// Create stores the pairing, returning sentinel.ErrAlreadyUsed if either
	// side already appears in a match.
	Create(ctx context.Context, m *models.Match) error
	FindByPatient(ctx context.Context, patientID id.PatientID) (*models.Match, error)
	FindByDonor(ctx context.Context, donorID id.DonorID) (*models.Match, error)
	Count(ctx context.Context) (int, error)
}

// InMemoryMatchStore indexes matches by both sides of the pairing. Records
// are copied on the way in and out.
type InMemoryMatchStore struct {
	mu        sync.RWMutex
	byPatient map[id.PatientID]models.Match
	byDonor   map[id.DonorID]models.Match
}

func NewInMemoryMatchStore() *InMemoryMatchStore {
	return &InMemoryMatchStore{
		byPatient: make(map[id.PatientID]models.Match),
		byDonor:   make(map[id.DonorID]models.Match),
	}
}

func (s *InMemoryMatchStore) Create(_ context.Context, m *models.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byDonor[m.DonorID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if _, exists := s.byPatient[m.PatientID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.byDonor[m.DonorID] = *m
	s.byPatient[m.PatientID] = *m
	return nil
}

func (s *InMemoryMatchStore) FindByPatient(_ context.Context, patientID id.PatientID) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byPatient[patientID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &m, nil
}

func (s *InMemoryMatchStore) FindByDonor(_ context.Context, donorID id.DonorID) (*models.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byDonor[donorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &m, nil
}

func (s *InMemoryMatchStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byDonor), nil
}
