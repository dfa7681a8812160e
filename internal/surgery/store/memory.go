// Package store persists organ pipeline records.
package store

import (
	"context"
	"sync"

	"allograft/internal/sentinel"
	"allograft/internal/surgery/models"
	id "allograft/pkg/domain"
)

// OrganStore owns the organ pipeline records, addressable by organ id and by
// the matched recipient.
type OrganStore interface {
	// Create stores the record, returning sentinel.ErrAlreadyUsed if the
	// organ id is taken.
	Create(ctx context.Context, o *models.Organ) error
	FindByID(ctx context.Context, organID id.OrganID) (*models.Organ, error)
	FindByPatient(ctx context.Context, patientID id.PatientID) (*models.Organ, error)
	Update(ctx context.Context, o *models.Organ) error
	Count(ctx context.Context) (int, error)
}

// InMemoryOrganStore stores organs in memory. Records are copied on the way
// in and out.
type InMemoryOrganStore struct {
	mu        sync.RWMutex
	organs    map[id.OrganID]models.Organ
	byPatient map[id.PatientID]id.OrganID
}

func NewInMemoryOrganStore() *InMemoryOrganStore {
	return &InMemoryOrganStore{
		organs:    make(map[id.OrganID]models.Organ),
		byPatient: make(map[id.PatientID]id.OrganID),
	}
}

func (s *InMemoryOrganStore) Create(_ context.Context, o *models.Organ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.organs[o.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.organs[o.ID] = *o
	s.byPatient[o.PatientID] = o.ID
	return nil
}

func (s *InMemoryOrganStore) FindByID(_ context.Context, organID id.OrganID) (*models.Organ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.organs[organID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &o, nil
}

func (s *InMemoryOrganStore) FindByPatient(_ context.Context, patientID id.PatientID) (*models.Organ, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	organID, ok := s.byPatient[patientID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	o := s.organs[organID]
	return &o, nil
}

func (s *InMemoryOrganStore) Update(_ context.Context, o *models.Organ) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.organs[o.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.organs[o.ID] = *o
	return nil
}

func (s *InMemoryOrganStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.organs), nil
}
