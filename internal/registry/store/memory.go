// Package store persists patient and donor records.
package store

import (
	"context"
	"sync"

	"allograft/internal/registry/models"
	"allograft/internal/sentinel"
	id "allograft/pkg/domain"
)

// PatientStore owns the canonical patient records.
type PatientStore interface {
	// Create stores the record, returning sentinel.ErrAlreadyUsed if the id is taken.
	Create(ctx context.Context, p *models.Patient) error
	FindByID(ctx context.Context, patientID id.PatientID) (*models.Patient, error)
	Update(ctx context.Context, p *models.Patient) error
	Count(ctx context.Context) (int, error)
}

// DonorStore owns the canonical donor records.
type DonorStore interface {
	Create(ctx context.Context, d *models.Donor) error
	FindByID(ctx context.Context, donorID id.DonorID) (*models.Donor, error)
	Update(ctx context.Context, d *models.Donor) error
	Count(ctx context.Context) (int, error)
}

// InMemoryPatientStore stores patients in memory. Records are copied on the
// way in and out so callers can never mutate stored state outside a
// transaction.
type InMemoryPatientStore struct {
	mu       sync.RWMutex
	patients map[id.PatientID]models.Patient
}

func NewInMemoryPatientStore() *InMemoryPatientStore {
	return &InMemoryPatientStore{patients: make(map[id.PatientID]models.Patient)}
}

func (s *InMemoryPatientStore) Create(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.patients[p.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.patients[p.ID] = *p
	return nil
}

func (s *InMemoryPatientStore) FindByID(_ context.Context, patientID id.PatientID) (*models.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[patientID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &p, nil
}

func (s *InMemoryPatientStore) Update(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.patients[p.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.patients[p.ID] = *p
	return nil
}

func (s *InMemoryPatientStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.patients), nil
}

// InMemoryDonorStore stores donors in memory.
type InMemoryDonorStore struct {
	mu     sync.RWMutex
	donors map[id.DonorID]models.Donor
}

func NewInMemoryDonorStore() *InMemoryDonorStore {
	return &InMemoryDonorStore{donors: make(map[id.DonorID]models.Donor)}
}

func (s *InMemoryDonorStore) Create(_ context.Context, d *models.Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.donors[d.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	s.donors[d.ID] = *d
	return nil
}

func (s *InMemoryDonorStore) FindByID(_ context.Context, donorID id.DonorID) (*models.Donor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.donors[donorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &d, nil
}

func (s *InMemoryDonorStore) Update(_ context.Context, d *models.Donor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.donors[d.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.donors[d.ID] = *d
	return nil
}

func (s *InMemoryDonorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.donors), nil
}
