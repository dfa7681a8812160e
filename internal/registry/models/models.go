// Package models holds the canonical patient and donor records.
package models

import (
	"time"

	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// Patient is the canonical record for a registered patient. The id is
// caller-chosen and assigned exactly once; all fields except Verified are
// immutable after registration.
type Patient struct {
	ID           id.PatientID `json:"id"`
	Age          int          `json:"age"`
	BMI          int          `json:"bmi"`
	BloodGroup   string       `json:"blood_group"`
	OrganNeeded  string       `json:"organ_needed"`
	Verified     bool         `json:"verified"`
	RegisteredAt time.Time    `json:"registered_at"`
	VerifiedAt   time.Time    `json:"verified_at,omitzero"`
}

// Donor mirrors Patient in a separate id namespace.
type Donor struct {
	ID           id.DonorID `json:"id"`
	Age          int        `json:"age"`
	BMI          int        `json:"bmi"`
	BloodGroup   string     `json:"blood_group"`
	OrganDonated string     `json:"organ_donated"`
	Verified     bool       `json:"verified"`
	RegisteredAt time.Time  `json:"registered_at"`
	VerifiedAt   time.Time  `json:"verified_at,omitzero"`
}

func NewPatient(patientID id.PatientID, age, bmi int, bloodGroup, organNeeded string, now time.Time) (*Patient, error) {
	if err := validateVitals(age, bmi, bloodGroup, organNeeded); err != nil {
		return nil, err
	}
	return &Patient{
		ID:           patientID,
		Age:          age,
		BMI:          bmi,
		BloodGroup:   bloodGroup,
		OrganNeeded:  organNeeded,
		RegisteredAt: now,
	}, nil
}

func NewDonor(donorID id.DonorID, age, bmi int, bloodGroup, organDonated string, now time.Time) (*Donor, error) {
	if err := validateVitals(age, bmi, bloodGroup, organDonated); err != nil {
		return nil, err
	}
	return &Donor{
		ID:           donorID,
		Age:          age,
		BMI:          bmi,
		BloodGroup:   bloodGroup,
		OrganDonated: organDonated,
		RegisteredAt: now,
	}, nil
}

// Verify performs the one-way false→true transition. A second verification
// is a state error, never a silent no-op.
func (p *Patient) Verify(now time.Time) error {
	if p.Verified {
		return dErrors.New(dErrors.CodeInvalidState, "patient already verified")
	}
	p.Verified = true
	p.VerifiedAt = now
	return nil
}

// Verify performs the one-way false→true transition for a donor.
func (d *Donor) Verify(now time.Time) error {
	if d.Verified {
		return dErrors.New(dErrors.CodeInvalidState, "donor already verified")
	}
	d.Verified = true
	d.VerifiedAt = now
	return nil
}

func validateVitals(age, bmi int, bloodGroup, organ string) error {
	if age <= 0 || age > 150 {
		return dErrors.New(dErrors.CodeInvalidInput, "age must be between 1 and 150")
	}
	if bmi <= 0 || bmi > 100 {
		return dErrors.New(dErrors.CodeInvalidInput, "bmi must be between 1 and 100")
	}
	if bloodGroup == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "blood group is required")
	}
	if organ == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "organ is required")
	}
	return nil
}
