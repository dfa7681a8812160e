// Package models holds the match pairing record and the screening criteria
// the organizer applies when pairing a donor with a patient.
package models

import (
	"time"

	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// Criteria is the acceptance window the organizer screens the recipient
// against. Bounds are inclusive.
type Criteria struct {
	AgeMin int `json:"age_min"`
	AgeMax int `json:"age_max"`
	BMIMin int `json:"bmi_min"`
	BMIMax int `json:"bmi_max"`
}

func (c Criteria) Validate() error {
	if c.AgeMin <= 0 || c.AgeMax <= 0 || c.BMIMin <= 0 || c.BMIMax <= 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "criteria bounds must be positive")
	}
	if c.AgeMin > c.AgeMax {
		return dErrors.New(dErrors.CodeInvalidInput, "age_min exceeds age_max")
	}
	if c.BMIMin > c.BMIMax {
		return dErrors.New(dErrors.CodeInvalidInput, "bmi_min exceeds bmi_max")
	}
	return nil
}

// Admits reports whether the given vitals fall inside the window.
func (c Criteria) Admits(age, bmi int) bool {
	return age >= c.AgeMin && age <= c.AgeMax && bmi >= c.BMIMin && bmi <= c.BMIMax
}

// Match records a committed donor-patient pairing. A donor and a patient each
// appear in at most one match; the pairing is immutable once stored.
type Match struct {
	DonorID   id.DonorID   `json:"donor_id"`
	PatientID id.PatientID `json:"patient_id"`
	OrganID   id.OrganID   `json:"organ_id"`
	Criteria  Criteria     `json:"criteria"`
	MatchedAt time.Time    `json:"matched_at"`
}

func NewMatch(donorID id.DonorID, patientID id.PatientID, criteria Criteria, now time.Time) *Match {
	return &Match{
		DonorID:   donorID,
		PatientID: patientID,
		OrganID:   donorID.Organ(),
		Criteria:  criteria,
		MatchedAt: now,
	}
}

// Result is the outcome of a pairing attempt. A screening miss is not an
// error: Matched is false and Match is nil.
type Result struct {
	Matched bool   `json:"matched"`
	Reason  string `json:"reason,omitempty"`
	Match   *Match `json:"match,omitempty"`
}
