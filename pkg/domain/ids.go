// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"strconv"

	"github.com/google/uuid"

	dErrors "allograft/pkg/domain-errors"
)

// Distinct ID types - the compiler prevents passing a PatientID where a
// DonorID is expected. Patient and donor ids live in separate namespaces
// even though both are caller-chosen integers.
type (
	PatientID uint64
	DonorID   uint64
)

// OrganID identifies a donated organ in the surgery pipeline. An organ carries
// the id of the donor it came from, but pipeline code must convert explicitly
// so a patient id can never reach an organ lookup.
type OrganID uint64

// ActorID identifies an acting party (clinician, surgeon, transporter).
// Actors are provisioned by the admin surface, so a UUID is used rather than
// a caller-chosen integer.
type ActorID uuid.UUID

// Organ returns the organ id produced when this donor's organ is procured.
func (id DonorID) Organ() OrganID { return OrganID(id) }

// Donor returns the donor this organ came from.
func (id OrganID) Donor() DonorID { return DonorID(id) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParsePatientID(s string) (PatientID, error) {
	v, err := parseUint(s, "patient ID")
	return PatientID(v), err
}

func ParseDonorID(s string) (DonorID, error) {
	v, err := parseUint(s, "donor ID")
	return DonorID(v), err
}

func ParseOrganID(s string) (OrganID, error) {
	v, err := parseUint(s, "organ ID")
	return OrganID(v), err
}

func ParseActorID(s string) (ActorID, error) {
	if s == "" {
		return ActorID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "actor ID cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return ActorID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "invalid actor ID format")
	}
	return ActorID(id), nil
}

// NewActorID generates a fresh actor identity.
func NewActorID() ActorID { return ActorID(uuid.New()) }

// String methods - for logging and audit subjects.

func (id PatientID) String() string { return strconv.FormatUint(uint64(id), 10) }
func (id DonorID) String() string   { return strconv.FormatUint(uint64(id), 10) }
func (id OrganID) String() string   { return strconv.FormatUint(uint64(id), 10) }
func (id ActorID) String() string   { return uuid.UUID(id).String() }

// IsNil checks - used for service-layer validation.

func (id ActorID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// parseUint is the shared validation logic for caller-chosen numeric ids.
// Zero is a legal id; uniqueness is enforced by the registries, not here.
func parseUint(s, label string) (uint64, error) {
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	return v, nil
}
