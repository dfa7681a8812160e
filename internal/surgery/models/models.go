// Package models holds the organ pipeline record and its state machine.
// After a match is committed, the organ moves strictly forward:
// procured, delivered, received, transplanted. No transition is skippable
// and none repeats.
package models

import (
	"time"

	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// OrganState is the organ's position in the surgical pipeline.
type OrganState uint8

const (
	// StateReady means the donation surgery is done and the organ awaits transport.
	StateReady OrganState = iota + 1
	// StateDelivered means the transporter handed the organ to the receiving hospital.
	StateDelivered
	// StateReceived means the transplant team confirmed receipt for the matched recipient.
	StateReceived
	// StateTransplanted is terminal.
	StateTransplanted
)

// String returns the stable wire name of the state.
func (st OrganState) String() string {
	switch st {
	case StateReady:
		return "ready"
	case StateDelivered:
		return "delivered"
	case StateReceived:
		return "received"
	case StateTransplanted:
		return "transplanted"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so the state renders as its
// wire name in JSON payloads.
func (st OrganState) MarshalText() ([]byte, error) {
	return []byte(st.String()), nil
}

// Organ tracks one procured organ from donation surgery to transplant. It is
// created at procurement time and only ever moves forward.
type Organ struct {
	ID             id.OrganID   `json:"id"`
	DonorID        id.DonorID   `json:"donor_id"`
	PatientID      id.PatientID `json:"patient_id"`
	State          OrganState   `json:"state"`
	ProcuredAt     time.Time    `json:"procured_at"`
	DeliveredAt    time.Time    `json:"delivered_at,omitzero"`
	ReceivedAt     time.Time    `json:"received_at,omitzero"`
	TransplantedAt time.Time    `json:"transplanted_at,omitzero"`
}

// NewOrgan records the donation surgery. The procurement time is supplied by
// the surgeon, not the clock: the surgery happened in an operating theatre,
// not in this process.
func NewOrgan(organID id.OrganID, donorID id.DonorID, patientID id.PatientID, procuredAt time.Time) (*Organ, error) {
	if procuredAt.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "procurement time is required")
	}
	return &Organ{
		ID:         organID,
		DonorID:    donorID,
		PatientID:  patientID,
		State:      StateReady,
		ProcuredAt: procuredAt,
	}, nil
}

// Deliver moves ready→delivered.
func (o *Organ) Deliver(now time.Time) error {
	switch o.State {
	case StateReady:
		o.State = StateDelivered
		o.DeliveredAt = now
		return nil
	case StateDelivered, StateReceived, StateTransplanted:
		return dErrors.New(dErrors.CodeInvalidState, "organ already delivered")
	default:
		return dErrors.New(dErrors.CodeInvalidState, "organ not ready for delivery")
	}
}

// Receive moves delivered→received.
func (o *Organ) Receive(now time.Time) error {
	switch o.State {
	case StateDelivered:
		o.State = StateReceived
		o.ReceivedAt = now
		return nil
	case StateReceived, StateTransplanted:
		return dErrors.New(dErrors.CodeInvalidState, "organ receipt already confirmed")
	default:
		return dErrors.New(dErrors.CodeInvalidState, "organ not delivered yet")
	}
}

// Transplant moves received→transplanted. Like procurement, the surgery time
// is supplied by the surgeon.
func (o *Organ) Transplant(at time.Time) error {
	if at.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "transplant time is required")
	}
	switch o.State {
	case StateReceived:
		o.State = StateTransplanted
		o.TransplantedAt = at
		return nil
	case StateTransplanted:
		return dErrors.New(dErrors.CodeInvalidState, "organ already transplanted")
	default:
		return dErrors.New(dErrors.CodeInvalidState, "organ receipt not confirmed yet")
	}
}
