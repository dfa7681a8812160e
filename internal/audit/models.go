// Package audit is the append-only notification stream of the workflow. Every
// state transition appends exactly one event inside the same transactional
// boundary as the mutation, so the stream order is the transition order.
package audit

import "time"

// Event is emitted from workflow logic to capture a completed transition.
// Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject"`
	Detail    string    `json:"detail,omitempty"`
	Device    string    `json:"device,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
}

// Action names a workflow transition.
type Action string

const (
	ActionPatientRegistered   Action = "patient_registered"
	ActionPatientVerified     Action = "patient_verified"
	ActionDonorRegistered     Action = "donor_registered"
	ActionDonorVerified       Action = "donor_verified"
	ActionMatchFound          Action = "match_found"
	ActionDonationCompleted   Action = "donation_completed"
	ActionOrganDelivered      Action = "organ_delivered"
	ActionOrganReceived       Action = "organ_received"
	ActionTransplantCompleted Action = "transplant_completed"
	ActionRoleGranted         Action = "role_granted"
	ActionRoleRevoked         Action = "role_revoked"
)
