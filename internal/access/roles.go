// Package access implements the role gate: it maps acting identities to
// granted roles and answers, for every mutating workflow operation, whether
// the caller holds the role that operation requires.
package access

import (
	dErrors "allograft/pkg/domain-errors"
)

// Role is a closed enumeration of workflow capabilities. Checks are exhaustive
// switches over these variants; there is no string comparison at authorization
// time.
type Role uint8

const (
	// RoleDoctor registers patients and donors (intake).
	RoleDoctor Role = iota + 1
	// RoleTransplantTeam verifies patients and confirms organ receipt.
	RoleTransplantTeam
	// RoleProcurementTeam verifies donors.
	RoleProcurementTeam
	// RoleMatchingOrganizer pairs verified donors with verified patients.
	RoleMatchingOrganizer
	// RoleDonorSurgeon performs the donation surgery.
	RoleDonorSurgeon
	// RoleTransporter delivers procured organs.
	RoleTransporter
	// RoleTransplantSurgeon performs the transplant surgery.
	RoleTransplantSurgeon
	// RoleAdmin manages role grants and actor provisioning.
	RoleAdmin
)

// String returns the stable wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleDoctor:
		return "doctor"
	case RoleTransplantTeam:
		return "transplant_team"
	case RoleProcurementTeam:
		return "procurement_team"
	case RoleMatchingOrganizer:
		return "matching_organizer"
	case RoleDonorSurgeon:
		return "donor_surgeon"
	case RoleTransporter:
		return "transporter"
	case RoleTransplantSurgeon:
		return "transplant_surgeon"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// ParseRole converts a wire name into a Role. Used at the admin trust boundary.
func ParseRole(s string) (Role, error) {
	switch s {
	case "doctor":
		return RoleDoctor, nil
	case "transplant_team":
		return RoleTransplantTeam, nil
	case "procurement_team":
		return RoleProcurementTeam, nil
	case "matching_organizer":
		return RoleMatchingOrganizer, nil
	case "donor_surgeon":
		return RoleDonorSurgeon, nil
	case "transporter":
		return RoleTransporter, nil
	case "transplant_surgeon":
		return RoleTransplantSurgeon, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, dErrors.New(dErrors.CodeInvalidInput, "unknown role: "+s)
	}
}
