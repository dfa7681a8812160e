package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"allograft/internal/audit"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// AccessSuite tests the role gate.
//
// Justification: every mutating workflow operation aborts on this check before
// touching state; a false positive here defeats the whole authorization model.
type AccessSuite struct {
	suite.Suite
	svc    *Service
	events *audit.InMemoryStore
	actor  id.ActorID
}

func TestAccessSuite(t *testing.T) {
	suite.Run(t, new(AccessSuite))
}

func (s *AccessSuite) SetupTest() {
	s.events = audit.NewInMemoryStore()
	recorder := audit.NewRecorder(nil, audit.NewPublisher(s.events))
	s.svc = NewService(NewInMemoryGrantStore(), WithRecorder(recorder))
	s.actor = id.NewActorID()
}

func (s *AccessSuite) TestAuthorize() {
	ctx := context.Background()

	s.Run("denies actor with no grants", func() {
		err := s.svc.Authorize(ctx, s.actor, RoleDoctor)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("allows granted role only", func() {
		s.Require().NoError(s.svc.Grant(ctx, s.actor, RoleDoctor))
		s.NoError(s.svc.Authorize(ctx, s.actor, RoleDoctor))
		err := s.svc.Authorize(ctx, s.actor, RoleTransporter)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("denies nil actor", func() {
		err := s.svc.Authorize(ctx, id.ActorID{}, RoleDoctor)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *AccessSuite) TestGrantRevoke() {
	ctx := context.Background()

	s.Run("duplicate grant conflicts", func() {
		s.Require().NoError(s.svc.Grant(ctx, s.actor, RoleTransporter))
		err := s.svc.Grant(ctx, s.actor, RoleTransporter)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("revoke removes the role", func() {
		s.Require().NoError(s.svc.Revoke(ctx, s.actor, RoleTransporter))
		err := s.svc.Authorize(ctx, s.actor, RoleTransporter)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("revoking absent grant is not found", func() {
		err := s.svc.Revoke(ctx, s.actor, RoleAdmin)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("grants and revokes are audited", func() {
		events, err := s.events.List(ctx)
		s.Require().NoError(err)
		s.Require().Len(events, 2)
		s.Equal(audit.ActionRoleGranted, events[0].Action)
		s.Equal(audit.ActionRoleRevoked, events[1].Action)
	})
}

func (s *AccessSuite) TestRolesOf() {
	ctx := context.Background()
	s.Require().NoError(s.svc.Grant(ctx, s.actor, RoleTransplantSurgeon))
	s.Require().NoError(s.svc.Grant(ctx, s.actor, RoleDoctor))

	roles, err := s.svc.RolesOf(ctx, s.actor)
	s.Require().NoError(err)
	// Stable order regardless of grant order.
	s.Equal([]Role{RoleDoctor, RoleTransplantSurgeon}, roles)
}

func (s *AccessSuite) TestParseRole() {
	for _, r := range []Role{RoleDoctor, RoleTransplantTeam, RoleProcurementTeam,
		RoleMatchingOrganizer, RoleDonorSurgeon, RoleTransporter, RoleTransplantSurgeon, RoleAdmin} {
		parsed, err := ParseRole(r.String())
		s.Require().NoError(err)
		s.Equal(r, parsed)
	}
	_, err := ParseRole("janitor")
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
