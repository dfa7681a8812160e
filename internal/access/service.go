package access

import (
	"context"
	"errors"
	"log/slog"

	"allograft/internal/audit"
	"allograft/internal/sentinel"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// Service is the access-control gate. It is constructed once and injected into
// every workflow service, so tests can build isolated authorization contexts
// instead of sharing process-wide state.
type Service struct {
	grants   GrantStore
	logger   *slog.Logger
	recorder *audit.Recorder
}

// Option configures the service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithRecorder(r *audit.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func NewService(grants GrantStore, opts ...Option) *Service {
	s := &Service{grants: grants}
	for _, opt := range opts {
		opt(s)
	}
	if s.recorder == nil {
		s.recorder = audit.NewRecorder(s.logger, nil)
	}
	return s
}

// Authorize reports whether the actor holds the required role. It runs before
// any state read or write in every mutating operation, so a failure here can
// never leak partial side effects.
func (s *Service) Authorize(ctx context.Context, actor id.ActorID, role Role) error {
	if actor.IsNil() {
		return dErrors.New(dErrors.CodeUnauthorized, "caller identity is required")
	}
	held, err := s.grants.HasRole(ctx, actor, role)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check role grant")
	}
	if !held {
		return dErrors.New(dErrors.CodeForbidden, "caller lacks required role: "+role.String())
	}
	return nil
}

// Grant records a role for an actor. The administrative surface calling this
// sits outside the core workflow and is gated separately (bootstrap token).
func (s *Service) Grant(ctx context.Context, actor id.ActorID, role Role) error {
	if actor.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "actor ID is required")
	}
	held, err := s.grants.HasRole(ctx, actor, role)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check role grant")
	}
	if held {
		return dErrors.New(dErrors.CodeConflict, "role already granted")
	}
	// Event append before the store write, so a sink failure leaves the
	// grant unrecorded rather than unaudited.
	if err := s.recorder.Record(ctx, audit.ActionRoleGranted, actor.String(), actor.String(), role.String()); err != nil {
		return err
	}
	if err := s.grants.Grant(ctx, actor, role); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return dErrors.New(dErrors.CodeConflict, "role already granted")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record grant")
	}
	return nil
}

// Revoke removes a role from an actor.
func (s *Service) Revoke(ctx context.Context, actor id.ActorID, role Role) error {
	if actor.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "actor ID is required")
	}
	held, err := s.grants.HasRole(ctx, actor, role)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check role grant")
	}
	if !held {
		return dErrors.New(dErrors.CodeNotFound, "grant not found")
	}
	if err := s.recorder.Record(ctx, audit.ActionRoleRevoked, actor.String(), actor.String(), role.String()); err != nil {
		return err
	}
	if err := s.grants.Revoke(ctx, actor, role); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "grant not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke grant")
	}
	return nil
}

// RolesOf lists the actor's granted roles.
func (s *Service) RolesOf(ctx context.Context, actor id.ActorID) ([]Role, error) {
	if actor.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "actor ID is required")
	}
	roles, err := s.grants.RolesOf(ctx, actor)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list grants")
	}
	return roles, nil
}
