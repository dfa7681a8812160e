// Package service pairs verified donors with verified patients. Pairing is
// the gate between the registries and the surgical pipeline: nothing moves
// toward surgery until a match is committed here.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"allograft/internal/access"
	"allograft/internal/audit"
	matchmetrics "allograft/internal/matching/metrics"
	"allograft/internal/matching/models"
	"allograft/internal/matching/store"
	"allograft/internal/platform/storetx"
	"allograft/internal/platform/tracer"
	registrymodels "allograft/internal/registry/models"
	"allograft/internal/sentinel"
	"allograft/internal/waitlist"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Authorizer is the role gate consumed by every mutating operation.
type Authorizer interface {
	Authorize(ctx context.Context, actor id.ActorID, role access.Role) error
}

// PatientSource reads canonical patient records from the registry.
type PatientSource interface {
	GetPatient(ctx context.Context, patientID id.PatientID) (*registrymodels.Patient, error)
}

// DonorSource reads canonical donor records from the registry.
type DonorSource interface {
	GetDonor(ctx context.Context, donorID id.DonorID) (*registrymodels.Donor, error)
}

// WaitlistSource reads the verification-ordered waiting lists from the
// registry.
type WaitlistSource interface {
	PatientWaitingList(ctx context.Context) ([]id.PatientID, error)
	DonorWaitingList(ctx context.Context) ([]id.DonorID, error)
}

// Service owns the matching step of the workflow.
type Service struct {
	matches   store.MatchStore
	patients  PatientSource
	donors    DonorSource
	waitlists WaitlistSource
	authz     Authorizer
	tx        storetx.StoreTx

	logger   *slog.Logger
	recorder *audit.Recorder
	metrics  *matchmetrics.Metrics
	tracer   *tracer.Tracer
	now      func() time.Time
}

// Option configures the service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithRecorder(r *audit.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithMetrics(m *matchmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithTracer(t *tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithClock overrides the time source for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(
	matches store.MatchStore,
	patients PatientSource,
	donors DonorSource,
	waitlists WaitlistSource,
	authz Authorizer,
	tx storetx.StoreTx,
	opts ...Option,
) *Service {
	s := &Service{
		matches:   matches,
		patients:  patients,
		donors:    donors,
		waitlists: waitlists,
		authz:     authz,
		tx:        tx,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recorder == nil {
		s.recorder = audit.NewRecorder(s.logger, nil)
	}
	if s.tracer == nil {
		s.tracer = tracer.New()
	}
	return s
}

// MatchCommand names the donor, the candidate recipient, and the screening
// window the organizer applies to the recipient.
type MatchCommand struct {
	DonorID   id.DonorID
	PatientID id.PatientID
	Criteria  models.Criteria
}

// Match screens the named patient against the donor and commits the pairing.
// Requires the matching-organizer role.
//
// A screening miss (criteria, blood group, or organ mismatch) is reported in
// the result, not as an error: nothing is stored and no event is emitted.
// Missing or unverified records and sides that are already matched are hard
// errors.
func (s *Service) Match(ctx context.Context, actor id.ActorID, cmd MatchCommand) (result *models.Result, err error) {
	ctx, span := s.tracer.Start(ctx, "matching.Match",
		tracer.String("donor_id", cmd.DonorID.String()),
		tracer.String("patient_id", cmd.PatientID.String()),
	)
	defer func() { span.End(err) }()

	if err = s.authz.Authorize(ctx, actor, access.RoleMatchingOrganizer); err != nil {
		return nil, err
	}
	if err = cmd.Criteria.Validate(); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Attempts.Inc()
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		donor, err := s.donors.GetDonor(txCtx, cmd.DonorID)
		if err != nil {
			return err
		}
		if !donor.Verified {
			return dErrors.New(dErrors.CodeInvalidState, "donor not verified")
		}
		patient, err := s.patients.GetPatient(txCtx, cmd.PatientID)
		if err != nil {
			return err
		}
		if !patient.Verified {
			return dErrors.New(dErrors.CodeInvalidState, "patient not verified")
		}
		if _, err := s.matches.FindByDonor(txCtx, cmd.DonorID); err == nil {
			return dErrors.New(dErrors.CodeInvalidState, "donor already matched")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "match store failure")
		}
		if _, err := s.matches.FindByPatient(txCtx, cmd.PatientID); err == nil {
			return dErrors.New(dErrors.CodeInvalidState, "patient already matched")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "match store failure")
		}

		if reason := screen(patient, donor, cmd.Criteria); reason != "" {
			result = &models.Result{Matched: false, Reason: reason}
			return nil
		}

		m := models.NewMatch(cmd.DonorID, cmd.PatientID, cmd.Criteria, s.now())
		// Event append is the only fallible effect; it runs before the
		// store write so a sink failure leaves no partial state.
		detail := fmt.Sprintf("patient %s matched with donor %s", cmd.PatientID, cmd.DonorID)
		if err := s.recorder.Record(txCtx, audit.ActionMatchFound, actor.String(), m.OrganID.String(), detail); err != nil {
			return err
		}
		if err := s.matches.Create(txCtx, m); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store match")
		}
		result = &models.Result{Matched: true, Match: m}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		if result.Matched {
			s.metrics.Found.Inc()
		} else {
			s.metrics.Rejected.Inc()
		}
	}
	return result, nil
}

// screen applies the organizer's acceptance window to the recipient and the
// biological compatibility checks between the two records. Returns an empty
// string when the pairing passes.
func screen(patient *registrymodels.Patient, donor *registrymodels.Donor, criteria models.Criteria) string {
	if patient.OrganNeeded != donor.OrganDonated {
		return "organ mismatch"
	}
	if patient.BloodGroup != donor.BloodGroup {
		return "blood group mismatch"
	}
	if !criteria.Admits(patient.Age, patient.BMI) {
		return "recipient outside acceptance criteria"
	}
	return ""
}

// MatchByPatient fetches the committed pairing for a patient.
func (s *Service) MatchByPatient(ctx context.Context, patientID id.PatientID) (*models.Match, error) {
	m, err := s.matches.FindByPatient(ctx, patientID)
	if err != nil {
		return nil, wrapMatchErr(err)
	}
	return m, nil
}

// MatchByDonor fetches the committed pairing for a donor.
func (s *Service) MatchByDonor(ctx context.Context, donorID id.DonorID) (*models.Match, error) {
	m, err := s.matches.FindByDonor(ctx, donorID)
	if err != nil {
		return nil, wrapMatchErr(err)
	}
	return m, nil
}

// PendingPatients returns the waiting-list patients that have no committed
// match yet, in verification order.
func (s *Service) PendingPatients(ctx context.Context) ([]id.PatientID, error) {
	all, err := s.waitlists.PatientWaitingList(ctx)
	if err != nil {
		return nil, err
	}
	return waitlist.Filter(all, func(patientID id.PatientID) bool {
		_, err := s.matches.FindByPatient(ctx, patientID)
		return errors.Is(err, sentinel.ErrNotFound)
	}), nil
}

// PendingDonors returns the waiting-list donors that have no committed match
// yet, in verification order.
func (s *Service) PendingDonors(ctx context.Context) ([]id.DonorID, error) {
	all, err := s.waitlists.DonorWaitingList(ctx)
	if err != nil {
		return nil, err
	}
	return waitlist.Filter(all, func(donorID id.DonorID) bool {
		_, err := s.matches.FindByDonor(ctx, donorID)
		return errors.Is(err, sentinel.ErrNotFound)
	}), nil
}

func wrapMatchErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "match not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "match store failure")
}
