// Package service orchestrates patient and donor registration and the
// four-eyes verification that places records onto the waiting lists.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"allograft/internal/access"
	"allograft/internal/audit"
	"allograft/internal/platform/storetx"
	"allograft/internal/platform/tracer"
	registrymetrics "allograft/internal/registry/metrics"
	"allograft/internal/registry/models"
	"allograft/internal/registry/store"
	"allograft/internal/sentinel"
	"allograft/internal/waitlist"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// Authorizer is the role gate consumed by every mutating operation.
type Authorizer interface {
	Authorize(ctx context.Context, actor id.ActorID, role access.Role) error
}

// Service owns the patient and donor registries.
type Service struct {
	patients    store.PatientStore
	donors      store.DonorStore
	patientList *waitlist.Log[id.PatientID]
	donorList   *waitlist.Log[id.DonorID]
	authz       Authorizer
	tx          storetx.StoreTx

	logger   *slog.Logger
	recorder *audit.Recorder
	metrics  *registrymetrics.Metrics
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

func WithMetrics(m *registrymetrics.Metrics) Option {
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
	patients store.PatientStore,
	donors store.DonorStore,
	patientList *waitlist.Log[id.PatientID],
	donorList *waitlist.Log[id.DonorID],
	authz Authorizer,
	tx storetx.StoreTx,
	opts ...Option,
) *Service {
	s := &Service{
		patients:    patients,
		donors:      donors,
		patientList: patientList,
		donorList:   donorList,
		authz:       authz,
		tx:          tx,
		now:         time.Now,
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

// RegisterPatientCommand carries the intake parameters.
type RegisterPatientCommand struct {
	PatientID   id.PatientID
	Age         int
	BMI         int
	BloodGroup  string
	OrganNeeded string
}

// RegisterDonorCommand carries the intake parameters.
type RegisterDonorCommand struct {
	DonorID      id.DonorID
	Age          int
	BMI          int
	BloodGroup   string
	OrganDonated string
}

// RegisterPatient creates a patient record. Requires the doctor role.
func (s *Service) RegisterPatient(ctx context.Context, actor id.ActorID, cmd RegisterPatientCommand) (patient *models.Patient, err error) {
	ctx, span := s.tracer.Start(ctx, "registry.RegisterPatient", tracer.String("patient_id", cmd.PatientID.String()))
	defer func() { span.End(err) }()

	if err = s.authz.Authorize(ctx, actor, access.RoleDoctor); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := models.NewPatient(cmd.PatientID, cmd.Age, cmd.BMI, cmd.BloodGroup, cmd.OrganNeeded, s.now())
		if err != nil {
			return err
		}
		if _, err := s.patients.FindByID(txCtx, cmd.PatientID); err == nil {
			return dErrors.New(dErrors.CodeConflict, "patient id already registered")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "patient store failure")
		}
		// The event append is the only fallible effect in the transaction.
		// It runs after all validation and before the store writes, so a
		// sink failure leaves no partial state behind.
		if err := s.recorder.Record(txCtx, audit.ActionPatientRegistered, actor.String(), p.ID.String(), p.OrganNeeded); err != nil {
			return err
		}
		if err := s.patients.Create(txCtx, p); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create patient")
		}
		patient = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PatientsRegistered.Inc()
	}
	return patient, nil
}

// VerifyPatient performs the one-way verification and appends the patient to
// the waiting list. Requires the transplant-team role: registration and
// verification are deliberately split across roles as a four-eyes check.
func (s *Service) VerifyPatient(ctx context.Context, actor id.ActorID, patientID id.PatientID) (patient *models.Patient, err error) {
	ctx, span := s.tracer.Start(ctx, "registry.VerifyPatient", tracer.String("patient_id", patientID.String()))
	defer func() { span.End(err) }()

	if err = s.authz.Authorize(ctx, actor, access.RoleTransplantTeam); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p, err := s.patients.FindByID(txCtx, patientID)
		if err != nil {
			return wrapPatientErr(err)
		}
		if err := p.Verify(s.now()); err != nil {
			return err
		}
		if err := s.recorder.Record(txCtx, audit.ActionPatientVerified, actor.String(), p.ID.String(), ""); err != nil {
			return err
		}
		if err := s.patients.Update(txCtx, p); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update patient")
		}
		if err := s.patientList.Append(txCtx, p.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append to waiting list")
		}
		patient = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.PatientsVerified.Inc()
	}
	return patient, nil
}

// RegisterDonor creates a donor record. Requires the doctor role.
func (s *Service) RegisterDonor(ctx context.Context, actor id.ActorID, cmd RegisterDonorCommand) (donor *models.Donor, err error) {
	ctx, span := s.tracer.Start(ctx, "registry.RegisterDonor", tracer.String("donor_id", cmd.DonorID.String()))
	defer func() { span.End(err) }()

	if err = s.authz.Authorize(ctx, actor, access.RoleDoctor); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, err := models.NewDonor(cmd.DonorID, cmd.Age, cmd.BMI, cmd.BloodGroup, cmd.OrganDonated, s.now())
		if err != nil {
			return err
		}
		if _, err := s.donors.FindByID(txCtx, cmd.DonorID); err == nil {
			return dErrors.New(dErrors.CodeConflict, "donor id already registered")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "donor store failure")
		}
		if err := s.recorder.Record(txCtx, audit.ActionDonorRegistered, actor.String(), d.ID.String(), d.OrganDonated); err != nil {
			return err
		}
		if err := s.donors.Create(txCtx, d); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create donor")
		}
		donor = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DonorsRegistered.Inc()
	}
	return donor, nil
}

// VerifyDonor performs the one-way verification and appends the donor to the
// waiting list. Requires the procurement-team role.
func (s *Service) VerifyDonor(ctx context.Context, actor id.ActorID, donorID id.DonorID) (donor *models.Donor, err error) {
	ctx, span := s.tracer.Start(ctx, "registry.VerifyDonor", tracer.String("donor_id", donorID.String()))
	defer func() { span.End(err) }()

	if err = s.authz.Authorize(ctx, actor, access.RoleProcurementTeam); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		d, err := s.donors.FindByID(txCtx, donorID)
		if err != nil {
			return wrapDonorErr(err)
		}
		if err := d.Verify(s.now()); err != nil {
			return err
		}
		if err := s.recorder.Record(txCtx, audit.ActionDonorVerified, actor.String(), d.ID.String(), ""); err != nil {
			return err
		}
		if err := s.donors.Update(txCtx, d); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update donor")
		}
		if err := s.donorList.Append(txCtx, d.ID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append to waiting list")
		}
		donor = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.DonorsVerified.Inc()
	}
	return donor, nil
}

// GetPatient fetches the canonical record by id.
func (s *Service) GetPatient(ctx context.Context, patientID id.PatientID) (*models.Patient, error) {
	p, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return nil, wrapPatientErr(err)
	}
	return p, nil
}

// GetDonor fetches the canonical record by id.
func (s *Service) GetDonor(ctx context.Context, donorID id.DonorID) (*models.Donor, error) {
	d, err := s.donors.FindByID(ctx, donorID)
	if err != nil {
		return nil, wrapDonorErr(err)
	}
	return d, nil
}

// PatientWaitingList returns verified patient ids in verification order.
func (s *Service) PatientWaitingList(ctx context.Context) ([]id.PatientID, error) {
	return s.patientList.All(ctx)
}

// DonorWaitingList returns verified donor ids in verification order.
func (s *Service) DonorWaitingList(ctx context.Context) ([]id.DonorID, error) {
	return s.donorList.All(ctx)
}

func wrapPatientErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "patient not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "patient store failure")
}

func wrapDonorErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "donor not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "donor store failure")
}
