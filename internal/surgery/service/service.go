// Package service drives the surgical pipeline: donation surgery, transport,
// receipt confirmation, and the transplant itself. Every step is gated on a
// committed match and on the previous step having happened.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"allograft/internal/access"
	"allograft/internal/audit"
	matchmodels "allograft/internal/matching/models"
	"allograft/internal/platform/storetx"
	"allograft/internal/platform/tracer"
	"allograft/internal/sentinel"
	surgerymetrics "allograft/internal/surgery/metrics"
	"allograft/internal/surgery/models"
	"allograft/internal/surgery/store"
	"allograft/internal/waitlist"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// Authorizer is the role gate consumed by every mutating operation.
type Authorizer interface {
	Authorize(ctx context.Context, actor id.ActorID, role access.Role) error
}

// MatchSource reads committed pairings from the matching context.
type MatchSource interface {
	MatchByDonor(ctx context.Context, donorID id.DonorID) (*matchmodels.Match, error)
}

// Service owns the organ pipeline.
type Service struct {
	organs         store.OrganStore
	matches        MatchSource
	transplantList *waitlist.Log[id.PatientID]
	authz          Authorizer
	tx             storetx.StoreTx

	logger   *slog.Logger
	recorder *audit.Recorder
	metrics  *surgerymetrics.Metrics
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

func WithMetrics(m *surgerymetrics.Metrics) Option {
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
	organs store.OrganStore,
	matches MatchSource,
	transplantList *waitlist.Log[id.PatientID],
	authz Authorizer,
	tx storetx.StoreTx,
	opts ...Option,
) *Service {
	s := &Service{
		organs:         organs,
		matches:        matches,
		transplantList: transplantList,
		authz:          authz,
		tx:             tx,
		now:            time.Now,
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

// PerformDonation records the donation surgery for a matched donor and puts
// the organ into the pipeline. Requires the donor-surgeon role. The surgery
// time comes from the surgeon, not the server clock.
func (s *Service) PerformDonation(ctx context.Context, actor id.ActorID, donorID id.DonorID, procuredAt time.Time) (organ *models.Organ, err error) {
	ctx, span := s.tracer.Start(ctx, "surgery.PerformDonation", tracer.String("donor_id", donorID.String()))
	defer func() { span.End(err) }()

	if err = s.authz.Authorize(ctx, actor, access.RoleDonorSurgeon); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		m, err := s.matches.MatchByDonor(txCtx, donorID)
		if err != nil {
			if dErrors.HasCode(err, dErrors.CodeNotFound) {
				return dErrors.New(dErrors.CodeInvalidState, "donor has no committed match")
			}
			return err
		}
		o, err := models.NewOrgan(m.OrganID, m.DonorID, m.PatientID, procuredAt)
		if err != nil {
			return err
		}
		if _, err := s.organs.FindByID(txCtx, m.OrganID); err == nil {
			return dErrors.New(dErrors.CodeInvalidState, "donation surgery already recorded")
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "organ store failure")
		}
		// Event append is the only fallible effect; it runs before the
		// store writes so a sink failure leaves no partial state.
		detail := fmt.Sprintf("organ procured from donor %s", m.DonorID)
		if err := s.recorder.Record(txCtx, audit.ActionDonationCompleted, actor.String(), o.ID.String(), detail); err != nil {
			return err
		}
		if err := s.organs.Create(txCtx, o); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store organ")
		}
		organ = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Donations.Inc()
	}
	return organ, nil
}

// DeliverOrgan records the hand-off at the receiving hospital. Requires the
// transporter role. A second delivery attempt is a state error.
func (s *Service) DeliverOrgan(ctx context.Context, actor id.ActorID, organID id.OrganID) (organ *models.Organ, err error) {
	ctx, span := s.tracer.Start(ctx, "surgery.DeliverOrgan", tracer.String("organ_id", organID.String()))
	defer func() { span.End(err) }()

	if err = s.authz.Authorize(ctx, actor, access.RoleTransporter); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		o, err := s.organs.FindByID(txCtx, organID)
		if err != nil {
			return wrapOrganErr(err)
		}
		if err := o.Deliver(s.now()); err != nil {
			return err
		}
		if err := s.recorder.Record(txCtx, audit.ActionOrganDelivered, actor.String(), o.ID.String(), ""); err != nil {
			return err
		}
		if err := s.organs.Update(txCtx, o); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update organ")
		}
		organ = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Deliveries.Inc()
	}
	return organ, nil
}

// ConfirmReceived records that the transplant team took custody of the organ
// for the named patient, and appends the patient to the transplant waiting
// list. Requires the transplant-team role. The named patient must be the
// matched recipient.
func (s *Service) ConfirmReceived(ctx context.Context, actor id.ActorID, organID id.OrganID, patientID id.PatientID) (organ *models.Organ, err error) {
	ctx, span := s.tracer.Start(ctx, "surgery.ConfirmReceived",
		tracer.String("organ_id", organID.String()),
		tracer.String("patient_id", patientID.String()),
	)
	defer func() { span.End(err) }()

	if err = s.authz.Authorize(ctx, actor, access.RoleTransplantTeam); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		o, err := s.organs.FindByID(txCtx, organID)
		if err != nil {
			return wrapOrganErr(err)
		}
		if o.PatientID != patientID {
			return dErrors.New(dErrors.CodeInvalidState, "patient is not the matched recipient")
		}
		if err := o.Receive(s.now()); err != nil {
			return err
		}
		detail := fmt.Sprintf("receipt confirmed for patient %s", o.PatientID)
		if err := s.recorder.Record(txCtx, audit.ActionOrganReceived, actor.String(), o.ID.String(), detail); err != nil {
			return err
		}
		if err := s.organs.Update(txCtx, o); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update organ")
		}
		if err := s.transplantList.Append(txCtx, o.PatientID); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append to transplant list")
		}
		organ = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Receipts.Inc()
	}
	return organ, nil
}

// PerformTransplant records the transplant surgery for the patient whose
// organ receipt was confirmed. Requires the transplant-surgeon role. The
// surgery time comes from the surgeon.
func (s *Service) PerformTransplant(ctx context.Context, actor id.ActorID, patientID id.PatientID, performedAt time.Time) (organ *models.Organ, err error) {
	ctx, span := s.tracer.Start(ctx, "surgery.PerformTransplant", tracer.String("patient_id", patientID.String()))
	defer func() { span.End(err) }()

	if err = s.authz.Authorize(ctx, actor, access.RoleTransplantSurgeon); err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		o, err := s.organs.FindByPatient(txCtx, patientID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeInvalidState, "no organ in the pipeline for patient")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "organ store failure")
		}
		if err := o.Transplant(performedAt); err != nil {
			return err
		}
		detail := fmt.Sprintf("organ %s transplanted into patient %s", o.ID, o.PatientID)
		if err := s.recorder.Record(txCtx, audit.ActionTransplantCompleted, actor.String(), o.ID.String(), detail); err != nil {
			return err
		}
		if err := s.organs.Update(txCtx, o); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update organ")
		}
		organ = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.Transplants.Inc()
	}
	return organ, nil
}

// GetOrgan fetches the pipeline record by organ id.
func (s *Service) GetOrgan(ctx context.Context, organID id.OrganID) (*models.Organ, error) {
	o, err := s.organs.FindByID(ctx, organID)
	if err != nil {
		return nil, wrapOrganErr(err)
	}
	return o, nil
}

// TransplantWaitingList returns patients with a confirmed organ receipt, in
// confirmation order. Patients stay on the list after their transplant; the
// list is the historical record of receipt order.
func (s *Service) TransplantWaitingList(ctx context.Context) ([]id.PatientID, error) {
	return s.transplantList.All(ctx)
}

func wrapOrganErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "organ not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "organ store failure")
}
