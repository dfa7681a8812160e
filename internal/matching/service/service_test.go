package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"allograft/internal/access"
	"allograft/internal/audit"
	"allograft/internal/matching/models"
	"allograft/internal/matching/service/mocks"
	"allograft/internal/matching/store"
	"allograft/internal/platform/storetx"
	registrymodels "allograft/internal/registry/models"
	"allograft/internal/sentinel"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// MatchingSuite tests the pairing step.
//
// Justification: a committed match is the ticket into the surgical pipeline,
// so both exclusivity (one match per side) and the screen-miss-is-not-an-error
// contract have to hold exactly.
type MatchingSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	authz     *mocks.MockAuthorizer
	patients  *mocks.MockPatientSource
	donors    *mocks.MockDonorSource
	waitlists *mocks.MockWaitlistSource
	events    *audit.InMemoryStore
	svc       *Service

	organizer id.ActorID
}

func TestMatchingSuite(t *testing.T) {
	suite.Run(t, new(MatchingSuite))
}

func (s *MatchingSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.authz = mocks.NewMockAuthorizer(s.ctrl)
	s.patients = mocks.NewMockPatientSource(s.ctrl)
	s.donors = mocks.NewMockDonorSource(s.ctrl)
	s.waitlists = mocks.NewMockWaitlistSource(s.ctrl)
	s.organizer = id.NewActorID()

	s.events = audit.NewInMemoryStore()
	recorder := audit.NewRecorder(nil, audit.NewPublisher(s.events))

	s.svc = New(
		store.NewInMemoryMatchStore(),
		s.patients,
		s.donors,
		s.waitlists,
		s.authz,
		storetx.NewInMemory(),
		WithRecorder(recorder),
		WithClock(func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }),
	)
}

func (s *MatchingSuite) allowOrganizer() {
	s.authz.EXPECT().
		Authorize(gomock.Any(), s.organizer, access.RoleMatchingOrganizer).
		Return(nil).
		AnyTimes()
}

func verifiedPatient(patientID id.PatientID) *registrymodels.Patient {
	return &registrymodels.Patient{
		ID: patientID, Age: 35, BMI: 22, BloodGroup: "A+", OrganNeeded: "Kidney", Verified: true,
	}
}

func verifiedDonor(donorID id.DonorID) *registrymodels.Donor {
	return &registrymodels.Donor{
		ID: donorID, Age: 40, BMI: 24, BloodGroup: "A+", OrganDonated: "Kidney", Verified: true,
	}
}

func wideCriteria() models.Criteria {
	return models.Criteria{AgeMin: 30, AgeMax: 50, BMIMin: 18, BMIMax: 30}
}

func (s *MatchingSuite) TestMatch() {
	ctx := context.Background()
	s.allowOrganizer()

	s.Run("commits pairing and emits event", func() {
		s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(100)).Return(verifiedDonor(100), nil)
		s.patients.EXPECT().GetPatient(gomock.Any(), id.PatientID(1)).Return(verifiedPatient(1), nil)

		result, err := s.svc.Match(ctx, s.organizer, MatchCommand{
			DonorID: 100, PatientID: 1, Criteria: wideCriteria(),
		})
		s.Require().NoError(err)
		s.True(result.Matched)
		s.Equal(id.OrganID(100), result.Match.OrganID)
		s.Equal(id.PatientID(1), result.Match.PatientID)

		events, err := s.events.ListByAction(ctx, audit.ActionMatchFound)
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(id.OrganID(100).String(), events[0].Subject)
	})

	s.Run("pairing is queryable from both sides", func() {
		byPatient, err := s.svc.MatchByPatient(ctx, 1)
		s.Require().NoError(err)
		byDonor, err := s.svc.MatchByDonor(ctx, 100)
		s.Require().NoError(err)
		s.Equal(byPatient, byDonor)
	})

	s.Run("matched donor cannot be paired again", func() {
		s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(100)).Return(verifiedDonor(100), nil)
		s.patients.EXPECT().GetPatient(gomock.Any(), id.PatientID(2)).Return(verifiedPatient(2), nil)

		_, err := s.svc.Match(ctx, s.organizer, MatchCommand{
			DonorID: 100, PatientID: 2, Criteria: wideCriteria(),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	s.Run("matched patient cannot be paired again", func() {
		s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(101)).Return(verifiedDonor(101), nil)
		s.patients.EXPECT().GetPatient(gomock.Any(), id.PatientID(1)).Return(verifiedPatient(1), nil)

		_, err := s.svc.Match(ctx, s.organizer, MatchCommand{
			DonorID: 101, PatientID: 1, Criteria: wideCriteria(),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func (s *MatchingSuite) TestMatchScreening() {
	ctx := context.Background()
	s.allowOrganizer()

	s.Run("recipient outside criteria is a miss, not an error", func() {
		s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(100)).Return(verifiedDonor(100), nil)
		patient := verifiedPatient(1)
		patient.Age = 70
		s.patients.EXPECT().GetPatient(gomock.Any(), id.PatientID(1)).Return(patient, nil)

		result, err := s.svc.Match(ctx, s.organizer, MatchCommand{
			DonorID: 100, PatientID: 1, Criteria: wideCriteria(),
		})
		s.Require().NoError(err)
		s.False(result.Matched)
		s.Equal("recipient outside acceptance criteria", result.Reason)
	})

	s.Run("blood group mismatch is a miss", func() {
		s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(100)).Return(verifiedDonor(100), nil)
		patient := verifiedPatient(1)
		patient.BloodGroup = "B-"
		s.patients.EXPECT().GetPatient(gomock.Any(), id.PatientID(1)).Return(patient, nil)

		result, err := s.svc.Match(ctx, s.organizer, MatchCommand{
			DonorID: 100, PatientID: 1, Criteria: wideCriteria(),
		})
		s.Require().NoError(err)
		s.False(result.Matched)
	})

	s.Run("a miss stores nothing and emits nothing", func() {
		_, err := s.svc.MatchByDonor(ctx, 100)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		events, err := s.events.ListByAction(ctx, audit.ActionMatchFound)
		s.Require().NoError(err)
		s.Empty(events)
	})
}

func (s *MatchingSuite) TestMatchPreconditions() {
	ctx := context.Background()
	s.allowOrganizer()

	s.Run("unverified donor", func() {
		donor := verifiedDonor(100)
		donor.Verified = false
		s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(100)).Return(donor, nil)

		_, err := s.svc.Match(ctx, s.organizer, MatchCommand{
			DonorID: 100, PatientID: 1, Criteria: wideCriteria(),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.ErrorContains(err, "donor not verified")
	})

	s.Run("unverified patient", func() {
		s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(100)).Return(verifiedDonor(100), nil)
		patient := verifiedPatient(1)
		patient.Verified = false
		s.patients.EXPECT().GetPatient(gomock.Any(), id.PatientID(1)).Return(patient, nil)

		_, err := s.svc.Match(ctx, s.organizer, MatchCommand{
			DonorID: 100, PatientID: 1, Criteria: wideCriteria(),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.ErrorContains(err, "patient not verified")
	})

	s.Run("missing donor propagates", func() {
		s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(999)).
			Return(nil, dErrors.New(dErrors.CodeNotFound, "donor not found"))

		_, err := s.svc.Match(ctx, s.organizer, MatchCommand{
			DonorID: 999, PatientID: 1, Criteria: wideCriteria(),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("invalid criteria", func() {
		_, err := s.svc.Match(ctx, s.organizer, MatchCommand{
			DonorID: 100, PatientID: 1,
			Criteria: models.Criteria{AgeMin: 50, AgeMax: 30, BMIMin: 18, BMIMax: 30},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *MatchingSuite) TestMatchAuthorization() {
	ctx := context.Background()
	outsider := id.NewActorID()
	s.authz.EXPECT().
		Authorize(gomock.Any(), outsider, access.RoleMatchingOrganizer).
		Return(dErrors.New(dErrors.CodeForbidden, "caller lacks required role: matching_organizer"))

	_, err := s.svc.Match(ctx, outsider, MatchCommand{
		DonorID: 100, PatientID: 1, Criteria: wideCriteria(),
	})
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *MatchingSuite) TestPendingViews() {
	ctx := context.Background()
	s.allowOrganizer()

	s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(100)).Return(verifiedDonor(100), nil)
	s.patients.EXPECT().GetPatient(gomock.Any(), id.PatientID(2)).Return(verifiedPatient(2), nil)
	_, err := s.svc.Match(ctx, s.organizer, MatchCommand{
		DonorID: 100, PatientID: 2, Criteria: wideCriteria(),
	})
	s.Require().NoError(err)

	s.waitlists.EXPECT().PatientWaitingList(gomock.Any()).
		Return([]id.PatientID{1, 2, 3}, nil)
	s.waitlists.EXPECT().DonorWaitingList(gomock.Any()).
		Return([]id.DonorID{100, 101}, nil)

	pendingPatients, err := s.svc.PendingPatients(ctx)
	s.Require().NoError(err)
	s.Equal([]id.PatientID{1, 3}, pendingPatients)

	pendingDonors, err := s.svc.PendingDonors(ctx)
	s.Require().NoError(err)
	s.Equal([]id.DonorID{101}, pendingDonors)
}

// failingEmitter stands in for an audit sink that is down.
type failingEmitter struct{ fail bool }

func (f *failingEmitter) Emit(context.Context, audit.Event) error {
	if f.fail {
		return sentinel.ErrUnavailable
	}
	return nil
}

// TestEventSinkFailureLeavesNoPartialState exercises the transactional
// ordering: the event append is the only fallible effect, so a sink outage
// must abort the pairing and leave both sides unmatched.
func (s *MatchingSuite) TestEventSinkFailureLeavesNoPartialState() {
	ctx := context.Background()
	s.allowOrganizer()
	emitter := &failingEmitter{}
	svc := New(
		store.NewInMemoryMatchStore(),
		s.patients,
		s.donors,
		s.waitlists,
		s.authz,
		storetx.NewInMemory(),
		WithRecorder(audit.NewRecorder(nil, emitter)),
		WithClock(func() time.Time { return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC) }),
	)
	s.donors.EXPECT().GetDonor(gomock.Any(), id.DonorID(100)).Return(verifiedDonor(100), nil).Times(2)
	s.patients.EXPECT().GetPatient(gomock.Any(), id.PatientID(1)).Return(verifiedPatient(1), nil).Times(2)
	cmd := MatchCommand{DonorID: 100, PatientID: 1, Criteria: wideCriteria()}

	emitter.fail = true
	_, err := svc.Match(ctx, s.organizer, cmd)
	s.Require().Error(err)

	_, err = svc.MatchByDonor(ctx, 100)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	_, err = svc.MatchByPatient(ctx, 1)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	emitter.fail = false
	result, err := svc.Match(ctx, s.organizer, cmd)
	s.Require().NoError(err)
	s.True(result.Matched)
}
