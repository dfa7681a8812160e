package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "allograft/pkg/domain-errors"
)

// ModelsSuite tests record construction and the one-way verification transition.
type ModelsSuite struct {
	suite.Suite
	now time.Time
}

func TestModelsSuite(t *testing.T) {
	suite.Run(t, new(ModelsSuite))
}

func (s *ModelsSuite) SetupTest() {
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ModelsSuite) TestNewPatient() {
	s.Run("creates unverified record", func() {
		p, err := NewPatient(1, 35, 22, "A+", "Kidney", s.now)
		s.Require().NoError(err)
		s.False(p.Verified)
		s.Equal(s.now, p.RegisteredAt)
		s.True(p.VerifiedAt.IsZero())
	})

	s.Run("rejects invalid vitals", func() {
		cases := []struct {
			name string
			age  int
			bmi  int
			bg   string
			org  string
		}{
			{"zero age", 0, 22, "A+", "Kidney"},
			{"absurd age", 200, 22, "A+", "Kidney"},
			{"zero bmi", 35, 0, "A+", "Kidney"},
			{"empty blood group", 35, 22, "", "Kidney"},
			{"empty organ", 35, 22, "A+", ""},
		}
		for _, tc := range cases {
			_, err := NewPatient(1, tc.age, tc.bmi, tc.bg, tc.org, s.now)
			s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput), tc.name)
		}
	})
}

func (s *ModelsSuite) TestVerifyIsMonotonic() {
	s.Run("patient", func() {
		p, err := NewPatient(1, 35, 22, "A+", "Kidney", s.now)
		s.Require().NoError(err)

		s.Require().NoError(p.Verify(s.now))
		s.True(p.Verified)
		s.Equal(s.now, p.VerifiedAt)

		err = p.Verify(s.now.Add(time.Hour))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.Equal(s.now, p.VerifiedAt)
	})

	s.Run("donor", func() {
		d, err := NewDonor(100, 40, 24, "A+", "Kidney", s.now)
		s.Require().NoError(err)

		s.Require().NoError(d.Verify(s.now))
		err = d.Verify(s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}
