package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// TokenSuite tests actor token issuance and validation.
//
// Justification: the token is the only bridge between an HTTP caller and an
// actor identity; a validation gap here would let an unauthorized party reach
// role-gated operations.
type TokenSuite struct {
	suite.Suite
	svc *Service
	now time.Time
}

func TestTokenSuite(t *testing.T) {
	suite.Run(t, new(TokenSuite))
}

func (s *TokenSuite) SetupTest() {
	s.svc = NewService("test-signing-key", "allograft", 15*time.Minute)
	s.now = time.Now()
}

func (s *TokenSuite) TestRoundTrip() {
	actor := id.NewActorID()
	tok, err := s.svc.Generate(actor, s.now)
	s.Require().NoError(err)
	s.NotEmpty(tok)

	parsed, err := s.svc.Validate(tok)
	s.Require().NoError(err)
	s.Equal(actor, parsed)
}

func (s *TokenSuite) TestGenerateRejectsNilActor() {
	_, err := s.svc.Generate(id.ActorID{}, s.now)
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func (s *TokenSuite) TestValidateRejections() {
	actor := id.NewActorID()

	s.Run("garbage token", func() {
		_, err := s.svc.Validate("not.a.jwt")
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("wrong signing key", func() {
		other := NewService("other-key", "allograft", 15*time.Minute)
		tok, err := other.Generate(actor, s.now)
		s.Require().NoError(err)
		_, err = s.svc.Validate(tok)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("wrong issuer", func() {
		other := NewService("test-signing-key", "someone-else", 15*time.Minute)
		tok, err := other.Generate(actor, s.now)
		s.Require().NoError(err)
		_, err = s.svc.Validate(tok)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	s.Run("expired token", func() {
		short := NewService("test-signing-key", "allograft", time.Minute)
		tok, err := short.Generate(actor, s.now.Add(-time.Hour))
		s.Require().NoError(err)
		_, err = short.Validate(tok)
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}
