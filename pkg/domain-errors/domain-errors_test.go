package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: every service layer relies on "wrapped domain errors preserve
// their original code" and "errors.Is matches by code" to translate store
// failures into the three caller-visible error kinds exactly once.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "patient not found"}
		s.Equal("patient not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeInvalidState}
		s.Equal("invalid_state", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("sqlite write failed")
		err := &Error{Code: CodeInternal, Message: "service error", Err: inner}
		s.Equal(inner, errors.Unwrap(err))
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeNotFound}
		s.Nil(errors.Unwrap(err))
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeInvalidState, Message: "already delivered"}
		err2 := &Error{Code: CodeInvalidState, Message: "already verified"}
		s.True(errors.Is(err1, err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := &Error{Code: CodeConflict}
		s.False(errors.Is(err1, err2))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("preserves original domain code", func() {
		inner := New(CodeInvalidState, "donor not verified")
		wrapped := Wrap(inner, CodeInternal, "match failed")
		s.True(HasCode(wrapped, CodeInvalidState))
	})

	s.Run("applies code to plain errors", func() {
		wrapped := Wrap(errors.New("boom"), CodeInternal, "store failure")
		s.True(HasCode(wrapped, CodeInternal))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.Run("false for nil", func() {
		s.False(HasCode(nil, CodeNotFound))
	})

	s.Run("false for non-domain error", func() {
		s.False(HasCode(errors.New("plain"), CodeNotFound))
	})

	s.Run("true through wrapping", func() {
		err := Wrap(New(CodeConflict, "patient id already registered"), CodeInternal, "outer")
		s.True(HasCode(err, CodeConflict))
	})
}
