// Package token issues and validates the JWT bearer tokens that bind an HTTP
// caller to an actor identity. Role resolution happens at authorization time
// against the grant store, never from token contents, so a stale token can
// never carry a revoked role.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
)

// ActorClaims are the claims carried by an actor token.
type ActorClaims struct {
	ActorID string `json:"actor_id"`
	jwt.RegisteredClaims
}

// Service handles JWT creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewService(signingKey string, issuer string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// Generate issues a signed token for the given actor.
func (s *Service) Generate(actorID id.ActorID, now time.Time) (string, error) {
	if actorID.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "actor ID is required")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate token id")
	}

	claims := ActorClaims{
		ActorID: actorID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        hex.EncodeToString(b),
			Issuer:    s.issuer,
			Subject:   actorID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	return signed, nil
}

// Validate parses and verifies a token, returning the actor it identifies.
func (s *Service) Validate(tokenString string) (id.ActorID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &ActorClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return id.ActorID{}, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*ActorClaims)
	if !ok || !parsed.Valid {
		return id.ActorID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	actorID, err := id.ParseActorID(claims.ActorID)
	if err != nil {
		return id.ActorID{}, dErrors.New(dErrors.CodeUnauthorized, "invalid actor claim")
	}
	return actorID, nil
}
