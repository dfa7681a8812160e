package access

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"allograft/internal/platform/middleware"
	"allograft/internal/platform/ratelimit"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
	"allograft/pkg/platform/httputil"
)

// TokenValidator resolves a bearer token to an actor identity.
type TokenValidator interface {
	Validate(tokenString string) (id.ActorID, error)
}

type actorKey struct{}

// GetActor retrieves the authenticated actor from context.
func GetActor(ctx context.Context) id.ActorID {
	if a, ok := ctx.Value(actorKey{}).(id.ActorID); ok {
		return a
	}
	return id.ActorID{}
}

// WithActor injects an actor identity, used by tests and the admin surface.
func WithActor(ctx context.Context, actor id.ActorID) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// RequireActor validates the bearer token and stores the actor in context.
// Role checks happen later, per operation, inside the services; this layer
// establishes identity only.
func RequireActor(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")

			tok, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", middleware.GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			actor, err := validator.Validate(tok)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", middleware.GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(ctx, actor)))
		})
	}
}

// RateLimitActor applies the per-actor limiter after identity is established.
func RateLimitActor(limiter *ratelimit.MapLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := GetActor(ctx)
			if !limiter.Allow(actor.String(), time.Now()) {
				logger.WarnContext(ctx, "rate limit exceeded",
					"actor", actor.String(),
					"request_id", middleware.GetRequestID(ctx),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate_limited","error_description":"too many requests"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdminToken gates the administrative surface with a bootstrap token
// checked against a bcrypt hash, so the plaintext never lives in config.
func RequireAdminToken(tokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := r.Header.Get("X-Admin-Token")
			if tokenHash == "" || bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(tok)) != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", middleware.GetRequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
