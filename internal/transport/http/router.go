// Package httptransport wires the workflow's HTTP surface: the authenticated
// workflow endpoints, the admin surface, and the operational endpoints.
// Handlers stay thin and delegate to the domain services; business logic
// never lives here.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"allograft/internal/access"
	matchinghandler "allograft/internal/matching/handler"
	"allograft/internal/platform/health"
	"allograft/internal/platform/middleware"
	"allograft/internal/platform/ratelimit"
	registryhandler "allograft/internal/registry/handler"
	surgeryhandler "allograft/internal/surgery/handler"
)

// Deps collects everything the router needs. All fields are required unless
// noted.
type Deps struct {
	Registry RegistryDeps
	Matching matchinghandler.Service
	Surgery  surgeryhandler.Service

	Access         *access.Service
	TokenValidator access.TokenValidator
	TokenIssuer    access.TokenIssuer
	AdminTokenHash string

	TransplantList TransplantList
	Limiter        *ratelimit.MapLimiter
	Health         *health.Handler
	Logger         *slog.Logger
}

// RegistryDeps is the registry surface plus its waiting lists.
type RegistryDeps interface {
	registryhandler.Service
	RegistryLists
}

// NewRouter assembles the middleware stack and mounts every endpoint group.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Timeout(30 * time.Second))

	deps.Health.Register(r)
	r.Handle("/metrics", promhttp.Handler())

	waitlists := &waitlistsHandler{
		registry:   deps.Registry,
		transplant: deps.TransplantList,
		logger:     deps.Logger,
	}

	// Workflow surface. Every route requires a valid actor token; role checks
	// happen in the services, per operation.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(access.RequireActor(deps.TokenValidator, deps.Logger))
		r.Use(access.RateLimitActor(deps.Limiter, deps.Logger))

		registryhandler.New(deps.Registry, deps.Logger).Register(r)
		matchinghandler.New(deps.Matching, deps.Logger).Register(r)
		surgeryhandler.New(deps.Surgery, deps.Logger).Register(r)
		r.Get("/waitlists", waitlists.HandleWaitlists)
	})

	// Admin surface: actor provisioning and role grants.
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Use(access.RequireAdminToken(deps.AdminTokenHash, deps.Logger))

		access.NewHandler(deps.Access, deps.TokenIssuer, deps.Logger).Register(r)
	})

	return r
}
