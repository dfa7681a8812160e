package access

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"allograft/internal/platform/middleware"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
	"allograft/pkg/platform/httputil"
)

// TokenIssuer mints actor tokens for the admin surface.
type TokenIssuer interface {
	Generate(actorID id.ActorID, now time.Time) (string, error)
}

// Handler exposes the administrative role-grant surface. It is mounted behind
// RequireAdminToken; grants themselves are the external bootstrap the core
// workflow consumes.
type Handler struct {
	service *Service
	issuer  TokenIssuer
	logger  *slog.Logger
}

func NewHandler(service *Service, issuer TokenIssuer, logger *slog.Logger) *Handler {
	return &Handler{service: service, issuer: issuer, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/admin/actors", h.HandleCreateActor)
	r.Post("/admin/grants", h.HandleGrant)
	r.Delete("/admin/grants", h.HandleRevoke)
	r.Get("/admin/actors/{id}/roles", h.HandleListRoles)
}

// CreateActorResponse returns a fresh actor identity and its bearer token.
type CreateActorResponse struct {
	ActorID string `json:"actor_id"`
	Token   string `json:"token"`
}

// HandleCreateActor provisions an actor identity and issues its token.
func (h *Handler) HandleCreateActor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	actor := id.NewActorID()
	tok, err := h.issuer.Generate(actor, time.Now())
	if err != nil {
		h.logger.ErrorContext(ctx, "actor token issuance failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, CreateActorResponse{
		ActorID: actor.String(),
		Token:   tok,
	})
}

// GrantRequest binds a role to an actor.
type GrantRequest struct {
	ActorID string `json:"actor_id"`
	Role    string `json:"role"`
}

func (req *GrantRequest) Validate() error {
	if req.ActorID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "actor_id is required")
	}
	if req.Role == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "role is required")
	}
	return nil
}

// HandleGrant records a role grant.
func (h *Handler) HandleGrant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndValidate[GrantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	actor, role, err := h.parseGrant(req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Grant(ctx, actor, role); err != nil {
		h.logger.ErrorContext(ctx, "grant failed", "error", err, "request_id", requestID, "actor", req.ActorID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]string{
		"actor_id": actor.String(),
		"role":     role.String(),
	})
}

// HandleRevoke removes a role grant.
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndValidate[GrantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	actor, role, err := h.parseGrant(req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Revoke(ctx, actor, role); err != nil {
		h.logger.ErrorContext(ctx, "revoke failed", "error", err, "request_id", requestID, "actor", req.ActorID)
		httputil.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListRoles returns the actor's granted roles.
func (h *Handler) HandleListRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor, err := id.ParseActorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	roles, err := h.service.RolesOf(ctx, actor)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.String())
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"actor_id": actor.String(),
		"roles":    names,
	})
}

func (h *Handler) parseGrant(req *GrantRequest) (id.ActorID, Role, error) {
	actor, err := id.ParseActorID(req.ActorID)
	if err != nil {
		return id.ActorID{}, 0, err
	}
	role, err := ParseRole(req.Role)
	if err != nil {
		return id.ActorID{}, 0, err
	}
	return actor, role, nil
}
