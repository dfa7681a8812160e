package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"allograft/internal/access"
	"allograft/internal/matching/models"
	"allograft/internal/matching/service"
	"allograft/internal/platform/middleware"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
	"allograft/pkg/platform/httputil"
)

// Service defines the matching operations the HTTP layer delegates to.
type Service interface {
	Match(ctx context.Context, actor id.ActorID, cmd service.MatchCommand) (*models.Result, error)
	MatchByPatient(ctx context.Context, patientID id.PatientID) (*models.Match, error)
	MatchByDonor(ctx context.Context, donorID id.DonorID) (*models.Match, error)
	PendingPatients(ctx context.Context) ([]id.PatientID, error)
	PendingDonors(ctx context.Context) ([]id.DonorID, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/matches", h.HandleMatch)
	r.Get("/matches/patients/{id}", h.HandleMatchByPatient)
	r.Get("/matches/donors/{id}", h.HandleMatchByDonor)
	r.Get("/matches/pending/patients", h.HandlePendingPatients)
	r.Get("/matches/pending/donors", h.HandlePendingDonors)
}

// MatchRequest names the pairing and the screening window.
type MatchRequest struct {
	DonorID   string          `json:"donor_id"`
	PatientID string          `json:"patient_id"`
	Criteria  models.Criteria `json:"criteria"`
}

func (req *MatchRequest) Validate() error {
	if req.DonorID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "donor_id is required")
	}
	if req.PatientID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "patient_id is required")
	}
	return req.Criteria.Validate()
}

func (h *Handler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndValidate[MatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	donorID, err := id.ParseDonorID(req.DonorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	patientID, err := id.ParsePatientID(req.PatientID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Match(ctx, access.GetActor(ctx), service.MatchCommand{
		DonorID:   donorID,
		PatientID: patientID,
		Criteria:  req.Criteria,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "match failed", "error", err, "request_id", requestID,
			"donor_id", donorID, "patient_id", patientID)
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if result.Matched {
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, result)
}

func (h *Handler) HandleMatchByPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	patientID, err := id.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	m, err := h.service.MatchByPatient(ctx, patientID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) HandleMatchByDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donorID, err := id.ParseDonorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	m, err := h.service.MatchByDonor(ctx, donorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) HandlePendingPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pending, err := h.service.PendingPatients(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]id.PatientID{"patients": pending})
}

func (h *Handler) HandlePendingDonors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pending, err := h.service.PendingDonors(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]id.DonorID{"donors": pending})
}
