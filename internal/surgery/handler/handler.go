package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"allograft/internal/access"
	"allograft/internal/platform/middleware"
	"allograft/internal/surgery/models"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
	"allograft/pkg/platform/httputil"
)

// Service defines the pipeline operations the HTTP layer delegates to.
type Service interface {
	PerformDonation(ctx context.Context, actor id.ActorID, donorID id.DonorID, procuredAt time.Time) (*models.Organ, error)
	DeliverOrgan(ctx context.Context, actor id.ActorID, organID id.OrganID) (*models.Organ, error)
	ConfirmReceived(ctx context.Context, actor id.ActorID, organID id.OrganID, patientID id.PatientID) (*models.Organ, error)
	PerformTransplant(ctx context.Context, actor id.ActorID, patientID id.PatientID, performedAt time.Time) (*models.Organ, error)
	GetOrgan(ctx context.Context, organID id.OrganID) (*models.Organ, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/organs/donations", h.HandlePerformDonation)
	r.Post("/organs/{id}/deliver", h.HandleDeliverOrgan)
	r.Post("/organs/{id}/receive", h.HandleConfirmReceived)
	r.Post("/organs/transplants", h.HandlePerformTransplant)
	r.Get("/organs/{id}", h.HandleGetOrgan)
}

// DonationRequest records a completed donation surgery.
type DonationRequest struct {
	DonorID     string    `json:"donor_id"`
	PerformedAt time.Time `json:"performed_at"`
}

func (req *DonationRequest) Validate() error {
	if req.DonorID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "donor_id is required")
	}
	if req.PerformedAt.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "performed_at is required")
	}
	return nil
}

// ReceiveRequest confirms custody for the matched recipient.
type ReceiveRequest struct {
	PatientID string `json:"patient_id"`
}

func (req *ReceiveRequest) Validate() error {
	if req.PatientID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "patient_id is required")
	}
	return nil
}

// TransplantRequest records a completed transplant surgery.
type TransplantRequest struct {
	PatientID   string    `json:"patient_id"`
	PerformedAt time.Time `json:"performed_at"`
}

func (req *TransplantRequest) Validate() error {
	if req.PatientID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "patient_id is required")
	}
	if req.PerformedAt.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "performed_at is required")
	}
	return nil
}

func (h *Handler) HandlePerformDonation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndValidate[DonationRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	donorID, err := id.ParseDonorID(req.DonorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	organ, err := h.service.PerformDonation(ctx, access.GetActor(ctx), donorID, req.PerformedAt)
	if err != nil {
		h.logger.ErrorContext(ctx, "donation surgery failed", "error", err, "request_id", requestID,
			"donor_id", donorID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, organ)
}

func (h *Handler) HandleDeliverOrgan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	organID, err := id.ParseOrganID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	organ, err := h.service.DeliverOrgan(ctx, access.GetActor(ctx), organID)
	if err != nil {
		h.logger.ErrorContext(ctx, "delivery failed", "error", err, "request_id", requestID,
			"organ_id", organID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, organ)
}

func (h *Handler) HandleConfirmReceived(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	organID, err := id.ParseOrganID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndValidate[ReceiveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	patientID, err := id.ParsePatientID(req.PatientID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	organ, err := h.service.ConfirmReceived(ctx, access.GetActor(ctx), organID, patientID)
	if err != nil {
		h.logger.ErrorContext(ctx, "receipt confirmation failed", "error", err, "request_id", requestID,
			"organ_id", organID, "patient_id", patientID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, organ)
}

func (h *Handler) HandlePerformTransplant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndValidate[TransplantRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	patientID, err := id.ParsePatientID(req.PatientID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	organ, err := h.service.PerformTransplant(ctx, access.GetActor(ctx), patientID, req.PerformedAt)
	if err != nil {
		h.logger.ErrorContext(ctx, "transplant surgery failed", "error", err, "request_id", requestID,
			"patient_id", patientID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, organ)
}

func (h *Handler) HandleGetOrgan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	organID, err := id.ParseOrganID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	organ, err := h.service.GetOrgan(ctx, organID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, organ)
}
