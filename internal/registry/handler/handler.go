package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"allograft/internal/access"
	"allograft/internal/platform/middleware"
	"allograft/internal/registry/models"
	"allograft/internal/registry/service"
	id "allograft/pkg/domain"
	dErrors "allograft/pkg/domain-errors"
	"allograft/pkg/platform/httputil"
)

// Service defines the registry operations the HTTP layer delegates to.
type Service interface {
	RegisterPatient(ctx context.Context, actor id.ActorID, cmd service.RegisterPatientCommand) (*models.Patient, error)
	VerifyPatient(ctx context.Context, actor id.ActorID, patientID id.PatientID) (*models.Patient, error)
	RegisterDonor(ctx context.Context, actor id.ActorID, cmd service.RegisterDonorCommand) (*models.Donor, error)
	VerifyDonor(ctx context.Context, actor id.ActorID, donorID id.DonorID) (*models.Donor, error)
	GetPatient(ctx context.Context, patientID id.PatientID) (*models.Patient, error)
	GetDonor(ctx context.Context, donorID id.DonorID) (*models.Donor, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/patients", h.HandleRegisterPatient)
	r.Post("/patients/{id}/verify", h.HandleVerifyPatient)
	r.Get("/patients/{id}", h.HandleGetPatient)
	r.Post("/donors", h.HandleRegisterDonor)
	r.Post("/donors/{id}/verify", h.HandleVerifyDonor)
	r.Get("/donors/{id}", h.HandleGetDonor)
}

// RegisterPatientRequest is the intake payload.
type RegisterPatientRequest struct {
	PatientID  string `json:"patient_id"`
	Age        int    `json:"age"`
	BMI        int    `json:"bmi"`
	BloodGroup string `json:"blood_group"`
	Organ      string `json:"organ_needed"`
}

func (req *RegisterPatientRequest) Validate() error {
	if req.PatientID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "patient_id is required")
	}
	return nil
}

// RegisterDonorRequest is the intake payload.
type RegisterDonorRequest struct {
	DonorID    string `json:"donor_id"`
	Age        int    `json:"age"`
	BMI        int    `json:"bmi"`
	BloodGroup string `json:"blood_group"`
	Organ      string `json:"organ_donated"`
}

func (req *RegisterDonorRequest) Validate() error {
	if req.DonorID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "donor_id is required")
	}
	return nil
}

func (h *Handler) HandleRegisterPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndValidate[RegisterPatientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	patientID, err := id.ParsePatientID(req.PatientID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	patient, err := h.service.RegisterPatient(ctx, access.GetActor(ctx), service.RegisterPatientCommand{
		PatientID:   patientID,
		Age:         req.Age,
		BMI:         req.BMI,
		BloodGroup:  req.BloodGroup,
		OrganNeeded: req.Organ,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "register patient failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, patient)
}

func (h *Handler) HandleVerifyPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	patientID, err := id.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	patient, err := h.service.VerifyPatient(ctx, access.GetActor(ctx), patientID)
	if err != nil {
		h.logger.ErrorContext(ctx, "verify patient failed", "error", err, "request_id", requestID, "patient_id", patientID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, patient)
}

func (h *Handler) HandleGetPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	patientID, err := id.ParsePatientID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	patient, err := h.service.GetPatient(ctx, patientID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, patient)
}

func (h *Handler) HandleRegisterDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndValidate[RegisterDonorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	donorID, err := id.ParseDonorID(req.DonorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	donor, err := h.service.RegisterDonor(ctx, access.GetActor(ctx), service.RegisterDonorCommand{
		DonorID:      donorID,
		Age:          req.Age,
		BMI:          req.BMI,
		BloodGroup:   req.BloodGroup,
		OrganDonated: req.Organ,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "register donor failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, donor)
}

func (h *Handler) HandleVerifyDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	donorID, err := id.ParseDonorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	donor, err := h.service.VerifyDonor(ctx, access.GetActor(ctx), donorID)
	if err != nil {
		h.logger.ErrorContext(ctx, "verify donor failed", "error", err, "request_id", requestID, "donor_id", donorID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, donor)
}

func (h *Handler) HandleGetDonor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	donorID, err := id.ParseDonorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	donor, err := h.service.GetDonor(ctx, donorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, donor)
}
