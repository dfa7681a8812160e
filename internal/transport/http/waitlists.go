package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"allograft/internal/platform/middleware"
	id "allograft/pkg/domain"
	"allograft/pkg/platform/httputil"
)

// RegistryLists reads the verification-ordered waiting lists.
type RegistryLists interface {
	PatientWaitingList(ctx context.Context) ([]id.PatientID, error)
	DonorWaitingList(ctx context.Context) ([]id.DonorID, error)
}

// TransplantList reads the confirmed-receipt list.
type TransplantList interface {
	TransplantWaitingList(ctx context.Context) ([]id.PatientID, error)
}

// WaitlistsResponse is the combined snapshot of all three lists.
type WaitlistsResponse struct {
	Patients   []id.PatientID `json:"patients"`
	Donors     []id.DonorID   `json:"donors"`
	Transplant []id.PatientID `json:"transplant"`
}

type waitlistsHandler struct {
	registry   RegistryLists
	transplant TransplantList
	logger     *slog.Logger
}

// HandleWaitlists serves the three waiting lists as one snapshot. The lists
// live in different contexts, so they are fetched concurrently.
func (h *waitlistsHandler) HandleWaitlists(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var resp WaitlistsResponse
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		resp.Patients, err = h.registry.PatientWaitingList(gCtx)
		return err
	})
	g.Go(func() (err error) {
		resp.Donors, err = h.registry.DonorWaitingList(gCtx)
		return err
	})
	g.Go(func() (err error) {
		resp.Transplant, err = h.transplant.TransplantWaitingList(gCtx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.logger.ErrorContext(ctx, "waitlist snapshot failed", "error", err,
			"request_id", middleware.GetRequestID(ctx))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, resp)
}
