package activity

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockflow-app/stockflow/internal/platform/httpx"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// Handler wires the activity history endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers activity routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	entries, err := h.service.List(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list activities", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Listing failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, NewViews(entries))
}
