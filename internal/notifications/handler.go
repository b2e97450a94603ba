package notifications

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockflow-app/stockflow/internal/platform/httpx"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// Handler wires the notification feed endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers notification routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/unread", h.handleUnread)
	r.Post("/{id}/read", h.handleMarkRead)
	r.Post("/read-all", h.handleMarkAllRead)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	items, err := h.service.List(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list notifications", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Listing failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, NewViews(items))
}

func (h *Handler) handleUnread(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	count, err := h.service.Unread(r.Context(), companyID)
	if err != nil {
		h.logger.Error("unread count", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Count failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]int{"unread": count})
}

func (h *Handler) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	_ = h.service.MarkRead(r.Context(), companyID, chi.URLParam(r, "id"))
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (h *Handler) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	_ = h.service.MarkAllRead(r.Context(), companyID)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "read"})
}
