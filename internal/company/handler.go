package company

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockflow-app/stockflow/internal/platform/httpx"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// Handler wires the company settings endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers company routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleGet)
	r.Put("/", h.handleUpdate)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	c, err := h.service.Get(r.Context(), companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not found", "")
			return
		}
		h.logger.Error("get company", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Lookup failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, NewView(c))
}

type updateRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "malformed JSON body")
		return
	}
	if err := h.service.Update(r.Context(), companyID, UpdateInput{Name: req.Name, LogoURL: req.LogoURL}); err != nil {
		if fields, ok := shared.AsValidation(err); ok {
			httpx.ValidationProblem(w, fields)
			return
		}
		h.logger.Error("update company", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Update failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "saved"})
}
