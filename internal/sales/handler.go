package sales

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockflow-app/stockflow/internal/platform/httpx"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// Handler wires the sale processing endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers sales routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.handleProcess)
}

type processRequest struct {
	Items []struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"qty"`
	} `json:"items"`
}

type processResponse struct {
	Updated     int      `json:"updated"`
	FailedLines []string `json:"failedLines,omitempty"`
}

func (h *Handler) handleProcess(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	var req processRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "malformed JSON body")
		return
	}

	lines := make([]Line, len(req.Items))
	for i, item := range req.Items {
		lines[i] = Line{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	actor := ""
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		actor = sess.User()
	}

	result, err := h.service.Process(r.Context(), companyID, actor, lines)
	if err != nil {
		if fields, ok := shared.AsValidation(err); ok {
			httpx.ValidationProblem(w, fields)
			return
		}
		h.logger.Error("process sale", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Sale failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, processResponse{Updated: result.Updated, FailedLines: result.FailedLines})
}
