package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockflow-app/stockflow/internal/activity"
	"github.com/stockflow-app/stockflow/internal/catalog"
	"github.com/stockflow-app/stockflow/internal/platform/httpx"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// SnapshotPort serves the collections the dashboard aggregates over.
type SnapshotPort interface {
	Products(ctx context.Context, companyID string) ([]catalog.Product, error)
	Activities(ctx context.Context, companyID string) ([]activity.Entry, error)
}

const recentActivityLimit = 4

// Handler wires the dashboard endpoint.
type Handler struct {
	logger   *slog.Logger
	snapshot SnapshotPort
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, snapshot SnapshotPort) *Handler {
	return &Handler{logger: logger, snapshot: snapshot}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleDashboard)
}

type dashboardResponse struct {
	Stats          Stats           `json:"stats"`
	RecentActivity []activity.View `json:"recentActivity"`
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	products, err := h.snapshot.Products(r.Context(), companyID)
	if err != nil {
		h.logger.Error("dashboard products", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Dashboard failed", err.Error())
		return
	}
	entries, err := h.snapshot.Activities(r.Context(), companyID)
	if err != nil {
		h.logger.Error("dashboard activities", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Dashboard failed", err.Error())
		return
	}
	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}

	httpx.JSON(w, http.StatusOK, dashboardResponse{
		Stats:          Compute(products),
		RecentActivity: activity.NewViews(entries),
	})
}
