package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/stockflow-app/stockflow/internal/activity"
	"github.com/stockflow-app/stockflow/internal/auth"
	"github.com/stockflow-app/stockflow/internal/catalog"
	"github.com/stockflow-app/stockflow/internal/company"
	"github.com/stockflow-app/stockflow/internal/dashboard"
	"github.com/stockflow-app/stockflow/internal/invoices"
	"github.com/stockflow-app/stockflow/internal/notifications"
	"github.com/stockflow-app/stockflow/internal/observability"
	"github.com/stockflow-app/stockflow/internal/sales"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager

	AuthHandler         *auth.Handler
	CatalogHandler      *catalog.Handler
	InvoiceHandler      *invoices.Handler
	NotificationHandler *notifications.Handler
	ActivityHandler     *activity.Handler
	SalesHandler        *sales.Handler
	DashboardHandler    *dashboard.Handler
	CompanyHandler      *company.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth)
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		r.Route("/products", params.CatalogHandler.MountRoutes)
		r.Route("/invoices", params.InvoiceHandler.MountRoutes)
		r.Route("/notifications", params.NotificationHandler.MountRoutes)
		r.Route("/activities", params.ActivityHandler.MountRoutes)
		if params.SalesHandler != nil {
			r.Route("/sales", params.SalesHandler.MountRoutes)
		}
		r.Route("/company", params.CompanyHandler.MountRoutes)
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
