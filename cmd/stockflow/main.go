package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stockflow-app/stockflow/internal/activity"
	"github.com/stockflow-app/stockflow/internal/app"
	"github.com/stockflow-app/stockflow/internal/auth"
	"github.com/stockflow-app/stockflow/internal/catalog"
	"github.com/stockflow-app/stockflow/internal/company"
	"github.com/stockflow-app/stockflow/internal/dashboard"
	"github.com/stockflow-app/stockflow/internal/invoices"
	"github.com/stockflow-app/stockflow/internal/invoices/export"
	"github.com/stockflow-app/stockflow/internal/notifications"
	"github.com/stockflow-app/stockflow/internal/observability"
	"github.com/stockflow-app/stockflow/internal/platform/cache"
	"github.com/stockflow-app/stockflow/internal/platform/db"
	"github.com/stockflow-app/stockflow/internal/sales"
	"github.com/stockflow-app/stockflow/internal/shared"
	"github.com/stockflow-app/stockflow/internal/state"
	"github.com/stockflow-app/stockflow/jobs"
)

// snapshotAdapter exposes the snapshot store through the per-collection
// ports the handlers consume.
type snapshotAdapter struct {
	store *state.Store
}

func (a snapshotAdapter) Products(ctx context.Context, companyID string) ([]catalog.Product, error) {
	snap, err := a.store.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return snap.Products, nil
}

func (a snapshotAdapter) Invoices(ctx context.Context, companyID string) ([]invoices.Invoice, error) {
	snap, err := a.store.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return snap.Invoices, nil
}

func (a snapshotAdapter) Activities(ctx context.Context, companyID string) ([]activity.Entry, error) {
	snap, err := a.store.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return snap.Activities, nil
}

// countingRefresher adds the refresh metric around snapshot rebuilds.
type countingRefresher struct {
	store   *state.Store
	metrics *observability.Metrics
}

func (r countingRefresher) Refresh(ctx context.Context, companyID string) error {
	r.metrics.CountSnapshotRefresh()
	return r.store.Refresh(ctx, companyID)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "stockflow_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	metrics := observability.NewMetrics()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	activityRepo := activity.NewRepository(dbpool)
	activityService := activity.NewService(activityRepo, logger)

	catalogRepo := catalog.NewRepository(dbpool)
	invoiceRepo := invoices.NewRepository(dbpool)
	notificationRepo := notifications.NewRepository(dbpool)
	notificationCache := notifications.NewUnreadCache(redisClient)
	notificationService := notifications.NewService(notificationRepo, notificationCache, logger)

	store := state.NewStore(state.Sources{
		Products:      catalogRepo.List,
		Invoices:      invoiceRepo.List,
		Activities:    activityRepo.List,
		Notifications: notificationRepo.List,
	})
	refresher := countingRefresher{store: store, metrics: metrics}
	snapshots := snapshotAdapter{store: store}

	catalogService := catalog.NewService(catalogRepo, activityService, refresher)
	invoiceService := invoices.NewService(invoiceRepo, invoices.NewGenerator(), activityService, refresher)
	salesService := sales.NewService(catalogRepo, activityService, refresher, logger)

	companyRepo := company.NewRepository(dbpool)
	companyService := company.NewService(companyRepo)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, companyService, auth.NewResetTokens(redisClient), jobClient, logger)

	pdfExporter, err := export.NewPDFExporter(cfg.GotenbergURL, http.DefaultClient)
	if err != nil {
		logger.Error("init pdf exporter", slog.Any("error", err))
		os.Exit(1)
	}
	exportService := export.NewService(pdfExporter)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		SessionManager:      sessionManager,
		AuthHandler:         auth.NewHandler(logger, authService, sessionManager, store),
		CatalogHandler:      catalog.NewHandler(logger, catalogService, snapshots),
		InvoiceHandler:      invoices.NewHandler(logger, invoiceService, snapshots, exportService, export.Selector),
		NotificationHandler: notifications.NewHandler(logger, notificationService),
		ActivityHandler:     activity.NewHandler(logger, activityService),
		SalesHandler:        sales.NewHandler(logger, salesService),
		DashboardHandler:    dashboard.NewHandler(logger, snapshots),
		CompanyHandler:      company.NewHandler(logger, companyService),
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
