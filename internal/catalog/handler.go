package catalog

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockflow-app/stockflow/internal/platform/httpx"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// SnapshotPort serves the company's product collection from the snapshot
// store.
type SnapshotPort interface {
	Products(ctx context.Context, companyID string) ([]Product, error)
}

// Handler wires the product catalog endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	snapshot SnapshotPort
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, snapshot SnapshotPort) *Handler {
	return &Handler{logger: logger, service: service, snapshot: snapshot}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/categories", h.handleCategories)
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	products, err := h.snapshot.Products(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Listing failed", err.Error())
		return
	}

	q := r.URL.Query()
	filtered := Filter{
		Term:     q.Get("search"),
		Category: q.Get("category"),
		Status:   q.Get("status"),
	}.Apply(products)
	if key := q.Get("sort"); key != "" {
		filtered = Sort(filtered, key, q.Get("dir") != "asc")
	}

	httpx.JSON(w, http.StatusOK, NewViews(filtered))
}

func (h *Handler) handleCategories(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	products, err := h.snapshot.Products(r.Context(), companyID)
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Listing failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, Categories(products))
}

type saveRequest struct {
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Quantity    int    `json:"qty"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, id string) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	var req saveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "malformed JSON body")
		return
	}

	actor := ""
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		actor = sess.User()
	}
	err = h.service.Save(r.Context(), companyID, SaveInput{
		ID:          id,
		Name:        req.Name,
		SKU:         req.SKU,
		Category:    req.Category,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Actor:       actor,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	httpx.JSON(w, status, map[string]string{"status": "saved"})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	if err := h.service.Delete(r.Context(), companyID, chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	if fields, ok := shared.AsValidation(err); ok {
		httpx.ValidationProblem(w, fields)
		return
	}
	if errors.Is(err, shared.ErrNotFound) {
		httpx.Problem(w, http.StatusNotFound, "Not found", "")
		return
	}
	h.logger.Error("catalog write", slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Write failed", err.Error())
}
