package invoices

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stockflow-app/stockflow/internal/platform/httpx"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// SnapshotPort serves the company's invoice collection from the snapshot
// store.
type SnapshotPort interface {
	Invoices(ctx context.Context, companyID string) ([]Invoice, error)
}

// Exporter renders the selected rows to a document.
type Exporter interface {
	WriteCSV(w io.Writer, collection []Invoice) error
	RenderPDF(ctx context.Context, collection []Invoice, now time.Time) ([]byte, error)
	RenderInvoicePDF(ctx context.Context, inv Invoice, now time.Time) ([]byte, error)
}

// ExportSelector narrows the collection for an export request. Wired from
// the export package so scope parsing stays in one place.
type ExportSelector func(collection []Invoice, scope, month string, count int, status string, now time.Time) ([]Invoice, error)

// Handler wires the invoice tracker endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	snapshot SnapshotPort
	exporter Exporter
	selector ExportSelector
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, snapshot SnapshotPort, exporter Exporter, selector ExportSelector) *Handler {
	return &Handler{logger: logger, service: service, snapshot: snapshot, exporter: exporter, selector: selector}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
	r.Get("/export/csv", h.handleExportCSV)
	r.Get("/export/pdf", h.handleExportPDF)
	r.Get("/{id}/pdf", h.handleDownloadPDF)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	collection, err := h.snapshot.Invoices(r.Context(), companyID)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Listing failed", err.Error())
		return
	}

	q := r.URL.Query()
	cfg := DefaultSort
	if key := q.Get("sort"); key != "" {
		cfg = SortConfig{Key: key, Descending: q.Get("dir") != "asc"}
	}
	sorted := Sort(collection, cfg)
	filtered := Filter{Term: q.Get("search"), Status: q.Get("status")}.Apply(sorted)

	httpx.JSON(w, http.StatusOK, NewViews(filtered))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, chi.URLParam(r, "id"))
}

// save reads the invoice form. The body is multipart so the attachment can
// ride along; the file part is optional and keeps the stored document when
// absent on update.
func (h *Handler) save(w http.ResponseWriter, r *http.Request, id string) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	if err := r.ParseMultipartForm(2 * MaxAttachmentSize); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid request", "malformed multipart body")
		return
	}

	input := SaveInput{
		ID:       id,
		Provider: r.PostFormValue("provider"),
		Date:     r.PostFormValue("date"),
		RefID:    r.PostFormValue("refId"),
		Total:    r.PostFormValue("total"),
		Status:   Status(r.PostFormValue("status")),
	}
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		input.Actor = sess.User()
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer func() { _ = file.Close() }()
		content, err := io.ReadAll(io.LimitReader(file, MaxAttachmentSize+1))
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid request", "could not read attachment")
			return
		}
		attachment, err := EncodeAttachment(header.Filename, header.Header.Get("Content-Type"), content)
		if err != nil {
			if errors.Is(err, ErrAttachmentTooLarge) {
				httpx.ValidationProblem(w, map[string]string{"file": "File size must be less than 1MB"})
				return
			}
			httpx.Problem(w, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		input.Attachment = &attachment
	}

	if err := h.service.Save(r.Context(), companyID, input); err != nil {
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

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	selected, ok := h.exportSelection(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.csv"`)
	if err := h.exporter.WriteCSV(w, selected); err != nil {
		h.logger.Error("export csv", slog.Any("error", err))
	}
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	selected, ok := h.exportSelection(w, r)
	if !ok {
		return
	}
	pdf, err := h.exporter.RenderPDF(r.Context(), selected, time.Now())
	if err != nil {
		h.logger.Error("export pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Export failed", "PDF rendering unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.pdf"`)
	_, _ = w.Write(pdf)
}

func (h *Handler) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return
	}
	inv, err := h.service.Get(r.Context(), companyID, chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	pdf, err := h.exporter.RenderInvoicePDF(r.Context(), inv, time.Now())
	if err != nil {
		h.logger.Error("download invoice pdf", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadGateway, "Export failed", "PDF rendering unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+inv.RefID+`.pdf"`)
	_, _ = w.Write(pdf)
}

func (h *Handler) exportSelection(w http.ResponseWriter, r *http.Request) ([]Invoice, bool) {
	companyID, err := shared.CompanyFromContext(r.Context())
	if err != nil {
		httpx.Problem(w, http.StatusUnauthorized, "Not signed in", "")
		return nil, false
	}
	collection, err := h.snapshot.Invoices(r.Context(), companyID)
	if err != nil {
		httpx.Problem(w, http.StatusInternalServerError, "Export failed", err.Error())
		return nil, false
	}
	if h.selector == nil {
		httpx.Problem(w, http.StatusInternalServerError, "Export failed", "export not configured")
		return nil, false
	}

	q := r.URL.Query()
	count, _ := strconv.Atoi(q.Get("count"))
	selected, err := h.selector(collection, q.Get("scope"), q.Get("month"), count, q.Get("status"), time.Now())
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Export failed", err.Error())
		return nil, false
	}
	return selected, true
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
	h.logger.Error("invoice write", slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Write failed", err.Error())
}
