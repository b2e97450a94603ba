package invoices

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/stockflow-app/stockflow/internal/activity"
	"github.com/stockflow-app/stockflow/internal/money"
	"github.com/stockflow-app/stockflow/internal/shared"
)

// ActivityPort records audit entries for invoice writes.
type ActivityPort interface {
	Record(ctx context.Context, entry activity.Entry) error
}

// Refresher rebuilds the company snapshot after a confirmed write.
type Refresher interface {
	Refresh(ctx context.Context, companyID string) error
}

// Service coordinates invoice writes. Reference codes are checked against the
// current collection before the write; the store's unique index catches the
// remaining race at commit time.
type Service struct {
	repo       Repository
	gen        *Generator
	activities ActivityPort
	refresher  Refresher
}

// NewService builds Service.
func NewService(repo Repository, gen *Generator, activities ActivityPort, refresher Refresher) *Service {
	return &Service{repo: repo, gen: gen, activities: activities, refresher: refresher}
}

// SaveInput is the form state for an invoice save. An empty ID means insert.
// A blank RefID asks the service to generate one; a supplied RefID must not
// collide with another invoice in the company. Total arrives as typed,
// possibly currency-decorated text.
type SaveInput struct {
	ID         string
	Provider   string
	Date       string
	RefID      string
	Total      string
	Status     Status
	Attachment *Attachment
	Actor      string
}

// Validate checks the save against the company's current collection. An
// empty map means the write may proceed.
func (in SaveInput) Validate(collection []Invoice) map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(in.Provider) == "" {
		errs["provider"] = "Provider name is required"
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		errs["date"] = "Invalid date format"
	}
	total, err := money.Parse(in.Total)
	if err != nil {
		errs["total"] = "Invalid amount format"
	} else if total < 0 {
		errs["total"] = "Amount must not be negative"
	}
	if !ValidStatus(in.Status) {
		errs["status"] = "Invalid status"
	}
	if refID := strings.TrimSpace(in.RefID); refID != "" && RefIDTaken(collection, refID, in.ID) {
		errs["refId"] = "Reference ID already exists"
	}
	return errs
}

// Save validates and persists an invoice, logs the matching activity entry,
// and triggers a full refetch of the company's collections. The provider
// color is drawn once at creation and carried across edits.
func (s *Service) Save(ctx context.Context, companyID string, in SaveInput) error {
	collection, err := s.repo.List(ctx, companyID)
	if err != nil {
		return &shared.BackendError{Op: "invoices: list for validation", Err: err}
	}
	if errs := in.Validate(collection); len(errs) > 0 {
		return shared.NewValidationError(errs)
	}

	date, _ := time.Parse("2006-01-02", in.Date)
	total, _ := money.Parse(in.Total)
	provider := strings.TrimSpace(in.Provider)

	refID := strings.TrimSpace(in.RefID)
	if refID == "" {
		refID = s.gen.Generate(collection)
	}

	payload := WritePayload{
		Status:           in.Status,
		Date:             date,
		RefID:            refID,
		Provider:         provider,
		ProviderInitials: ProviderInitials(provider),
		Total:            total,
	}
	if in.Attachment != nil {
		payload.FileName = in.Attachment.FileName
		payload.FileURL = in.Attachment.FileURL
		payload.FileType = in.Attachment.FileType
	}

	action := "created invoice"
	if in.ID != "" {
		existing, err := s.repo.Get(ctx, companyID, in.ID)
		if err != nil {
			return &shared.BackendError{Op: "invoices: load for update", Err: err}
		}
		payload.ProviderColor = existing.ProviderColor
		if in.Attachment == nil {
			payload.FileName = existing.FileName
			payload.FileURL = existing.FileURL
			payload.FileType = existing.FileType
		}
		action = "updated invoice"
		if err := s.repo.Update(ctx, companyID, in.ID, payload); err != nil {
			return mapWriteError("invoices: update invoice", err)
		}
	} else {
		payload.ProviderColor = s.gen.ProviderColor()
		if _, err := s.repo.Insert(ctx, companyID, payload); err != nil {
			return mapWriteError("invoices: insert invoice", err)
		}
	}

	if s.activities != nil {
		_ = s.activities.Record(ctx, activity.Entry{
			CompanyID: companyID,
			User:      in.Actor,
			Action:    action,
			Target:    refID,
			Kind:      activity.KindInvoice,
		})
	}

	if s.refresher != nil {
		return s.refresher.Refresh(ctx, companyID)
	}
	return nil
}

// mapWriteError converts the index-level duplicate into the same field error
// the validation scan produces, so the caller sees one failure shape.
func mapWriteError(op string, err error) error {
	if errors.Is(err, ErrDuplicateRefID) {
		return shared.NewValidationError(map[string]string{"refId": "Reference ID already exists"})
	}
	return &shared.BackendError{Op: op, Err: err}
}

// Delete removes an invoice and refetches.
func (s *Service) Delete(ctx context.Context, companyID, id string) error {
	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return &shared.BackendError{Op: "invoices: delete invoice", Err: err}
	}
	if s.refresher != nil {
		return s.refresher.Refresh(ctx, companyID)
	}
	return nil
}

// List returns the company's invoices, newest first.
func (s *Service) List(ctx context.Context, companyID string) ([]Invoice, error) {
	return s.repo.List(ctx, companyID)
}

// Get fetches a single invoice.
func (s *Service) Get(ctx context.Context, companyID, id string) (Invoice, error) {
	return s.repo.Get(ctx, companyID, id)
}
