package activity

import (
	"context"
	"log/slog"
)

// Service records and lists audit entries. Recording is best effort: a failed
// insert is logged, never propagated, so it cannot fail the write that
// produced it.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends an entry to the trail.
func (s *Service) Record(ctx context.Context, entry Entry) error {
	if err := s.repo.Insert(ctx, entry); err != nil {
		if s.logger != nil {
			s.logger.Warn("record activity", slog.Any("error", err), slog.String("action", entry.Action))
		}
		return err
	}
	return nil
}

// List returns the company's entries, newest first.
func (s *Service) List(ctx context.Context, companyID string) ([]Entry, error) {
	return s.repo.List(ctx, companyID)
}
