package notifications

import (
	"context"
	"log/slog"

	"github.com/stockflow-app/stockflow/internal/shared"
)

// Service coordinates the feed. Read-state changes are optimistic: the badge
// cache updates first and the store mirror follows; a failed mirror is
// logged and never rolled back, matching the display-first semantics of the
// feed.
type Service struct {
	repo   Repository
	cache  *UnreadCache
	logger *slog.Logger
}

// NewService builds Service.
func NewService(repo Repository, cache *UnreadCache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

// List returns the company's notifications, newest first.
func (s *Service) List(ctx context.Context, companyID string) ([]Notification, error) {
	return s.repo.List(ctx, companyID)
}

// Unread returns the badge count, serving from the cache when warm and
// rebuilding it from the store otherwise.
func (s *Service) Unread(ctx context.Context, companyID string) (int, error) {
	if s.cache != nil {
		count, ok, err := s.cache.Get(ctx, companyID)
		if err != nil {
			s.logger.Warn("unread cache read failed", "error", err)
		} else if ok {
			return count, nil
		}
	}
	items, err := s.repo.List(ctx, companyID)
	if err != nil {
		return 0, &shared.BackendError{Op: "notifications: list for unread", Err: err}
	}
	count := UnreadCount(items)
	if s.cache != nil {
		if err := s.cache.Set(ctx, companyID, count); err != nil {
			s.logger.Warn("unread cache rebuild failed", "error", err)
		}
	}
	return count, nil
}

// MarkRead flags one notification as read. The cache drops immediately; a
// failed store mirror keeps the optimistic state.
func (s *Service) MarkRead(ctx context.Context, companyID, id string) error {
	if s.cache != nil {
		if err := s.cache.Decrement(ctx, companyID); err != nil {
			s.logger.Warn("unread cache decrement failed", "error", err)
		}
	}
	if err := s.repo.MarkRead(ctx, companyID, id); err != nil {
		s.logger.Warn("mark read mirror failed", "id", id, "error", err)
	}
	return nil
}

// MarkAllRead clears the whole feed's unread state, same optimistic shape as
// MarkRead.
func (s *Service) MarkAllRead(ctx context.Context, companyID string) error {
	if s.cache != nil {
		if err := s.cache.Clear(ctx, companyID); err != nil {
			s.logger.Warn("unread cache clear failed", "error", err)
		}
	}
	if err := s.repo.MarkAllRead(ctx, companyID); err != nil {
		s.logger.Warn("mark all read mirror failed", "error", err)
	}
	return nil
}

// Create appends a notification and bumps the badge.
func (s *Service) Create(ctx context.Context, n Notification) error {
	if _, err := s.repo.Insert(ctx, n); err != nil {
		return &shared.BackendError{Op: "notifications: insert", Err: err}
	}
	if s.cache != nil {
		if err := s.cache.Increment(ctx, n.CompanyID); err != nil {
			s.logger.Warn("unread cache increment failed", "error", err)
		}
	}
	return nil
}
