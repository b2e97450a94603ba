// Package state holds the per-company in-memory snapshot of every
// collection. Reads are served from the snapshot; after any confirmed write
// the whole snapshot is rebuilt from the store, so derived views never see a
// partially applied mutation.
package state

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stockflow-app/stockflow/internal/activity"
	"github.com/stockflow-app/stockflow/internal/catalog"
	"github.com/stockflow-app/stockflow/internal/invoices"
	"github.com/stockflow-app/stockflow/internal/notifications"
)

// Snapshot is one company's complete collection set at a point in time.
type Snapshot struct {
	Products      []catalog.Product
	Invoices      []invoices.Invoice
	Activities    []activity.Entry
	Notifications []notifications.Notification
	FetchedAt     time.Time
}

// Sources are the per-collection loaders the store refetches from.
type Sources struct {
	Products      func(ctx context.Context, companyID string) ([]catalog.Product, error)
	Invoices      func(ctx context.Context, companyID string) ([]invoices.Invoice, error)
	Activities    func(ctx context.Context, companyID string) ([]activity.Entry, error)
	Notifications func(ctx context.Context, companyID string) ([]notifications.Notification, error)
}

// Store caches snapshots keyed by company.
type Store struct {
	sources Sources
	now     func() time.Time

	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

// NewStore builds an empty Store over the given loaders.
func NewStore(sources Sources) *Store {
	return &Store{
		sources:   sources,
		now:       time.Now,
		snapshots: make(map[string]Snapshot),
	}
}

// Get returns the company's snapshot, loading it on first access.
func (s *Store) Get(ctx context.Context, companyID string) (Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[companyID]
	s.mu.RUnlock()
	if ok {
		return snap, nil
	}
	if err := s.Refresh(ctx, companyID); err != nil {
		return Snapshot{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshots[companyID], nil
}

// Refresh rebuilds the company's snapshot by fetching every collection
// concurrently. The swap is all-or-nothing: any fetch error keeps the
// previous snapshot in place.
func (s *Store) Refresh(ctx context.Context, companyID string) error {
	var next Snapshot

	g, ctx := errgroup.WithContext(ctx)
	if s.sources.Products != nil {
		g.Go(func() error {
			var err error
			next.Products, err = s.sources.Products(ctx, companyID)
			return err
		})
	}
	if s.sources.Invoices != nil {
		g.Go(func() error {
			var err error
			next.Invoices, err = s.sources.Invoices(ctx, companyID)
			return err
		})
	}
	if s.sources.Activities != nil {
		g.Go(func() error {
			var err error
			next.Activities, err = s.sources.Activities(ctx, companyID)
			return err
		})
	}
	if s.sources.Notifications != nil {
		g.Go(func() error {
			var err error
			next.Notifications, err = s.sources.Notifications(ctx, companyID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	next.FetchedAt = s.now()
	s.mu.Lock()
	s.snapshots[companyID] = next
	s.mu.Unlock()
	return nil
}

// Drop forgets a company's snapshot, forcing a reload on next access.
func (s *Store) Drop(companyID string) {
	s.mu.Lock()
	delete(s.snapshots, companyID)
	s.mu.Unlock()
}
