// Package company manages the tenant record: display name and logo shown in
// the application chrome.
package company

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockflow-app/stockflow/internal/shared"
)

// Company is the tenant every collection is scoped to.
type Company struct {
	ID        string
	Name      string
	LogoURL   string
	CreatedAt time.Time
}

// View is the client-facing shape.
type View struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// NewView maps a company for display.
func NewView(c Company) View {
	return View{ID: c.ID, Name: c.Name, LogoURL: c.LogoURL}
}

// Repository owns company persistence.
type Repository interface {
	Get(ctx context.Context, id string) (Company, error)
	Insert(ctx context.Context, name string) (string, error)
	Update(ctx context.Context, id, name, logoURL string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, id string) (Company, error) {
	var c Company
	err := r.db.QueryRow(ctx,
		`SELECT id, name, COALESCE(logo_url, ''), created_at FROM companies WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.LogoURL, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, shared.ErrNotFound
	}
	return c, err
}

func (r *repository) Insert(ctx context.Context, name string) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`INSERT INTO companies (name, created_at) VALUES ($1, $2) RETURNING id`,
		name, time.Now().UTC()).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id, name, logoURL string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE companies SET name = $1, logo_url = NULLIF($2, '') WHERE id = $3`,
		name, logoURL, id)
	return err
}

// Service wraps company rules.
type Service struct {
	repo Repository
}

// NewService builds Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches the tenant record.
func (s *Service) Get(ctx context.Context, id string) (Company, error) {
	return s.repo.Get(ctx, id)
}

// Create provisions a tenant, used during sign up.
func (s *Service) Create(ctx context.Context, name string) (string, error) {
	return s.repo.Insert(ctx, strings.TrimSpace(name))
}

// UpdateInput is the settings form.
type UpdateInput struct {
	Name    string
	LogoURL string
}

// Update applies the settings form.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return shared.NewValidationError(map[string]string{"name": "Company name is required"})
	}
	if err := s.repo.Update(ctx, id, name, in.LogoURL); err != nil {
		return &shared.BackendError{Op: "company: update", Err: err}
	}
	return nil
}
