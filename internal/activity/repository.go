package activity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists audit entries.
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context, companyID string) ([]Entry, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, entry Entry) error {
	if entry.Action == "" || entry.CompanyID == "" {
		return errors.New("activity: company and action required")
	}
	at := entry.CreatedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO activities (company_id, user_name, action, target, type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.CompanyID, entry.User, entry.Action, entry.Target, string(entry.Kind), at)
	return err
}

func (r *repository) List(ctx context.Context, companyID string) ([]Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, company_id, user_name, action, target, type, created_at
		 FROM activities WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind string
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.User, &e.Action, &e.Target, &kind, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = Kind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
