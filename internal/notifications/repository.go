package notifications

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository owns notification persistence. Every query is scoped to a
// company.
type Repository interface {
	List(ctx context.Context, companyID string) ([]Notification, error)
	Insert(ctx context.Context, n Notification) (string, error)
	MarkRead(ctx context.Context, companyID, id string) error
	MarkAllRead(ctx context.Context, companyID string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, companyID string) ([]Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, company_id, title, message, type, read, created_at
		 FROM notifications WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Notification
	for rows.Next() {
		var n Notification
		var kind string
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.Title, &n.Message, &kind, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = Type(kind)
		items = append(items, n)
	}
	return items, rows.Err()
}

func (r *repository) Insert(ctx context.Context, n Notification) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`INSERT INTO notifications (company_id, title, message, type, read, created_at)
		 VALUES ($1, $2, $3, $4, false, $5) RETURNING id`,
		n.CompanyID, n.Title, n.Message, string(n.Type), time.Now().UTC()).Scan(&id)
	return id, err
}

func (r *repository) MarkRead(ctx context.Context, companyID, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE company_id = $1 AND id = $2`,
		companyID, id)
	return err
}

func (r *repository) MarkAllRead(ctx context.Context, companyID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE company_id = $1 AND read = false`,
		companyID)
	return err
}
