package invoices

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockflow-app/stockflow/internal/shared"
)

// ErrDuplicateRefID is returned when the store's case-insensitive unique
// index rejects a reference code. The collection can change between the
// validation scan and the commit, so the index is the final arbiter.
var ErrDuplicateRefID = errors.New("invoices: reference id already exists")

// WritePayload is the row shape sent to the store on save.
type WritePayload struct {
	Status           Status
	Date             time.Time
	RefID            string
	Provider         string
	ProviderInitials string
	ProviderColor    string
	Total            float64
	FileName         string
	FileURL          string
	FileType         string
}

// Repository owns invoice persistence. Every query is scoped to a company.
type Repository interface {
	List(ctx context.Context, companyID string) ([]Invoice, error)
	Get(ctx context.Context, companyID, id string) (Invoice, error)
	Insert(ctx context.Context, companyID string, payload WritePayload) (string, error)
	Update(ctx context.Context, companyID, id string, payload WritePayload) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const invoiceColumns = `id, company_id, status, date, ref_id, provider_name, provider_initials, provider_color, total_amount, file_name, file_url, file_type, created_at`

func (r *repository) List(ctx context.Context, companyID string) ([]Invoice, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collection []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		collection = append(collection, inv)
	}
	return collection, rows.Err()
}

func (r *repository) Get(ctx context.Context, companyID, id string) (Invoice, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1 AND id = $2`,
		companyID, id)
	inv, err := scanInvoice(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Invoice{}, shared.ErrNotFound
	}
	return inv, err
}

func (r *repository) Insert(ctx context.Context, companyID string, payload WritePayload) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`INSERT INTO invoices (company_id, status, date, ref_id, provider_name, provider_initials, provider_color, total_amount, file_name, file_url, file_type, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`,
		companyID, string(payload.Status), payload.Date, payload.RefID, payload.Provider,
		payload.ProviderInitials, payload.ProviderColor, payload.Total,
		payload.FileName, payload.FileURL, payload.FileType, time.Now().UTC()).Scan(&id)
	if err != nil {
		return "", mapUniqueViolation(err)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, companyID, id string, payload WritePayload) error {
	_, err := r.db.Exec(ctx,
		`UPDATE invoices SET status = $1, date = $2, ref_id = $3, provider_name = $4, provider_initials = $5, provider_color = $6, total_amount = $7, file_name = $8, file_url = $9, file_type = $10
		 WHERE company_id = $11 AND id = $12`,
		string(payload.Status), payload.Date, payload.RefID, payload.Provider,
		payload.ProviderInitials, payload.ProviderColor, payload.Total,
		payload.FileName, payload.FileURL, payload.FileType, companyID, id)
	return mapUniqueViolation(err)
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE company_id = $1 AND id = $2`, companyID, id)
	return err
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateRefID
	}
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (Invoice, error) {
	var inv Invoice
	var status string
	err := row.Scan(&inv.ID, &inv.CompanyID, &status, &inv.Date, &inv.RefID, &inv.Provider,
		&inv.ProviderInitials, &inv.ProviderColor, &inv.Total,
		&inv.FileName, &inv.FileURL, &inv.FileType, &inv.CreatedAt)
	inv.Status = Status(status)
	return inv, err
}
