package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stockflow-app/stockflow/internal/shared"
)

// Repository owns product persistence. Every query is scoped to a company
// except ListAll, which the background stock scan uses to walk all tenants.
type Repository interface {
	List(ctx context.Context, companyID string) ([]Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, companyID, id string) (Product, error)
	Insert(ctx context.Context, companyID string, payload WritePayload) (string, error)
	Update(ctx context.Context, companyID, id string, payload WritePayload) error
	UpdateQuantity(ctx context.Context, companyID, id string, quantity int) error
	Delete(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `id, company_id, name, sku, category, price, quantity, image_url, description, created_at`

func (r *repository) List(ctx context.Context, companyID string) ([]Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY created_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) ListAll(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY company_id, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) Get(ctx context.Context, companyID, id string) (Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 AND id = $2`,
		companyID, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Insert(ctx context.Context, companyID string, payload WritePayload) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (company_id, name, sku, category, price, quantity, status, image_url, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		companyID, payload.Name, payload.SKU, payload.Category, payload.Price, payload.Quantity,
		payload.Status, payload.ImageURL, payload.Description, time.Now().UTC()).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, companyID, id string, payload WritePayload) error {
	_, err := r.db.Exec(ctx,
		`UPDATE products SET name = $1, sku = $2, category = $3, price = $4, quantity = $5, status = $6, image_url = $7, description = $8
		 WHERE company_id = $9 AND id = $10`,
		payload.Name, payload.SKU, payload.Category, payload.Price, payload.Quantity,
		payload.Status, payload.ImageURL, payload.Description, companyID, id)
	return err
}

func (r *repository) UpdateQuantity(ctx context.Context, companyID, id string, quantity int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE products SET quantity = $1, status = $2 WHERE company_id = $3 AND id = $4`,
		quantity, string(StatusFor(quantity)), companyID, id)
	return err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.Quantity, &p.ImageURL, &p.Description, &p.CreatedAt)
	return p, err
}
