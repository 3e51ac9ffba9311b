package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrProductNotFound = errors.New("product not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, name, category, brand, gender, price, sale_price, sizes, created_at`

func (r *repository) CreateProduct(ctx context.Context, p *Product) (*Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	query := `
		INSERT INTO products (id, name, category, brand, gender, price, sale_price, sizes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns

	var created Product
	err := r.db.GetContext(ctx, &created, query,
		p.ID, p.Name, p.Category, p.Brand, p.Gender, p.Price, p.SalePrice, pq.Array(p.Sizes),
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p Product
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, ErrProductNotFound
	}

	return &p, nil
}

func (r *repository) ListProducts(ctx context.Context) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	var products []Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]Category, error) {
	query := `SELECT id, name, parent_name FROM categories ORDER BY id`

	var categories []Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}

	return categories, nil
}
