package discount

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFoundOrUnchanged = errors.New("discount not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const discountColumns = `
	id, code, description, discount_type, percent, value, scope,
	product_ids, categories, min_order_value, max_discount_amount,
	start_date, end_date, status, created_at
`

func (r *repository) Create(ctx context.Context, d *Discount) (*Discount, error) {
	query := `
		INSERT INTO discounts (
			code, description, discount_type, percent, value, scope,
			product_ids, categories, min_order_value, max_discount_amount,
			start_date, end_date, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + discountColumns

	var created Discount
	err := r.db.GetContext(ctx, &created, query,
		d.Code, d.Description, d.DiscountType, d.Percent, d.Value, d.Scope,
		d.ProductIDs, d.Categories, d.MinOrderValue, d.MaxDiscountAmount,
		d.StartDate, d.EndDate, d.Status,
	)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE id = $1`

	var d Discount
	if err := r.db.GetContext(ctx, &d, query, id); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts WHERE code = $1`

	var d Discount
	if err := r.db.GetContext(ctx, &d, query, code); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *repository) List(ctx context.Context) ([]Discount, error) {
	query := `SELECT ` + discountColumns + ` FROM discounts ORDER BY created_at DESC`

	var discounts []Discount
	if err := r.db.SelectContext(ctx, &discounts, query); err != nil {
		return nil, err
	}

	return discounts, nil
}

func (r *repository) ListValid(ctx context.Context, now time.Time) ([]Discount, error) {
	query := `
		SELECT ` + discountColumns + `
		FROM discounts
		WHERE status = 'ACTIVE' AND start_date <= $1 AND end_date >= $1
		ORDER BY created_at DESC
	`

	var discounts []Discount
	if err := r.db.SelectContext(ctx, &discounts, query, now); err != nil {
		return nil, err
	}

	return discounts, nil
}

func (r *repository) Update(ctx context.Context, id int, d *Discount) (*Discount, error) {
	query := `
		UPDATE discounts
		SET code = $2, description = $3, discount_type = $4, percent = $5,
			value = $6, scope = $7, product_ids = $8, categories = $9,
			min_order_value = $10, max_discount_amount = $11,
			start_date = $12, end_date = $13, status = $14
		WHERE id = $1
		RETURNING ` + discountColumns

	var updated Discount
	err := r.db.GetContext(ctx, &updated, query,
		id, d.Code, d.Description, d.DiscountType, d.Percent, d.Value, d.Scope,
		d.ProductIDs, d.Categories, d.MinOrderValue, d.MaxDiscountAmount,
		d.StartDate, d.EndDate, d.Status,
	)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFoundOrUnchanged
	}

	return nil
}
