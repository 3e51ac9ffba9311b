package pitch

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFoundOrUnchanged = errors.New("pitch not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, name, address, surfaceType string, pricePerHour int64) (*Pitch, error) {
	query := `
		INSERT INTO pitches (name, address, surface_type, price_per_hour)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, address, surface_type, price_per_hour, created_at
	`

	var p Pitch
	err := r.db.GetContext(ctx, &p, query, name, address, surfaceType, pricePerHour)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Pitch, error) {
	query := `
		SELECT id, name, address, surface_type, price_per_hour, created_at
		FROM pitches
		ORDER BY name
	`

	var pitches []Pitch
	if err := r.db.SelectContext(ctx, &pitches, query); err != nil {
		return nil, err
	}

	return pitches, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Pitch, error) {
	query := `
		SELECT id, name, address, surface_type, price_per_hour, created_at
		FROM pitches
		WHERE id = $1
	`

	var p Pitch
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Update(ctx context.Context, id int, name, address, surfaceType string, pricePerHour int64) (*Pitch, error) {
	query := `
		UPDATE pitches
		SET name = $2, address = $3, surface_type = $4, price_per_hour = $5
		WHERE id = $1
		RETURNING id, name, address, surface_type, price_per_hour, created_at
	`

	var p Pitch
	err := r.db.GetContext(ctx, &p, query, id, name, address, surfaceType, pricePerHour)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pitches WHERE id = $1`, id)
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
