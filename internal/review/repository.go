package review

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, r *Review) (*Review, error)
	ListByPitch(ctx context.Context, pitchID int) ([]ReviewWithUser, error)
	AverageRating(ctx context.Context, pitchID int) (float64, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rev *Review) (*Review, error) {
	query := `
		INSERT INTO reviews (pitch_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pitch_id, user_id, rating, comment, created_at
	`

	var created Review
	err := r.db.GetContext(ctx, &created, query, rev.PitchID, rev.UserID, rev.Rating, rev.Comment)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) ListByPitch(ctx context.Context, pitchID int) ([]ReviewWithUser, error) {
	query := `
		SELECT r.id, r.pitch_id, r.user_id, r.rating, r.comment, r.created_at,
		       u.name AS user_name
		FROM reviews r
		JOIN users u ON r.user_id = u.id
		WHERE r.pitch_id = $1
		ORDER BY r.created_at DESC
	`

	var reviews []ReviewWithUser
	if err := r.db.SelectContext(ctx, &reviews, query, pitchID); err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *repository) AverageRating(ctx context.Context, pitchID int) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE pitch_id = $1`

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, pitchID); err != nil {
		return 0, err
	}

	return avg, nil
}
