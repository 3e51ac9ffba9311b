package payment

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var ErrDuplicateSubmission = errors.New("duplicate payment submission")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const paymentColumns = `id, user_id, amount, method, provider_tx, status, idempotency_key, created_at`

func (r *repository) CreatePayment(ctx context.Context, p *Payment) (*Payment, error) {
	query := `
		INSERT INTO payments (user_id, amount, method, provider_tx, status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + paymentColumns

	var created Payment
	err := r.db.GetContext(ctx, &created, query,
		p.UserID, p.Amount, p.Method, p.ProviderTx, p.Status, p.IdempotencyKey,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrDuplicateSubmission
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByIdempotencyKey(ctx context.Context, key string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE idempotency_key = $1`

	var p Payment
	if err := r.db.GetContext(ctx, &p, query, key); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) GetUserPayments(ctx context.Context, userID int) ([]Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var payments []Payment
	if err := r.db.SelectContext(ctx, &payments, query, userID); err != nil {
		return nil, err
	}

	return payments, nil
}
