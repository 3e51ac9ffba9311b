package payment

import "context"

type Repository interface {
	CreatePayment(ctx context.Context, p *Payment) (*Payment, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Payment, error)
	GetUserPayments(ctx context.Context, userID int) ([]Payment, error)
}
