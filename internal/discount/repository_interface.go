package discount

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, d *Discount) (*Discount, error)
	GetByID(ctx context.Context, id int) (*Discount, error)
	GetByCode(ctx context.Context, code string) (*Discount, error)
	List(ctx context.Context) ([]Discount, error)
	ListValid(ctx context.Context, now time.Time) ([]Discount, error)
	Update(ctx context.Context, id int, d *Discount) (*Discount, error)
	Delete(ctx context.Context, id int) error
}
