package pitch

import "context"

type Repository interface {
	Create(ctx context.Context, name, address, surfaceType string, pricePerHour int64) (*Pitch, error)
	GetAll(ctx context.Context) ([]Pitch, error)
	GetByID(ctx context.Context, id int) (*Pitch, error)
	Update(ctx context.Context, id int, name, address, surfaceType string, pricePerHour int64) (*Pitch, error)
	Delete(ctx context.Context, id int) error
}
