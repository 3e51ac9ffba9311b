package pitch

import "time"

type Pitch struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Address      string    `db:"address" json:"address"`
	SurfaceType  string    `db:"surface_type" json:"surfaceType"`
	PricePerHour int64     `db:"price_per_hour" json:"pricePerHour"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type CreatePitchRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address" binding:"required"`
	SurfaceType  string `json:"surfaceType" binding:"omitempty,oneof=grass turf indoor"`
	PricePerHour int64  `json:"pricePerHour" binding:"required,min=1"`
}

type UpdatePitchRequest = CreatePitchRequest
