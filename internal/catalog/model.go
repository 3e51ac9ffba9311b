package catalog

import (
	"time"

	"github.com/lib/pq"
)

type Product struct {
	ID        string         `db:"id" json:"id"`
	Name      string         `db:"name" json:"name"`
	Category  string         `db:"category" json:"category"`
	Brand     string         `db:"brand" json:"brand"`
	Gender    string         `db:"gender" json:"gender"`
	Price     int64          `db:"price" json:"price"`
	SalePrice *int64         `db:"sale_price" json:"salePrice,omitempty"`
	Sizes     pq.StringArray `db:"sizes" json:"sizes"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}

// EffectivePrice is what the customer pays, the sale price when one is set.
func (p Product) EffectivePrice() int64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

type Category struct {
	ID         int     `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	ParentName *string `db:"parent_name" json:"parentName"`
}

type CreateProductRequest struct {
	Name      string   `json:"name" binding:"required"`
	Category  string   `json:"category" binding:"required"`
	Brand     string   `json:"brand"`
	Gender    string   `json:"gender"`
	Price     int64    `json:"price" binding:"required,gt=0"`
	SalePrice *int64   `json:"salePrice"`
	Sizes     []string `json:"sizes"`
}

// NavigateResponse is the resolved navigation state after a click, with the
// full breadcrumb trail.
type NavigateResponse struct {
	State   State         `json:"state"`
	History []HistoryItem `json:"history"`
}
