package discount

import (
	"time"

	"github.com/lib/pq"

	"github.com/FieldFinderOrganization/fieldfinder/internal/pricing"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Discount struct {
	ID                int            `db:"id" json:"id"`
	Code              string         `db:"code" json:"code"`
	Description       string         `db:"description" json:"description"`
	DiscountType      string         `db:"discount_type" json:"discountType"`
	Percent           float64        `db:"percent" json:"percentage"`
	Value             int64          `db:"value" json:"value"`
	Scope             string         `db:"scope" json:"scope"`
	ProductIDs        pq.StringArray `db:"product_ids" json:"productIds"`
	Categories        pq.StringArray `db:"categories" json:"categories"`
	MinOrderValue     int64          `db:"min_order_value" json:"minOrderValue"`
	MaxDiscountAmount *int64         `db:"max_discount_amount" json:"maxDiscountAmount,omitempty"`
	StartDate         time.Time      `db:"start_date" json:"startDate"`
	EndDate           time.Time      `db:"end_date" json:"endDate"`
	Status            string         `db:"status" json:"status"`
	CreatedAt         time.Time      `db:"created_at" json:"createdAt"`
}

// ValidAt reports whether the discount may be applied at the given time.
func (d *Discount) ValidAt(now time.Time) bool {
	if d.Status != StatusActive {
		return false
	}
	if now.Before(d.StartDate) || now.After(d.EndDate) {
		return false
	}
	return true
}

// Pricing converts the stored discount into the pricing engine's view.
func (d *Discount) Pricing() pricing.Discount {
	p := pricing.Discount{
		Code:          d.Code,
		Type:          pricing.DiscountType(d.DiscountType),
		Scope:         pricing.Scope(d.Scope),
		Percent:       d.Percent,
		Value:         d.Value,
		ProductIDs:    d.ProductIDs,
		Categories:    d.Categories,
		MinOrderValue: d.MinOrderValue,
	}
	if d.MaxDiscountAmount != nil {
		p.MaxDiscountAmount = *d.MaxDiscountAmount
	}
	return p
}

type CreateDiscountRequest struct {
	Code              string   `json:"code" binding:"required"`
	Description       string   `json:"description"`
	DiscountType      string   `json:"discountType" binding:"required,oneof=PERCENTAGE FIXED_AMOUNT"`
	Percent           float64  `json:"percentage" binding:"gte=0,lte=100"`
	Value             int64    `json:"value" binding:"gte=0"`
	Scope             string   `json:"scope" binding:"required,oneof=GLOBAL SPECIFIC_PRODUCT CATEGORY"`
	ProductIDs        []string `json:"productIds"`
	Categories        []string `json:"categories"`
	MinOrderValue     int64    `json:"minOrderValue" binding:"gte=0"`
	MaxDiscountAmount *int64   `json:"maxDiscountAmount"`
	StartDate         string   `json:"startDate" binding:"required"`
	EndDate           string   `json:"endDate" binding:"required"`
	Status            string   `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UpdateDiscountRequest = CreateDiscountRequest
