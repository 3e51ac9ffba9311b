package payment

import (
	"time"

	"github.com/FieldFinderOrganization/fieldfinder/internal/pricing"
)

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

type Payment struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"userId"`
	Amount         int64     `db:"amount" json:"amount"`
	Method         string    `db:"method" json:"method"`
	ProviderTx     string    `db:"provider_tx" json:"providerTx"`
	Status         string    `db:"status" json:"status"`
	IdempotencyKey string    `db:"idempotency_key" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

type CreatePaymentRequest struct {
	Method         string   `json:"method" binding:"required,oneof=card cod bank_transfer"`
	DiscountCodes  []string `json:"discountCodes"`
	IdempotencyKey string   `json:"idempotencyKey"`
}

// PaymentResult mirrors the booking flow: Created is false when the
// idempotency key matched an earlier submission.
type PaymentResult struct {
	Payment *Payment      `json:"payment"`
	Quote   pricing.Quote `json:"quote"`
	Created bool          `json:"created"`
}
