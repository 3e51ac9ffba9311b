package booking

import (
	"time"

	"github.com/FieldFinderOrganization/fieldfinder/internal/pricing"
)

const (
	StatusBooked    = "booked"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"userId"`
	PitchID        int       `db:"pitch_id" json:"pitchId"`
	Date           time.Time `db:"date" json:"date"`
	Status         string    `db:"status" json:"status"`
	Subtotal       int64     `db:"subtotal" json:"subtotal"`
	DiscountAmount int64     `db:"discount_amount" json:"discountAmount"`
	Total          int64     `db:"total" json:"total"`
	IdempotencyKey string    `db:"idempotency_key" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// Detail is one booked slot line, immutable once the booking is created.
type Detail struct {
	BookingID int    `db:"booking_id" json:"-"`
	Slot      int    `db:"slot" json:"slot"`
	Name      string `db:"name" json:"name"`
	Price     int64  `db:"price" json:"priceDetail"`
}

type BookingWithDetails struct {
	Booking
	PitchName    string `db:"pitch_name" json:"pitchName"`
	PitchAddress string `db:"pitch_address" json:"pitchAddress"`
	UserName     string `db:"user_name" json:"userName"`
	UserEmail    string `db:"user_email" json:"userEmail"`
}

type CreateBookingRequest struct {
	PitchID        int      `json:"pitchId" binding:"required"`
	Date           string   `json:"date" binding:"required"`
	Slots          []string `json:"slots" binding:"required,min=1"`
	DiscountCodes  []string `json:"discountCodes"`
	IdempotencyKey string   `json:"idempotencyKey"`
}

// BookResult is what a booking attempt resolves to. Created is false when
// the idempotency key matched an earlier submission and that booking is
// returned instead.
type BookResult struct {
	Booking *Booking      `json:"booking"`
	Lines   []Detail      `json:"lines"`
	Quote   pricing.Quote `json:"quote"`
	Created bool          `json:"created"`
}

// BookedSlotsResponse carries the booked set for one (pitch, date). Token
// echoes the client's request token so a client that changed the date
// mid-flight can discard responses to superseded requests.
type BookedSlotsResponse struct {
	PitchID     int                  `json:"pitchId"`
	Date        string               `json:"date"`
	Token       string               `json:"token,omitempty"`
	BookedSlots []int                `json:"bookedSlots"`
	Grid        []pricing.SlotStatus `json:"grid"`
}

type DayStat struct {
	Day   time.Time `db:"day" json:"day"`
	Count int       `db:"count" json:"count"`
}

type PitchStat struct {
	PitchID   int    `db:"pitch_id" json:"pitchId"`
	PitchName string `db:"pitch_name" json:"pitchName"`
	Count     int    `db:"count" json:"count"`
}
