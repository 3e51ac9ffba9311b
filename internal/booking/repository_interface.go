package booking

import (
	"context"
	"time"
)

type Repository interface {
	CreateBooking(ctx context.Context, b *Booking, details []Detail) (*Booking, error)
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*Booking, error)
	GetDetails(ctx context.Context, bookingID int) ([]Detail, error)
	CancelBooking(ctx context.Context, id int) error
	BookedSlots(ctx context.Context, pitchID int, date time.Time) ([]int, error)
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	GetBookingsByPitch(ctx context.Context, pitchID int) ([]BookingWithDetails, error)
	AvailablePitchIDs(ctx context.Context, date time.Time, slots []int) ([]int, error)
	GetBookingStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error)
	GetBookingStatsByPitch(ctx context.Context, from, to time.Time) ([]PitchStat, error)
}
