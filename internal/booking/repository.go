package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")
	ErrDuplicateSubmission               = errors.New("duplicate booking submission")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `
	id, user_id, pitch_id, date, status, subtotal, discount_amount, total,
	idempotency_key, created_at
`

func (r *repository) CreateBooking(ctx context.Context, b *Booking, details []Detail) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings (user_id, pitch_id, date, status, subtotal, discount_amount, total, idempotency_key)
		VALUES ($1, $2, $3, 'booked', $4, $5, $6, $7)
		RETURNING ` + bookingColumns

	var created Booking
	err = tx.GetContext(ctx, &created, query,
		b.UserID, b.PitchID, b.Date, b.Subtotal, b.DiscountAmount, b.Total, b.IdempotencyKey,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrDuplicateSubmission
		}
		return nil, err
	}

	for _, d := range details {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO booking_details (booking_id, slot, name, price) VALUES ($1, $2, $3, $4)`,
			created.ID, d.Slot, d.Name, d.Price,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) GetByIdempotencyKey(ctx context.Context, key string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE idempotency_key = $1`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}

	return &b, nil
}

func (r *repository) GetDetails(ctx context.Context, bookingID int) ([]Detail, error) {
	query := `
		SELECT booking_id, slot, name, price
		FROM booking_details
		WHERE booking_id = $1
		ORDER BY slot
	`

	var details []Detail
	if err := r.db.SelectContext(ctx, &details, query, bookingID); err != nil {
		return nil, err
	}

	return details, nil
}

func (r *repository) CancelBooking(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'booked'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFoundOrAlreadyCancelled
	}

	return nil
}

func (r *repository) BookedSlots(ctx context.Context, pitchID int, date time.Time) ([]int, error) {
	query := `
		SELECT DISTINCT bd.slot
		FROM booking_details bd
		JOIN bookings b ON bd.booking_id = b.id
		WHERE b.pitch_id = $1 AND b.date = $2 AND b.status = 'booked'
		ORDER BY bd.slot
	`

	var slots []int
	if err := r.db.SelectContext(ctx, &slots, query, pitchID, date); err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, userID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) GetBookingsByPitch(ctx context.Context, pitchID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.pitch_id,
			b.date,
			b.status,
			b.subtotal,
			b.discount_amount,
			b.total,
			b.idempotency_key,
			b.created_at,
			p.name AS pitch_name,
			p.address AS pitch_address,
			u.name AS user_name,
			u.email AS user_email
		FROM bookings b
		JOIN pitches p ON b.pitch_id = p.id
		JOIN users u ON b.user_id = u.id
		WHERE b.pitch_id = $1
		ORDER BY b.date DESC, b.created_at DESC
	`

	var bookings []BookingWithDetails
	if err := r.db.SelectContext(ctx, &bookings, query, pitchID); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) AvailablePitchIDs(ctx context.Context, date time.Time, slots []int) ([]int, error) {
	query := `
		SELECT p.id
		FROM pitches p
		WHERE NOT EXISTS (
			SELECT 1
			FROM bookings b
			JOIN booking_details bd ON bd.booking_id = b.id
			WHERE b.pitch_id = p.id
			  AND b.date = $1
			  AND b.status = 'booked'
			  AND bd.slot = ANY($2)
		)
		ORDER BY p.id
	`

	var ids []int
	if err := r.db.SelectContext(ctx, &ids, query, date, pq.Array(slots)); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *repository) GetBookingStatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	query := `
		SELECT date_trunc('day', b.date) AS day, COUNT(*) AS count
		FROM bookings b
		WHERE b.date >= $1 AND b.date <= $2 AND b.status = 'booked'
		GROUP BY day
		ORDER BY day
	`

	var stats []DayStat
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *repository) GetBookingStatsByPitch(ctx context.Context, from, to time.Time) ([]PitchStat, error) {
	query := `
		SELECT b.pitch_id, p.name AS pitch_name, COUNT(*) AS count
		FROM bookings b
		JOIN pitches p ON b.pitch_id = p.id
		WHERE b.date >= $1 AND b.date <= $2 AND b.status = 'booked'
		GROUP BY b.pitch_id, p.name
		ORDER BY count DESC
	`

	var stats []PitchStat
	if err := r.db.SelectContext(ctx, &stats, query, from, to); err != nil {
		return nil, err
	}

	return stats, nil
}
