package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FieldFinderOrganization/fieldfinder/internal/discount"
	"github.com/FieldFinderOrganization/fieldfinder/internal/email"
	"github.com/FieldFinderOrganization/fieldfinder/internal/logger"
	"github.com/FieldFinderOrganization/fieldfinder/internal/metrics"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pitch"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pricing"
	"github.com/FieldFinderOrganization/fieldfinder/internal/user"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrPitchNotFound   = errors.New("pitch not found")
	ErrInvalidDate     = errors.New("invalid date, use YYYY-MM-DD")
	ErrNotOwner        = errors.New("can only cancel own bookings")
)

const dateLayout = "2006-01-02"

type Service interface {
	BookedSlots(ctx context.Context, pitchID int, date time.Time) ([]int, error)
	Book(ctx context.Context, userID int, req CreateBookingRequest) (*BookResult, error)
	Cancel(ctx context.Context, userID, bookingID int) error
	GetUserBookings(ctx context.Context, userID int) ([]Booking, error)
	GetBookingsByPitch(ctx context.Context, pitchID int) ([]BookingWithDetails, error)
	AvailablePitches(ctx context.Context, date time.Time, slots []int) ([]pitch.Pitch, error)
	StatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error)
	StatsByPitch(ctx context.Context, from, to time.Time) ([]PitchStat, error)
}

type service struct {
	repo        Repository
	pitchRepo   pitch.Repository
	discountSvc discount.Service
	userRepo    user.Repository
	emailSvc    *email.Service
	now         func() time.Time
}

func NewService(
	repo Repository,
	pitchRepo pitch.Repository,
	discountSvc discount.Service,
	userRepo user.Repository,
	emailSvc *email.Service,
) Service {
	return &service{
		repo:        repo,
		pitchRepo:   pitchRepo,
		discountSvc: discountSvc,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		now:         time.Now,
	}
}

func (s *service) BookedSlots(ctx context.Context, pitchID int, date time.Time) ([]int, error) {
	if _, err := s.pitchRepo.GetByID(ctx, pitchID); err != nil {
		return nil, ErrPitchNotFound
	}
	return s.repo.BookedSlots(ctx, pitchID, date)
}

// ParseDate parses the wire date format shared by booking endpoints.
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func (s *service) Book(ctx context.Context, userID int, req CreateBookingRequest) (*BookResult, error) {
	p, err := s.pitchRepo.GetByID(ctx, req.PitchID)
	if err != nil {
		return nil, ErrPitchNotFound
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	slots := make([]int, 0, len(req.Slots))
	for _, label := range req.Slots {
		slot, err := pricing.ParseSlotLabel(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", pricing.ErrInvalidSlotLabel, label)
		}
		slots = append(slots, slot)
	}

	now := s.now()
	booked, err := s.repo.BookedSlots(ctx, req.PitchID, date)
	if err != nil {
		return nil, err
	}

	for _, slot := range slots {
		if err := pricing.Bookable(slot, date, booked, now); err != nil {
			return nil, fmt.Errorf("slot %s: %w", pricing.SlotLabel(slot), err)
		}
	}

	discounts, err := s.discountSvc.ResolveCodes(ctx, req.DiscountCodes, now)
	if err != nil {
		return nil, err
	}

	lines, err := pricing.LinesForSlots(slots, p.PricePerHour)
	if err != nil {
		return nil, err
	}

	quote := pricing.QuoteBase(pricing.Subtotal(lines), nil, discounts)

	key := req.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	// A resubmitted key returns the original booking instead of creating a
	// duplicate. The quote is rebuilt from the stored totals so it cannot
	// drift from the booking when discount validity changed between submits.
	if existing, err := s.repo.GetByIdempotencyKey(ctx, key); err == nil {
		details, derr := s.repo.GetDetails(ctx, existing.ID)
		if derr != nil {
			return nil, derr
		}
		return &BookResult{Booking: existing, Lines: details, Quote: storedQuote(existing), Created: false}, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	details := make([]Detail, len(lines))
	for i, l := range lines {
		details[i] = Detail{Slot: l.Slot, Name: l.Name, Price: l.Price}
	}

	b := &Booking{
		UserID:         userID,
		PitchID:        req.PitchID,
		Date:           date,
		Subtotal:       quote.Base,
		DiscountAmount: quote.Discount,
		Total:          quote.Total,
		IdempotencyKey: key,
	}

	created, err := s.repo.CreateBooking(ctx, b, details)
	if err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			// Lost the race with a concurrent submit of the same key.
			existing, gerr := s.repo.GetByIdempotencyKey(ctx, key)
			if gerr != nil {
				return nil, gerr
			}
			existingDetails, gerr := s.repo.GetDetails(ctx, existing.ID)
			if gerr != nil {
				return nil, gerr
			}
			return &BookResult{Booking: existing, Lines: existingDetails, Quote: storedQuote(existing), Created: false}, nil
		}
		return nil, err
	}

	metrics.RecordBooking(StatusBooked)
	for _, d := range discounts {
		metrics.RecordDiscountApplied(string(d.Scope), string(d.Type))
	}

	// Confirmation is best-effort: a queue failure never fails the booking.
	if u, uerr := s.userRepo.FindByID(ctx, userID); uerr == nil && u != nil {
		labels := make([]string, len(lines))
		for i, l := range lines {
			labels[i] = l.Name
		}
		if serr := s.emailSvc.SendBookingConfirmation(ctx, u.Email, u.Name, p.Name, strings.Join(labels, ", "), date); serr != nil {
			logger.WithError(serr).Error("failed to queue booking confirmation", "booking_id", created.ID)
		}
	}

	return &BookResult{Booking: created, Lines: details, Quote: quote, Created: true}, nil
}

// storedQuote reconstructs the quote a booking was priced with. The applied
// breakdown is not persisted, only the totals.
func storedQuote(b *Booking) pricing.Quote {
	return pricing.Quote{
		Base:     b.Subtotal,
		Discount: b.DiscountAmount,
		Total:    b.Total,
	}
}

func (s *service) Cancel(ctx context.Context, userID, bookingID int) error {
	b, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if b.UserID != userID {
		return ErrNotOwner
	}

	if err := s.repo.CancelBooking(ctx, bookingID); err != nil {
		if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
			return ErrBookingNotFound
		}
		return err
	}

	metrics.RecordBookingCancellation()

	if u, uerr := s.userRepo.FindByID(ctx, userID); uerr == nil && u != nil {
		if p, perr := s.pitchRepo.GetByID(ctx, b.PitchID); perr == nil {
			if serr := s.emailSvc.SendCancellation(ctx, u.Email, u.Name, p.Name, b.Date); serr != nil {
				logger.WithError(serr).Error("failed to queue cancellation email", "booking_id", bookingID)
			}
		}
	}

	return nil
}

func (s *service) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.GetUserBookings(ctx, userID)
}

func (s *service) GetBookingsByPitch(ctx context.Context, pitchID int) ([]BookingWithDetails, error) {
	return s.repo.GetBookingsByPitch(ctx, pitchID)
}

func (s *service) AvailablePitches(ctx context.Context, date time.Time, slots []int) ([]pitch.Pitch, error) {
	for _, slot := range slots {
		if slot < 1 || slot > pricing.SlotsPerDay {
			return nil, pricing.ErrInvalidSlot
		}
	}

	ids, err := s.repo.AvailablePitchIDs(ctx, date, slots)
	if err != nil {
		return nil, err
	}

	idSet := make(map[int]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	all, err := s.pitchRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]pitch.Pitch, 0, len(ids))
	for _, p := range all {
		if idSet[p.ID] {
			available = append(available, p)
		}
	}

	return available, nil
}

func (s *service) StatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	return s.repo.GetBookingStatsByDay(ctx, from, to)
}

func (s *service) StatsByPitch(ctx context.Context, from, to time.Time) ([]PitchStat, error) {
	return s.repo.GetBookingStatsByPitch(ctx, from, to)
}
