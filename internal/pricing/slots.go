package pricing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The bookable day runs 06:00-24:00 in one-hour slots, numbered 1..18.
const (
	SlotsPerDay = 18
	firstHour   = 6

	// MinLeadTime is how far ahead of a slot's start time a booking
	// for today must be placed.
	MinLeadTime = 30 * time.Minute
)

var (
	ErrInvalidSlot      = errors.New("slot number out of range")
	ErrInvalidSlotLabel = errors.New("invalid slot label")
	ErrSlotBooked       = errors.New("slot is already booked")
	ErrDateInPast       = errors.New("date is in the past")
	ErrSlotTooSoon      = errors.New("slot starts too soon")
)

// SlotNumber maps a start hour to its 1-based slot number.
// Hour 6 is slot 1, hour 23 is slot 18.
func SlotNumber(startHour int) int {
	return startHour - firstHour + 1
}

// SlotStartHour is the inverse of SlotNumber.
func SlotStartHour(slot int) int {
	return slot + firstHour - 1
}

// SlotLabel renders the human time range for a slot, e.g. "6:00 - 7:00".
func SlotLabel(slot int) string {
	start := SlotStartHour(slot)
	return fmt.Sprintf("%d:00 - %d:00", start, start+1)
}

// ParseSlotLabel resolves a label like "6:00 - 7:00" back to its slot number.
func ParseSlotLabel(label string) (int, error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, ErrInvalidSlotLabel
	}

	startPart := strings.TrimSpace(parts[0])
	hourStr, _, found := strings.Cut(startPart, ":")
	if !found {
		return 0, ErrInvalidSlotLabel
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, ErrInvalidSlotLabel
	}

	slot := SlotNumber(hour)
	if slot < 1 || slot > SlotsPerDay {
		return 0, ErrInvalidSlotLabel
	}
	return slot, nil
}

// SlotStart is the wall-clock start of a slot on the given date.
func SlotStart(date time.Time, slot int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), SlotStartHour(slot), 0, 0, 0, date.Location())
}

// Bookable reports whether a slot can still be booked for the given date.
// A slot is rejected when it is out of range, already booked, on a past
// date, or (for today) starts less than MinLeadTime from now.
func Bookable(slot int, date time.Time, booked []int, now time.Time) error {
	if slot < 1 || slot > SlotsPerDay {
		return ErrInvalidSlot
	}

	for _, b := range booked {
		if b == slot {
			return ErrSlotBooked
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return ErrDateInPast
	}

	if day.Equal(today) && SlotStart(day, slot).Before(now.Add(MinLeadTime)) {
		return ErrSlotTooSoon
	}

	return nil
}

// SlotStatus describes one slot of a pitch's day grid.
type SlotStatus struct {
	Slot      int    `json:"slot"`
	Label     string `json:"label"`
	Booked    bool   `json:"booked"`
	Available bool   `json:"available"`
}

// DayGrid expands the full 18-slot grid for a date, marking each slot's
// availability against the booked set and the current time.
func DayGrid(date time.Time, booked []int, now time.Time) []SlotStatus {
	grid := make([]SlotStatus, 0, SlotsPerDay)
	bookedSet := make(map[int]bool, len(booked))
	for _, b := range booked {
		bookedSet[b] = true
	}

	for slot := 1; slot <= SlotsPerDay; slot++ {
		status := SlotStatus{
			Slot:   slot,
			Label:  SlotLabel(slot),
			Booked: bookedSet[slot],
		}
		status.Available = Bookable(slot, date, booked, now) == nil
		grid = append(grid, status)
	}

	return grid
}

// Line is one priced slot of a booking.
type Line struct {
	Slot  int    `json:"slot"`
	Name  string `json:"name"`
	Price int64  `json:"priceDetail"`
}

// LinesForSlots builds booking lines for the selected slots at the pitch's
// hourly price. Duplicate slots are rejected.
func LinesForSlots(slots []int, pricePerHour int64) ([]Line, error) {
	seen := make(map[int]bool, len(slots))
	lines := make([]Line, 0, len(slots))

	for _, slot := range slots {
		if slot < 1 || slot > SlotsPerDay {
			return nil, ErrInvalidSlot
		}
		if seen[slot] {
			return nil, fmt.Errorf("%w: duplicate slot %d", ErrInvalidSlot, slot)
		}
		seen[slot] = true

		lines = append(lines, Line{
			Slot:  slot,
			Name:  SlotLabel(slot),
			Price: pricePerHour,
		})
	}

	return lines, nil
}

// Subtotal sums the line prices.
func Subtotal(lines []Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Price
	}
	return total
}
