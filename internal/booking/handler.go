package booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/FieldFinderOrganization/fieldfinder/internal/auth"
	"github.com/FieldFinderOrganization/fieldfinder/internal/discount"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pricing"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetBookedSlots godoc
// @Summary      Booked slots for a pitch and date
// @Description  Returns the booked slot numbers and the full day grid. The
// @Description  optional token query param is echoed back unchanged so
// @Description  clients can discard responses of superseded requests.
// @Tags         bookings
// @Produce      json
// @Param        pitchID  path      int     true   "Pitch ID"
// @Param        date     query     string  true   "Date (YYYY-MM-DD)"
// @Param        token    query     string  false  "Client request token"
// @Success      200      {object}  BookedSlotsResponse
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /bookings/slots/{pitchID} [get]
func (h *Handler) GetBookedSlots(c *gin.Context) {
	pitchID, err := strconv.Atoi(c.Param("pitchID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pitch ID"})
		return
	}

	date, err := ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slots, err := h.service.BookedSlots(c.Request.Context(), pitchID, date)
	if err != nil {
		if errors.Is(err, ErrPitchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pitch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booked slots"})
		return
	}

	if slots == nil {
		slots = []int{}
	}

	c.JSON(http.StatusOK, BookedSlotsResponse{
		PitchID:     pitchID,
		Date:        date.Format(dateLayout),
		Token:       c.Query("token"),
		BookedSlots: slots,
		Grid:        pricing.DayGrid(date, slots, time.Now()),
	})
}

// Book godoc
// @Summary      Book pitch slots
// @Description  Creates a booking for the selected slots and discounts. An
// @Description  Idempotency-Key header (or body field) makes resubmission
// @Description  safe: the original booking is returned with status 200.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                false  "Idempotency key"
// @Param        request          body      CreateBookingRequest  true   "Booking"
// @Success      200              {object}  BookResult
// @Success      201              {object}  BookResult
// @Failure      400              {object}  gin.H
// @Failure      404              {object}  gin.H
// @Failure      409              {object}  gin.H
// @Failure      500              {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) Book(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if key := c.GetHeader("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}

	result, err := h.service.Book(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPitchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pitch not found"})
		case errors.Is(err, ErrInvalidDate),
			errors.Is(err, pricing.ErrInvalidSlotLabel),
			errors.Is(err, pricing.ErrInvalidSlot),
			errors.Is(err, pricing.ErrDateInPast),
			errors.Is(err, pricing.ErrSlotTooSoon):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, pricing.ErrSlotBooked):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, discount.ErrDiscountNotFound),
			errors.Is(err, discount.ErrDiscountInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// Cancel godoc
// @Summary      Cancel booking
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  gin.H
// @Failure      400        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own bookings"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Booking
// @Failure      500  {object}  gin.H
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookings, err := h.service.GetUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// AvailablePitches godoc
// @Summary      Pitches free for all requested slots
// @Tags         bookings
// @Produce      json
// @Param        date   query     string  true  "Date (YYYY-MM-DD)"
// @Param        slots  query     string  true  "Comma-separated slot numbers"
// @Success      200    {array}   pitch.Pitch
// @Failure      400    {object}  gin.H
// @Failure      500    {object}  gin.H
// @Router       /bookings/available-pitches [get]
func (h *Handler) AvailablePitches(c *gin.Context) {
	date, err := ParseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slotsParam := c.Query("slots")
	if slotsParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slots query param is required"})
		return
	}

	var slots []int
	for _, part := range strings.Split(slotsParam, ",") {
		slot, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slot number: " + part})
			return
		}
		slots = append(slots, slot)
	}

	pitches, err := h.service.AvailablePitches(c.Request.Context(), date, slots)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidSlot) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch available pitches"})
		return
	}

	c.JSON(http.StatusOK, pitches)
}

// ListBookingsByPitch godoc
// @Summary      List bookings by pitch
// @Description  Returns all bookings for a pitch. Admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        pitchID  path      int  true  "Pitch ID"
// @Success      200      {array}   BookingWithDetails
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/pitches/{pitchID}/bookings [get]
func (h *Handler) ListBookingsByPitch(c *gin.Context) {
	pitchID, err := strconv.Atoi(c.Param("pitchID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pitch ID"})
		return
	}

	bookings, err := h.service.GetBookingsByPitch(c.Request.Context(), pitchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBookingAnalytics godoc
// @Summary      Booking analytics
// @Description  Returns aggregated booking analytics. Admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        group_by  query     string  false  "Group by dimension (day or pitch)"
// @Param        from      query     string  true   "Start datetime (RFC3339)"
// @Param        to        query     string  true   "End datetime (RFC3339)"
// @Success      200       {object}  map[string]interface{}
// @Failure      400       {object}  gin.H
// @Failure      500       {object}  gin.H
// @Router       /admin/analytics/bookings [get]
func (h *Handler) GetBookingAnalytics(c *gin.Context) {
	groupBy := c.DefaultQuery("group_by", "day")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query params are required"})
		return
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from format, use RFC3339"})
		return
	}

	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to format, use RFC3339"})
		return
	}

	switch groupBy {
	case "day":
		stats, err := h.service.StatsByDay(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"group_by": "day", "from": from, "to": to, "data": stats})
	case "pitch":
		stats, err := h.service.StatsByPitch(c.Request.Context(), from, to)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"group_by": "pitch", "from": from, "to": to, "data": stats})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_by must be 'day' or 'pitch'"})
	}
}
