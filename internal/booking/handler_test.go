package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FieldFinderOrganization/fieldfinder/internal/auth"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pitch"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pricing"
)

type MockService struct{ mock.Mock }

func (m *MockService) BookedSlots(ctx context.Context, pitchID int, date time.Time) ([]int, error) {
	args := m.Called(ctx, pitchID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockService) Book(ctx context.Context, userID int, req CreateBookingRequest) (*BookResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookResult), args.Error(1)
}

func (m *MockService) Cancel(ctx context.Context, userID, bookingID int) error {
	args := m.Called(ctx, userID, bookingID)
	return args.Error(0)
}

func (m *MockService) GetUserBookings(ctx context.Context, userID int) ([]Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockService) GetBookingsByPitch(ctx context.Context, pitchID int) ([]BookingWithDetails, error) {
	args := m.Called(ctx, pitchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

func (m *MockService) AvailablePitches(ctx context.Context, date time.Time, slots []int) ([]pitch.Pitch, error) {
	args := m.Called(ctx, date, slots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pitch.Pitch), args.Error(1)
}

func (m *MockService) StatsByDay(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DayStat), args.Error(1)
}

func (m *MockService) StatsByPitch(ctx context.Context, from, to time.Time) ([]PitchStat, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PitchStat), args.Error(1)
}

func newHandlerRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(svc)

	router := gin.New()
	router.GET("/bookings/slots/:pitchID", handler.GetBookedSlots)
	router.GET("/bookings/available-pitches", handler.AvailablePitches)
	router.POST("/bookings", auth.AuthMiddleware("test-secret"), handler.Book)
	router.POST("/bookings/:bookingID/cancel", auth.AuthMiddleware("test-secret"), handler.Cancel)
	router.GET("/bookings", auth.AuthMiddleware("test-secret"), handler.ListMyBookings)
	return router
}

func authToken(t *testing.T, userID int) string {
	token, err := auth.GenerateAccessToken(userID, "player@example.com", "member", "test-secret")
	require.NoError(t, err)
	return token
}

func postBody(router *gin.Engine, path, token string, body interface{}) *httptest.ResponseRecorder {
	bodyBytes, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBookHandler(t *testing.T) {
	t.Run("Created booking responds 201", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		svc.On("Book", mock.Anything, 7, mock.AnythingOfType("booking.CreateBookingRequest")).
			Return(&BookResult{
				Booking: &Booking{ID: 1, UserID: 7, Total: 400000},
				Quote:   pricing.Quote{Base: 400000, Total: 400000},
				Created: true,
			}, nil)

		w := postBody(router, "/bookings", authToken(t, 7), CreateBookingRequest{
			PitchID: 1,
			Date:    tomorrowStr(),
			Slots:   []string{"6:00 - 7:00", "7:00 - 8:00"},
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var result BookResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.True(t, result.Created)
	})

	t.Run("Idempotent replay responds 200", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		svc.On("Book", mock.Anything, 7, mock.AnythingOfType("booking.CreateBookingRequest")).
			Return(&BookResult{
				Booking: &Booking{ID: 1, UserID: 7, Total: 400000},
				Created: false,
			}, nil)

		w := postBody(router, "/bookings", authToken(t, 7), CreateBookingRequest{
			PitchID:        1,
			Date:           tomorrowStr(),
			Slots:          []string{"6:00 - 7:00"},
			IdempotencyKey: "key-1",
		})

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Idempotency-Key header overrides the body field", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		svc.On("Book", mock.Anything, 7, mock.MatchedBy(func(req CreateBookingRequest) bool {
			return req.IdempotencyKey == "header-key"
		})).Return(&BookResult{Booking: &Booking{ID: 1}, Created: true}, nil)

		bodyBytes, _ := json.Marshal(CreateBookingRequest{
			PitchID:        1,
			Date:           tomorrowStr(),
			Slots:          []string{"6:00 - 7:00"},
			IdempotencyKey: "body-key",
		})
		req := httptest.NewRequest("POST", "/bookings", bytes.NewBuffer(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+authToken(t, 7))
		req.Header.Set("Idempotency-Key", "header-key")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Malformed JSON responds 400", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		req := httptest.NewRequest("POST", "/bookings", bytes.NewBufferString(`{"pitchId": invalid}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+authToken(t, 7))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Book")
	})

	t.Run("Missing auth context responds 401", func(t *testing.T) {
		svc := new(MockService)
		handler := NewHandler(svc)

		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.POST("/bookings", handler.Book)

		w := postBody(router, "/bookings", "", CreateBookingRequest{
			PitchID: 1,
			Date:    tomorrowStr(),
			Slots:   []string{"6:00 - 7:00"},
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "Book")
	})

	t.Run("Booked slot responds 409", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		svc.On("Book", mock.Anything, 7, mock.AnythingOfType("booking.CreateBookingRequest")).
			Return(nil, pricing.ErrSlotBooked)

		w := postBody(router, "/bookings", authToken(t, 7), CreateBookingRequest{
			PitchID: 1,
			Date:    tomorrowStr(),
			Slots:   []string{"6:00 - 7:00"},
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Unknown pitch responds 404", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		svc.On("Book", mock.Anything, 7, mock.AnythingOfType("booking.CreateBookingRequest")).
			Return(nil, ErrPitchNotFound)

		w := postBody(router, "/bookings", authToken(t, 7), CreateBookingRequest{
			PitchID: 99,
			Date:    tomorrowStr(),
			Slots:   []string{"6:00 - 7:00"},
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetBookedSlotsHandler(t *testing.T) {
	t.Run("Echoes the client token", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		svc.On("BookedSlots", mock.Anything, 1, mock.AnythingOfType("time.Time")).
			Return([]int{3, 4}, nil)

		req := httptest.NewRequest("GET", "/bookings/slots/1?date="+tomorrowStr()+"&token=req-77", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp BookedSlotsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "req-77", resp.Token)
		assert.Equal(t, []int{3, 4}, resp.BookedSlots)
	})

	t.Run("Invalid date responds 400", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		req := httptest.NewRequest("GET", "/bookings/slots/1?date=01-09-2026", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "BookedSlots")
	})
}

func TestCancelHandler(t *testing.T) {
	t.Run("Someone else's booking responds 403", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		svc.On("Cancel", mock.Anything, 7, 42).Return(ErrNotOwner)

		w := postBody(router, "/bookings/42/cancel", authToken(t, 7), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Unknown booking responds 404", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		svc.On("Cancel", mock.Anything, 7, 42).Return(ErrBookingNotFound)

		w := postBody(router, "/bookings/42/cancel", authToken(t, 7), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAvailablePitchesHandler(t *testing.T) {
	t.Run("Parses the slots list", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		svc.On("AvailablePitches", mock.Anything, mock.AnythingOfType("time.Time"), []int{3, 4}).
			Return([]pitch.Pitch{{ID: 1, Name: "North Field"}}, nil)

		req := httptest.NewRequest("GET", "/bookings/available-pitches?date="+tomorrowStr()+"&slots=3,4", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var pitches []pitch.Pitch
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pitches))
		require.Len(t, pitches, 1)
		assert.Equal(t, "North Field", pitches[0].Name)
	})

	t.Run("Missing slots param responds 400", func(t *testing.T) {
		svc := new(MockService)
		router := newHandlerRouter(svc)

		req := httptest.NewRequest("GET", "/bookings/available-pitches?date="+tomorrowStr(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
