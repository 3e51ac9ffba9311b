package payment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FieldFinderOrganization/fieldfinder/internal/auth"
	"github.com/FieldFinderOrganization/fieldfinder/internal/discount"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary      Pay for the current cart
// @Description  Prices the cart with any discount codes, charges, and clears the cart
// @Tags         payments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                false  "Idempotency key"
// @Param        request          body      CreatePaymentRequest  true   "Payment data"
// @Success      200              {object}  PaymentResult  "Replayed earlier submission"
// @Success      201              {object}  PaymentResult
// @Failure      400              {object}  gin.H
// @Failure      402              {object}  gin.H
// @Router       /payments/create [post]
func (h *Handler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if key := c.GetHeader("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}

	result, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, discount.ErrDiscountNotFound), errors.Is(err, discount.ErrDiscountInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrChargeFailed):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Payment was declined"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
		}
		return
	}

	status := http.StatusCreated
	if !result.Created {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

// List godoc
// @Summary      List my payments
// @Tags         payments
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Payment
// @Failure      500  {object}  gin.H
// @Router       /payments [get]
func (h *Handler) List(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	payments, err := h.service.GetUserPayments(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}
