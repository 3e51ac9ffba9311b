package discount

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListValid godoc
// @Summary      List currently valid discounts
// @Description  Returns discounts that are ACTIVE and inside their date window.
// @Tags         discounts
// @Produce      json
// @Success      200  {array}   Discount
// @Failure      500  {object}  gin.H
// @Router       /discounts [get]
func (h *Handler) ListValid(c *gin.Context) {
	discounts, err := h.service.ListValid(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discounts"})
		return
	}

	c.JSON(http.StatusOK, discounts)
}

// List godoc
// @Summary      List all discounts
// @Description  Returns every discount regardless of status. Admin only.
// @Tags         discounts
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Discount
// @Failure      500  {object}  gin.H
// @Router       /admin/discounts [get]
func (h *Handler) List(c *gin.Context) {
	discounts, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch discounts"})
		return
	}

	c.JSON(http.StatusOK, discounts)
}

// Create godoc
// @Summary      Create discount
// @Tags         discounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateDiscountRequest  true  "Discount"
// @Success      201      {object}  Discount
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/discounts [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrBadDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create discount"})
		return
	}

	c.JSON(http.StatusCreated, d)
}

// Update godoc
// @Summary      Update discount
// @Tags         discounts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        discountID  path      int                    true  "Discount ID"
// @Param        request     body      UpdateDiscountRequest  true  "Discount"
// @Success      200         {object}  Discount
// @Failure      400         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /admin/discounts/{discountID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("discountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
		return
	}

	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDiscountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		case errors.Is(err, ErrBadDateRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update discount"})
		}
		return
	}

	c.JSON(http.StatusOK, d)
}

// Delete godoc
// @Summary      Delete discount
// @Tags         discounts
// @Security     BearerAuth
// @Produce      json
// @Param        discountID  path      int  true  "Discount ID"
// @Success      200         {object}  gin.H
// @Failure      400         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /admin/discounts/{discountID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("discountID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discount ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrDiscountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete discount"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Discount deleted successfully"})
}
