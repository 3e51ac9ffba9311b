package cart

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/FieldFinderOrganization/fieldfinder/internal/auth"
	"github.com/FieldFinderOrganization/fieldfinder/internal/catalog"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Get godoc
// @Summary      Get cart
// @Tags         cart
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Item
// @Failure      500  {object}  gin.H
// @Router       /cart [get]
func (h *Handler) Get(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// Add godoc
// @Summary      Add item to cart
// @Tags         cart
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      AddItemRequest  true  "Item data"
// @Success      200      {object}  Item
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /cart/items [post]
func (h *Handler) Add(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.Add(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, ErrInvalidSize):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not available in that size"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to cart"})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// Update godoc
// @Summary      Update cart item quantity
// @Description  A quantity below one removes the item
// @Tags         cart
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        itemID   path      string             true  "Cart item ID"
// @Param        request  body      UpdateItemRequest  true  "New quantity"
// @Success      200      {object}  Item
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /cart/items/{itemID} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.UpdateQuantity(c.Request.Context(), userID, c.Param("itemID"), req.Quantity)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	if item == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// Remove godoc
// @Summary      Remove cart item
// @Tags         cart
// @Security     BearerAuth
// @Produce      json
// @Param        itemID  path      string  true  "Cart item ID"
// @Success      200     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /cart/items/{itemID} [delete]
func (h *Handler) Remove(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, c.Param("itemID")); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// Clear godoc
// @Summary      Clear cart
// @Tags         cart
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /cart [delete]
func (h *Handler) Clear(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
