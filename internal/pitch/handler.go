package pitch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary      List pitches
// @Tags         pitches
// @Produce      json
// @Success      200  {array}   Pitch
// @Failure      500  {object}  gin.H
// @Router       /pitches [get]
func (h *Handler) List(c *gin.Context) {
	pitches, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pitches"})
		return
	}

	c.JSON(http.StatusOK, pitches)
}

// Get godoc
// @Summary      Get pitch by ID
// @Tags         pitches
// @Produce      json
// @Param        pitchID  path      int  true  "Pitch ID"
// @Success      200      {object}  Pitch
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /pitches/{pitchID} [get]
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("pitchID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pitch ID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pitch not found"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Create godoc
// @Summary      Create pitch
// @Tags         pitches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreatePitchRequest  true  "Pitch data"
// @Success      201      {object}  Pitch
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/pitches [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreatePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pitch"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Update godoc
// @Summary      Update pitch
// @Tags         pitches
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        pitchID  path      int                 true  "Pitch ID"
// @Param        request  body      UpdatePitchRequest  true  "Pitch data"
// @Success      200      {object}  Pitch
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/pitches/{pitchID} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("pitchID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pitch ID"})
		return
	}

	var req UpdatePitchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrPitchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pitch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pitch"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// Delete godoc
// @Summary      Delete pitch
// @Tags         pitches
// @Security     BearerAuth
// @Produce      json
// @Param        pitchID  path      int  true  "Pitch ID"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/pitches/{pitchID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("pitchID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pitch ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPitchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pitch not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pitch"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pitch deleted successfully"})
}
