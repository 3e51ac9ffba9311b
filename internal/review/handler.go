package review

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/FieldFinderOrganization/fieldfinder/internal/auth"
	"github.com/FieldFinderOrganization/fieldfinder/internal/pitch"
)

type Handler struct {
	repo      Repository
	pitchRepo pitch.Repository
}

func NewHandler(repo Repository, pitchRepo pitch.Repository) *Handler {
	return &Handler{repo: repo, pitchRepo: pitchRepo}
}

// Create godoc
// @Summary      Review a pitch
// @Tags         reviews
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        pitchID  path      int                  true  "Pitch ID"
// @Param        request  body      CreateReviewRequest  true  "Review data"
// @Success      201      {object}  Review
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /pitches/{pitchID}/reviews [post]
func (h *Handler) Create(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	pitchID, err := strconv.Atoi(c.Param("pitchID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pitch ID"})
		return
	}

	if _, err := h.pitchRepo.GetByID(c.Request.Context(), pitchID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pitch not found"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), &Review{
		PitchID: pitchID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListByPitch godoc
// @Summary      List reviews for a pitch
// @Tags         reviews
// @Produce      json
// @Param        pitchID  path      int  true  "Pitch ID"
// @Success      200      {object}  PitchReviews
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /pitches/{pitchID}/reviews [get]
func (h *Handler) ListByPitch(c *gin.Context) {
	pitchID, err := strconv.Atoi(c.Param("pitchID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pitch ID"})
		return
	}

	if _, err := h.pitchRepo.GetByID(c.Request.Context(), pitchID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pitch not found"})
		return
	}

	reviews, err := h.repo.ListByPitch(c.Request.Context(), pitchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	avg, err := h.repo.AverageRating(c.Request.Context(), pitchID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, PitchReviews{Reviews: reviews, AverageRating: avg})
}
