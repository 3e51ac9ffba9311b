package assistant

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Chat godoc
// @Summary      Chat with the assistant
// @Description  Booking and shopping help; the reply is a tagged union keyed by kind
// @Tags         assistant
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ChatRequest  true  "Chat message"
// @Success      200      {object}  Reply
// @Failure      400      {object}  gin.H
// @Failure      502      {object}  gin.H
// @Router       /ai/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant is unavailable"})
		return
	}

	c.JSON(http.StatusOK, reply)
}
