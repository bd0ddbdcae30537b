package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChatInput defines the JSON for talking to the shop assistant.
type ChatInput struct {
	Message string `json:"message" binding:"required"`
}

// ChatAssistant is the handler for POST /asistente.
// Returns 503 when the server was started without a Gemini API key.
func (h *Handlers) ChatAssistant(c *gin.Context) {
	if h.Assistant == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Assistant is not configured"})
		return
	}

	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.Assistant.GenerateResponse(c, input.Message)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Assistant failed to respond"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
