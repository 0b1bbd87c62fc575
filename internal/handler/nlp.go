package handler

import (
	"net/http"

	"propfinder/internal/service"

	"github.com/gin-gonic/gin"
)

// NLPRequest carries the free-text input to parse.
type NLPRequest struct {
	Text string `json:"text" binding:"required"`
}

// NLPHandler handles text-intent parsing HTTP requests
type NLPHandler struct {
	intentParser *service.IntentParser
}

// NewNLPHandler creates a new NLP handler
func NewNLPHandler(intentParser *service.IntentParser) *NLPHandler {
	return &NLPHandler{intentParser: intentParser}
}

// Parse handles POST /api/v1/nlp/parse
func (h *NLPHandler) Parse(c *gin.Context) {
	var req NLPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result := h.intentParser.Parse(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, result)
}
