package handler

import (
	"errors"
	"net/http"

	"propfinder/internal/model"
	"propfinder/internal/service"

	"github.com/gin-gonic/gin"
)

// CompareHandler handles comparison-with-prediction HTTP requests
type CompareHandler struct {
	searchService *service.SearchService
	comparer      *service.Comparer
}

// NewCompareHandler creates a new compare handler
func NewCompareHandler(searchService *service.SearchService, comparer *service.Comparer) *CompareHandler {
	return &CompareHandler{
		searchService: searchService,
		comparer:      comparer,
	}
}

// Predict handles POST /api/v1/compare/predict
func (h *CompareHandler) Predict(c *gin.Context) {
	var req model.CompareAddressesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	records, err := h.searchService.Records(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties: " + err.Error()})
		return
	}

	result, err := h.comparer.Compare(c.Request.Context(), req.AddressA, req.AddressB, records)
	if err != nil {
		if errors.Is(err, model.ErrNoListings) {
			c.JSON(http.StatusConflict, gin.H{"error": "Not enough distinct listings to compare"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Comparison failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}
