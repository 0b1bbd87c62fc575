package handler

import (
	"errors"
	"net/http"

	"propfinder/internal/model"
	"propfinder/internal/service"
	"propfinder/internal/store"

	"github.com/gin-gonic/gin"
)

// SavedHandler handles saved-listings HTTP requests. The store may be nil
// when no database is configured; the routes then answer 503.
type SavedHandler struct {
	searchService *service.SearchService
	savedStore    *store.SavedStore
}

// NewSavedHandler creates a new saved-listings handler
func NewSavedHandler(searchService *service.SearchService, savedStore *store.SavedStore) *SavedHandler {
	return &SavedHandler{
		searchService: searchService,
		savedStore:    savedStore,
	}
}

// List handles GET /api/v1/users/:user_id/saved
func (h *SavedHandler) List(c *gin.Context) {
	if !h.available(c) {
		return
	}

	ids, err := h.savedStore.List(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list saved properties: " + err.Error()})
		return
	}

	records, err := h.searchService.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties: " + err.Error()})
		return
	}

	results := make([]model.SavedProperty, 0, len(records))
	for _, r := range records {
		results = append(results, model.SavedProperty{PropertyRecord: r, Saved: true})
	}

	c.JSON(http.StatusOK, results)
}

// Save handles POST /api/v1/users/:user_id/saved
func (h *SavedHandler) Save(c *gin.Context) {
	if !h.available(c) {
		return
	}

	var req model.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// Only known listings can be saved.
	if _, err := h.searchService.GetProperty(c.Request.Context(), req.PropertyID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load property: " + err.Error()})
		return
	}

	if err := h.savedStore.Save(c.Request.Context(), c.Param("user_id"), req.PropertyID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save property: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "saved"})
}

// Delete handles DELETE /api/v1/users/:user_id/saved/:property_id
func (h *SavedHandler) Delete(c *gin.Context) {
	if !h.available(c) {
		return
	}

	if err := h.savedStore.Delete(c.Request.Context(), c.Param("user_id"), c.Param("property_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete saved property: " + err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SavedHandler) available(c *gin.Context) bool {
	if h.savedStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Saved listings are not available (no database configured)"})
		return false
	}
	return true
}
