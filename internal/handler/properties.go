package handler

import (
	"errors"
	"net/http"
	"strconv"

	"propfinder/internal/model"
	"propfinder/internal/service"

	"github.com/gin-gonic/gin"
)

// PropertiesHandler handles property search HTTP requests
type PropertiesHandler struct {
	searchService   *service.SearchService
	defaultPageSize int
	maxPageSize     int
}

// NewPropertiesHandler creates a new properties handler
func NewPropertiesHandler(searchService *service.SearchService, defaultPageSize, maxPageSize int) *PropertiesHandler {
	return &PropertiesHandler{
		searchService:   searchService,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// Search handles GET /api/v1/properties/search
func (h *PropertiesHandler) Search(c *gin.Context) {
	query, err := h.parseQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response, err := h.searchService.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetProperty handles GET /api/v1/properties/:id
func (h *PropertiesHandler) GetProperty(c *gin.Context) {
	id := c.Param("id")

	property, err := h.searchService.GetProperty(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, property)
}

// Compare handles POST /api/v1/properties/compare
func (h *PropertiesHandler) Compare(c *gin.Context) {
	var req model.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	results, err := h.searchService.GetByIDs(c.Request.Context(), req.PropertyIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, results)
}

// Reload handles POST /api/v1/admin/reload
func (h *PropertiesHandler) Reload(c *gin.Context) {
	count, err := h.searchService.Reload(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Reload failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reloaded", "count": count})
}

// parseQuery builds a QuerySpec from the request's query string, applying the
// configured page-size defaults and caps.
func (h *PropertiesHandler) parseQuery(c *gin.Context) (*model.QuerySpec, error) {
	query := &model.QuerySpec{
		Locations: c.QueryArray("location"),
		Amenities: c.QueryArray("amenities"),
		SortBy:    c.DefaultQuery("sort_by", model.SortByPrice),
		SortOrder: c.DefaultQuery("sort_order", model.SortAsc),
	}

	var err error
	if query.MinPrice, err = model.ParseFloat(c.Query("min_price")); err != nil {
		return nil, err
	}
	if query.MaxPrice, err = model.ParseFloat(c.Query("max_price")); err != nil {
		return nil, err
	}
	if query.MinBedrooms, err = model.ParseInt(c.Query("min_bedrooms")); err != nil {
		return nil, err
	}
	if query.MinBathrooms, err = model.ParseInt(c.Query("min_bathrooms")); err != nil {
		return nil, err
	}

	query.Page = intQuery(c, "page", 1)
	query.PageSize = intQuery(c, "page_size", h.defaultPageSize)
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = h.defaultPageSize
	}
	if query.PageSize > h.maxPageSize {
		query.PageSize = h.maxPageSize
	}

	return query, nil
}

func intQuery(c *gin.Context, key string, defaultValue int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return defaultValue
	}
	return v
}
