package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goldenview/realty/internal/filter"
	"goldenview/realty/internal/services"
)

// CatalogHandler serves the catalog helpers behind the filter panel and the
// Locations page.
type CatalogHandler struct {
	locations services.ILocationService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(locations services.ILocationService) *CatalogHandler {
	return &CatalogHandler{locations: locations}
}

// FilterSummary handles POST /v1/filters/summary. It reports how many
// dimensions a filter selection narrows and the chips to show for it.
func (h *CatalogHandler) FilterSummary(c *gin.Context) {
	var spec filter.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter selection"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"activeFilterCount": filter.ActiveCount(spec),
		"badges":            filter.Badges(spec),
	})
}

// ListLocations handles GET /v1/locations.
func (h *CatalogHandler) ListLocations(c *gin.Context) {
	locations, err := h.locations.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list locations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}
