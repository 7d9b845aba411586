package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"goldenview/realty/internal/api/handlers"
	"goldenview/realty/internal/filter"
	"goldenview/realty/internal/models"
)

func newCatalogRouter(h *handlers.CatalogHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/v1/filters/summary", h.FilterSummary)
	r.GET("/v1/locations", h.ListLocations)
	return r
}

func TestCatalogHandler_FilterSummary(t *testing.T) {
	r := newCatalogRouter(handlers.NewCatalogHandler(new(MockLocationService)))

	body := `{"propertyTypes":["Villa","House"],"naStatus":false,"priceRange":{"min":100000,"max":5000000}}`
	w := perform(r, "POST", "/v1/filters/summary", body, "")

	assert.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		ActiveFilterCount int            `json:"activeFilterCount"`
		Badges            []filter.Badge `json:"badges"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.ActiveFilterCount)
	require.Len(t, resp.Badges, 3)
	assert.Equal(t, "Property Types: 2", resp.Badges[0].Label)
	assert.Equal(t, "Price Range: $100,000 - $5,000,000", resp.Badges[1].Label)
	assert.Equal(t, "NA Status: Non-NA Plot", resp.Badges[2].Label)
}

func TestCatalogHandler_FilterSummary_Empty(t *testing.T) {
	r := newCatalogRouter(handlers.NewCatalogHandler(new(MockLocationService)))

	w := perform(r, "POST", "/v1/filters/summary", `{}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"activeFilterCount":0`)

	w = perform(r, "POST", "/v1/filters/summary", `{"propertyTypes":"Villa"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler_ListLocations(t *testing.T) {
	mockLocations := new(MockLocationService)
	r := newCatalogRouter(handlers.NewCatalogHandler(mockLocations))

	mockLocations.On("ListLocations", mock.Anything).Return([]models.LocationSummary{
		{Name: "Pune, Maharashtra", City: "Pune", State: "Maharashtra", PropertiesCount: 4},
	}, nil).Once()
	mockLocations.On("ListLocations", mock.Anything).Return(nil, errors.New("mongo unavailable")).Once()

	w := perform(r, "GET", "/v1/locations", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pune, Maharashtra")

	w = perform(r, "GET", "/v1/locations", "", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockLocations.AssertExpectations(t)
}
