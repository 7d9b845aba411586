package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenview/realty/internal/api/handlers"
	"goldenview/realty/internal/config"
	"goldenview/realty/internal/filter"
)

func TestConfigHandler_GetPublicConfig(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := handlers.NewConfigHandler(&config.Config{
		AppName:             "Golden View",
		PlaceholderImageURL: "https://placehold.co/600x400",
		ImageMaxSizeMB:      10,
		ImageMaxDimension:   2048,
		JwtSecret:           "never-exposed",
	})
	r := gin.New()
	r.GET("/v1/config", h.GetPublicConfig)

	w := perform(r, "GET", "/v1/config", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "never-exposed")
	var resp handlers.PublicConfig
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Golden View", resp.AppName)
	assert.Equal(t, filter.DefaultPriceRange, resp.PriceRange)
	assert.Equal(t, 10, resp.ImageMaxSizeMB)
}
