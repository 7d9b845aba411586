package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"goldenview/realty/internal/config"
	"goldenview/realty/internal/filter"
)

// PublicConfig is the subset of settings the web client reads at startup.
type PublicConfig struct {
	AppName             string            `json:"appName"`
	PlaceholderImageURL string            `json:"placeholderImageUrl"`
	PriceRange          filter.PriceRange `json:"priceRange"`
	ImageMaxSizeMB      int               `json:"imageMaxSizeMB"`
	ImageMaxDimension   int               `json:"imageMaxDimension"`
}

// ConfigHandler handles requests for the /config REST endpoint.
type ConfigHandler struct {
	public PublicConfig
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{public: PublicConfig{
		AppName:             cfg.AppName,
		PlaceholderImageURL: cfg.PlaceholderImageURL,
		PriceRange:          filter.DefaultPriceRange,
		ImageMaxSizeMB:      cfg.ImageMaxSizeMB,
		ImageMaxDimension:   cfg.ImageMaxDimension,
	}}
}

// GetPublicConfig returns the publicly accessible configuration parameters.
// Handles GET /v1/config
func (h *ConfigHandler) GetPublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.public)
}
