package models

import (
	"strings"
)

// LocationSummary is one city/state bucket on the Locations page.
type LocationSummary struct {
	Name            string  `bson:"name" json:"name"`
	City            string  `bson:"city" json:"city"`
	State           string  `bson:"state" json:"state"`
	PropertiesCount int     `bson:"propertiesCount" json:"propertiesCount"`
	AveragePrice    float64 `bson:"averagePrice" json:"averagePrice"`
	MinPrice        float64 `bson:"minPrice" json:"minPrice"`
	MaxPrice        float64 `bson:"maxPrice" json:"maxPrice"`
}

// FormatLocation joins non-empty parts with ", ", e.g. "Pune, Maharashtra".
func FormatLocation(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
