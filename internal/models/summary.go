package models

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Zone identifiers used by the catalog filter panel.
const (
	ZoneGreen       = "green-zone"
	ZoneRed         = "red-zone"
	ZoneIndustrial  = "industrial-zone"
	ZoneCommercial  = "commercial-zone"
	ZoneAgriculture = "agriculture-zone"
)

// ZoneFor maps a land type onto the filter panel's zone identifier. Land types
// with no zone counterpart map to "".
func ZoneFor(t LandType) string {
	switch t {
	case LandTypeGreenZone:
		return ZoneGreen
	case LandTypeRZone:
		return ZoneRed
	case LandTypeIndustrial:
		return ZoneIndustrial
	case LandTypeCommercial:
		return ZoneCommercial
	case LandTypeFarming:
		return ZoneAgriculture
	}
	return ""
}

// NAStatusFor returns true for NA land, false for Non-NA land and nil for any
// other legal status.
func NAStatusFor(s LegalStatus) *bool {
	switch s {
	case LegalStatusNA:
		v := true
		return &v
	case LegalStatusNonNA:
		v := false
		return &v
	}
	return nil
}

// PropertySummary is the card-sized projection of a property used by the
// catalog list and the filter engine.
type PropertySummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	Size      string    `json:"size"`
	AreaSqFt  float64   `json:"areaSqFt"`
	Bedrooms  int       `json:"bedrooms"`
	Bathrooms int       `json:"bathrooms"`
	Featured  bool      `json:"featured"`
	ImageURL  string    `json:"imageUrl"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	ZoneType  string    `json:"zoneType,omitempty"`
	NAStatus  *bool     `json:"naStatus,omitempty"`
}

var sizePrinter = message.NewPrinter(language.English)

// Summarize projects a full record onto its catalog card.
func Summarize(p *Property) PropertySummary {
	unit := p.Area.Unit
	if unit == "" {
		unit = UnitSqFt
	}
	return PropertySummary{
		ID:        p.ID.Hex(),
		Title:     p.Title,
		Location:  FormatLocation(p.Address.City, p.Address.State),
		Price:     p.Price,
		Category:  string(p.Category),
		Type:      string(p.PropertyType),
		Size:      sizePrinter.Sprintf("%v %s", number.Decimal(p.Area.Total), unit),
		AreaSqFt:  p.Area.SquareFeet(),
		Bedrooms:  p.PropertyDetails.Bedrooms,
		Bathrooms: p.PropertyDetails.Bathrooms,
		Featured:  p.Featured,
		ImageURL:  p.PrimaryImage(),
		Tags:      p.Amenities,
		CreatedAt: p.CreatedAt,
		ZoneType:  ZoneFor(p.LandType),
		NAStatus:  NAStatusFor(p.LegalStatus),
	}
}
