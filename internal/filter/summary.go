package filter

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// ActiveCount is the number of the six list-page dimensions that narrow the
// catalog. A dimension counts once however many values it holds.
func ActiveCount(s Spec) int {
	n := 0
	for _, active := range []bool{
		len(s.PropertyTypes) > 0,
		len(s.Categories) > 0,
		len(s.Locations) > 0,
		len(s.ZoneTypes) > 0,
		s.NAStatus != nil,
		s.PriceActive(),
	} {
		if active {
			n++
		}
	}
	return n
}

// Badge is one "filter applied" chip.
type Badge struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

var badgePrinter = message.NewPrinter(language.English)

// Badges lists a chip per active dimension, in the order the filter panel shows them.
func Badges(s Spec) []Badge {
	var out []Badge
	if n := len(s.PropertyTypes); n > 0 {
		out = append(out, Badge{Key: "type", Label: badgePrinter.Sprintf("Property Types: %d", n)})
	}
	if n := len(s.Categories); n > 0 {
		out = append(out, Badge{Key: "category", Label: badgePrinter.Sprintf("Categories: %d", n)})
	}
	if s.PriceActive() {
		r := s.PriceRange.Normalize()
		label := badgePrinter.Sprintf("Price Range: $%v - $%v", number.Decimal(r.Min), number.Decimal(r.Max))
		if r.Max == math.MaxFloat64 {
			label = badgePrinter.Sprintf("Price Range: $%v+", number.Decimal(r.Min))
		}
		out = append(out, Badge{Key: "priceRange", Label: label})
	}
	if n := len(s.Locations); n > 0 {
		out = append(out, Badge{Key: "location", Label: badgePrinter.Sprintf("Locations: %d", n)})
	}
	if n := len(s.ZoneTypes); n > 0 {
		out = append(out, Badge{Key: "zoneType", Label: badgePrinter.Sprintf("Zone Types: %d", n)})
	}
	if s.NAStatus != nil {
		label := "NA Status: Non-NA Plot"
		if *s.NAStatus {
			label = "NA Status: NA Plot"
		}
		out = append(out, Badge{Key: "naStatus", Label: label})
	}
	return out
}
