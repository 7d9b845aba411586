package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Legacy is the single-select filter form of the original list page. Each
// field holds one option value, or "" when unset.
type Legacy struct {
	Type       string `form:"type" json:"type"`
	Category   string `form:"category" json:"category"`
	PriceRange string `form:"priceRange" json:"priceRange"` // "0-100000", "5000000+"
	Location   string `form:"location" json:"location"`     // slug, e.g. "new-york"
	Bedrooms   string `form:"bedrooms" json:"bedrooms"`     // "3" means three or more
	Size       string `form:"size" json:"size"`             // square feet bucket, e.g. "1000-2000"
}

var titleCaser = cases.Title(language.English)

// ToSpec converts the single-select form into the multi-select Spec.
func (l Legacy) ToSpec() (Spec, error) {
	var s Spec
	if v := strings.TrimSpace(l.Type); v != "" {
		s.PropertyTypes = []string{v}
	}
	if v := strings.TrimSpace(l.Category); v != "" {
		s.Categories = []string{v}
	}
	if v := strings.TrimSpace(l.Location); v != "" {
		s.Locations = []string{LocationFromSlug(v)}
	}
	if v := strings.TrimSpace(l.PriceRange); v != "" {
		lo, hi, err := parseBucket(v)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid priceRange: %w", err)
		}
		r := PriceRange{Min: lo, Max: hi}.Normalize()
		s.PriceRange = &r
	}
	if v := strings.TrimSpace(l.Bedrooms); v != "" {
		n, err := strconv.Atoi(strings.TrimSuffix(v, "+"))
		if err != nil || n < 0 {
			return Spec{}, fmt.Errorf("invalid bedrooms: %q", v)
		}
		s.BedroomsMin = &n
	}
	if v := strings.TrimSpace(l.Size); v != "" {
		lo, hi, err := parseBucket(v)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid size: %w", err)
		}
		s.SizeMin = &lo
		if hi != math.MaxFloat64 {
			s.SizeMax = &hi
		}
	}
	return s, nil
}

// LocationFromSlug turns "san-francisco" into "San Francisco".
func LocationFromSlug(slug string) string {
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}

// parseBucket reads "lo-hi" or "lo+" (open ended).
func parseBucket(v string) (float64, float64, error) {
	if lo, ok := strings.CutSuffix(v, "+"); ok {
		f, err := parseFinite(lo)
		if err != nil {
			return 0, 0, fmt.Errorf("%q is not a range", v)
		}
		return f, math.MaxFloat64, nil
	}
	lo, hi, ok := strings.Cut(v, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%q is not a range", v)
	}
	l, err1 := parseFinite(lo)
	h, err2 := parseFinite(hi)
	if err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%q is not a range", v)
	}
	return l, h, nil
}
