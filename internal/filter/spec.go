// Package filter narrows catalog summaries by the facets offered on the
// property list page. Every function here is pure and safe for concurrent use.
package filter

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPriceMax is the upper end of the price slider.
const DefaultPriceMax = 5000000

// PriceRange is a closed price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultPriceRange is the slider's untouched position.
var DefaultPriceRange = PriceRange{Min: 0, Max: DefaultPriceMax}

// Normalize clamps a negative minimum to zero and raises the maximum to the
// minimum when the two are inverted.
func (r PriceRange) Normalize() PriceRange {
	if r.Min < 0 {
		r.Min = 0
	}
	if r.Max < r.Min {
		r.Max = r.Min
	}
	return r
}

// IsDefault reports whether the normalized range is the full slider range.
func (r PriceRange) IsDefault() bool {
	return r.Normalize() == DefaultPriceRange
}

// Spec selects catalog entries. The zero value matches everything.
// Dimensions combine with AND; values inside one dimension combine with OR.
type Spec struct {
	PropertyTypes []string    `json:"propertyTypes,omitempty"`
	Categories    []string    `json:"categories,omitempty"`
	PriceRange    *PriceRange `json:"priceRange,omitempty"`
	Locations     []string    `json:"locations,omitempty"`
	ZoneTypes     []string    `json:"zoneTypes,omitempty"`
	NAStatus      *bool       `json:"naStatus,omitempty"`
	BedroomsMin   *int        `json:"bedroomsMin,omitempty"`
	SizeMin       *float64    `json:"sizeMin,omitempty"`
	SizeMax       *float64    `json:"sizeMax,omitempty"`
}

// PriceActive reports whether the price dimension narrows the catalog.
func (s Spec) PriceActive() bool {
	return s.PriceRange != nil && !s.PriceRange.IsDefault()
}

// ParseQuery reads a Spec from list page query parameters. Multi-select
// facets may repeat a key or carry comma separated values.
func ParseQuery(q url.Values) (Spec, error) {
	var s Spec
	s.PropertyTypes = multi(q, "type")
	s.Categories = multi(q, "category")
	s.Locations = multi(q, "location")
	s.ZoneTypes = multi(q, "zone")

	minPrice, hasMin, err := floatParam(q, "minPrice")
	if err != nil {
		return Spec{}, err
	}
	maxPrice, hasMax, err := floatParam(q, "maxPrice")
	if err != nil {
		return Spec{}, err
	}
	if hasMin || hasMax {
		r := DefaultPriceRange
		if hasMin {
			r.Min = minPrice
		}
		if hasMax {
			r.Max = maxPrice
		}
		r = r.Normalize()
		s.PriceRange = &r
	}

	if v := q.Get("na"); v != "" {
		na, err := strconv.ParseBool(v)
		if err != nil {
			return Spec{}, fmt.Errorf("invalid na: %q", v)
		}
		s.NAStatus = &na
	}
	if v := q.Get("bedrooms"); v != "" {
		n, err := strconv.Atoi(strings.TrimSuffix(v, "+"))
		if err != nil || n < 0 {
			return Spec{}, fmt.Errorf("invalid bedrooms: %q", v)
		}
		s.BedroomsMin = &n
	}
	if v, ok, err := floatParam(q, "minSize"); err != nil {
		return Spec{}, err
	} else if ok {
		s.SizeMin = &v
	}
	if v, ok, err := floatParam(q, "maxSize"); err != nil {
		return Spec{}, err
	} else if ok {
		s.SizeMax = &v
	}
	return s, nil
}

func multi(q url.Values, key string) []string {
	var out []string
	for _, raw := range q[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func floatParam(q url.Values, key string) (float64, bool, error) {
	v := q.Get(key)
	if v == "" {
		return 0, false, nil
	}
	f, err := parseFinite(v)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s: %q", key, v)
	}
	return f, true, nil
}

// parseFinite parses a float and rejects NaN and the infinities.
func parseFinite(v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a finite number", v)
	}
	return f, nil
}
