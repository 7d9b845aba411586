package filter

import (
	"strings"

	"goldenview/realty/internal/models"
)

// Apply returns the records matching spec in their original order. The input
// slice is never modified.
func Apply(records []models.PropertySummary, spec Spec) []models.PropertySummary {
	price := activePrice(spec)
	out := make([]models.PropertySummary, 0, len(records))
	for _, r := range records {
		if matches(r, spec, price) {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether a single record satisfies spec.
func Matches(r models.PropertySummary, spec Spec) bool {
	return matches(r, spec, activePrice(spec))
}

func activePrice(spec Spec) *PriceRange {
	if !spec.PriceActive() {
		return nil
	}
	r := spec.PriceRange.Normalize()
	return &r
}

func matches(r models.PropertySummary, spec Spec, price *PriceRange) bool {
	if len(spec.PropertyTypes) > 0 && !containsFold(spec.PropertyTypes, r.Type) {
		return false
	}
	if len(spec.Categories) > 0 && !containsFold(spec.Categories, r.Category) {
		return false
	}
	if price != nil && (r.Price < price.Min || r.Price > price.Max) {
		return false
	}
	if len(spec.Locations) > 0 && !containsSubstring(r.Location, spec.Locations) {
		return false
	}
	if spec.NAStatus != nil && (r.NAStatus == nil || *r.NAStatus != *spec.NAStatus) {
		return false
	}
	if len(spec.ZoneTypes) > 0 && (r.ZoneType == "" || !containsFold(spec.ZoneTypes, r.ZoneType)) {
		return false
	}
	if spec.BedroomsMin != nil && r.Bedrooms < *spec.BedroomsMin {
		return false
	}
	if spec.SizeMin != nil && r.AreaSqFt < *spec.SizeMin {
		return false
	}
	if spec.SizeMax != nil && r.AreaSqFt > *spec.SizeMax {
		return false
	}
	return true
}

// Similar returns up to limit records sharing target's category, excluding
// target itself. A non-positive limit returns every match.
func Similar(records []models.PropertySummary, target models.PropertySummary, limit int) []models.PropertySummary {
	sameCategory := Apply(records, Spec{Categories: []string{target.Category}})
	out := make([]models.PropertySummary, 0, len(sameCategory))
	for _, r := range sameCategory {
		if r.ID == target.ID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func containsSubstring(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
