package filter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenview/realty/internal/models"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int { return &i }
func floatPtr(f float64) *float64 { return &f }

func catalog() []models.PropertySummary {
	return []models.PropertySummary{
		{ID: "1", Type: "Villa", Category: "Residential", Price: 2450000, Location: "Miami Beach, FL", Bedrooms: 5, AreaSqFt: 4500},
		{ID: "2", Type: "Office", Category: "Commercial", Price: 1650000, Location: "New York, NY", AreaSqFt: 3200},
		{ID: "3", Type: "Plot", Category: "Agricultural", Price: 800000, Location: "Pune, Maharashtra", AreaSqFt: 43560,
			ZoneType: models.ZoneAgriculture, NAStatus: boolPtr(false)},
		{ID: "4", Type: "Plot", Category: "Residential", Price: 1200000, Location: "Bangalore, Karnataka", AreaSqFt: 2400,
			ZoneType: models.ZoneGreen, NAStatus: boolPtr(true)},
		{ID: "5", Type: "Apartment", Category: "Residential", Price: 5000000, Location: "Mumbai, Maharashtra", Bedrooms: 3, AreaSqFt: 1500},
	}
}

func ids(records []models.PropertySummary) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApply_EmptySpecIsIdentity(t *testing.T) {
	records := catalog()
	assert.Equal(t, records, Apply(records, Spec{}))

	def := DefaultPriceRange
	assert.Equal(t, records, Apply(records, Spec{PriceRange: &def}))
}

func TestApply_Scenario(t *testing.T) {
	records := catalog()[:2]
	spec := Spec{Categories: []string{"residential"}, PriceRange: &PriceRange{Min: 0, Max: 3000000}}
	assert.Equal(t, []string{"1"}, ids(Apply(records, spec)))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := catalog()
	before := catalog()
	_ = Apply(records, Spec{PropertyTypes: []string{"plot"}})
	assert.Equal(t, before, records)
}

func TestApply_PriceBoundariesInclusive(t *testing.T) {
	records := []models.PropertySummary{
		{ID: "below", Price: 99999},
		{ID: "min", Price: 100000},
		{ID: "max", Price: 500000},
		{ID: "above", Price: 500001},
	}
	got := Apply(records, Spec{PriceRange: &PriceRange{Min: 100000, Max: 500000}})
	assert.Equal(t, []string{"min", "max"}, ids(got))
}

func TestApply_PriceRangeIsNormalized(t *testing.T) {
	records := catalog()
	got := Apply(records, Spec{PriceRange: &PriceRange{Min: 1200000, Max: 10}})
	assert.Equal(t, []string{"4"}, ids(got))

	got = Apply(records, Spec{PriceRange: &PriceRange{Min: -50, Max: 1000000}})
	assert.Equal(t, []string{"3"}, ids(got))
}

func TestApply_Dimensions(t *testing.T) {
	records := catalog()

	tests := []struct {
		name string
		spec Spec
		want []string
	}{
		{"types are case-insensitive and OR'd", Spec{PropertyTypes: []string{"villa", "OFFICE"}}, []string{"1", "2"}},
		{"location substring", Spec{Locations: []string{"Maharashtra"}}, []string{"3", "5"}},
		{"location is case-sensitive substring", Spec{Locations: []string{"maharashtra"}}, []string{}},
		{"na true", Spec{NAStatus: boolPtr(true)}, []string{"4"}},
		{"na false excludes unknown", Spec{NAStatus: boolPtr(false)}, []string{"3"}},
		{"zones skip unzoned records", Spec{ZoneTypes: []string{models.ZoneGreen, models.ZoneRed}}, []string{"4"}},
		{"bedrooms minimum", Spec{BedroomsMin: intPtr(3)}, []string{"1", "5"}},
		{"size window", Spec{SizeMin: floatPtr(2000), SizeMax: floatPtr(5000)}, []string{"1", "2", "4"}},
		{"dimensions are AND'd", Spec{Categories: []string{"Residential"}, Locations: []string{"Maharashtra"}}, []string{"5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(records, tt.spec)))
		})
	}
}

// narrowings tighten one dimension of a spec: an unset dimension gets a
// constraint, a set one keeps a subset of its values or a tighter bound.
var narrowings = map[string]func(Spec) Spec{
	"type": func(s Spec) Spec {
		s.PropertyTypes = firstOr(s.PropertyTypes, "Plot")
		return s
	},
	"category": func(s Spec) Spec {
		s.Categories = firstOr(s.Categories, "Residential")
		return s
	},
	"price": func(s Spec) Spec {
		r := PriceRange{Min: 0, Max: 2000000}
		if s.PriceRange != nil {
			r.Min = max(r.Min, s.PriceRange.Min)
			r.Max = min(r.Max, s.PriceRange.Max)
		}
		s.PriceRange = &r
		return s
	},
	"location": func(s Spec) Spec {
		s.Locations = firstOr(s.Locations, "Maharashtra")
		return s
	},
	"zone": func(s Spec) Spec {
		s.ZoneTypes = firstOr(s.ZoneTypes, models.ZoneGreen)
		return s
	},
	"na": func(s Spec) Spec {
		if s.NAStatus == nil {
			s.NAStatus = boolPtr(true)
		}
		return s
	},
	"bedrooms": func(s Spec) Spec {
		n := 3
		if s.BedroomsMin != nil {
			n = max(n, *s.BedroomsMin)
		}
		s.BedroomsMin = &n
		return s
	},
	"sizeMin": func(s Spec) Spec {
		v := 2000.0
		if s.SizeMin != nil {
			v = max(v, *s.SizeMin)
		}
		s.SizeMin = &v
		return s
	},
	"sizeMax": func(s Spec) Spec {
		v := 5000.0
		if s.SizeMax != nil {
			v = min(v, *s.SizeMax)
		}
		s.SizeMax = &v
		return s
	},
}

func firstOr(values []string, fallback string) []string {
	if len(values) == 0 {
		return []string{fallback}
	}
	return []string{values[0]}
}

func TestApply_AddingConstraintNeverGrowsResult(t *testing.T) {
	records := catalog()
	bases := map[string]Spec{
		"empty":      {},
		"category":   {Categories: []string{"Residential"}},
		"price+cats": {Categories: []string{"Residential", "Agricultural"}, PriceRange: &PriceRange{Min: 500000, Max: 3000000}},
		"types+loc":  {PropertyTypes: []string{"Plot", "Villa", "Apartment"}, Locations: []string{"Maharashtra", "FL"}, SizeMin: floatPtr(1000)},
		"thresholds": {BedroomsMin: intPtr(3), SizeMax: floatPtr(10000), PriceRange: &PriceRange{Min: 0, Max: DefaultPriceMax}},
		"zone+na":    {ZoneTypes: []string{models.ZoneGreen, models.ZoneAgriculture}, NAStatus: boolPtr(true)},
	}

	for baseName, base := range bases {
		baseIDs := ids(Apply(records, base))
		for name, narrow := range narrowings {
			narrowed := ids(Apply(records, narrow(base)))
			assert.Subset(t, baseIDs, narrowed, "%s narrowed by %s", baseName, name)
		}
	}
}

func TestApply_ThresholdsNarrowFromMultiDimensionBase(t *testing.T) {
	records := catalog()
	base := Spec{Categories: []string{"Residential"}, Locations: []string{"FL", "Maharashtra"}}
	assert.Equal(t, []string{"1", "5"}, ids(Apply(records, base)))

	withBedrooms := base
	withBedrooms.BedroomsMin = intPtr(4)
	assert.Equal(t, []string{"1"}, ids(Apply(records, withBedrooms)))

	withSize := base
	withSize.SizeMax = floatPtr(2000)
	assert.Equal(t, []string{"5"}, ids(Apply(records, withSize)))

	withSize.SizeMin = floatPtr(1600)
	assert.Empty(t, Apply(records, withSize))
}

func TestMatches(t *testing.T) {
	r := catalog()[0]
	assert.True(t, Matches(r, Spec{}))
	assert.False(t, Matches(r, Spec{PropertyTypes: []string{"Office"}}))
}

func TestSimilar(t *testing.T) {
	records := catalog()
	got := Similar(records, records[0], 0)
	assert.Equal(t, []string{"4", "5"}, ids(got))

	got = Similar(records, records[0], 1)
	assert.Equal(t, []string{"4"}, ids(got))

	got = Similar(records, records[1], 3)
	assert.Empty(t, got)
}

func TestParseQuery(t *testing.T) {
	q := url.Values{
		"type":     {"Villa,House", "Plot"},
		"category":   {"Residential"},
		"minPrice": {"100000"},
		"na":       {"true"},
		"bedrooms": {"2+"},
		"zone":     {"green-zone"},
		"location": {"Pune"},
		"maxSize":  {"3000"},
	}
	s, err := ParseQuery(q)
	require.NoError(t, err)

	assert.Equal(t, []string{"Villa", "House", "Plot"}, s.PropertyTypes)
	assert.Equal(t, []string{"Residential"}, s.Categories)
	require.NotNil(t, s.PriceRange)
	assert.Equal(t, PriceRange{Min: 100000, Max: DefaultPriceMax}, *s.PriceRange)
	assert.True(t, *s.NAStatus)
	assert.Equal(t, 2, *s.BedroomsMin)
	assert.Equal(t, []string{"green-zone"}, s.ZoneTypes)
	assert.Equal(t, []string{"Pune"}, s.Locations)
	assert.Nil(t, s.SizeMin)
	assert.Equal(t, 3000.0, *s.SizeMax)
}

func TestParseQuery_Invalid(t *testing.T) {
	for _, q := range []url.Values{
		{"minPrice": {"cheap"}},
		{"na": {"maybe"}},
		{"bedrooms": {"-1"}},
		{"minSize": {"big"}},
		{"minPrice": {"NaN"}},
		{"maxPrice": {"Inf"}},
		{"minPrice": {"-Infinity"}},
		{"minSize": {"+Inf"}},
	} {
		_, err := ParseQuery(q)
		assert.Error(t, err, q.Encode())
	}
}
