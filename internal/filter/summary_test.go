package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveCount(t *testing.T) {
	assert.Equal(t, 0, ActiveCount(Spec{}))

	def := DefaultPriceRange
	assert.Equal(t, 0, ActiveCount(Spec{PriceRange: &def}))

	assert.Equal(t, 1, ActiveCount(Spec{Locations: []string{"Pune"}}))
	assert.Equal(t, 1, ActiveCount(Spec{Locations: []string{"Pune", "Delhi", "Surat"}}))

	// Thresholds from the single-select form are not panel dimensions.
	assert.Equal(t, 0, ActiveCount(Spec{BedroomsMin: intPtr(2)}))

	full := Spec{
		PropertyTypes: []string{"Villa"},
		Categories:    []string{"Residential"},
		Locations:     []string{"Pune"},
		ZoneTypes:     []string{"green-zone"},
		NAStatus:      boolPtr(false),
		PriceRange:    &PriceRange{Min: 10000, Max: DefaultPriceMax},
	}
	assert.Equal(t, 6, ActiveCount(full))
}

func TestBadges(t *testing.T) {
	s := Spec{
		PropertyTypes: []string{"Villa", "House"},
		PriceRange:    &PriceRange{Min: 100000, Max: 2500000},
		NAStatus:      boolPtr(true),
		ZoneTypes:     []string{"green-zone"},
	}
	assert.Equal(t, []Badge{
		{Key: "type", Label: "Property Types: 2"},
		{Key: "priceRange", Label: "Price Range: $100,000 - $2,500,000"},
		{Key: "zoneType", Label: "Zone Types: 1"},
		{Key: "naStatus", Label: "NA Status: NA Plot"},
	}, Badges(s))

	assert.Empty(t, Badges(Spec{}))
	assert.Equal(t, "NA Status: Non-NA Plot", Badges(Spec{NAStatus: boolPtr(false)})[0].Label)
}

func TestLegacy_ToSpec(t *testing.T) {
	s, err := Legacy{
		Type:       "house",
		Category:   "Residential",
		PriceRange: "100000-500000",
		Location:   "san-francisco",
		Bedrooms:   "3",
		Size:       "1000-2000",
	}.ToSpec()
	require.NoError(t, err)

	assert.Equal(t, []string{"house"}, s.PropertyTypes)
	assert.Equal(t, []string{"Residential"}, s.Categories)
	assert.Equal(t, []string{"San Francisco"}, s.Locations)
	assert.Equal(t, PriceRange{Min: 100000, Max: 500000}, *s.PriceRange)
	assert.Equal(t, 3, *s.BedroomsMin)
	assert.Equal(t, 1000.0, *s.SizeMin)
	assert.Equal(t, 2000.0, *s.SizeMax)
}

func TestLegacy_OpenEndedBuckets(t *testing.T) {
	s, err := Legacy{PriceRange: "5000000+", Size: "5000+"}.ToSpec()
	require.NoError(t, err)

	assert.True(t, s.PriceActive())
	assert.Equal(t, 5000.0, *s.SizeMin)
	assert.Nil(t, s.SizeMax)
	assert.Equal(t, "Price Range: $5,000,000+", Badges(s)[0].Label)
}

func TestLegacy_EmptyIsIdentity(t *testing.T) {
	s, err := Legacy{}.ToSpec()
	require.NoError(t, err)
	assert.Equal(t, catalog(), Apply(catalog(), s))
}

func TestLegacy_Invalid(t *testing.T) {
	for _, l := range []Legacy{
		{PriceRange: "cheap"},
		{PriceRange: "10-x"},
		{Size: "big+"},
		{Bedrooms: "many"},
		{PriceRange: "NaN+"},
		{PriceRange: "0-Inf"},
		{Size: "Infinity+"},
	} {
		_, err := l.ToSpec()
		assert.Error(t, err)
	}
}

func TestLocationFromSlug(t *testing.T) {
	assert.Equal(t, "New York", LocationFromSlug("new-york"))
	assert.Equal(t, "Miami", LocationFromSlug("miami"))
}
