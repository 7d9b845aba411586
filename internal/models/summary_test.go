package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSummarize(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := NewProperty()
	p.ID = primitive.NewObjectID()
	p.Title = "Sea-facing villa"
	p.Price = 2450000
	p.PropertyType = PropertyTypeVilla
	p.LegalStatus = LegalStatusClearTitle
	p.Address.City = "Miami Beach"
	p.Address.State = "FL"
	p.Area.Total = 4500
	p.PropertyDetails.Bedrooms = 5
	p.PropertyDetails.Bathrooms = 4
	p.Images = []Image{{URL: "https://img/1.jpg"}, {URL: "https://img/2.jpg", IsPrimary: true}}
	p.Amenities = []string{"Pool"}
	p.CreatedAt = created

	s := Summarize(p)

	assert.Equal(t, p.ID.Hex(), s.ID)
	assert.Equal(t, "Miami Beach, FL", s.Location)
	assert.Equal(t, "Residential", s.Category)
	assert.Equal(t, "Villa", s.Type)
	assert.Equal(t, "4,500 sq ft", s.Size)
	assert.Equal(t, 4500.0, s.AreaSqFt)
	assert.Equal(t, 5, s.Bedrooms)
	assert.Equal(t, "https://img/2.jpg", s.ImageURL)
	assert.Equal(t, []string{"Pool"}, s.Tags)
	assert.Equal(t, created, s.CreatedAt)
	assert.Empty(t, s.ZoneType)
	assert.Nil(t, s.NAStatus)
}

func TestSummarize_LandDerivedFields(t *testing.T) {
	p := NewProperty()
	p.PropertyType = PropertyTypePlot
	p.LandType = LandTypeFarming
	p.LegalStatus = LegalStatusNonNA
	p.Area = Area{Total: 2, Unit: UnitAcres}

	s := Summarize(p)

	assert.Equal(t, ZoneAgriculture, s.ZoneType)
	if assert.NotNil(t, s.NAStatus) {
		assert.False(t, *s.NAStatus)
	}
	assert.Equal(t, 87120.0, s.AreaSqFt)
}

func TestZoneFor(t *testing.T) {
	assert.Equal(t, ZoneGreen, ZoneFor(LandTypeGreenZone))
	assert.Equal(t, ZoneRed, ZoneFor(LandTypeRZone))
	assert.Equal(t, ZoneIndustrial, ZoneFor(LandTypeIndustrial))
	assert.Equal(t, ZoneCommercial, ZoneFor(LandTypeCommercial))
	assert.Equal(t, "", ZoneFor(LandTypeMixedUse))
	assert.Equal(t, "", ZoneFor(""))
}

func TestPrimaryImage_FallsBack(t *testing.T) {
	p := &Property{ImageURL: "https://legacy.jpg"}
	assert.Equal(t, "https://legacy.jpg", p.PrimaryImage())

	p.Images = []Image{{URL: "https://first.jpg"}}
	assert.Equal(t, "https://first.jpg", p.PrimaryImage())
}

func TestEnums(t *testing.T) {
	assert.True(t, PropertyType("Commercial Property").IsValid())
	assert.False(t, PropertyType("commercial property").IsValid())
	assert.True(t, PropertyTypeLand.RequiresLandType())
	assert.False(t, PropertyTypeFarm.RequiresLandType())
	assert.True(t, AreaUnit("sq meter").IsValid())
	assert.False(t, AreaUnit("sq yards").IsValid())
	assert.True(t, ReviewApproved.IsValid())
	assert.True(t, RoleAdmin.IsValid())
}
