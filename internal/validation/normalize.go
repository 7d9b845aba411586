package validation

import (
	"reflect"
	"strings"

	"goldenview/realty/internal/models"
)

// DefaultPlaceholderImage replaces an empty image list.
const DefaultPlaceholderImage = "https://placehold.co/600x400?text=Property+Image"

// NormalizeURL trims u and prefixes https:// when it has no http(s) scheme.
// Normalizing an already normalized URL returns it unchanged.
func NormalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	lower := strings.ToLower(u)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return u
	}
	return "https://" + u
}

// Normalize applies write-time defaults and clean-up to p in place. It never fails.
func Normalize(p *models.Property, placeholderImage string) {
	tidy(reflect.ValueOf(p).Elem())

	p.OwnerDetails.Email = strings.ToLower(p.OwnerDetails.Email)

	if p.Category == "" {
		p.Category = models.CategoryResidential
	}
	if p.Status == "" {
		p.Status = models.StatusActive
	}
	if p.ListingType == "" {
		p.ListingType = models.ListingTypeSale
	}
	if p.Area.Unit == "" {
		p.Area.Unit = models.UnitSqFt
	}
	if p.Address.Country == "" {
		p.Address.Country = "India"
	}
	if p.DeletionRequest.Status == "" {
		p.DeletionRequest.Status = models.ReviewPending
	}
	if !p.PropertyType.RequiresLandType() {
		p.LandType = ""
	}

	for i := range p.Appliances {
		if p.Appliances[i].Included == nil {
			included := true
			p.Appliances[i].Included = &included
		}
	}

	if placeholderImage == "" {
		placeholderImage = DefaultPlaceholderImage
	}
	if len(p.Images) == 0 {
		p.Images = []models.Image{{URL: placeholderImage, IsPrimary: true}}
	}
	hasPrimary := false
	for i := range p.Images {
		p.Images[i].URL = NormalizeURL(p.Images[i].URL)
		hasPrimary = hasPrimary || p.Images[i].IsPrimary
	}
	if !hasPrimary {
		p.Images[0].IsPrimary = true
	}
	p.ImageURL = NormalizeURL(p.ImageURL)
	for i := range p.FloorPlans {
		p.FloorPlans[i].ImageURL = NormalizeURL(p.FloorPlans[i].ImageURL)
	}
}

// tidy trims every settable string and replaces nil slices with empty ones,
// recursing through nested structs and slice elements.
func tidy(v reflect.Value) {
	switch v.Kind() {
	case reflect.String:
		if v.CanSet() {
			v.SetString(strings.TrimSpace(v.String()))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if f := v.Field(i); f.CanSet() {
				tidy(f)
			}
		}
	case reflect.Slice:
		if v.IsNil() {
			if v.CanSet() {
				v.Set(reflect.MakeSlice(v.Type(), 0, 0))
			}
			return
		}
		for i := 0; i < v.Len(); i++ {
			tidy(v.Index(i))
		}
	}
}
