package models

// Enum is implemented by every closed string enumeration on a property record.
// Validation rejects values outside the set instead of coercing them.
type Enum interface {
	IsValid() bool
}

type enumSet[T ~string] map[T]struct{}

func newEnumSet[T ~string](values ...T) enumSet[T] {
	s := make(enumSet[T], len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

func (s enumSet[T]) has(v T) bool {
	_, ok := s[v]
	return ok
}

// PropertyType is the kind of real estate being listed.
type PropertyType string

const (
	PropertyTypePlot               PropertyType = "Plot"
	PropertyTypeFlat               PropertyType = "Flat"
	PropertyTypeHouse              PropertyType = "House"
	PropertyTypeHotel              PropertyType = "Hotel"
	PropertyTypeCommercialProperty PropertyType = "Commercial Property"
	PropertyTypeApartment          PropertyType = "Apartment"
	PropertyTypeVilla              PropertyType = "Villa"
	PropertyTypeCondo              PropertyType = "Condo"
	PropertyTypeTownhouse          PropertyType = "Townhouse"
	PropertyTypeLand               PropertyType = "Land"
	PropertyTypeOffice             PropertyType = "Office"
	PropertyTypeRetail             PropertyType = "Retail"
	PropertyTypeWarehouse          PropertyType = "Warehouse"
	PropertyTypeIndustrial         PropertyType = "Industrial"
	PropertyTypeFarm               PropertyType = "Farm"
	PropertyTypeRanch              PropertyType = "Ranch"
	PropertyTypeResort             PropertyType = "Resort"
	PropertyTypePenthouse          PropertyType = "Penthouse"
	PropertyTypeDuplex             PropertyType = "Duplex"
	PropertyTypeStudio             PropertyType = "Studio"
	PropertyTypeBungalow           PropertyType = "Bungalow"
	PropertyTypeChalet             PropertyType = "Chalet"
)

var propertyTypes = newEnumSet(
	PropertyTypePlot, PropertyTypeFlat, PropertyTypeHouse, PropertyTypeHotel, PropertyTypeCommercialProperty,
	PropertyTypeApartment, PropertyTypeVilla, PropertyTypeCondo, PropertyTypeTownhouse,
	PropertyTypeLand, PropertyTypeOffice, PropertyTypeRetail, PropertyTypeWarehouse,
	PropertyTypeIndustrial, PropertyTypeFarm, PropertyTypeRanch, PropertyTypeResort,
	PropertyTypePenthouse, PropertyTypeDuplex, PropertyTypeStudio, PropertyTypeBungalow, PropertyTypeChalet,
)

func (t PropertyType) IsValid() bool { return propertyTypes.has(t) }

// RequiresLandType reports whether a record of this type must carry a land type.
func (t PropertyType) RequiresLandType() bool {
	return t == PropertyTypePlot || t == PropertyTypeLand
}

// LandType is the zoning classification of a plot or land parcel.
type LandType string

const (
	LandTypeFarming     LandType = "Farming"
	LandTypeIndustrial  LandType = "Industrial"
	LandTypeResidential LandType = "Residential"
	LandTypeRZone       LandType = "R-Zone"
	LandTypeGreenZone   LandType = "Green Zone"
	LandTypeCommercial  LandType = "Commercial"
	LandTypeMixedUse    LandType = "Mixed Use"
)

var landTypes = newEnumSet(LandTypeFarming, LandTypeIndustrial, LandTypeResidential, LandTypeRZone,
	LandTypeGreenZone, LandTypeCommercial, LandTypeMixedUse)

func (t LandType) IsValid() bool { return landTypes.has(t) }

// LegalStatus is the title/approval state of the property.
type LegalStatus string

const (
	LegalStatusNA              LegalStatus = "NA"
	LegalStatusNonNA           LegalStatus = "Non-NA"
	LegalStatusUnderLitigation LegalStatus = "Under Litigation"
	LegalStatusClearTitle      LegalStatus = "Clear Title"
	LegalStatusDisputed        LegalStatus = "Disputed"
	LegalStatusEncumbered      LegalStatus = "Encumbered"
)

var legalStatuses = newEnumSet(LegalStatusNA, LegalStatusNonNA, LegalStatusUnderLitigation,
	LegalStatusClearTitle, LegalStatusDisputed, LegalStatusEncumbered)

func (s LegalStatus) IsValid() bool { return legalStatuses.has(s) }

// Category groups property types for browsing.
type Category string

const (
	CategoryResidential  Category = "Residential"
	CategoryCommercial   Category = "Commercial"
	CategoryIndustrial   Category = "Industrial"
	CategoryAgricultural Category = "Agricultural"
)

var categories = newEnumSet(CategoryResidential, CategoryCommercial, CategoryIndustrial, CategoryAgricultural)

func (c Category) IsValid() bool { return categories.has(c) }

// ListingStatus is the market state of a listing.
type ListingStatus string

const (
	StatusActive            ListingStatus = "active"
	StatusAvailable         ListingStatus = "Available"
	StatusSold              ListingStatus = "Sold"
	StatusRented            ListingStatus = "Rented"
	StatusPending           ListingStatus = "Pending"
	StatusUnderConstruction ListingStatus = "Under-Construction"
	StatusPreSelling        ListingStatus = "Pre-Selling"
)

var listingStatuses = newEnumSet(StatusActive, StatusAvailable, StatusSold, StatusRented,
	StatusPending, StatusUnderConstruction, StatusPreSelling)

func (s ListingStatus) IsValid() bool { return listingStatuses.has(s) }

// ListingType is the kind of transaction offered.
type ListingType string

const (
	ListingTypeSale      ListingType = "Sale"
	ListingTypeRent      ListingType = "Rent"
	ListingTypeAuction   ListingType = "Auction"
	ListingTypeShortTerm ListingType = "Short-Term"
	ListingTypeLease     ListingType = "Lease"
)

var listingTypes = newEnumSet(ListingTypeSale, ListingTypeRent, ListingTypeAuction, ListingTypeShortTerm, ListingTypeLease)

func (t ListingType) IsValid() bool { return listingTypes.has(t) }

type ParkingType string

var parkingTypes = newEnumSet[ParkingType]("Attached Garage", "Detached Garage", "Carport", "Street",
	"Driveway", "Underground", "None")

func (t ParkingType) IsValid() bool { return parkingTypes.has(t) }

// AreaUnit is the unit the area block is expressed in.
type AreaUnit string

const (
	UnitSqFt         AreaUnit = "sq ft"
	UnitSqMeter      AreaUnit = "sq meter"
	UnitAcre         AreaUnit = "acre"
	UnitHectare      AreaUnit = "hectare"
	UnitSqFtShort    AreaUnit = "sqft"
	UnitSqMeterShort AreaUnit = "sqm"
	UnitAcres        AreaUnit = "acres"
	UnitHectares     AreaUnit = "hectares"
)

var areaUnits = newEnumSet(UnitSqFt, UnitSqMeter, UnitAcre, UnitHectare, UnitSqFtShort, UnitSqMeterShort, UnitAcres, UnitHectares)

func (u AreaUnit) IsValid() bool { return areaUnits.has(u) }

// SquareFeetFactor is the multiplier converting one unit into square feet.
func (u AreaUnit) SquareFeetFactor() float64 {
	switch u {
	case UnitSqMeter, UnitSqMeterShort:
		return 10.7639
	case UnitAcre, UnitAcres:
		return 43560
	case UnitHectare, UnitHectares:
		return 107639.104
	default:
		return 1
	}
}

type BuildingClass string

var buildingClasses = newEnumSet[BuildingClass]("A", "B", "C")

func (c BuildingClass) IsValid() bool { return buildingClasses.has(c) }

type HOAFrequency string

var hoaFrequencies = newEnumSet[HOAFrequency]("monthly", "quarterly", "annually")

func (f HOAFrequency) IsValid() bool { return hoaFrequencies.has(f) }

type ViewType string

var viewTypes = newEnumSet[ViewType]("Ocean", "Mountain", "Lake", "River", "City", "Garden", "Park", "Forest", "None")

func (v ViewType) IsValid() bool { return viewTypes.has(v) }

type SellerType string

var sellerTypes = newEnumSet[SellerType]("Owner", "Agent", "Bank", "Government", "Developer")

func (t SellerType) IsValid() bool { return sellerTypes.has(t) }

// DeletionReason is why an owner asked for a listing to be removed.
type DeletionReason string

const (
	DeletionReasonAlreadySold   DeletionReason = "already_sold"
	DeletionReasonNotInterested DeletionReason = "not_interested"
	DeletionReasonNotSatisfied  DeletionReason = "not_satisfied"
	DeletionReasonNotFoundBuyer DeletionReason = "not_found_buyer"
	DeletionReasonOther         DeletionReason = "other"
)

var deletionReasons = newEnumSet(DeletionReasonAlreadySold, DeletionReasonNotInterested,
	DeletionReasonNotSatisfied, DeletionReasonNotFoundBuyer, DeletionReasonOther)

func (r DeletionReason) IsValid() bool { return deletionReasons.has(r) }

// ReviewStatus is the approval state of a deletion request.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

var reviewStatuses = newEnumSet(ReviewPending, ReviewApproved, ReviewRejected)

func (s ReviewStatus) IsValid() bool { return reviewStatuses.has(s) }
