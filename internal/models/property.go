package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AlternativePrice holds optional secondary price quotations.
type AlternativePrice struct {
	PerMonth      float64 `bson:"perMonth,omitempty" json:"perMonth,omitempty" validate:"min=0"`
	PerSquareFoot float64 `bson:"perSquareFoot,omitempty" json:"perSquareFoot,omitempty" validate:"min=0"`
}

// Address locates the property. ZipCode is an Indian PIN code.
type Address struct {
	Street       string  `bson:"street" json:"street" validate:"required"`
	City         string  `bson:"city" json:"city" validate:"required"`
	State        string  `bson:"state" json:"state" validate:"required"`
	ZipCode      string  `bson:"zipCode" json:"zipCode" validate:"required,pincode"`
	Country      string  `bson:"country" json:"country" validate:"required"`
	Landmark     string  `bson:"landmark,omitempty" json:"landmark,omitempty"`
	Neighborhood string  `bson:"neighborhood,omitempty" json:"neighborhood,omitempty"`
	Latitude     float64 `bson:"latitude,omitempty" json:"latitude,omitempty" validate:"min=-90,max=90"`
	Longitude    float64 `bson:"longitude,omitempty" json:"longitude,omitempty" validate:"min=-180,max=180"`
}

type PropertyDetails struct {
	Bedrooms             int      `bson:"bedrooms" json:"bedrooms" validate:"min=0"`
	Bathrooms            int      `bson:"bathrooms" json:"bathrooms" validate:"min=0"`
	HalfBathrooms        int      `bson:"halfBathrooms" json:"halfBathrooms" validate:"min=0"`
	Floors               int      `bson:"floors" json:"floors" validate:"min=0"`
	RoomCount            int      `bson:"roomCount,omitempty" json:"roomCount,omitempty" validate:"min=0"`
	Kitchens             int      `bson:"kitchens" json:"kitchens" validate:"min=0"`
	GarageCapacity       int      `bson:"garageCapacity" json:"garageCapacity" validate:"min=0"`
	ConstructionMaterial string   `bson:"constructionMaterial,omitempty" json:"constructionMaterial,omitempty"`
	RoofType             string   `bson:"roofType,omitempty" json:"roofType,omitempty"`
	BasementType         string   `bson:"basementType,omitempty" json:"basementType,omitempty"`
	Flooring             []string `bson:"flooring" json:"flooring"`
	HeatingSystem        string   `bson:"heatingSystem,omitempty" json:"heatingSystem,omitempty"`
	CoolingSystem        string   `bson:"coolingSystem,omitempty" json:"coolingSystem,omitempty"`
	WaterSystem          string   `bson:"waterSystem,omitempty" json:"waterSystem,omitempty"`
	SewerSystem          string   `bson:"sewerSystem,omitempty" json:"sewerSystem,omitempty"`
	InternetProvider     string   `bson:"internetProvider,omitempty" json:"internetProvider,omitempty"`
	CableProvider        string   `bson:"cableProvider,omitempty" json:"cableProvider,omitempty"`
}

type Area struct {
	Total   float64  `bson:"total" json:"total" validate:"min=0"`
	Built   float64  `bson:"built,omitempty" json:"built,omitempty" validate:"min=0"`
	Living  float64  `bson:"living,omitempty" json:"living,omitempty" validate:"min=0"`
	Outdoor float64  `bson:"outdoor,omitempty" json:"outdoor,omitempty" validate:"min=0"`
	Unit    AreaUnit `bson:"unit" json:"unit" validate:"required,enum"`
}

// SquareFeet is the total area converted to square feet.
func (a Area) SquareFeet() float64 {
	return a.Total * a.Unit.SquareFeetFactor()
}

type Image struct {
	URL       string `bson:"url" json:"url" validate:"required"`
	Caption   string `bson:"caption,omitempty" json:"caption,omitempty"`
	IsPrimary bool   `bson:"isPrimary" json:"isPrimary"`
	Room      string `bson:"room,omitempty" json:"room,omitempty"`
}

type Video struct {
	URL     string `bson:"url" json:"url" validate:"required"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
}

// Features is the flat set of yes/no amenities shown on the detail page.
type Features struct {
	HasGarden              bool `bson:"hasGarden" json:"hasGarden"`
	HasPool                bool `bson:"hasPool" json:"hasPool"`
	HasGarage              bool `bson:"hasGarage" json:"hasGarage"`
	HasCentralHeating      bool `bson:"hasCentralHeating" json:"hasCentralHeating"`
	HasAirConditioning     bool `bson:"hasAirConditioning" json:"hasAirConditioning"`
	HasInternet            bool `bson:"hasInternet" json:"hasInternet"`
	HasSecurity            bool `bson:"hasSecurity" json:"hasSecurity"`
	IsPetFriendly          bool `bson:"isPetFriendly" json:"isPetFriendly"`
	IsWheelchairAccessible bool `bson:"isWheelchairAccessible" json:"isWheelchairAccessible"`
	HasFurnished           bool `bson:"hasFurnished" json:"hasFurnished"`
	HasBalcony             bool `bson:"hasBalcony" json:"hasBalcony"`
	HasElevator            bool `bson:"hasElevator" json:"hasElevator"`
	HasGym                 bool `bson:"hasGym" json:"hasGym"`
	HasPlayground          bool `bson:"hasPlayground" json:"hasPlayground"`
	HasSolarPanels         bool `bson:"hasSolarPanels" json:"hasSolarPanels"`
	HasSmartHome           bool `bson:"hasSmartHome" json:"hasSmartHome"`
	HasStorageRoom         bool `bson:"hasStorageRoom" json:"hasStorageRoom"`
	HasWaterfront          bool `bson:"hasWaterfront" json:"hasWaterfront"`
	HasHotTub              bool `bson:"hasHotTub" json:"hasHotTub"`
	HasSauna               bool `bson:"hasSauna" json:"hasSauna"`
	HasFireplace           bool `bson:"hasFireplace" json:"hasFireplace"`
	HasHighCeilings        bool `bson:"hasHighCeilings" json:"hasHighCeilings"`
	HasWalkInCloset        bool `bson:"hasWalkInCloset" json:"hasWalkInCloset"`
	HasHomeTheater         bool `bson:"hasHomeTheater" json:"hasHomeTheater"`
	HasWineCellar          bool `bson:"hasWineCellar" json:"hasWineCellar"`
	HasOutdoorKitchen      bool `bson:"hasOutdoorKitchen" json:"hasOutdoorKitchen"`
	HasLaundryRoom         bool `bson:"hasLaundryRoom" json:"hasLaundryRoom"`
	HasBackupGenerator     bool `bson:"hasBackupGenerator" json:"hasBackupGenerator"`
	HasGuestHouse          bool `bson:"hasGuestHouse" json:"hasGuestHouse"`
	HasPowerBackup         bool `bson:"hasPowerBackup" json:"hasPowerBackup"`
	HasRainWaterHarvesting bool `bson:"hasRainWaterHarvesting" json:"hasRainWaterHarvesting"`
	HasVaastu              bool `bson:"hasVaastu" json:"hasVaastu"`
	HasServantRoom         bool `bson:"hasServantRoom" json:"hasServantRoom"`
	HasClubHouse           bool `bson:"hasClubHouse" json:"hasClubHouse"`
}

type Tenant struct {
	Name     string     `bson:"name,omitempty" json:"name,omitempty"`
	LeaseEnd *time.Time `bson:"leaseEnd,omitempty" json:"leaseEnd,omitempty"`
	Area     float64    `bson:"area,omitempty" json:"area,omitempty" validate:"min=0"`
}

type CommercialFeatures struct {
	BuildingClass BuildingClass `bson:"buildingClass,omitempty" json:"buildingClass,omitempty" validate:"omitempty,enum"`
	Zoning        string        `bson:"zoning,omitempty" json:"zoning,omitempty"`
	TotalUnits    int           `bson:"totalUnits,omitempty" json:"totalUnits,omitempty" validate:"min=0"`
	LoadingDocks  int           `bson:"loadingDocks,omitempty" json:"loadingDocks,omitempty" validate:"min=0"`
	CeilingHeight float64       `bson:"ceilingHeight,omitempty" json:"ceilingHeight,omitempty" validate:"min=0"`
	Elevators     int           `bson:"elevators,omitempty" json:"elevators,omitempty" validate:"min=0"`
	OccupancyRate float64       `bson:"occupancyRate,omitempty" json:"occupancyRate,omitempty" validate:"min=0,max=100"`
	LeaseTerms    string        `bson:"leaseTerms,omitempty" json:"leaseTerms,omitempty"`
	CapRate       float64       `bson:"capRate,omitempty" json:"capRate,omitempty"`
	NOI           float64       `bson:"noi,omitempty" json:"noi,omitempty"`
	Tenants       []Tenant      `bson:"tenants" json:"tenants" validate:"dive"`
}

type LandFeatures struct {
	IsWaterfront    bool     `bson:"isWaterfront" json:"isWaterfront"`
	HasElectricity  bool     `bson:"hasElectricity" json:"hasElectricity"`
	HasWaterSupply  bool     `bson:"hasWaterSupply" json:"hasWaterSupply"`
	IsFenced        bool     `bson:"isFenced" json:"isFenced"`
	SoilType        string   `bson:"soilType,omitempty" json:"soilType,omitempty"`
	Topography      string   `bson:"topography,omitempty" json:"topography,omitempty"`
	HasWell         bool     `bson:"hasWell" json:"hasWell"`
	HasBorewell     bool     `bson:"hasBorewell" json:"hasBorewell"`
	HasSeptic       bool     `bson:"hasSeptic" json:"hasSeptic"`
	RoadAccess      string   `bson:"roadAccess,omitempty" json:"roadAccess,omitempty"`
	RoadWidth       float64  `bson:"roadWidth,omitempty" json:"roadWidth,omitempty" validate:"min=0"`
	HasNaturalGas   bool     `bson:"hasNaturalGas" json:"hasNaturalGas"`
	HasView         bool     `bson:"hasView" json:"hasView"`
	ZonedFor        []string `bson:"zonedFor" json:"zonedFor"`
	VegetationTypes []string `bson:"vegetationTypes" json:"vegetationTypes"`
	MineralRights   *bool    `bson:"mineralRights,omitempty" json:"mineralRights,omitempty"`
	CornerPlot      bool     `bson:"cornerPlot" json:"cornerPlot"`
	BoundaryWall    bool     `bson:"boundaryWall" json:"boundaryWall"`
}

type FarmRanchFeatures struct {
	CropTypes         []string `bson:"cropTypes" json:"cropTypes"`
	LivestockTypes    []string `bson:"livestockTypes" json:"livestockTypes"`
	HasBarn           bool     `bson:"hasBarn" json:"hasBarn"`
	HasStables        bool     `bson:"hasStables" json:"hasStables"`
	IrrigationType    string   `bson:"irrigationType,omitempty" json:"irrigationType,omitempty"`
	WaterRights       *bool    `bson:"waterRights,omitempty" json:"waterRights,omitempty"`
	HasEquipment      bool     `bson:"hasEquipment" json:"hasEquipment"`
	EquipmentIncluded []string `bson:"equipmentIncluded" json:"equipmentIncluded"`
}

type FloorPlan struct {
	Name      string  `bson:"name,omitempty" json:"name,omitempty"`
	Floor     string  `bson:"floor,omitempty" json:"floor,omitempty"`
	ImageURL  string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Area      float64 `bson:"area,omitempty" json:"area,omitempty" validate:"min=0"`
	Rooms     int     `bson:"rooms,omitempty" json:"rooms,omitempty" validate:"min=0"`
	Bedrooms  int     `bson:"bedrooms,omitempty" json:"bedrooms,omitempty" validate:"min=0"`
	Bathrooms int     `bson:"bathrooms,omitempty" json:"bathrooms,omitempty" validate:"min=0"`
}

// Place is a point of interest near the property. Distance is in kilometres.
type Place struct {
	Name     string  `bson:"name,omitempty" json:"name,omitempty"`
	Distance float64 `bson:"distance,omitempty" json:"distance,omitempty" validate:"min=0"`
	Rating   float64 `bson:"rating,omitempty" json:"rating,omitempty" validate:"min=0"`
	Type     string  `bson:"type,omitempty" json:"type,omitempty"`
}

type NearbyPlaces struct {
	Schools         []Place `bson:"schools" json:"schools" validate:"dive"`
	Hospitals       []Place `bson:"hospitals" json:"hospitals" validate:"dive"`
	ShoppingCenters []Place `bson:"shoppingCenters" json:"shoppingCenters" validate:"dive"`
	Parks           []Place `bson:"parks" json:"parks" validate:"dive"`
	PublicTransport []Place `bson:"publicTransport" json:"publicTransport" validate:"dive"`
	Restaurants     []Place `bson:"restaurants" json:"restaurants" validate:"dive"`
	Temples         []Place `bson:"temples" json:"temples" validate:"dive"`
}

type TaxInformation struct {
	AnnualTax     float64  `bson:"annualTax,omitempty" json:"annualTax,omitempty" validate:"min=0"`
	TaxYear       int      `bson:"taxYear,omitempty" json:"taxYear,omitempty"`
	TaxID         string   `bson:"taxId,omitempty" json:"taxId,omitempty"`
	AssessedValue float64  `bson:"assessedValue,omitempty" json:"assessedValue,omitempty" validate:"min=0"`
	Exemptions    []string `bson:"exemptions" json:"exemptions"`
}

type Document struct {
	HasDocument bool   `bson:"hasDocument" json:"hasDocument"`
	DocumentURL string `bson:"documentUrl,omitempty" json:"documentUrl,omitempty"`
}

type FloodCertificate struct {
	Document  `bson:",inline"`
	FloodZone string `bson:"floodZone,omitempty" json:"floodZone,omitempty"`
}

type HomeownersAssociation struct {
	HasHOA         bool         `bson:"hasHOA" json:"hasHOA"`
	HOAFee         float64      `bson:"hoaFee,omitempty" json:"hoaFee,omitempty" validate:"min=0"`
	HOAFrequency   HOAFrequency `bson:"hoaFrequency,omitempty" json:"hoaFrequency,omitempty" validate:"omitempty,enum"`
	HOADocumentURL string       `bson:"hoaDocumentUrl,omitempty" json:"hoaDocumentUrl,omitempty"`
}

// DatedDocument covers inspection reports, permits, easements and encumbrances.
type DatedDocument struct {
	Type        string     `bson:"type,omitempty" json:"type,omitempty"`
	Date        *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	IssueDate   *time.Time `bson:"issueDate,omitempty" json:"issueDate,omitempty"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	DocumentURL string     `bson:"documentUrl,omitempty" json:"documentUrl,omitempty"`
}

type LegalDocuments struct {
	Deed                   Document              `bson:"deed" json:"deed"`
	TitleInsurance         Document              `bson:"titleInsurance" json:"titleInsurance"`
	PropertyTaxRecords     Document              `bson:"propertyTaxRecords" json:"propertyTaxRecords"`
	HomeownersAssociation  HomeownersAssociation `bson:"homeownersAssociation" json:"homeownersAssociation"`
	SurveyCertificate      Document              `bson:"surveyCertificate" json:"surveyCertificate"`
	FloodCertificate       FloodCertificate      `bson:"floodCertificate" json:"floodCertificate"`
	InspectionReports      []DatedDocument       `bson:"inspectionReports" json:"inspectionReports"`
	Permits                []DatedDocument       `bson:"permits" json:"permits"`
	Easements              []DatedDocument       `bson:"easements" json:"easements"`
	Encumbrances           []DatedDocument       `bson:"encumbrances" json:"encumbrances"`
	KhataaCertificate      Document              `bson:"khataaCertificate" json:"khataaCertificate"`
	NADeclaration          Document              `bson:"naDclaration" json:"naDclaration"`
	SevenTwelve            Document              `bson:"sevenTwelve" json:"sevenTwelve"`
	EncumbranceCertificate Document              `bson:"encumbranceCertificate" json:"encumbranceCertificate"`
}

type Utilities struct {
	ElectricityProvider    string  `bson:"electricityProvider,omitempty" json:"electricityProvider,omitempty"`
	GasProvider            string  `bson:"gasProvider,omitempty" json:"gasProvider,omitempty"`
	WaterProvider          string  `bson:"waterProvider,omitempty" json:"waterProvider,omitempty"`
	InternetProvider       string  `bson:"internetProvider,omitempty" json:"internetProvider,omitempty"`
	CableProvider          string  `bson:"cableProvider,omitempty" json:"cableProvider,omitempty"`
	AverageElectricityBill float64 `bson:"averageElectricityBill,omitempty" json:"averageElectricityBill,omitempty" validate:"min=0"`
	AverageGasBill         float64 `bson:"averageGasBill,omitempty" json:"averageGasBill,omitempty" validate:"min=0"`
	AverageWaterBill       float64 `bson:"averageWaterBill,omitempty" json:"averageWaterBill,omitempty" validate:"min=0"`
}

type Appliance struct {
	Type     string `bson:"type,omitempty" json:"type,omitempty"`
	Brand    string `bson:"brand,omitempty" json:"brand,omitempty"`
	Age      int    `bson:"age,omitempty" json:"age,omitempty" validate:"min=0"`
	Included *bool  `bson:"included" json:"included"` // nil means absent; normalized to true
}

type EnergyEfficiency struct {
	Rating         string   `bson:"rating,omitempty" json:"rating,omitempty"`
	CertificateURL string   `bson:"certificateUrl,omitempty" json:"certificateUrl,omitempty"`
	Features       []string `bson:"features" json:"features"`
}

// OwnerDetails is optional, but when an email is supplied it must be well formed.
type OwnerDetails struct {
	Name             string   `bson:"name,omitempty" json:"name,omitempty"`
	PhoneNumbers     []string `bson:"phoneNumbers" json:"phoneNumbers"`
	Email            string   `bson:"email,omitempty" json:"email,omitempty" validate:"omitempty,email"`
	AlternateContact string   `bson:"alternateContact,omitempty" json:"alternateContact,omitempty"`
}

type SellerInformation struct {
	Name       string     `bson:"name,omitempty" json:"name,omitempty"`
	Contact    string     `bson:"contact,omitempty" json:"contact,omitempty"`
	Remarks    string     `bson:"remarks,omitempty" json:"remarks,omitempty"`
	SellerType SellerType `bson:"sellerType,omitempty" json:"sellerType,omitempty" validate:"omitempty,enum"`
}

type ShowingInformation struct {
	ShowingInstructions string   `bson:"showingInstructions,omitempty" json:"showingInstructions,omitempty"`
	AppointmentRequired bool     `bson:"appointmentRequired" json:"appointmentRequired"`
	ShowingDays         []string `bson:"showingDays" json:"showingDays"`
	ShowingHoursStart   string   `bson:"showingHoursStart,omitempty" json:"showingHoursStart,omitempty"`
	ShowingHoursEnd     string   `bson:"showingHoursEnd,omitempty" json:"showingHoursEnd,omitempty"`
	LockboxPresent      bool     `bson:"lockboxPresent" json:"lockboxPresent"`
}

type AdditionalDetails struct {
	ConstructionDetails         string   `bson:"constructionDetails,omitempty" json:"constructionDetails,omitempty"`
	ArchitecturalStyle          string   `bson:"architecturalStyle,omitempty" json:"architecturalStyle,omitempty"`
	Accessibility               []string `bson:"accessibility" json:"accessibility"`
	GreenBuilding               bool     `bson:"greenBuilding" json:"greenBuilding"`
	GreenBuildingCertifications []string `bson:"greenBuildingCertifications" json:"greenBuildingCertifications"`
	HistoricalSignificance      string   `bson:"historicalSignificance,omitempty" json:"historicalSignificance,omitempty"`
	RentalHistory               string   `bson:"rentalHistory,omitempty" json:"rentalHistory,omitempty"`
	PreviousListingInfo         string   `bson:"previousListingInfo,omitempty" json:"previousListingInfo,omitempty"`
	SchoolDistrict              string   `bson:"schoolDistrict,omitempty" json:"schoolDistrict,omitempty"`
	Notes                       string   `bson:"notes,omitempty" json:"notes,omitempty"`
}

type OpenHouseEvent struct {
	Date        *time.Time `bson:"date,omitempty" json:"date,omitempty"`
	StartTime   string     `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime     string     `bson:"endTime,omitempty" json:"endTime,omitempty"`
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
}

// Rera holds Real Estate Regulatory Authority registration details.
type Rera struct {
	Registered         bool   `bson:"registered" json:"registered"`
	RegistrationNumber string `bson:"registrationNumber,omitempty" json:"registrationNumber,omitempty"`
	ProjectName        string `bson:"projectName,omitempty" json:"projectName,omitempty"`
}

// DeletionRequest is an owner's request to remove a listing, pending admin review.
type DeletionRequest struct {
	Requested   bool           `bson:"requested" json:"requested"`
	Reason      DeletionReason `bson:"reason,omitempty" json:"reason,omitempty" validate:"omitempty,enum"`
	Message     string         `bson:"message,omitempty" json:"message,omitempty"`
	RequestDate *time.Time     `bson:"requestDate,omitempty" json:"requestDate,omitempty"`
	Status      ReviewStatus   `bson:"status" json:"status" validate:"required,enum"`
}

// Property is a single real-estate listing.
type Property struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id,omitempty"`
	Owner     primitive.ObjectID  `bson:"owner,omitempty" json:"owner,omitempty"`
	PostedBy  primitive.ObjectID  `bson:"postedBy,omitempty" json:"postedBy,omitempty"`
	Agent     *primitive.ObjectID `bson:"agent,omitempty" json:"agent,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`

	Title            string           `bson:"title" json:"title" validate:"required,min=5,max=100"`
	Description      string           `bson:"description" json:"description" validate:"required,min=10,max=2000"`
	Price            float64          `bson:"price" json:"price" validate:"min=0"`
	AlternativePrice AlternativePrice `bson:"alternativePrice" json:"alternativePrice"`

	PropertyType      PropertyType  `bson:"propertyType" json:"propertyType" validate:"required,enum"`
	LandType          LandType      `bson:"landType,omitempty" json:"landType,omitempty" validate:"omitempty,enum"`
	LegalStatus       LegalStatus   `bson:"legalStatus" json:"legalStatus" validate:"required,enum"`
	Category          Category      `bson:"category" json:"category" validate:"required,enum"`
	Status            ListingStatus `bson:"status" json:"status" validate:"required,enum"`
	ListingType       ListingType   `bson:"listingType" json:"listingType" validate:"required,enum"`
	Featured          bool          `bson:"featured" json:"featured"`
	YearBuilt         int           `bson:"yearBuilt,omitempty" json:"yearBuilt,omitempty" validate:"min=0"`
	LastRenovatedYear int           `bson:"lastRenovatedYear,omitempty" json:"lastRenovatedYear,omitempty" validate:"min=0"`
	ParkingSpaces     int           `bson:"parkingSpaces" json:"parkingSpaces" validate:"min=0"`
	ParkingType       ParkingType   `bson:"parkingType,omitempty" json:"parkingType,omitempty" validate:"omitempty,enum"`

	PropertyDetails PropertyDetails `bson:"propertyDetails" json:"propertyDetails"`
	Area            Area            `bson:"area" json:"area"`
	Address         Address         `bson:"address" json:"address"`

	Images         []Image  `bson:"images" json:"images" validate:"dive"`
	Videos         []Video  `bson:"videos" json:"videos" validate:"dive"`
	VirtualTourURL string   `bson:"virtualTourUrl,omitempty" json:"virtualTourUrl,omitempty"`
	ThreeDModelURL string   `bson:"threeDModelUrl,omitempty" json:"threeDModelUrl,omitempty"`
	ImageURL       string   `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Amenities      []string `bson:"amenities" json:"amenities"`

	Features           Features           `bson:"features" json:"features"`
	CommercialFeatures CommercialFeatures `bson:"commercialFeatures" json:"commercialFeatures"`
	LandFeatures       LandFeatures       `bson:"landFeatures" json:"landFeatures"`
	FarmRanchFeatures  FarmRanchFeatures  `bson:"farmRanchFeatures" json:"farmRanchFeatures"`
	FloorPlans         []FloorPlan        `bson:"floorPlans" json:"floorPlans" validate:"dive"`
	NearbyPlaces       NearbyPlaces       `bson:"nearbyPlaces" json:"nearbyPlaces"`
	TaxInformation     TaxInformation     `bson:"taxInformation" json:"taxInformation"`
	LegalDocuments     LegalDocuments     `bson:"legalDocuments" json:"legalDocuments"`
	Utilities          Utilities          `bson:"utilities" json:"utilities"`
	Appliances         []Appliance        `bson:"appliances" json:"appliances" validate:"dive"`
	ViewType           ViewType           `bson:"viewType,omitempty" json:"viewType,omitempty" validate:"omitempty,enum"`
	EnergyEfficiency   EnergyEfficiency   `bson:"energyEfficiency" json:"energyEfficiency"`
	OwnerDetails       OwnerDetails       `bson:"ownerDetails" json:"ownerDetails"`
	SellerInformation  SellerInformation  `bson:"sellerInformation" json:"sellerInformation"`
	ShowingInformation ShowingInformation `bson:"showingInformation" json:"showingInformation"`
	AdditionalDetails  AdditionalDetails  `bson:"additionalDetails" json:"additionalDetails"`
	OpenHouseEvents    []OpenHouseEvent   `bson:"openHouseEvents" json:"openHouseEvents"`
	KhataNumber        string             `bson:"khataNumber,omitempty" json:"khataNumber,omitempty"`
	Rera               Rera               `bson:"rera" json:"rera"`
	DeletionRequest    DeletionRequest    `bson:"deletionRequest" json:"deletionRequest"`

	ViewCount     int64 `bson:"viewCount" json:"viewCount"`
	FavoriteCount int64 `bson:"favoriteCount" json:"favoriteCount"`
}

// NewProperty returns a record pre-populated with every schema default, so that
// decoding a candidate on top of it leaves absent fields at their defaults.
func NewProperty() *Property {
	return &Property{
		Category:    CategoryResidential,
		Status:      StatusActive,
		ListingType: ListingTypeSale,
		PropertyDetails: PropertyDetails{
			Floors:   1,
			Kitchens: 1,
		},
		Area:               Area{Unit: UnitSqFt},
		Address:            Address{Country: "India"},
		ShowingInformation: ShowingInformation{AppointmentRequired: true},
		DeletionRequest:    DeletionRequest{Status: ReviewPending},
	}
}

// PrimaryImage returns the URL of the image flagged primary, falling back to
// the first image and then to ImageURL.
func (p *Property) PrimaryImage() string {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return p.ImageURL
}
