package domain

type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "APARTMENT"
	PropertyTypeHouse      PropertyType = "HOUSE"
	PropertyTypeCondo      PropertyType = "CONDO"
	PropertyTypeStudio     PropertyType = "STUDIO"
	PropertyTypeRoom       PropertyType = "ROOM"
	PropertyTypeSharedRoom PropertyType = "SHARED_ROOM"
)

type Amenity string

const (
	AmenityWifi            Amenity = "WIFI"
	AmenityParking         Amenity = "PARKING"
	AmenityPool            Amenity = "POOL"
	AmenityGym             Amenity = "GYM"
	AmenityLaundry         Amenity = "LAUNDRY"
	AmenityAirConditioning Amenity = "AIR_CONDITIONING"
	AmenityHeating         Amenity = "HEATING"
	AmenityKitchen         Amenity = "KITCHEN"
	AmenityBalcony         Amenity = "BALCONY"
	AmenityGarden          Amenity = "GARDEN"
	AmenityElevator        Amenity = "ELEVATOR"
	AmenitySecurity        Amenity = "SECURITY"
	AmenityPetFriendly     Amenity = "PET_FRIENDLY"
	AmenityFurnished       Amenity = "FURNISHED"
	AmenityDishwasher      Amenity = "DISHWASHER"
	AmenityMicrowave       Amenity = "MICROWAVE"
	AmenityRefrigerator    Amenity = "REFRIGERATOR"
	AmenityTV              Amenity = "TV"
	AmenityWasherDryer     Amenity = "WASHER_DRYER"
)

// Property is a read copy of a remote listing. The client never mutates
// one in place; landlord edits go back through the properties client.
type Property struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Address       string       `json:"address"`
	City          string       `json:"city"`
	State         string       `json:"state"`
	ZipCode       string       `json:"zipCode"`
	Country       string       `json:"country"`
	PricePerMonth float64      `json:"pricePerMonth"`
	Bedrooms      int          `json:"bedrooms"`
	Bathrooms     int          `json:"bathrooms"`
	AreaSqft      int          `json:"areaSqft"`
	PropertyType  PropertyType `json:"propertyType"`
	LandlordID    int64        `json:"landlordId"`
	Available     bool         `json:"available"`
	Latitude      float64      `json:"latitude,omitempty"`
	Longitude     float64      `json:"longitude,omitempty"`
	Amenities     []Amenity    `json:"amenities,omitempty"`
	ImageURLs     []string     `json:"imageUrls,omitempty"`
}

// PropertySearch carries the optional filters the /search endpoint
// accepts. Zero values mean "not filtered".
type PropertySearch struct {
	City         string
	MinPrice     float64
	MaxPrice     float64
	Bedrooms     int
	PropertyType PropertyType
	Page         int
	Size         int
	SortBy       string
	SortDir      string
}
