package domain

import (
	"strings"
	"time"
)

// Property listing types and statuses used across the API.
const (
	ListingForSale = "For Sale"
	ListingForRent = "For Rent"

	StatusActive = "active"
	StatusDraft  = "draft"
	StatusSold   = "sold"
	StatusRented = "rented"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Property is a hydrated listing: Images and Features are populated by the
// store on reads, never persisted through this struct directly.
type Property struct {
	ID           int64             `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Price        string            `json:"price"`
	Address      string            `json:"address"`
	City         string            `json:"city"`
	State        string            `json:"state"`
	ZipCode      string            `json:"zipCode"`
	PropertyType string            `json:"propertyType"`
	ListingType  string            `json:"listingType"`
	Bedrooms     int               `json:"bedrooms"`
	Bathrooms    string            `json:"bathrooms"`
	SquareFeet   int               `json:"squareFeet"`
	YearBuilt    *int              `json:"yearBuilt,omitempty"`
	Status       string            `json:"status"`
	Views        int               `json:"views"`
	SellerID     int64             `json:"sellerId"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	Images       []PropertyImage   `json:"images"`
	Features     *PropertyFeatures `json:"features,omitempty"`
}

// SellerProperty augments a listing with its inquiry count for dashboards.
type SellerProperty struct {
	Property
	InquiryCount int `json:"inquiryCount"`
}

type PropertyFeatures struct {
	PropertyID         int64 `json:"propertyId"`
	HasPool            bool  `json:"hasPool"`
	HasGarden          bool  `json:"hasGarden"`
	HasGarage          bool  `json:"hasGarage"`
	HasBalcony         bool  `json:"hasBalcony"`
	HasAirConditioning bool  `json:"hasAirConditioning"`
	HasGym             bool  `json:"hasGym"`
	HasSecuritySystem  bool  `json:"hasSecuritySystem"`
	HasFireplace       bool  `json:"hasFireplace"`
}

type PropertyImage struct {
	ID         int64  `json:"id"`
	PropertyID int64  `json:"propertyId"`
	ImageURL   string `json:"imageUrl"`
	IsMain     bool   `json:"isMain"`
}

type Inquiry struct {
	ID         int64     `json:"id"`
	PropertyID int64     `json:"propertyId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Message    string    `json:"message"`
	IsViewed   bool      `json:"isViewed"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PropertyUpdate carries a partial listing edit. Nil fields are left as-is.
type PropertyUpdate struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Price        *string `json:"price"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	ZipCode      *string `json:"zipCode"`
	PropertyType *string `json:"propertyType"`
	ListingType  *string `json:"listingType"`
	Bedrooms     *int    `json:"bedrooms"`
	Bathrooms    *string `json:"bathrooms"`
	SquareFeet   *int    `json:"squareFeet"`
	YearBuilt    *int    `json:"yearBuilt"`
	Status       *string `json:"status"`
}

// FeatureUpdate carries a partial feature edit. Nil flags keep their prior
// value on update and default to false on first creation.
type FeatureUpdate struct {
	HasPool            *bool `json:"hasPool"`
	HasGarden          *bool `json:"hasGarden"`
	HasGarage          *bool `json:"hasGarage"`
	HasBalcony         *bool `json:"hasBalcony"`
	HasAirConditioning *bool `json:"hasAirConditioning"`
	HasGym             *bool `json:"hasGym"`
	HasSecuritySystem  *bool `json:"hasSecuritySystem"`
	HasFireplace       *bool `json:"hasFireplace"`
}

// PropertyFilter is a conjunction of optional predicates. A zero/empty field
// (or the "any" sentinel on string fields) skips that predicate.
type PropertyFilter struct {
	Location      string
	PropertyType  string
	ListingType   string
	Status        string
	MinPrice      *float64
	MaxPrice      *float64
	MinBedrooms   *int
	MinBathrooms  *float64
	MinSquareFeet *int
	MinYearBuilt  *int
	Features      []string
}

// Feature flag keys in their stable presentation order.
const (
	FeaturePool            = "pool"
	FeatureGarden          = "garden"
	FeatureGarage          = "garage"
	FeatureBalcony         = "balcony"
	FeatureAirConditioning = "airConditioning"
	FeatureGym             = "gym"
	FeatureSecuritySystem  = "securitySystem"
	FeatureFireplace       = "fireplace"
)

// CanonicalFeature maps a requested feature name (any casing, spaces,
// hyphens, or underscores) to its flag key. Unknown names report false and
// match no property.
func CanonicalFeature(name string) (string, bool) {
	normalized := strings.ToLower(name)
	for _, cut := range []string{" ", "-", "_"} {
		normalized = strings.ReplaceAll(normalized, cut, "")
	}
	switch normalized {
	case "pool", "haspool":
		return FeaturePool, true
	case "garden", "hasgarden":
		return FeatureGarden, true
	case "garage", "hasgarage":
		return FeatureGarage, true
	case "balcony", "hasbalcony":
		return FeatureBalcony, true
	case "airconditioning", "hasairconditioning", "ac":
		return FeatureAirConditioning, true
	case "gym", "hasgym":
		return FeatureGym, true
	case "securitysystem", "hassecuritysystem", "security":
		return FeatureSecuritySystem, true
	case "fireplace", "hasfireplace":
		return FeatureFireplace, true
	default:
		return "", false
	}
}

// Flag returns the named feature flag value.
func (f PropertyFeatures) Flag(key string) bool {
	switch key {
	case FeaturePool:
		return f.HasPool
	case FeatureGarden:
		return f.HasGarden
	case FeatureGarage:
		return f.HasGarage
	case FeatureBalcony:
		return f.HasBalcony
	case FeatureAirConditioning:
		return f.HasAirConditioning
	case FeatureGym:
		return f.HasGym
	case FeatureSecuritySystem:
		return f.HasSecuritySystem
	case FeatureFireplace:
		return f.HasFireplace
	default:
		return false
	}
}
