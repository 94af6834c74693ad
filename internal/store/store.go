package store

import (
	"errors"

	"propertyhub/internal/domain"
)

// ErrUsernameTaken reports a CreateUser username conflict. Both backends
// return it so callers never have to decode driver constraint errors.
var ErrUsernameTaken = errors.New("username already taken")

// Store defines persistence operations for users, properties, features,
// images, and inquiries. Lookups report absence through the boolean result;
// an error always means infrastructure failure, never "not found".
//
// The memory and GORM implementations must stay observably equivalent for
// every operation given the same call sequence (ids aside); the shared
// conformance suite in store_test.go is the authority on that contract.
type Store interface {
	// users
	CreateUser(username, passwordHash string) (domain.User, error)
	GetUser(id int64) (domain.User, bool, error)
	GetUserByUsername(username string) (domain.User, bool, error)

	// properties
	ListProperties(filter domain.PropertyFilter) ([]domain.Property, error)
	GetProperty(id int64) (domain.Property, bool, error)
	CreateProperty(p domain.Property) (domain.Property, error)
	UpdateProperty(id int64, upd domain.PropertyUpdate) (domain.Property, bool, error)
	DeleteProperty(id int64) (bool, error)
	IncrementPropertyViews(id int64) error
	ListPropertiesBySeller(sellerID int64) ([]domain.SellerProperty, error)

	// images
	AddPropertyImage(img domain.PropertyImage) (domain.PropertyImage, error)
	GetPropertyImage(id int64) (domain.PropertyImage, bool, error)
	ListPropertyImages(propertyID int64) ([]domain.PropertyImage, error)
	DeletePropertyImage(id int64) (bool, error)
	SetMainPropertyImage(imageID, propertyID int64) (bool, error)

	// features
	GetPropertyFeatures(propertyID int64) (domain.PropertyFeatures, bool, error)
	UpdatePropertyFeatures(propertyID int64, upd domain.FeatureUpdate) (domain.PropertyFeatures, error)

	// inquiries
	CreateInquiry(inq domain.Inquiry) (domain.Inquiry, error)
	GetInquiry(id int64) (domain.Inquiry, bool, error)
	ListInquiriesByProperty(propertyID int64) ([]domain.Inquiry, error)
	ListInquiriesBySeller(sellerID int64) ([]domain.Inquiry, error)
	MarkInquiryViewed(id int64) (bool, error)
}
