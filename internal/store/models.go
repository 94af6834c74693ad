package store

import "time"

// GORM models used for persistence.
type UserModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type PropertyModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Title        string `gorm:"not null"`
	Description  string `gorm:"type:text"`
	Price        string `gorm:"not null"`
	Address      string `gorm:"not null"`
	City         string `gorm:"not null;index"`
	State        string `gorm:"not null"`
	ZipCode      string `gorm:"not null"`
	PropertyType string `gorm:"not null;index"`
	ListingType  string `gorm:"not null;index"`
	Bedrooms     int    `gorm:"not null"`
	Bathrooms    string `gorm:"not null"`
	SquareFeet   int    `gorm:"not null"`
	YearBuilt    *int
	Status       string    `gorm:"not null;index"`
	Views        int       `gorm:"not null"`
	SellerID     int64     `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (PropertyModel) TableName() string { return "properties" }

// One row per property, created lazily on the first feature write.
type PropertyFeaturesModel struct {
	PropertyID         int64 `gorm:"primaryKey"`
	HasPool            bool  `gorm:"not null"`
	HasGarden          bool  `gorm:"not null"`
	HasGarage          bool  `gorm:"not null"`
	HasBalcony         bool  `gorm:"not null"`
	HasAirConditioning bool  `gorm:"not null"`
	HasGym             bool  `gorm:"not null"`
	HasSecuritySystem  bool  `gorm:"not null"`
	HasFireplace       bool  `gorm:"not null"`
}

func (PropertyFeaturesModel) TableName() string { return "property_features" }

type PropertyImageModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	PropertyID int64  `gorm:"not null;index"`
	ImageURL   string `gorm:"type:text;not null"`
	IsMain     bool   `gorm:"not null"`
}

func (PropertyImageModel) TableName() string { return "property_images" }

type InquiryModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	PropertyID int64  `gorm:"not null;index"`
	Name       string `gorm:"not null"`
	Email      string `gorm:"not null"`
	Phone      string
	Message    string    `gorm:"type:text;not null"`
	IsViewed   bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (InquiryModel) TableName() string { return "inquiries" }
