package app

import (
	"fmt"

	"propertyhub/internal/auth"
	"propertyhub/internal/domain"
)

// DemoUsername and DemoPassword are the credentials the demo seed registers.
// They only exist on the in-memory backend.
const (
	DemoUsername = "demo"
	DemoPassword = "demo-pass"
)

// SeedDemo loads a handful of listings so the API is browsable out of the
// box when running against the in-memory store. Idempotence is not needed:
// the memory backend starts empty on every boot.
func (a *App) SeedDemo() error {
	seller, err := a.store.CreateUser(DemoUsername, auth.HashPassword(DemoPassword))
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	yes := true
	year1998 := 1998
	year2015 := 2015
	seeds := []struct {
		property domain.Property
		features *domain.FeatureUpdate
		images   []string
	}{
		{
			property: domain.Property{
				Title:        "Craftsman Bungalow near Laurelhurst Park",
				Description:  "Restored 1920s craftsman with original fir floors and a fenced backyard.",
				Price:        "625000",
				Address:      "3214 SE Oak St",
				City:         "Portland",
				State:        "OR",
				ZipCode:      "97214",
				PropertyType: "House",
				ListingType:  domain.ListingForSale,
				Bedrooms:     3,
				Bathrooms:    "2",
				SquareFeet:   1850,
				YearBuilt:    &year1998,
				Status:       domain.StatusActive,
			},
			features: &domain.FeatureUpdate{HasGarden: &yes, HasGarage: &yes, HasFireplace: &yes},
			images: []string{
				"https://images.example.com/listings/oak-st-front.jpg",
				"https://images.example.com/listings/oak-st-kitchen.jpg",
			},
		},
		{
			property: domain.Property{
				Title:        "Pearl District Loft with Skyline Views",
				Description:  "Corner unit loft, floor-to-ceiling windows, walk to everything.",
				Price:        "3200",
				Address:      "1130 NW 12th Ave",
				City:         "Portland",
				State:        "OR",
				ZipCode:      "97209",
				PropertyType: "Apartment",
				ListingType:  domain.ListingForRent,
				Bedrooms:     2,
				Bathrooms:    "2",
				SquareFeet:   1240,
				YearBuilt:    &year2015,
				Status:       domain.StatusActive,
			},
			features: &domain.FeatureUpdate{HasGym: &yes, HasAirConditioning: &yes, HasSecuritySystem: &yes},
			images: []string{
				"https://images.example.com/listings/pearl-loft-living.jpg",
			},
		},
		{
			property: domain.Property{
				Title:        "Sunny Sellwood Townhouse",
				Description:  "Three-story townhouse with a rooftop deck two blocks from the river.",
				Price:        "489000",
				Address:      "8027 SE 13th Ave",
				City:         "Portland",
				State:        "OR",
				ZipCode:      "97202",
				PropertyType: "Townhouse",
				ListingType:  domain.ListingForSale,
				Bedrooms:     2,
				Bathrooms:    "2.5",
				SquareFeet:   1410,
				Status:       domain.StatusDraft,
			},
			features: &domain.FeatureUpdate{HasBalcony: &yes, HasGarage: &yes},
		},
	}

	var firstID int64
	for i, seed := range seeds {
		created, err := a.CreateProperty(seller.ID, seed.property, seed.features)
		if err != nil {
			return fmt.Errorf("seed property %q: %w", seed.property.Title, err)
		}
		if i == 0 {
			firstID = created.ID
		}
		for _, url := range seed.images {
			if _, err := a.AddImageFromURL(seller.ID, created.ID, url, false); err != nil {
				return fmt.Errorf("seed image for %q: %w", seed.property.Title, err)
			}
		}
	}

	if _, err := a.CreateInquiry(firstID, domain.Inquiry{
		Name:    "Riley Chen",
		Email:   "riley.chen@example.com",
		Phone:   "503-555-0114",
		Message: "Is the seller open to an inspection contingency? I can tour this weekend.",
	}); err != nil {
		return fmt.Errorf("seed inquiry: %w", err)
	}
	return nil
}
