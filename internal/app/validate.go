package app

import (
	"strconv"
	"strings"
	"time"

	"propertyhub/internal/domain"
)

var listingTypes = map[string]struct{}{
	domain.ListingForSale: {},
	domain.ListingForRent: {},
}

var listingStatuses = map[string]struct{}{
	domain.StatusActive: {},
	domain.StatusDraft:  {},
	domain.StatusSold:   {},
	domain.StatusRented: {},
}

func validateCredentials(username, password string) error {
	errs := fieldErrors{}
	if len(strings.TrimSpace(username)) < 3 {
		errs.add("username", "must be at least 3 characters")
	}
	if len(password) < 6 {
		errs.add("password", "must be at least 6 characters")
	}
	return errs.err()
}

// validateNewProperty checks a full listing submission. The carrier is a
// domain.Property; server-assigned fields (id, views, timestamps) are
// ignored here.
func validateNewProperty(p domain.Property) error {
	errs := fieldErrors{}
	if strings.TrimSpace(p.Title) == "" {
		errs.add("title", "is required")
	}
	validatePrice(errs, "price", p.Price)
	if strings.TrimSpace(p.Address) == "" {
		errs.add("address", "is required")
	}
	if strings.TrimSpace(p.City) == "" {
		errs.add("city", "is required")
	}
	if strings.TrimSpace(p.State) == "" {
		errs.add("state", "is required")
	}
	if strings.TrimSpace(p.ZipCode) == "" {
		errs.add("zipCode", "is required")
	}
	if strings.TrimSpace(p.PropertyType) == "" {
		errs.add("propertyType", "is required")
	}
	validateListingType(errs, p.ListingType)
	if p.Bedrooms < 0 {
		errs.add("bedrooms", "must be zero or more")
	}
	validateBathrooms(errs, p.Bathrooms)
	if p.SquareFeet <= 0 {
		errs.add("squareFeet", "must be greater than zero")
	}
	if p.YearBuilt != nil {
		validateYearBuilt(errs, *p.YearBuilt)
	}
	if p.Status != "" {
		validateStatus(errs, p.Status)
	}
	return errs.err()
}

func validatePropertyUpdate(upd domain.PropertyUpdate) error {
	errs := fieldErrors{}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		errs.add("title", "must not be empty")
	}
	if upd.Price != nil {
		validatePrice(errs, "price", *upd.Price)
	}
	if upd.ListingType != nil {
		validateListingType(errs, *upd.ListingType)
	}
	if upd.Bedrooms != nil && *upd.Bedrooms < 0 {
		errs.add("bedrooms", "must be zero or more")
	}
	if upd.Bathrooms != nil {
		validateBathrooms(errs, *upd.Bathrooms)
	}
	if upd.SquareFeet != nil && *upd.SquareFeet <= 0 {
		errs.add("squareFeet", "must be greater than zero")
	}
	if upd.YearBuilt != nil {
		validateYearBuilt(errs, *upd.YearBuilt)
	}
	if upd.Status != nil {
		validateStatus(errs, *upd.Status)
	}
	return errs.err()
}

func validateInquiry(inq domain.Inquiry) error {
	errs := fieldErrors{}
	if strings.TrimSpace(inq.Name) == "" {
		errs.add("name", "is required")
	}
	email := strings.TrimSpace(inq.Email)
	if email == "" {
		errs.add("email", "is required")
	} else if !strings.Contains(email, "@") {
		errs.add("email", "must be a valid email address")
	}
	if strings.TrimSpace(inq.Message) == "" {
		errs.add("message", "is required")
	}
	return errs.err()
}

// validatePrice keeps prices as decimal strings but insists they parse so
// range filters can cast them later.
func validatePrice(errs fieldErrors, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.add(field, "is required")
		return
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n < 0 {
		errs.add(field, "must be a non-negative number")
	}
}

func validateBathrooms(errs fieldErrors, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs.add("bathrooms", "is required")
		return
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil || n < 0 {
		errs.add("bathrooms", "must be a non-negative number")
	}
}

func validateListingType(errs fieldErrors, value string) {
	if _, ok := listingTypes[value]; !ok {
		errs.add("listingType", `must be "For Sale" or "For Rent"`)
	}
}

func validateStatus(errs fieldErrors, value string) {
	if _, ok := listingStatuses[value]; !ok {
		errs.add("status", "must be active, draft, sold, or rented")
	}
}

func validateYearBuilt(errs fieldErrors, year int) {
	if year < 1800 || year > time.Now().Year()+1 {
		errs.add("yearBuilt", "is out of range")
	}
}
