package store

import (
	"strconv"
	"strings"

	"propertyhub/internal/domain"
)

// filterSkipsValue reports whether a string filter field is inactive:
// empty or the "any" sentinel the frontend sends for unset dropdowns.
func filterSkipsValue(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "any") || strings.EqualFold(v, "all")
}

// matchesFilter evaluates the filter as a conjunction of predicates against
// one hydrated property. Every predicate mirrors the SQL the GORM backend
// builds in listConditions; changes here need a matching change there.
func matchesFilter(p domain.Property, f domain.PropertyFilter) bool {
	if !filterSkipsValue(f.Location) && !matchesLocation(p, f.Location) {
		return false
	}
	if !filterSkipsValue(f.PropertyType) && p.PropertyType != strings.TrimSpace(f.PropertyType) {
		return false
	}
	if !filterSkipsValue(f.ListingType) && p.ListingType != strings.TrimSpace(f.ListingType) {
		return false
	}
	if !filterSkipsValue(f.Status) && p.Status != strings.TrimSpace(f.Status) {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price, err := strconv.ParseFloat(p.Price, 64)
		if err != nil {
			return false
		}
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.MinBathrooms != nil {
		baths, err := strconv.ParseFloat(p.Bathrooms, 64)
		if err != nil || baths < *f.MinBathrooms {
			return false
		}
	}
	if f.MinSquareFeet != nil && p.SquareFeet < *f.MinSquareFeet {
		return false
	}
	if f.MinYearBuilt != nil {
		// Listings without a known build year never satisfy a year filter.
		if p.YearBuilt == nil || *p.YearBuilt < *f.MinYearBuilt {
			return false
		}
	}
	if len(f.Features) > 0 {
		if p.Features == nil {
			return false
		}
		for _, name := range f.Features {
			key, ok := domain.CanonicalFeature(name)
			if !ok || !p.Features.Flag(key) {
				return false
			}
		}
	}
	return true
}

// matchesLocation is a case-insensitive substring match against any of the
// four address components.
func matchesLocation(p domain.Property, location string) bool {
	needle := strings.ToLower(strings.TrimSpace(location))
	for _, hay := range []string{p.Address, p.City, p.State, p.ZipCode} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}
