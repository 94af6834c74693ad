package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"propertyhub/internal/domain"
)

// The suite below runs against both backends; observable equivalence
// between them is the central contract of this package.

type storeFactory func(t *testing.T) Store

func newMemory(t *testing.T) Store {
	t.Helper()
	return NewMemoryStore()
}

func newGorm(t *testing.T) Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	s, err := NewGormStoreFromDB(db)
	require.NoError(t, err)
	return s
}

func forEachBackend(t *testing.T, run func(t *testing.T, s Store)) {
	t.Helper()
	backends := map[string]storeFactory{
		"memory": newMemory,
		"gorm":   newGorm,
	}
	for name, factory := range backends {
		t.Run(name, func(t *testing.T) {
			run(t, factory(t))
		})
	}
}

func seedSeller(t *testing.T, s Store) domain.User {
	t.Helper()
	user, err := s.CreateUser("seller", "salt$hash")
	require.NoError(t, err)
	return user
}

func houseListing(sellerID int64) domain.Property {
	return domain.Property{
		Title:        "Craftsman with big yard",
		Description:  "Three bedrooms near the park",
		Price:        "425000",
		Address:      "12 Maple Street",
		City:         "Portland",
		State:        "OR",
		ZipCode:      "97201",
		PropertyType: "House",
		ListingType:  domain.ListingForSale,
		Bedrooms:     3,
		Bathrooms:    "2.5",
		SquareFeet:   1850,
		Status:       domain.StatusActive,
		SellerID:     sellerID,
	}
}

func apartmentListing(sellerID int64) domain.Property {
	return domain.Property{
		Title:        "Downtown one-level apartment",
		Description:  "Walk to everything",
		Price:        "2850",
		Address:      "400 SW 5th Ave",
		City:         "Portland",
		State:        "OR",
		ZipCode:      "97204",
		PropertyType: "Apartment",
		ListingType:  domain.ListingForRent,
		Bedrooms:     2,
		Bathrooms:    "1",
		SquareFeet:   900,
		Status:       domain.StatusActive,
		SellerID:     sellerID,
	}
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		first, err := s.CreateUser("alice", "h1")
		require.NoError(t, err)
		require.NotZero(t, first.ID)

		_, err = s.CreateUser("alice", "h2")
		require.ErrorIs(t, err, ErrUsernameTaken)

		byName, ok, err := s.GetUserByUsername("alice")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, first.ID, byName.ID)
		require.Equal(t, "h1", byName.PasswordHash)

		_, ok, err = s.GetUserByUsername("nobody")
		require.NoError(t, err)
		require.False(t, ok)

		byID, ok, err := s.GetUser(first.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "alice", byID.Username)
	})
}

func TestCreatePropertyAssignsDefaults(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		seller := seedSeller(t, s)
		created, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)
		require.NotZero(t, created.ID)
		require.Equal(t, 0, created.Views)
		require.False(t, created.CreatedAt.IsZero())
		require.False(t, created.UpdatedAt.IsZero())
		require.Empty(t, created.Images)
		require.Nil(t, created.Features)

		got, ok, err := s.GetProperty(created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "425000", got.Price)
		require.Equal(t, seller.ID, got.SellerID)
		require.NotNil(t, got.Images)
		require.Empty(t, got.Images)
	})
}

func TestUpdatePropertyMergesOnlyProvidedFields(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		seller := seedSeller(t, s)
		created, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)

		newPrice := "399000"
		newStatus := domain.StatusSold
		updated, ok, err := s.UpdateProperty(created.ID, domain.PropertyUpdate{
			Price:  &newPrice,
			Status: &newStatus,
		})
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "399000", updated.Price)
		require.Equal(t, domain.StatusSold, updated.Status)
		// Untouched fields survive the merge.
		require.Equal(t, "Craftsman with big yard", updated.Title)
		require.Equal(t, 3, updated.Bedrooms)

		_, ok, err = s.UpdateProperty(created.ID+1000, domain.PropertyUpdate{Price: &newPrice})
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func TestViewCounterIsMonotonic(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		seller := seedSeller(t, s)
		created, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, s.IncrementPropertyViews(created.ID))
		}
		// Unknown ids are a silent no-op.
		require.NoError(t, s.IncrementPropertyViews(created.ID+999))

		got, ok, err := s.GetProperty(created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 5, got.Views)
	})
}

func TestDeletePropertyCascades(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		seller := seedSeller(t, s)
		created, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)
		keep, err := s.CreateProperty(apartmentListing(seller.ID))
		require.NoError(t, err)

		pool := true
		_, err = s.UpdatePropertyFeatures(created.ID, domain.FeatureUpdate{HasPool: &pool})
		require.NoError(t, err)
		_, err = s.AddPropertyImage(domain.PropertyImage{PropertyID: created.ID, ImageURL: "a.jpg"})
		require.NoError(t, err)
		_, err = s.AddPropertyImage(domain.PropertyImage{PropertyID: created.ID, ImageURL: "b.jpg"})
		require.NoError(t, err)
		_, err = s.CreateInquiry(domain.Inquiry{PropertyID: created.ID, Name: "Bo", Email: "bo@x.io", Message: "still available?"})
		require.NoError(t, err)
		keepImg, err := s.AddPropertyImage(domain.PropertyImage{PropertyID: keep.ID, ImageURL: "keep.jpg"})
		require.NoError(t, err)

		deleted, err := s.DeleteProperty(created.ID)
		require.NoError(t, err)
		require.True(t, deleted)

		_, ok, err := s.GetProperty(created.ID)
		require.NoError(t, err)
		require.False(t, ok)
		_, ok, err = s.GetPropertyFeatures(created.ID)
		require.NoError(t, err)
		require.False(t, ok)
		imgs, err := s.ListPropertyImages(created.ID)
		require.NoError(t, err)
		require.Empty(t, imgs)
		inqs, err := s.ListInquiriesByProperty(created.ID)
		require.NoError(t, err)
		require.Empty(t, inqs)

		// The sibling listing is untouched.
		imgs, err = s.ListPropertyImages(keep.ID)
		require.NoError(t, err)
		require.Len(t, imgs, 1)
		require.Equal(t, keepImg.ID, imgs[0].ID)

		deleted, err = s.DeleteProperty(created.ID)
		require.NoError(t, err)
		require.False(t, deleted)
	})
}

func TestListPropertiesFilterConjunction(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		seller := seedSeller(t, s)
		house, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)
		apartment, err := s.CreateProperty(apartmentListing(seller.ID))
		require.NoError(t, err)

		ids := func(props []domain.Property) []int64 {
			out := make([]int64, 0, len(props))
			for _, p := range props {
				out = append(out, p.ID)
			}
			return out
		}

		all, err := s.ListProperties(domain.PropertyFilter{})
		require.NoError(t, err)
		require.Equal(t, []int64{house.ID, apartment.ID}, ids(all))

		minPrice := 100000.0
		got, err := s.ListProperties(domain.PropertyFilter{MinPrice: &minPrice, PropertyType: "House"})
		require.NoError(t, err)
		require.Equal(t, []int64{house.ID}, ids(got))

		// Feature filter before any feature row exists matches nothing.
		got, err = s.ListProperties(domain.PropertyFilter{Features: []string{"Pool"}})
		require.NoError(t, err)
		require.Empty(t, got)

		pool := true
		_, err = s.UpdatePropertyFeatures(house.ID, domain.FeatureUpdate{HasPool: &pool})
		require.NoError(t, err)
		got, err = s.ListProperties(domain.PropertyFilter{Features: []string{"Pool"}})
		require.NoError(t, err)
		require.Equal(t, []int64{house.ID}, ids(got))

		// Requested features combine with AND.
		got, err = s.ListProperties(domain.PropertyFilter{Features: []string{"Pool", "Gym"}})
		require.NoError(t, err)
		require.Empty(t, got)

		// Unknown feature names match nothing.
		got, err = s.ListProperties(domain.PropertyFilter{Features: []string{"Moat"}})
		require.NoError(t, err)
		require.Empty(t, got)

		// Location matches any address component, case-insensitively.
		got, err = s.ListProperties(domain.PropertyFilter{Location: "maple"})
		require.NoError(t, err)
		require.Equal(t, []int64{house.ID}, ids(got))
		got, err = s.ListProperties(domain.PropertyFilter{Location: "97204"})
		require.NoError(t, err)
		require.Equal(t, []int64{apartment.ID}, ids(got))
		got, err = s.ListProperties(domain.PropertyFilter{Location: "portland"})
		require.NoError(t, err)
		require.Len(t, got, 2)

		// "any" sentinels skip their predicate.
		got, err = s.ListProperties(domain.PropertyFilter{PropertyType: "any", Status: "Any"})
		require.NoError(t, err)
		require.Len(t, got, 2)

		minBaths := 2.5
		got, err = s.ListProperties(domain.PropertyFilter{MinBathrooms: &minBaths})
		require.NoError(t, err)
		require.Equal(t, []int64{house.ID}, ids(got))

		minBeds := 3
		maxPrice := 3000.0
		got, err = s.ListProperties(domain.PropertyFilter{MinBedrooms: &minBeds, MaxPrice: &maxPrice})
		require.NoError(t, err)
		require.Empty(t, got)

		// Listings without a build year never satisfy a year filter.
		minYear := 1990
		got, err = s.ListProperties(domain.PropertyFilter{MinYearBuilt: &minYear})
		require.NoError(t, err)
		require.Empty(t, got)

		year := 2004
		_, ok, err := s.UpdateProperty(house.ID, domain.PropertyUpdate{YearBuilt: &year})
		require.NoError(t, err)
		require.True(t, ok)
		got, err = s.ListProperties(domain.PropertyFilter{MinYearBuilt: &minYear})
		require.NoError(t, err)
		require.Equal(t, []int64{house.ID}, ids(got))

		minSqft := 1000
		got, err = s.ListProperties(domain.PropertyFilter{MinSquareFeet: &minSqft})
		require.NoError(t, err)
		require.Equal(t, []int64{house.ID}, ids(got))

		got, err = s.ListProperties(domain.PropertyFilter{ListingType: domain.ListingForRent})
		require.NoError(t, err)
		require.Equal(t, []int64{apartment.ID}, ids(got))
	})
}

func TestMainImageInvariant(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		seller := seedSeller(t, s)
		created, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)

		requireOneMain := func(wantCount int) []domain.PropertyImage {
			t.Helper()
			imgs, err := s.ListPropertyImages(created.ID)
			require.NoError(t, err)
			require.Len(t, imgs, wantCount)
			mains := 0
			for _, img := range imgs {
				if img.IsMain {
					mains++
				}
			}
			if wantCount == 0 {
				require.Zero(t, mains)
			} else {
				require.Equal(t, 1, mains)
			}
			return imgs
		}

		// First image is forced main even when the caller says otherwise.
		first, err := s.AddPropertyImage(domain.PropertyImage{PropertyID: created.ID, ImageURL: "img1", IsMain: false})
		require.NoError(t, err)
		require.True(t, first.IsMain)
		requireOneMain(1)

		// A later image marked main wins the flag.
		second, err := s.AddPropertyImage(domain.PropertyImage{PropertyID: created.ID, ImageURL: "img2", IsMain: true})
		require.NoError(t, err)
		require.True(t, second.IsMain)
		imgs := requireOneMain(2)
		require.False(t, imgs[0].IsMain)
		require.True(t, imgs[1].IsMain)

		fetched, found, err := s.GetPropertyImage(second.ID)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, created.ID, fetched.PropertyID)
		_, found, err = s.GetPropertyImage(second.ID + 1000)
		require.NoError(t, err)
		require.False(t, found)

		// A later image without the flag changes nothing.
		third, err := s.AddPropertyImage(domain.PropertyImage{PropertyID: created.ID, ImageURL: "img3"})
		require.NoError(t, err)
		require.False(t, third.IsMain)
		requireOneMain(3)

		// Explicit promotion demotes all others.
		ok, err := s.SetMainPropertyImage(third.ID, created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		imgs = requireOneMain(3)
		require.True(t, imgs[2].IsMain)

		// Wrong pairing fails closed without mutating anything.
		other, err := s.CreateProperty(apartmentListing(seller.ID))
		require.NoError(t, err)
		ok, err = s.SetMainPropertyImage(third.ID, other.ID)
		require.NoError(t, err)
		require.False(t, ok)
		ok, err = s.SetMainPropertyImage(third.ID+1000, created.ID)
		require.NoError(t, err)
		require.False(t, ok)
		imgs = requireOneMain(3)
		require.True(t, imgs[2].IsMain)

		// Deleting the main promotes the first survivor in storage order.
		deleted, err := s.DeletePropertyImage(third.ID)
		require.NoError(t, err)
		require.True(t, deleted)
		imgs = requireOneMain(2)
		require.Equal(t, first.ID, imgs[0].ID)
		require.True(t, imgs[0].IsMain)

		// Deleting a secondary image leaves the main alone.
		deleted, err = s.DeletePropertyImage(second.ID)
		require.NoError(t, err)
		require.True(t, deleted)
		imgs = requireOneMain(1)
		require.True(t, imgs[0].IsMain)

		// Deleting the last image empties the set.
		deleted, err = s.DeletePropertyImage(first.ID)
		require.NoError(t, err)
		require.True(t, deleted)
		requireOneMain(0)

		deleted, err = s.DeletePropertyImage(first.ID)
		require.NoError(t, err)
		require.False(t, deleted)
	})
}

func TestFeatureUpsertSemantics(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		seller := seedSeller(t, s)
		created, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)

		_, ok, err := s.GetPropertyFeatures(created.ID)
		require.NoError(t, err)
		require.False(t, ok)

		// Creation defaults every unset flag to false.
		pool := true
		feats, err := s.UpdatePropertyFeatures(created.ID, domain.FeatureUpdate{HasPool: &pool})
		require.NoError(t, err)
		require.True(t, feats.HasPool)
		require.False(t, feats.HasGarage)
		require.False(t, feats.HasFireplace)

		// Updates only touch the named flags.
		garage := true
		feats, err = s.UpdatePropertyFeatures(created.ID, domain.FeatureUpdate{HasGarage: &garage})
		require.NoError(t, err)
		require.True(t, feats.HasPool)
		require.True(t, feats.HasGarage)

		noPool := false
		feats, err = s.UpdatePropertyFeatures(created.ID, domain.FeatureUpdate{HasPool: &noPool})
		require.NoError(t, err)
		require.False(t, feats.HasPool)
		require.True(t, feats.HasGarage)

		// An empty update is a no-op after creation.
		feats, err = s.UpdatePropertyFeatures(created.ID, domain.FeatureUpdate{})
		require.NoError(t, err)
		require.False(t, feats.HasPool)
		require.True(t, feats.HasGarage)

		got, ok, err := s.GetPropertyFeatures(created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, feats, got)

		// Hydrated listings carry the row.
		listing, ok, err := s.GetProperty(created.ID)
		require.NoError(t, err)
		require.True(t, ok)
		require.NotNil(t, listing.Features)
		require.True(t, listing.Features.HasGarage)
	})
}

func TestInquiryLifecycle(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		seller := seedSeller(t, s)
		other, err := s.CreateUser("other", "h")
		require.NoError(t, err)
		created, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)

		// isViewed and createdAt are forced regardless of input.
		inq, err := s.CreateInquiry(domain.Inquiry{
			PropertyID: created.ID,
			Name:       "Dana",
			Email:      "dana@example.com",
			Phone:      "555-0100",
			Message:    "Can I visit Saturday?",
			IsViewed:   true,
		})
		require.NoError(t, err)
		require.NotZero(t, inq.ID)
		require.False(t, inq.IsViewed)
		require.False(t, inq.CreatedAt.IsZero())

		second, err := s.CreateInquiry(domain.Inquiry{PropertyID: created.ID, Name: "Eli", Email: "eli@example.com", Message: "Price negotiable?"})
		require.NoError(t, err)

		fetched, found, err := s.GetInquiry(inq.ID)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "Dana", fetched.Name)
		_, found, err = s.GetInquiry(second.ID + 1000)
		require.NoError(t, err)
		require.False(t, found)

		byProperty, err := s.ListInquiriesByProperty(created.ID)
		require.NoError(t, err)
		require.Len(t, byProperty, 2)
		require.Equal(t, "Dana", byProperty[0].Name)
		require.Equal(t, "Eli", byProperty[1].Name)

		bySeller, err := s.ListInquiriesBySeller(seller.ID)
		require.NoError(t, err)
		require.Len(t, bySeller, 2)

		// A seller without listings gets an empty list, not an error.
		bySeller, err = s.ListInquiriesBySeller(other.ID)
		require.NoError(t, err)
		require.Empty(t, bySeller)

		ok, err := s.MarkInquiryViewed(inq.ID)
		require.NoError(t, err)
		require.True(t, ok)
		// Idempotent.
		ok, err = s.MarkInquiryViewed(inq.ID)
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = s.MarkInquiryViewed(second.ID + 1000)
		require.NoError(t, err)
		require.False(t, ok)

		byProperty, err = s.ListInquiriesByProperty(created.ID)
		require.NoError(t, err)
		require.True(t, byProperty[0].IsViewed)
		require.False(t, byProperty[1].IsViewed)
	})
}

func TestSellerDashboardCountsAreFresh(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s Store) {
		seller := seedSeller(t, s)
		first, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)
		second, err := s.CreateProperty(apartmentListing(seller.ID))
		require.NoError(t, err)

		props, err := s.ListPropertiesBySeller(seller.ID)
		require.NoError(t, err)
		require.Len(t, props, 2)
		require.Zero(t, props[0].InquiryCount)
		require.Zero(t, props[1].InquiryCount)

		for i := 0; i < 3; i++ {
			_, err = s.CreateInquiry(domain.Inquiry{PropertyID: first.ID, Name: "N", Email: "n@x.io", Message: "hi"})
			require.NoError(t, err)
		}
		_, err = s.CreateInquiry(domain.Inquiry{PropertyID: second.ID, Name: "M", Email: "m@x.io", Message: "hi"})
		require.NoError(t, err)

		props, err = s.ListPropertiesBySeller(seller.ID)
		require.NoError(t, err)
		require.Equal(t, first.ID, props[0].ID)
		require.Equal(t, 3, props[0].InquiryCount)
		require.Equal(t, 1, props[1].InquiryCount)
	})
}

// TestBackendEquivalence drives both backends through one scripted sequence
// and compares every externally observable projection. Ids are compared by
// position, not value.
func TestBackendEquivalence(t *testing.T) {
	type observation struct {
		properties []domain.Property
		seller     []domain.SellerProperty
		inquiries  []domain.Inquiry
	}

	observe := func(t *testing.T, s Store, sellerID int64) observation {
		t.Helper()
		props, err := s.ListProperties(domain.PropertyFilter{})
		require.NoError(t, err)
		sellerProps, err := s.ListPropertiesBySeller(sellerID)
		require.NoError(t, err)
		inqs, err := s.ListInquiriesBySeller(sellerID)
		require.NoError(t, err)
		return observation{properties: props, seller: sellerProps, inquiries: inqs}
	}

	script := func(t *testing.T, s Store) (int64, observation) {
		t.Helper()
		seller := seedSeller(t, s)
		house, err := s.CreateProperty(houseListing(seller.ID))
		require.NoError(t, err)
		_, err = s.CreateProperty(apartmentListing(seller.ID))
		require.NoError(t, err)

		pool, gym := true, true
		_, err = s.UpdatePropertyFeatures(house.ID, domain.FeatureUpdate{HasPool: &pool, HasGym: &gym})
		require.NoError(t, err)

		img1, err := s.AddPropertyImage(domain.PropertyImage{PropertyID: house.ID, ImageURL: "one.jpg"})
		require.NoError(t, err)
		_, err = s.AddPropertyImage(domain.PropertyImage{PropertyID: house.ID, ImageURL: "two.jpg", IsMain: true})
		require.NoError(t, err)
		_, err = s.DeletePropertyImage(img1.ID)
		require.NoError(t, err)

		_, err = s.CreateInquiry(domain.Inquiry{PropertyID: house.ID, Name: "Dana", Email: "dana@example.com", Message: "tour?"})
		require.NoError(t, err)
		require.NoError(t, s.IncrementPropertyViews(house.ID))
		require.NoError(t, s.IncrementPropertyViews(house.ID))

		return seller.ID, observe(t, s, seller.ID)
	}

	_, memObs := script(t, newMemory(t))
	_, dbObs := script(t, newGorm(t))

	normalizeProps := func(props []domain.Property) []domain.Property {
		out := make([]domain.Property, len(props))
		for i, p := range props {
			p.ID = 0
			p.SellerID = 0
			p.CreatedAt = time.Time{}
			p.UpdatedAt = time.Time{}
			imgs := make([]domain.PropertyImage, len(p.Images))
			for j, img := range p.Images {
				img.ID = 0
				img.PropertyID = 0
				imgs[j] = img
			}
			p.Images = imgs
			if p.Features != nil {
				f := *p.Features
				f.PropertyID = 0
				p.Features = &f
			}
			out[i] = p
		}
		return out
	}

	require.Equal(t, normalizeProps(memObs.properties), normalizeProps(dbObs.properties))

	require.Len(t, dbObs.seller, len(memObs.seller))
	for i := range memObs.seller {
		require.Equal(t, memObs.seller[i].InquiryCount, dbObs.seller[i].InquiryCount)
		require.Equal(t, memObs.seller[i].Views, dbObs.seller[i].Views)
	}

	require.Len(t, dbObs.inquiries, len(memObs.inquiries))
	for i := range memObs.inquiries {
		require.Equal(t, memObs.inquiries[i].Name, dbObs.inquiries[i].Name)
		require.Equal(t, memObs.inquiries[i].IsViewed, dbObs.inquiries[i].IsViewed)
	}
}
