package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"propertyhub/internal/auth"
	"propertyhub/internal/domain"
	"propertyhub/internal/store"
)

// memImages is an in-memory ImageStorage for tests.
type memImages struct {
	saved map[string]string
}

func (m *memImages) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = make(map[string]string)
	}
	m.saved[key] = string(data)
	return "/uploads/" + key, nil
}

func newTestApp(t *testing.T) (*App, *memImages) {
	t.Helper()
	sessions, err := auth.NewSessions("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessions: %v", err)
	}
	images := &memImages{}
	return New(store.NewMemoryStore(), sessions, images), images
}

func registerSeller(t *testing.T, a *App, username string) AuthResult {
	t.Helper()
	res, err := a.Register(username, "hunter2!")
	if err != nil {
		t.Fatalf("Register(%q): %v", username, err)
	}
	return res
}

func newListing() domain.Property {
	return domain.Property{
		Title:        "Test Listing",
		Price:        "415000",
		Address:      "12 Main St",
		City:         "Salem",
		State:        "OR",
		ZipCode:      "97301",
		PropertyType: "House",
		ListingType:  domain.ListingForSale,
		Bedrooms:     3,
		Bathrooms:    "2",
		SquareFeet:   1600,
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	a, _ := newTestApp(t)

	res, err := a.Register("alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Token == "" {
		t.Fatal("Register returned empty token")
	}
	if res.User.Username != "alice" {
		t.Fatalf("Register username = %q, want alice", res.User.Username)
	}

	user, err := a.UserFromToken(res.Token)
	if err != nil {
		t.Fatalf("UserFromToken: %v", err)
	}
	if user.ID != res.User.ID {
		t.Fatalf("UserFromToken id = %d, want %d", user.ID, res.User.ID)
	}

	if _, err := a.Login("alice", "correct-horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := a.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login with wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Login("nobody", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login for unknown user: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Register("alice", "another-pass"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("Register duplicate: err = %v, want ErrUsernameTaken", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	a, _ := newTestApp(t)

	_, err := a.Register("ab", "short")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Register: err = %v, want *ValidationError", err)
	}
	if _, ok := verr.Fields["username"]; !ok {
		t.Error("missing username field error")
	}
	if _, ok := verr.Fields["password"]; !ok {
		t.Error("missing password field error")
	}
}

func TestCreatePropertyAppliesDefaultsAndFeatures(t *testing.T) {
	a, _ := newTestApp(t)
	seller := registerSeller(t, a, "seller")

	yes := true
	created, err := a.CreateProperty(seller.User.ID, newListing(), &domain.FeatureUpdate{HasPool: &yes})
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}
	if created.Status != domain.StatusActive {
		t.Fatalf("status = %q, want active", created.Status)
	}
	if created.SellerID != seller.User.ID {
		t.Fatalf("sellerId = %d, want %d", created.SellerID, seller.User.ID)
	}
	if created.Features == nil || !created.Features.HasPool {
		t.Fatalf("features = %+v, want HasPool true", created.Features)
	}
	if created.Features.HasGym {
		t.Fatal("unset feature flag should default to false")
	}
}

func TestCreatePropertyValidation(t *testing.T) {
	a, _ := newTestApp(t)
	seller := registerSeller(t, a, "seller")

	bad := newListing()
	bad.Title = "  "
	bad.Price = "lots"
	bad.ListingType = "Lease"
	_, err := a.CreateProperty(seller.User.ID, bad, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CreateProperty: err = %v, want *ValidationError", err)
	}
	for _, field := range []string{"title", "price", "listingType"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("missing %s field error", field)
		}
	}
}

func TestGetPropertyBumpsViews(t *testing.T) {
	a, _ := newTestApp(t)
	seller := registerSeller(t, a, "seller")
	created, err := a.CreateProperty(seller.User.ID, newListing(), nil)
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}

	for want := 1; want <= 3; want++ {
		got, err := a.GetProperty(created.ID)
		if err != nil {
			t.Fatalf("GetProperty: %v", err)
		}
		if got.Views != want {
			t.Fatalf("views after visit %d = %d", want, got.Views)
		}
	}

	if _, err := a.GetProperty(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetProperty(999): err = %v, want ErrNotFound", err)
	}
}

func TestUpdatePropertyOwnership(t *testing.T) {
	a, _ := newTestApp(t)
	owner := registerSeller(t, a, "owner")
	intruder := registerSeller(t, a, "intruder")
	created, err := a.CreateProperty(owner.User.ID, newListing(), nil)
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}

	title := "Renamed"
	if _, err := a.UpdateProperty(intruder.User.ID, created.ID, domain.PropertyUpdate{Title: &title}, nil); !errors.Is(err, ErrForbidden) {
		t.Fatalf("UpdateProperty as intruder: err = %v, want ErrForbidden", err)
	}
	if err := a.DeleteProperty(intruder.User.ID, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("DeleteProperty as intruder: err = %v, want ErrForbidden", err)
	}

	updated, err := a.UpdateProperty(owner.User.ID, created.ID, domain.PropertyUpdate{Title: &title}, nil)
	if err != nil {
		t.Fatalf("UpdateProperty as owner: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title = %q", updated.Title)
	}

	if err := a.DeleteProperty(owner.User.ID, created.ID); err != nil {
		t.Fatalf("DeleteProperty as owner: %v", err)
	}
	if _, err := a.GetProperty(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetProperty after delete: err = %v, want ErrNotFound", err)
	}
}

func TestSaveImageUpload(t *testing.T) {
	a, images := newTestApp(t)
	seller := registerSeller(t, a, "seller")
	created, err := a.CreateProperty(seller.User.ID, newListing(), nil)
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}

	_, err = a.SaveImageUpload(context.Background(), seller.User.ID, created.ID, "notes.pdf", "application/pdf", strings.NewReader("%PDF"), 4)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("SaveImageUpload pdf: err = %v, want *ValidationError", err)
	}

	img, err := a.SaveImageUpload(context.Background(), seller.User.ID, created.ID, "front.JPG", "image/jpeg", strings.NewReader("fake-bytes"), 10)
	if err != nil {
		t.Fatalf("SaveImageUpload: %v", err)
	}
	if !strings.HasPrefix(img.ImageURL, "/uploads/") || !strings.HasSuffix(img.ImageURL, ".jpg") {
		t.Fatalf("image url = %q", img.ImageURL)
	}
	if !img.IsMain {
		t.Fatal("first image should be main")
	}
	if len(images.saved) != 1 {
		t.Fatalf("saved %d files, want 1", len(images.saved))
	}
}

func TestInquiryFlow(t *testing.T) {
	a, _ := newTestApp(t)
	owner := registerSeller(t, a, "owner")
	other := registerSeller(t, a, "other")
	created, err := a.CreateProperty(owner.User.ID, newListing(), nil)
	if err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}

	if _, err := a.CreateInquiry(999, domain.Inquiry{Name: "B", Email: "b@x.io", Message: "hi"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("CreateInquiry on missing listing: err = %v, want ErrNotFound", err)
	}

	inq, err := a.CreateInquiry(created.ID, domain.Inquiry{
		Name:    "Buyer",
		Email:   "buyer@example.com",
		Message: "Still available?",
	})
	if err != nil {
		t.Fatalf("CreateInquiry: %v", err)
	}
	if inq.IsViewed {
		t.Fatal("new inquiry should be unviewed")
	}

	if _, err := a.PropertyInquiries(other.User.ID, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("PropertyInquiries as non-owner: err = %v, want ErrForbidden", err)
	}
	got, err := a.PropertyInquiries(owner.User.ID, created.ID)
	if err != nil {
		t.Fatalf("PropertyInquiries: %v", err)
	}
	if len(got) != 1 || got[0].ID != inq.ID {
		t.Fatalf("PropertyInquiries = %+v", got)
	}

	if _, err := a.SellerInquiries(other.User.ID, owner.User.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("SellerInquiries for someone else: err = %v, want ErrForbidden", err)
	}

	if err := a.MarkInquiryViewed(other.User.ID, inq.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("MarkInquiryViewed as non-owner: err = %v, want ErrForbidden", err)
	}
	if err := a.MarkInquiryViewed(owner.User.ID, inq.ID); err != nil {
		t.Fatalf("MarkInquiryViewed: %v", err)
	}
	got, err = a.SellerInquiries(owner.User.ID, owner.User.ID)
	if err != nil {
		t.Fatalf("SellerInquiries: %v", err)
	}
	if len(got) != 1 || !got[0].IsViewed {
		t.Fatalf("SellerInquiries after viewing = %+v", got)
	}
}

func TestSellerDashboardAccess(t *testing.T) {
	a, _ := newTestApp(t)
	owner := registerSeller(t, a, "owner")
	other := registerSeller(t, a, "other")
	if _, err := a.CreateProperty(owner.User.ID, newListing(), nil); err != nil {
		t.Fatalf("CreateProperty: %v", err)
	}

	if _, err := a.SellerProperties(other.User.ID, owner.User.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("SellerProperties for someone else: err = %v, want ErrForbidden", err)
	}
	props, err := a.SellerProperties(owner.User.ID, owner.User.ID)
	if err != nil {
		t.Fatalf("SellerProperties: %v", err)
	}
	if len(props) != 1 {
		t.Fatalf("got %d properties, want 1", len(props))
	}
}

func TestSeedDemo(t *testing.T) {
	a, _ := newTestApp(t)
	if err := a.SeedDemo(); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	props, err := a.ListProperties(domain.PropertyFilter{})
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(props) != 3 {
		t.Fatalf("seeded %d properties, want 3", len(props))
	}
	if _, err := a.Login(DemoUsername, DemoPassword); err != nil {
		t.Fatalf("Login with demo credentials: %v", err)
	}
	inqs, err := a.PropertyInquiries(props[0].SellerID, props[0].ID)
	if err != nil {
		t.Fatalf("PropertyInquiries: %v", err)
	}
	if len(inqs) != 1 {
		t.Fatalf("seeded %d inquiries, want 1", len(inqs))
	}
}
