package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"

	"propertyhub/internal/auth"
	"propertyhub/internal/domain"
	"propertyhub/internal/storage"
	"propertyhub/internal/store"
)

// App implements the marketplace use cases on top of a Store, a session
// manager, and an image storage backend. Handlers translate its errors to
// HTTP; App itself never sees a request.
type App struct {
	store    store.Store
	sessions *auth.Sessions
	images   storage.ImageStorage
}

func New(st store.Store, sessions *auth.Sessions, images storage.ImageStorage) *App {
	return &App{store: st, sessions: sessions, images: images}
}

// Store exposes the underlying store for seeding and tests.
func (a *App) Store() store.Store {
	return a.store
}

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates a seller account and signs them in.
func (a *App) Register(username, password string) (AuthResult, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return AuthResult{}, err
	}
	user, err := a.store.CreateUser(username, auth.HashPassword(password))
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return AuthResult{}, ErrUsernameTaken
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}
	return a.issueSession(user)
}

// Login verifies credentials and issues a session token. A missing user and
// a wrong password are indistinguishable to the caller.
func (a *App) Login(username, password string) (AuthResult, error) {
	user, ok, err := a.store.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return AuthResult{}, fmt.Errorf("load user: %w", err)
	}
	if !ok || !auth.CheckPassword(password, user.PasswordHash) {
		return AuthResult{}, ErrInvalidCredentials
	}
	return a.issueSession(user)
}

func (a *App) issueSession(user domain.User) (AuthResult, error) {
	token, err := a.sessions.Issue(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue session: %w", err)
	}
	return AuthResult{User: user, Token: token}, nil
}

// UserFromToken resolves a bearer token to its account.
func (a *App) UserFromToken(token string) (domain.User, error) {
	userID, err := a.sessions.Verify(token)
	if err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	user, ok, err := a.store.GetUser(userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// ListProperties returns hydrated listings matching every given predicate.
func (a *App) ListProperties(filter domain.PropertyFilter) ([]domain.Property, error) {
	props, err := a.store.ListProperties(filter)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

// GetProperty returns one listing and bumps its view counter. The counter
// only moves for listings that exist; a miss is a plain ErrNotFound with no
// side effects.
func (a *App) GetProperty(id int64) (domain.Property, error) {
	prop, ok, err := a.store.GetProperty(id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("load property: %w", err)
	}
	if !ok {
		return domain.Property{}, ErrNotFound
	}
	if err := a.store.IncrementPropertyViews(id); err != nil {
		// The page still renders; log and serve the stale count.
		slog.Warn("increment property views", "property_id", id, "error", err)
	} else {
		prop.Views++
	}
	return prop, nil
}

// CreateProperty validates and stores a new listing for the seller, applying
// the optional feature flags in the same call.
func (a *App) CreateProperty(sellerID int64, p domain.Property, features *domain.FeatureUpdate) (domain.Property, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Price = strings.TrimSpace(p.Price)
	p.Bathrooms = strings.TrimSpace(p.Bathrooms)
	if err := validateNewProperty(p); err != nil {
		return domain.Property{}, err
	}
	p.SellerID = sellerID
	if p.Status == "" {
		p.Status = domain.StatusActive
	}
	created, err := a.store.CreateProperty(p)
	if err != nil {
		return domain.Property{}, fmt.Errorf("create property: %w", err)
	}
	if features != nil {
		if _, err := a.store.UpdatePropertyFeatures(created.ID, *features); err != nil {
			return domain.Property{}, fmt.Errorf("set features: %w", err)
		}
	}
	return a.reload(created.ID)
}

// UpdateProperty applies a partial edit to a listing the seller owns.
func (a *App) UpdateProperty(sellerID, id int64, upd domain.PropertyUpdate, features *domain.FeatureUpdate) (domain.Property, error) {
	if err := validatePropertyUpdate(upd); err != nil {
		return domain.Property{}, err
	}
	if err := a.requireOwner(sellerID, id); err != nil {
		return domain.Property{}, err
	}
	if _, ok, err := a.store.UpdateProperty(id, upd); err != nil {
		return domain.Property{}, fmt.Errorf("update property: %w", err)
	} else if !ok {
		return domain.Property{}, ErrNotFound
	}
	if features != nil {
		if _, err := a.store.UpdatePropertyFeatures(id, *features); err != nil {
			return domain.Property{}, fmt.Errorf("update features: %w", err)
		}
	}
	return a.reload(id)
}

// DeleteProperty removes a listing the seller owns together with its images,
// features, and inquiries.
func (a *App) DeleteProperty(sellerID, id int64) error {
	if err := a.requireOwner(sellerID, id); err != nil {
		return err
	}
	ok, err := a.store.DeleteProperty(id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SellerProperties lists a seller's own listings with fresh inquiry counts.
func (a *App) SellerProperties(callerID, sellerID int64) ([]domain.SellerProperty, error) {
	if callerID != sellerID {
		return nil, ErrForbidden
	}
	props, err := a.store.ListPropertiesBySeller(sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller properties: %w", err)
	}
	return props, nil
}

// AddImageFromURL attaches an already-hosted image to a listing.
func (a *App) AddImageFromURL(sellerID, propertyID int64, imageURL string, isMain bool) (domain.PropertyImage, error) {
	imageURL = strings.TrimSpace(imageURL)
	if imageURL == "" {
		errs := fieldErrors{}
		errs.add("imageUrl", "is required")
		return domain.PropertyImage{}, errs.err()
	}
	if err := a.requireOwner(sellerID, propertyID); err != nil {
		return domain.PropertyImage{}, err
	}
	img, err := a.store.AddPropertyImage(domain.PropertyImage{
		PropertyID: propertyID,
		ImageURL:   imageURL,
		IsMain:     isMain,
	})
	if err != nil {
		return domain.PropertyImage{}, fmt.Errorf("add image: %w", err)
	}
	return img, nil
}

// SaveImageUpload stores one uploaded file and attaches it to the listing.
// The storage key is random; the original filename only contributes its
// extension.
func (a *App) SaveImageUpload(ctx context.Context, sellerID, propertyID int64, filename, contentType string, r io.Reader, size int64) (domain.PropertyImage, error) {
	if err := a.requireOwner(sellerID, propertyID); err != nil {
		return domain.PropertyImage{}, err
	}
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	if !strings.HasPrefix(mediaType, "image/") {
		errs := fieldErrors{}
		errs.add("images", "only image files are accepted")
		return domain.PropertyImage{}, errs.err()
	}
	key := uuid.NewString()
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && len(ext) <= 8 {
		key += ext
	}
	url, err := a.images.Save(ctx, key, r, size, mediaType)
	if err != nil {
		return domain.PropertyImage{}, fmt.Errorf("save upload: %w", err)
	}
	img, err := a.store.AddPropertyImage(domain.PropertyImage{
		PropertyID: propertyID,
		ImageURL:   url,
	})
	if err != nil {
		return domain.PropertyImage{}, fmt.Errorf("add image: %w", err)
	}
	return img, nil
}

// PropertyImages lists a listing's images, main first.
func (a *App) PropertyImages(propertyID int64) ([]domain.PropertyImage, error) {
	if _, ok, err := a.store.GetProperty(propertyID); err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	} else if !ok {
		return nil, ErrNotFound
	}
	imgs, err := a.store.ListPropertyImages(propertyID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return imgs, nil
}

// DeleteImage removes one image from a listing the seller owns. If it was
// the main image the store promotes a survivor.
func (a *App) DeleteImage(sellerID, imageID int64) error {
	img, err := a.findImage(imageID)
	if err != nil {
		return err
	}
	if err := a.requireOwner(sellerID, img.PropertyID); err != nil {
		return err
	}
	ok, err := a.store.DeletePropertyImage(imageID)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// SetMainImage promotes one image of a listing the seller owns to main.
func (a *App) SetMainImage(sellerID, propertyID, imageID int64) error {
	if err := a.requireOwner(sellerID, propertyID); err != nil {
		return err
	}
	ok, err := a.store.SetMainPropertyImage(imageID, propertyID)
	if err != nil {
		return fmt.Errorf("set main image: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// CreateInquiry records a buyer message against an existing listing. No
// session is required.
func (a *App) CreateInquiry(propertyID int64, inq domain.Inquiry) (domain.Inquiry, error) {
	inq.Name = strings.TrimSpace(inq.Name)
	inq.Email = strings.TrimSpace(inq.Email)
	inq.Message = strings.TrimSpace(inq.Message)
	if err := validateInquiry(inq); err != nil {
		return domain.Inquiry{}, err
	}
	if _, ok, err := a.store.GetProperty(propertyID); err != nil {
		return domain.Inquiry{}, fmt.Errorf("load property: %w", err)
	} else if !ok {
		return domain.Inquiry{}, ErrNotFound
	}
	inq.PropertyID = propertyID
	created, err := a.store.CreateInquiry(inq)
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("create inquiry: %w", err)
	}
	return created, nil
}

// PropertyInquiries lists inquiries for one listing the seller owns.
func (a *App) PropertyInquiries(sellerID, propertyID int64) ([]domain.Inquiry, error) {
	if err := a.requireOwner(sellerID, propertyID); err != nil {
		return nil, err
	}
	inqs, err := a.store.ListInquiriesByProperty(propertyID)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return inqs, nil
}

// SellerInquiries lists every inquiry across the seller's own listings.
func (a *App) SellerInquiries(callerID, sellerID int64) ([]domain.Inquiry, error) {
	if callerID != sellerID {
		return nil, ErrForbidden
	}
	inqs, err := a.store.ListInquiriesBySeller(sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller inquiries: %w", err)
	}
	return inqs, nil
}

// MarkInquiryViewed flags an inquiry as read by the seller who owns its
// listing.
func (a *App) MarkInquiryViewed(sellerID, inquiryID int64) error {
	inq, err := a.findInquiry(inquiryID)
	if err != nil {
		return err
	}
	if err := a.requireOwner(sellerID, inq.PropertyID); err != nil {
		return err
	}
	ok, err := a.store.MarkInquiryViewed(inquiryID)
	if err != nil {
		return fmt.Errorf("mark inquiry viewed: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// requireOwner loads a listing and checks the caller owns it. Absence wins
// over ownership so probing ids can't distinguish the two.
func (a *App) requireOwner(sellerID, propertyID int64) error {
	prop, ok, err := a.store.GetProperty(propertyID)
	if err != nil {
		return fmt.Errorf("load property: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	if prop.SellerID != sellerID {
		return ErrForbidden
	}
	return nil
}

func (a *App) reload(id int64) (domain.Property, error) {
	prop, ok, err := a.store.GetProperty(id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("reload property: %w", err)
	}
	if !ok {
		return domain.Property{}, ErrNotFound
	}
	return prop, nil
}

func (a *App) findImage(imageID int64) (domain.PropertyImage, error) {
	img, ok, err := a.store.GetPropertyImage(imageID)
	if err != nil {
		return domain.PropertyImage{}, fmt.Errorf("load image: %w", err)
	}
	if !ok {
		return domain.PropertyImage{}, ErrNotFound
	}
	return img, nil
}

func (a *App) findInquiry(inquiryID int64) (domain.Inquiry, error) {
	inq, ok, err := a.store.GetInquiry(inquiryID)
	if err != nil {
		return domain.Inquiry{}, fmt.Errorf("load inquiry: %w", err)
	}
	if !ok {
		return domain.Inquiry{}, ErrNotFound
	}
	return inq, nil
}
