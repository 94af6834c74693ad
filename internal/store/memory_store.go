package store

import (
	"sync"
	"time"

	"propertyhub/internal/domain"
)

// MemoryStore keeps all entities in-process. It is the demo/dev fallback:
// non-durable, single process, compound operations are not atomic under
// concurrent writers beyond what the mutex serializes.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[int64]domain.User
	usernames map[string]int64 // username -> user ID

	properties    map[int64]domain.Property
	propertyOrder []int64

	features map[int64]domain.PropertyFeatures // keyed by property ID

	images     map[int64]domain.PropertyImage
	imageOrder []int64

	inquiries    map[int64]domain.Inquiry
	inquiryOrder []int64

	nextUserID     int64
	nextPropertyID int64
	nextImageID    int64
	nextInquiryID  int64
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[int64]domain.User),
		usernames:  make(map[string]int64),
		properties: make(map[int64]domain.Property),
		features:   make(map[int64]domain.PropertyFeatures),
		images:     make(map[int64]domain.PropertyImage),
		inquiries:  make(map[int64]domain.Inquiry),
	}
}

// CreateUser registers a user, rejecting duplicate usernames.
func (m *MemoryStore) CreateUser(username, passwordHash string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.usernames[username]; taken {
		return domain.User{}, ErrUsernameTaken
	}
	m.nextUserID++
	user := domain.User{
		ID:           m.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	m.users[user.ID] = user
	m.usernames[username] = user.ID
	return user, nil
}

// GetUser returns a user by ID.
func (m *MemoryStore) GetUser(id int64) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	return u, ok, nil
}

// GetUserByUsername looks up a user by username.
func (m *MemoryStore) GetUserByUsername(username string) (domain.User, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.usernames[username]
	if !ok {
		return domain.User{}, false, nil
	}
	u, ok := m.users[id]
	return u, ok, nil
}

// ListProperties returns hydrated listings in insertion order, narrowed by
// the filter conjunction.
func (m *MemoryStore) ListProperties(filter domain.PropertyFilter) ([]domain.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Property, 0, len(m.propertyOrder))
	for _, id := range m.propertyOrder {
		if _, ok := m.properties[id]; !ok {
			continue
		}
		p := m.hydrateLocked(id)
		if matchesFilter(p, filter) {
			res = append(res, p)
		}
	}
	return res, nil
}

// GetProperty returns one hydrated listing. It does not touch the view
// counter; callers bump views explicitly.
func (m *MemoryStore) GetProperty(id int64) (domain.Property, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.properties[id]; !ok {
		return domain.Property{}, false, nil
	}
	return m.hydrateLocked(id), true, nil
}

// CreateProperty assigns an ID, zero views, and fresh timestamps.
func (m *MemoryStore) CreateProperty(p domain.Property) (domain.Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextPropertyID++
	now := time.Now().UTC()
	p.ID = m.nextPropertyID
	p.Views = 0
	p.CreatedAt = now
	p.UpdatedAt = now
	p.Images = nil
	p.Features = nil
	m.properties[p.ID] = p
	m.propertyOrder = append(m.propertyOrder, p.ID)
	stored := p
	stored.Images = []domain.PropertyImage{}
	return stored, nil
}

// UpdateProperty merges the provided fields and bumps updatedAt.
func (m *MemoryStore) UpdateProperty(id int64, upd domain.PropertyUpdate) (domain.Property, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.properties[id]
	if !ok {
		return domain.Property{}, false, nil
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Address != nil {
		p.Address = *upd.Address
	}
	if upd.City != nil {
		p.City = *upd.City
	}
	if upd.State != nil {
		p.State = *upd.State
	}
	if upd.ZipCode != nil {
		p.ZipCode = *upd.ZipCode
	}
	if upd.PropertyType != nil {
		p.PropertyType = *upd.PropertyType
	}
	if upd.ListingType != nil {
		p.ListingType = *upd.ListingType
	}
	if upd.Bedrooms != nil {
		p.Bedrooms = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		p.Bathrooms = *upd.Bathrooms
	}
	if upd.SquareFeet != nil {
		p.SquareFeet = *upd.SquareFeet
	}
	if upd.YearBuilt != nil {
		year := *upd.YearBuilt
		p.YearBuilt = &year
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	p.UpdatedAt = time.Now().UTC()
	m.properties[id] = p
	return m.hydrateLocked(id), true, nil
}

// DeleteProperty removes the listing and its features, images, and
// inquiries. Reports whether a property existed.
func (m *MemoryStore) DeleteProperty(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.properties[id]; !ok {
		return false, nil
	}
	delete(m.features, id)
	for _, imgID := range m.imageIDsLocked(id) {
		delete(m.images, imgID)
	}
	m.imageOrder = compactOrder(m.imageOrder, m.images)
	for _, inqID := range m.inquiryOrder {
		if inq, ok := m.inquiries[inqID]; ok && inq.PropertyID == id {
			delete(m.inquiries, inqID)
		}
	}
	m.inquiryOrder = compactInquiryOrder(m.inquiryOrder, m.inquiries)
	delete(m.properties, id)
	filtered := m.propertyOrder[:0]
	for _, pid := range m.propertyOrder {
		if pid != id {
			filtered = append(filtered, pid)
		}
	}
	m.propertyOrder = filtered
	return true, nil
}

// IncrementPropertyViews adds one detail-page view. Unknown ids are a no-op.
func (m *MemoryStore) IncrementPropertyViews(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.properties[id]
	if !ok {
		return nil
	}
	p.Views++
	m.properties[id] = p
	return nil
}

// ListPropertiesBySeller returns the seller's listings with fresh inquiry
// counts.
func (m *MemoryStore) ListPropertiesBySeller(sellerID int64) ([]domain.SellerProperty, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.SellerProperty, 0)
	for _, id := range m.propertyOrder {
		p, ok := m.properties[id]
		if !ok || p.SellerID != sellerID {
			continue
		}
		count := 0
		for _, inq := range m.inquiries {
			if inq.PropertyID == id {
				count++
			}
		}
		res = append(res, domain.SellerProperty{
			Property:     m.hydrateLocked(id),
			InquiryCount: count,
		})
	}
	return res, nil
}

// AddPropertyImage stores an image. The property's first image is always
// main regardless of the caller's flag; a later image marked main demotes
// the previous main.
func (m *MemoryStore) AddPropertyImage(img domain.PropertyImage) (domain.PropertyImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing := m.imageIDsLocked(img.PropertyID)
	if len(existing) == 0 {
		img.IsMain = true
	} else if img.IsMain {
		for _, id := range existing {
			prev := m.images[id]
			prev.IsMain = false
			m.images[id] = prev
		}
	}
	m.nextImageID++
	img.ID = m.nextImageID
	m.images[img.ID] = img
	m.imageOrder = append(m.imageOrder, img.ID)
	return img, nil
}

// GetPropertyImage returns one image by ID.
func (m *MemoryStore) GetPropertyImage(id int64) (domain.PropertyImage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	img, ok := m.images[id]
	return img, ok, nil
}

// ListPropertyImages returns the property's images in storage order.
func (m *MemoryStore) ListPropertyImages(propertyID int64) ([]domain.PropertyImage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.imagesLocked(propertyID), nil
}

// DeletePropertyImage removes an image. When the main image goes away and
// siblings remain, the first survivor in storage order becomes main.
func (m *MemoryStore) DeletePropertyImage(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[id]
	if !ok {
		return false, nil
	}
	delete(m.images, id)
	m.imageOrder = compactOrder(m.imageOrder, m.images)
	if img.IsMain {
		if remaining := m.imageIDsLocked(img.PropertyID); len(remaining) > 0 {
			next := m.images[remaining[0]]
			next.IsMain = true
			m.images[next.ID] = next
		}
	}
	return true, nil
}

// SetMainPropertyImage promotes exactly the named image. It fails closed
// (no mutation) when the image is unknown or belongs to another property.
func (m *MemoryStore) SetMainPropertyImage(imageID, propertyID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img, ok := m.images[imageID]
	if !ok || img.PropertyID != propertyID {
		return false, nil
	}
	for _, id := range m.imageIDsLocked(propertyID) {
		sibling := m.images[id]
		sibling.IsMain = id == imageID
		m.images[id] = sibling
	}
	return true, nil
}

// GetPropertyFeatures returns the feature row when one has been written.
func (m *MemoryStore) GetPropertyFeatures(propertyID int64) (domain.PropertyFeatures, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.features[propertyID]
	return f, ok, nil
}

// UpdatePropertyFeatures upserts the feature row. Flags left nil default to
// false only on first creation; on update they keep their prior value.
func (m *MemoryStore) UpdatePropertyFeatures(propertyID int64, upd domain.FeatureUpdate) (domain.PropertyFeatures, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.features[propertyID]
	if !ok {
		f = domain.PropertyFeatures{PropertyID: propertyID}
	}
	applyFeatureUpdate(&f, upd)
	m.features[propertyID] = f
	return f, nil
}

// CreateInquiry stores a buyer inquiry, always unviewed and timestamped now.
func (m *MemoryStore) CreateInquiry(inq domain.Inquiry) (domain.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextInquiryID++
	inq.ID = m.nextInquiryID
	inq.IsViewed = false
	inq.CreatedAt = time.Now().UTC()
	m.inquiries[inq.ID] = inq
	m.inquiryOrder = append(m.inquiryOrder, inq.ID)
	return inq, nil
}

// GetInquiry returns one inquiry by ID.
func (m *MemoryStore) GetInquiry(id int64) (domain.Inquiry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inq, ok := m.inquiries[id]
	return inq, ok, nil
}

// ListInquiriesByProperty returns inquiries for one listing in insertion
// order.
func (m *MemoryStore) ListInquiriesByProperty(propertyID int64) ([]domain.Inquiry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Inquiry, 0)
	for _, id := range m.inquiryOrder {
		if inq, ok := m.inquiries[id]; ok && inq.PropertyID == propertyID {
			res = append(res, inq)
		}
	}
	return res, nil
}

// ListInquiriesBySeller resolves the seller's property ids and filters
// inquiries by membership. A seller with no listings gets an empty list.
func (m *MemoryStore) ListInquiriesBySeller(sellerID int64) ([]domain.Inquiry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	owned := make(map[int64]struct{})
	for id, p := range m.properties {
		if p.SellerID == sellerID {
			owned[id] = struct{}{}
		}
	}
	res := make([]domain.Inquiry, 0)
	for _, id := range m.inquiryOrder {
		inq, ok := m.inquiries[id]
		if !ok {
			continue
		}
		if _, mine := owned[inq.PropertyID]; mine {
			res = append(res, inq)
		}
	}
	return res, nil
}

// MarkInquiryViewed flips the viewed flag. Idempotent; false when unknown.
func (m *MemoryStore) MarkInquiryViewed(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inq, ok := m.inquiries[id]
	if !ok {
		return false, nil
	}
	inq.IsViewed = true
	m.inquiries[id] = inq
	return true, nil
}

// hydrateLocked builds the externally visible view of a property: the row
// plus its images and optional feature set. Caller holds at least a read
// lock and has checked existence.
func (m *MemoryStore) hydrateLocked(id int64) domain.Property {
	p := m.properties[id]
	p.Images = m.imagesLocked(id)
	if f, ok := m.features[id]; ok {
		featuresCopy := f
		p.Features = &featuresCopy
	} else {
		p.Features = nil
	}
	return p
}

func (m *MemoryStore) imagesLocked(propertyID int64) []domain.PropertyImage {
	res := make([]domain.PropertyImage, 0)
	for _, id := range m.imageOrder {
		if img, ok := m.images[id]; ok && img.PropertyID == propertyID {
			res = append(res, img)
		}
	}
	return res
}

func (m *MemoryStore) imageIDsLocked(propertyID int64) []int64 {
	ids := make([]int64, 0)
	for _, id := range m.imageOrder {
		if img, ok := m.images[id]; ok && img.PropertyID == propertyID {
			ids = append(ids, id)
		}
	}
	return ids
}

func applyFeatureUpdate(f *domain.PropertyFeatures, upd domain.FeatureUpdate) {
	if upd.HasPool != nil {
		f.HasPool = *upd.HasPool
	}
	if upd.HasGarden != nil {
		f.HasGarden = *upd.HasGarden
	}
	if upd.HasGarage != nil {
		f.HasGarage = *upd.HasGarage
	}
	if upd.HasBalcony != nil {
		f.HasBalcony = *upd.HasBalcony
	}
	if upd.HasAirConditioning != nil {
		f.HasAirConditioning = *upd.HasAirConditioning
	}
	if upd.HasGym != nil {
		f.HasGym = *upd.HasGym
	}
	if upd.HasSecuritySystem != nil {
		f.HasSecuritySystem = *upd.HasSecuritySystem
	}
	if upd.HasFireplace != nil {
		f.HasFireplace = *upd.HasFireplace
	}
}

func compactOrder(order []int64, live map[int64]domain.PropertyImage) []int64 {
	filtered := order[:0]
	for _, id := range order {
		if _, ok := live[id]; ok {
			filtered = append(filtered, id)
		}
	}
	return filtered
}

func compactInquiryOrder(order []int64, live map[int64]domain.Inquiry) []int64 {
	filtered := order[:0]
	for _, id := range order {
		if _, ok := live[id]; ok {
			filtered = append(filtered, id)
		}
	}
	return filtered
}
