package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"propertyhub/internal/domain"
)

// GormStore implements Store using GORM + Postgres. Compound operations
// (cascade delete, main-image swaps) run inside transactions so callers
// never observe partial state.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return NewGormStoreFromDB(db)
}

// NewGormStoreFromDB wraps an existing GORM handle (tests use sqlite here)
// and runs auto-migrations.
func NewGormStoreFromDB(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(
		&UserModel{},
		&PropertyModel{},
		&PropertyFeaturesModel{},
		&PropertyImageModel{},
		&InquiryModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateUser registers a user, rejecting duplicate usernames.
func (s *GormStore) CreateUser(username, passwordHash string) (domain.User, error) {
	model := UserModel{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUsernameTaken
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		return domain.User{}, err
	}
	return userFromModel(model), nil
}

// GetUser returns a user by ID.
func (s *GormStore) GetUser(id int64) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// GetUserByUsername looks up a user by username.
func (s *GormStore) GetUserByUsername(username string) (domain.User, bool, error) {
	var model UserModel
	if err := s.db.Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, err
	}
	return userFromModel(model), true, nil
}

// ListProperties returns hydrated listings in id order, narrowed by the
// filter. All predicates are combined into one AND clause so repeated
// builder calls can never clobber each other.
func (s *GormStore) ListProperties(filter domain.PropertyFilter) ([]domain.Property, error) {
	tx := s.db.Model(&PropertyModel{}).Order("id ASC")
	if conds, args := listConditions(filter); len(conds) > 0 {
		tx = tx.Where(strings.Join(conds, " AND "), args...)
	}
	var models []PropertyModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, err
	}
	return s.hydrate(models)
}

// GetProperty returns one hydrated listing without touching the view
// counter.
func (s *GormStore) GetProperty(id int64) (domain.Property, bool, error) {
	var model PropertyModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Property{}, false, nil
		}
		return domain.Property{}, false, err
	}
	hydrated, err := s.hydrate([]PropertyModel{model})
	if err != nil {
		return domain.Property{}, false, err
	}
	return hydrated[0], true, nil
}

// CreateProperty inserts a listing with zero views and fresh timestamps.
func (s *GormStore) CreateProperty(p domain.Property) (domain.Property, error) {
	now := time.Now().UTC()
	model := propertyToModel(p)
	model.ID = 0
	model.Views = 0
	model.CreatedAt = now
	model.UpdatedAt = now
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Property{}, err
	}
	created := propertyFromModel(model)
	created.Images = []domain.PropertyImage{}
	return created, nil
}

// UpdateProperty merges the provided fields and bumps updated_at.
func (s *GormStore) UpdateProperty(id int64, upd domain.PropertyUpdate) (domain.Property, bool, error) {
	updates := propertyUpdates(upd)
	updates["updated_at"] = time.Now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var model PropertyModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&PropertyModel{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Property{}, false, nil
		}
		return domain.Property{}, false, err
	}
	return s.GetProperty(id)
}

// DeleteProperty removes the listing with its features, images, and
// inquiries in one transaction.
func (s *GormStore) DeleteProperty(id int64) (bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var model PropertyModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&PropertyFeaturesModel{}, "property_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&PropertyImageModel{}, "property_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&InquiryModel{}, "property_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&PropertyModel{}, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IncrementPropertyViews adds one detail-page view. Unknown ids match no
// rows and stay a no-op.
func (s *GormStore) IncrementPropertyViews(id int64) error {
	return s.db.Model(&PropertyModel{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

// ListPropertiesBySeller returns the seller's listings with fresh inquiry
// counts computed at call time.
func (s *GormStore) ListPropertiesBySeller(sellerID int64) ([]domain.SellerProperty, error) {
	var models []PropertyModel
	if err := s.db.Where("seller_id = ?", sellerID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	hydrated, err := s.hydrate(models)
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int, len(models))
	if len(models) > 0 {
		ids := make([]int64, 0, len(models))
		for _, m := range models {
			ids = append(ids, m.ID)
		}
		type inquiryCount struct {
			PropertyID int64
			Total      int
		}
		var rows []inquiryCount
		err := s.db.Model(&InquiryModel{}).
			Select("property_id, COUNT(*) AS total").
			Where("property_id IN ?", ids).
			Group("property_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			counts[row.PropertyID] = row.Total
		}
	}
	res := make([]domain.SellerProperty, 0, len(hydrated))
	for _, p := range hydrated {
		res = append(res, domain.SellerProperty{
			Property:     p,
			InquiryCount: counts[p.ID],
		})
	}
	return res, nil
}

// AddPropertyImage inserts an image, enforcing the single-main invariant:
// a property's first image is always main, and a new main demotes the rest.
func (s *GormStore) AddPropertyImage(img domain.PropertyImage) (domain.PropertyImage, error) {
	model := PropertyImageModel{
		PropertyID: img.PropertyID,
		ImageURL:   img.ImageURL,
		IsMain:     img.IsMain,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&PropertyImageModel{}).Where("property_id = ?", img.PropertyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			model.IsMain = true
		} else if model.IsMain {
			if err := tx.Model(&PropertyImageModel{}).
				Where("property_id = ?", img.PropertyID).
				Update("is_main", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&model).Error
	})
	if err != nil {
		return domain.PropertyImage{}, err
	}
	return imageFromModel(model), nil
}

// GetPropertyImage returns one image by ID.
func (s *GormStore) GetPropertyImage(id int64) (domain.PropertyImage, bool, error) {
	var model PropertyImageModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PropertyImage{}, false, nil
		}
		return domain.PropertyImage{}, false, err
	}
	return imageFromModel(model), true, nil
}

// ListPropertyImages returns the property's images in storage order.
func (s *GormStore) ListPropertyImages(propertyID int64) ([]domain.PropertyImage, error) {
	var models []PropertyImageModel
	if err := s.db.Where("property_id = ?", propertyID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.PropertyImage, 0, len(models))
	for _, m := range models {
		res = append(res, imageFromModel(m))
	}
	return res, nil
}

// DeletePropertyImage removes an image; when the main image goes away the
// first survivor is promoted inside the same transaction.
func (s *GormStore) DeletePropertyImage(id int64) (bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var model PropertyImageModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&PropertyImageModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		if !model.IsMain {
			return nil
		}
		var next PropertyImageModel
		err := tx.Where("property_id = ?", model.PropertyID).Order("id ASC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&PropertyImageModel{}).Where("id = ?", next.ID).Update("is_main", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SetMainPropertyImage demotes every image of the property and promotes the
// named one, in one transaction. Fails closed on a bad image/property pair.
func (s *GormStore) SetMainPropertyImage(imageID, propertyID int64) (bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var model PropertyImageModel
		if err := tx.Where("id = ? AND property_id = ?", imageID, propertyID).First(&model).Error; err != nil {
			return err
		}
		if err := tx.Model(&PropertyImageModel{}).
			Where("property_id = ?", propertyID).
			Update("is_main", false).Error; err != nil {
			return err
		}
		return tx.Model(&PropertyImageModel{}).
			Where("id = ?", imageID).
			Update("is_main", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetPropertyFeatures returns the feature row when one has been written.
func (s *GormStore) GetPropertyFeatures(propertyID int64) (domain.PropertyFeatures, bool, error) {
	var model PropertyFeaturesModel
	if err := s.db.First(&model, "property_id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PropertyFeatures{}, false, nil
		}
		return domain.PropertyFeatures{}, false, err
	}
	return featuresFromModel(model), true, nil
}

// UpdatePropertyFeatures upserts the feature row: creation defaults unset
// flags to false, updates only touch the flags the caller named.
func (s *GormStore) UpdatePropertyFeatures(propertyID int64, upd domain.FeatureUpdate) (domain.PropertyFeatures, error) {
	var result PropertyFeaturesModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&result, "property_id = ?", propertyID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fresh := domain.PropertyFeatures{PropertyID: propertyID}
			applyFeatureUpdate(&fresh, upd)
			result = featuresToModel(fresh)
			return tx.Create(&result).Error
		}
		if err != nil {
			return err
		}
		updates := featureUpdates(upd)
		if len(updates) > 0 {
			if err := tx.Model(&PropertyFeaturesModel{}).
				Where("property_id = ?", propertyID).
				Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.First(&result, "property_id = ?", propertyID).Error
	})
	if err != nil {
		return domain.PropertyFeatures{}, err
	}
	return featuresFromModel(result), nil
}

// CreateInquiry stores a buyer inquiry, always unviewed and timestamped now.
func (s *GormStore) CreateInquiry(inq domain.Inquiry) (domain.Inquiry, error) {
	model := InquiryModel{
		PropertyID: inq.PropertyID,
		Name:       inq.Name,
		Email:      inq.Email,
		Phone:      inq.Phone,
		Message:    inq.Message,
		IsViewed:   false,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.Create(&model).Error; err != nil {
		return domain.Inquiry{}, err
	}
	return inquiryFromModel(model), nil
}

// GetInquiry returns one inquiry by ID.
func (s *GormStore) GetInquiry(id int64) (domain.Inquiry, bool, error) {
	var model InquiryModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Inquiry{}, false, nil
		}
		return domain.Inquiry{}, false, err
	}
	return inquiryFromModel(model), true, nil
}

// ListInquiriesByProperty returns inquiries for one listing in id order.
func (s *GormStore) ListInquiriesByProperty(propertyID int64) ([]domain.Inquiry, error) {
	var models []InquiryModel
	if err := s.db.Where("property_id = ?", propertyID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Inquiry, 0, len(models))
	for _, m := range models {
		res = append(res, inquiryFromModel(m))
	}
	return res, nil
}

// ListInquiriesBySeller filters inquiries by membership in the seller's
// property id set.
func (s *GormStore) ListInquiriesBySeller(sellerID int64) ([]domain.Inquiry, error) {
	owned := s.db.Model(&PropertyModel{}).Select("id").Where("seller_id = ?", sellerID)
	var models []InquiryModel
	if err := s.db.Where("property_id IN (?)", owned).Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Inquiry, 0, len(models))
	for _, m := range models {
		res = append(res, inquiryFromModel(m))
	}
	return res, nil
}

// MarkInquiryViewed flips the viewed flag. Idempotent; false when unknown.
func (s *GormStore) MarkInquiryViewed(id int64) (bool, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var model InquiryModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&InquiryModel{}).Where("id = ?", id).Update("is_viewed", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// hydrate attaches images and feature rows to loaded property models using
// two batched lookups.
func (s *GormStore) hydrate(models []PropertyModel) ([]domain.Property, error) {
	res := make([]domain.Property, 0, len(models))
	if len(models) == 0 {
		return res, nil
	}
	ids := make([]int64, 0, len(models))
	for _, m := range models {
		ids = append(ids, m.ID)
	}
	var imageModels []PropertyImageModel
	if err := s.db.Where("property_id IN ?", ids).Order("id ASC").Find(&imageModels).Error; err != nil {
		return nil, err
	}
	imagesByProperty := make(map[int64][]domain.PropertyImage)
	for _, m := range imageModels {
		imagesByProperty[m.PropertyID] = append(imagesByProperty[m.PropertyID], imageFromModel(m))
	}
	var featureModels []PropertyFeaturesModel
	if err := s.db.Where("property_id IN ?", ids).Find(&featureModels).Error; err != nil {
		return nil, err
	}
	featuresByProperty := make(map[int64]domain.PropertyFeatures, len(featureModels))
	for _, m := range featureModels {
		featuresByProperty[m.PropertyID] = featuresFromModel(m)
	}
	for _, m := range models {
		p := propertyFromModel(m)
		p.Images = imagesByProperty[m.ID]
		if p.Images == nil {
			p.Images = []domain.PropertyImage{}
		}
		if f, ok := featuresByProperty[m.ID]; ok {
			featuresCopy := f
			p.Features = &featuresCopy
		}
		res = append(res, p)
	}
	return res, nil
}

// listConditions translates the filter into one combined WHERE clause. The
// predicates mirror matchesFilter in filter.go; keep the two in lockstep.
func listConditions(f domain.PropertyFilter) ([]string, []any) {
	var conds []string
	var args []any
	if !filterSkipsValue(f.Location) {
		pattern := "%" + strings.ToLower(strings.TrimSpace(f.Location)) + "%"
		conds = append(conds, "(LOWER(address) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR LOWER(zip_code) LIKE ?)")
		args = append(args, pattern, pattern, pattern, pattern)
	}
	if !filterSkipsValue(f.PropertyType) {
		conds = append(conds, "property_type = ?")
		args = append(args, strings.TrimSpace(f.PropertyType))
	}
	if !filterSkipsValue(f.ListingType) {
		conds = append(conds, "listing_type = ?")
		args = append(args, strings.TrimSpace(f.ListingType))
	}
	if !filterSkipsValue(f.Status) {
		conds = append(conds, "status = ?")
		args = append(args, strings.TrimSpace(f.Status))
	}
	if f.MinPrice != nil {
		conds = append(conds, "CAST(price AS NUMERIC) >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "CAST(price AS NUMERIC) <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.MinBedrooms != nil {
		conds = append(conds, "bedrooms >= ?")
		args = append(args, *f.MinBedrooms)
	}
	if f.MinBathrooms != nil {
		conds = append(conds, "CAST(bathrooms AS NUMERIC) >= ?")
		args = append(args, *f.MinBathrooms)
	}
	if f.MinSquareFeet != nil {
		conds = append(conds, "square_feet >= ?")
		args = append(args, *f.MinSquareFeet)
	}
	if f.MinYearBuilt != nil {
		conds = append(conds, "(year_built IS NOT NULL AND year_built >= ?)")
		args = append(args, *f.MinYearBuilt)
	}
	if len(f.Features) > 0 {
		flagConds := make([]string, 0, len(f.Features))
		flagArgs := make([]any, 0, len(f.Features))
		valid := true
		for _, name := range f.Features {
			key, ok := domain.CanonicalFeature(name)
			if !ok {
				valid = false
				break
			}
			flagConds = append(flagConds, featureColumns[key]+" = ?")
			flagArgs = append(flagArgs, true)
		}
		if valid {
			conds = append(conds, "id IN (SELECT property_id FROM property_features WHERE "+strings.Join(flagConds, " AND ")+")")
			args = append(args, flagArgs...)
		} else {
			// Unknown feature names can never match.
			conds = append(conds, "1 = 0")
		}
	}
	return conds, args
}

var featureColumns = map[string]string{
	domain.FeaturePool:            "has_pool",
	domain.FeatureGarden:          "has_garden",
	domain.FeatureGarage:          "has_garage",
	domain.FeatureBalcony:         "has_balcony",
	domain.FeatureAirConditioning: "has_air_conditioning",
	domain.FeatureGym:             "has_gym",
	domain.FeatureSecuritySystem:  "has_security_system",
	domain.FeatureFireplace:       "has_fireplace",
}

func propertyUpdates(upd domain.PropertyUpdate) map[string]any {
	updates := make(map[string]any)
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.Price != nil {
		updates["price"] = *upd.Price
	}
	if upd.Address != nil {
		updates["address"] = *upd.Address
	}
	if upd.City != nil {
		updates["city"] = *upd.City
	}
	if upd.State != nil {
		updates["state"] = *upd.State
	}
	if upd.ZipCode != nil {
		updates["zip_code"] = *upd.ZipCode
	}
	if upd.PropertyType != nil {
		updates["property_type"] = *upd.PropertyType
	}
	if upd.ListingType != nil {
		updates["listing_type"] = *upd.ListingType
	}
	if upd.Bedrooms != nil {
		updates["bedrooms"] = *upd.Bedrooms
	}
	if upd.Bathrooms != nil {
		updates["bathrooms"] = *upd.Bathrooms
	}
	if upd.SquareFeet != nil {
		updates["square_feet"] = *upd.SquareFeet
	}
	if upd.YearBuilt != nil {
		updates["year_built"] = *upd.YearBuilt
	}
	if upd.Status != nil {
		updates["status"] = *upd.Status
	}
	return updates
}

func featureUpdates(upd domain.FeatureUpdate) map[string]any {
	updates := make(map[string]any)
	if upd.HasPool != nil {
		updates["has_pool"] = *upd.HasPool
	}
	if upd.HasGarden != nil {
		updates["has_garden"] = *upd.HasGarden
	}
	if upd.HasGarage != nil {
		updates["has_garage"] = *upd.HasGarage
	}
	if upd.HasBalcony != nil {
		updates["has_balcony"] = *upd.HasBalcony
	}
	if upd.HasAirConditioning != nil {
		updates["has_air_conditioning"] = *upd.HasAirConditioning
	}
	if upd.HasGym != nil {
		updates["has_gym"] = *upd.HasGym
	}
	if upd.HasSecuritySystem != nil {
		updates["has_security_system"] = *upd.HasSecuritySystem
	}
	if upd.HasFireplace != nil {
		updates["has_fireplace"] = *upd.HasFireplace
	}
	return updates
}

func userFromModel(m UserModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func propertyToModel(p domain.Property) PropertyModel {
	return PropertyModel{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		ZipCode:      p.ZipCode,
		PropertyType: p.PropertyType,
		ListingType:  p.ListingType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		SquareFeet:   p.SquareFeet,
		YearBuilt:    p.YearBuilt,
		Status:       p.Status,
		Views:        p.Views,
		SellerID:     p.SellerID,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func propertyFromModel(m PropertyModel) domain.Property {
	return domain.Property{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Price:        m.Price,
		Address:      m.Address,
		City:         m.City,
		State:        m.State,
		ZipCode:      m.ZipCode,
		PropertyType: m.PropertyType,
		ListingType:  m.ListingType,
		Bedrooms:     m.Bedrooms,
		Bathrooms:    m.Bathrooms,
		SquareFeet:   m.SquareFeet,
		YearBuilt:    m.YearBuilt,
		Status:       m.Status,
		Views:        m.Views,
		SellerID:     m.SellerID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func featuresToModel(f domain.PropertyFeatures) PropertyFeaturesModel {
	return PropertyFeaturesModel{
		PropertyID:         f.PropertyID,
		HasPool:            f.HasPool,
		HasGarden:          f.HasGarden,
		HasGarage:          f.HasGarage,
		HasBalcony:         f.HasBalcony,
		HasAirConditioning: f.HasAirConditioning,
		HasGym:             f.HasGym,
		HasSecuritySystem:  f.HasSecuritySystem,
		HasFireplace:       f.HasFireplace,
	}
}

func featuresFromModel(m PropertyFeaturesModel) domain.PropertyFeatures {
	return domain.PropertyFeatures{
		PropertyID:         m.PropertyID,
		HasPool:            m.HasPool,
		HasGarden:          m.HasGarden,
		HasGarage:          m.HasGarage,
		HasBalcony:         m.HasBalcony,
		HasAirConditioning: m.HasAirConditioning,
		HasGym:             m.HasGym,
		HasSecuritySystem:  m.HasSecuritySystem,
		HasFireplace:       m.HasFireplace,
	}
}

func imageFromModel(m PropertyImageModel) domain.PropertyImage {
	return domain.PropertyImage{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		ImageURL:   m.ImageURL,
		IsMain:     m.IsMain,
	}
}

func inquiryFromModel(m InquiryModel) domain.Inquiry {
	return domain.Inquiry{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Message:    m.Message,
		IsViewed:   m.IsViewed,
		CreatedAt:  m.CreatedAt,
	}
}
