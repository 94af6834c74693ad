package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"propertyhub/internal/app"
	"propertyhub/internal/domain"
)

const maxJSONBody = 1 << 20

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// propertyRequest is the create/update payload: the listing fields plus the
// optional feature flags, edited through the same endpoint.
type propertyRequest struct {
	domain.Property
	Features *domain.FeatureUpdate `json:"features"`
}

type propertyPatchRequest struct {
	domain.PropertyUpdate
	Features *domain.FeatureUpdate `json:"features"`
}

type addImageRequest struct {
	ImageURL string `json:"imageUrl"`
	IsMain   bool   `json:"isMain"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, s.authLimiter, "too many signup attempts") {
		s.audit(r, "auth.register", "rate_limited")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res, err := s.app.Register(req.Username, req.Password)
	if err != nil {
		s.audit(r, "auth.register", "fail", "reason", err.Error())
		writeAppError(w, r, err)
		return
	}
	s.audit(r, "auth.register", "success", "user_id", res.User.ID)
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, s.authLimiter, "too many login attempts") {
		s.audit(r, "auth.login", "rate_limited")
		return
	}
	var req credentialsRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	res, err := s.app.Login(req.Username, req.Password)
	if err != nil {
		s.audit(r, "auth.login", "fail", "reason", err.Error())
		writeAppError(w, r, err)
		return
	}
	s.audit(r, "auth.login", "success", "user_id", res.User.ID)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	props, err := s.app.ListProperties(filter)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": props,
		"count": len(props),
	})
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	prop, err := s.app.GetProperty(id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, prop)
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request, user domain.User) {
	var req propertyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	created, err := s.app.CreateProperty(user.ID, req.Property, req.Features)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req propertyPatchRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	updated, err := s.app.UpdateProperty(user.ID, id, req.PropertyUpdate, req.Features)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProperty(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.app.DeleteProperty(user.ID, id); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSellerProperties(w http.ResponseWriter, r *http.Request, user domain.User) {
	sellerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	props, err := s.app.SellerProperties(user.ID, sellerID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": props,
		"count": len(props),
	})
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	imgs, err := s.app.PropertyImages(id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": imgs,
		"count": len(imgs),
	})
}

// handleAddImages accepts either a JSON body referencing an already-hosted
// image, or a multipart form with one or more files in the "images" field.
func (s *Server) handleAddImages(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		s.handleUploadImages(w, r, user, id)
		return
	}
	var req addImageRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	img, err := s.app.AddImageFromURL(user.ID, id, req.ImageURL, req.IsMain)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

func (s *Server) handleUploadImages(w http.ResponseWriter, r *http.Request, user domain.User, propertyID int64) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes*int64(s.maxUploadFiles))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "at least one file is required (field: images)")
		return
	}
	if len(files) > s.maxUploadFiles {
		writeError(w, http.StatusBadRequest, "too many files in one upload")
		return
	}
	created := make([]domain.PropertyImage, 0, len(files))
	for _, header := range files {
		if header.Size > s.maxUploadBytes {
			writeError(w, http.StatusBadRequest, "file too large: "+header.Filename)
			return
		}
		file, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file: "+header.Filename)
			return
		}
		img, err := s.app.SaveImageUpload(r.Context(), user.ID, propertyID, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
		file.Close()
		if err != nil {
			writeAppError(w, r, err)
			return
		}
		created = append(created, img)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"items": created,
		"count": len(created),
	})
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.app.DeleteImage(user.ID, id); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSetMainImage(w http.ResponseWriter, r *http.Request, user domain.User) {
	propertyID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	imageID, err := pathID(r, "imageId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.app.SetMainImage(user.ID, propertyID, imageID); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleCreateInquiry(w http.ResponseWriter, r *http.Request) {
	if !s.allowRate(w, r, s.inquiryLimiter, "too many inquiries") {
		s.audit(r, "inquiry.create", "rate_limited")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req domain.Inquiry
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	inq, err := s.app.CreateInquiry(id, req)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inq)
}

func (s *Server) handlePropertyInquiries(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	inqs, err := s.app.PropertyInquiries(user.ID, id)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": inqs,
		"count": len(inqs),
	})
}

func (s *Server) handleSellerInquiries(w http.ResponseWriter, r *http.Request, user domain.User) {
	sellerID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	inqs, err := s.app.SellerInquiries(user.ID, sellerID)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": inqs,
		"count": len(inqs),
	})
}

func (s *Server) handleMarkInquiryViewed(w http.ResponseWriter, r *http.Request, user domain.User) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.app.MarkInquiryViewed(user.ID, id); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// parseFilter reads the catalog search parameters. Blank values and the
// "any" sentinel skip their predicate.
func parseFilter(q url.Values) (domain.PropertyFilter, error) {
	filter := domain.PropertyFilter{
		Location:     q.Get("location"),
		PropertyType: q.Get("propertyType"),
		ListingType:  q.Get("listingType"),
		Status:       q.Get("status"),
	}
	var err error
	if filter.MinPrice, err = floatParam(q, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = floatParam(q, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.MinBathrooms, err = floatParam(q, "minBathrooms"); err != nil {
		return filter, err
	}
	if filter.MinBedrooms, err = intParam(q, "minBedrooms"); err != nil {
		return filter, err
	}
	if filter.MinSquareFeet, err = intParam(q, "minSquareFeet"); err != nil {
		return filter, err
	}
	if filter.MinYearBuilt, err = intParam(q, "minYearBuilt"); err != nil {
		return filter, err
	}
	for _, raw := range q["features"] {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				filter.Features = append(filter.Features, name)
			}
		}
	}
	return filter, nil
}

func floatParam(q url.Values, name string) (*float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &app.ValidationError{Fields: map[string]string{name: "must be a number"}}
	}
	return &n, nil
}

func intParam(q url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &app.ValidationError{Fields: map[string]string{name: "must be an integer"}}
	}
	return &n, nil
}
