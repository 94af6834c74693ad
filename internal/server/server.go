package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"propertyhub/internal/app"
	"propertyhub/internal/domain"
	"propertyhub/internal/ratelimit"
	"propertyhub/internal/storage"
	"propertyhub/internal/util"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App                       *app.App
	RedisAddr                 string
	RedisPassword             string
	AuthRateLimitPerMinute    int
	InquiryRateLimitPerMinute int
	TrustedProxyCIDRs         []string
	MaxUploadBytes            int64
	MaxUploadFiles            int
	// UploadsDir, when set, is served statically under /uploads/.
	UploadsDir string
}

// Server exposes the marketplace HTTP API.
type Server struct {
	app            *app.App
	router         *mux.Router
	trusted        *util.TrustedProxies
	maxUploadBytes int64
	maxUploadFiles int
	uploadsDir     string
	authLimiter    *ratelimit.FixedWindowLimiter
	inquiryLimiter *ratelimit.FixedWindowLimiter
}

// New constructs the server with routes configured. Rate limiting is only
// active when a Redis address is configured; the demo setup runs without it.
func New(cfg Config) (*Server, error) {
	trusted, err := util.NewTrustedProxies(cfg.TrustedProxyCIDRs)
	if err != nil {
		return nil, fmt.Errorf("parse trusted proxies: %w", err)
	}
	s := &Server{
		app:            cfg.App,
		router:         mux.NewRouter(),
		trusted:        trusted,
		maxUploadBytes: cfg.MaxUploadBytes,
		maxUploadFiles: cfg.MaxUploadFiles,
		uploadsDir:     cfg.UploadsDir,
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = 10 << 20
	}
	if s.maxUploadFiles <= 0 {
		s.maxUploadFiles = 10
	}
	if cfg.RedisAddr != "" {
		authLimit := cfg.AuthRateLimitPerMinute
		if authLimit <= 0 {
			authLimit = 10
		}
		inquiryLimit := cfg.InquiryRateLimitPerMinute
		if inquiryLimit <= 0 {
			inquiryLimit = 20
		}
		newLimiter := func(name string, limit int) (*ratelimit.FixedWindowLimiter, error) {
			prefix := "propertyhub:ratelimit:" + name
			limiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, prefix, limit, time.Minute)
			if err != nil {
				return nil, fmt.Errorf("init %s limiter: %w", name, err)
			}
			return limiter, nil
		}
		if s.authLimiter, err = newLimiter("auth", authLimit); err != nil {
			return nil, err
		}
		if s.inquiryLimiter, err = newLimiter("inquiry", inquiryLimit); err != nil {
			return nil, err
		}
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler with the shared middleware applied.
func (s *Server) Router() http.Handler {
	var h http.Handler = s.router
	h = util.WithCORS(h)
	h = util.WithSecurityHeaders(h)
	h = util.WithRequestLog("propertyhub", h)
	h = util.WithRequestID(h)
	return h
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	// auth
	s.router.HandleFunc("/api/auth/register", s.handleRegister).Methods(http.MethodPost)
	s.router.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)

	// public catalog
	s.router.HandleFunc("/api/properties", s.handleListProperties).Methods(http.MethodGet)
	s.router.HandleFunc("/api/properties/{id:[0-9]+}", s.handleGetProperty).Methods(http.MethodGet)
	s.router.HandleFunc("/api/properties/{id:[0-9]+}/images", s.handleListImages).Methods(http.MethodGet)
	s.router.HandleFunc("/api/properties/{id:[0-9]+}/inquiries", s.handleCreateInquiry).Methods(http.MethodPost)

	// seller listings
	s.router.Handle("/api/properties", s.authenticated(s.handleCreateProperty)).Methods(http.MethodPost)
	s.router.Handle("/api/properties/{id:[0-9]+}", s.authenticated(s.handleUpdateProperty)).Methods(http.MethodPatch)
	s.router.Handle("/api/properties/{id:[0-9]+}", s.authenticated(s.handleDeleteProperty)).Methods(http.MethodDelete)
	s.router.Handle("/api/seller/{id:[0-9]+}/properties", s.authenticated(s.handleSellerProperties)).Methods(http.MethodGet)

	// images
	s.router.Handle("/api/properties/{id:[0-9]+}/images", s.authenticated(s.handleAddImages)).Methods(http.MethodPost)
	s.router.Handle("/api/property-images/{id:[0-9]+}", s.authenticated(s.handleDeleteImage)).Methods(http.MethodDelete)
	s.router.Handle("/api/properties/{id:[0-9]+}/images/{imageId:[0-9]+}/main", s.authenticated(s.handleSetMainImage)).Methods(http.MethodPatch)

	// inquiries
	s.router.Handle("/api/properties/{id:[0-9]+}/inquiries", s.authenticated(s.handlePropertyInquiries)).Methods(http.MethodGet)
	s.router.Handle("/api/seller/{id:[0-9]+}/inquiries", s.authenticated(s.handleSellerInquiries)).Methods(http.MethodGet)
	s.router.Handle("/api/inquiries/{id:[0-9]+}/view", s.authenticated(s.handleMarkInquiryViewed)).Methods(http.MethodPatch)

	if s.uploadsDir != "" {
		s.router.PathPrefix(storage.URLPrefix).
			Handler(http.StripPrefix(storage.URLPrefix, http.FileServer(http.Dir(s.uploadsDir)))).
			Methods(http.MethodGet)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type authHandler func(http.ResponseWriter, *http.Request, domain.User)

func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.audit(r, "auth.token", "fail", "reason", "missing_token")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		user, err := s.app.UserFromToken(token)
		if err != nil {
			s.audit(r, "auth.token", "fail", "reason", "invalid_token")
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, user)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *Server) audit(r *http.Request, event, outcome string, attrs ...any) {
	logAttrs := []any{
		"event", event,
		"outcome", outcome,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", util.ClientIP(r, s.trusted),
	}
	logAttrs = append(logAttrs, attrs...)
	if outcome == "success" {
		slog.Info("security_event", logAttrs...)
		return
	}
	slog.Warn("security_event", logAttrs...)
}

// allowRate admits the request unless the limiter says otherwise. A nil
// limiter (no Redis configured) admits everything.
func (s *Server) allowRate(w http.ResponseWriter, r *http.Request, limiter *ratelimit.FixedWindowLimiter, msg string) bool {
	if limiter == nil {
		return true
	}
	key := r.URL.Path + "|" + util.ClientIP(r, s.trusted)
	if limiter.Allow(key) {
		return true
	}
	w.Header().Set("Retry-After", "60")
	writeError(w, http.StatusTooManyRequests, msg)
	return false
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeAppError translates application errors to their HTTP shape.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, app.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, app.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, app.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already taken")
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		slog.Error("request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", util.RequestIDFromRequest(r),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
