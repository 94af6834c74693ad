package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"propertyhub/internal/app"
	"propertyhub/internal/auth"
	"propertyhub/internal/config"
	"propertyhub/internal/server"
	"propertyhub/internal/storage"
	"propertyhub/internal/store"
	"propertyhub/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	sessionTTL, err := config.ParseSessionTTL(cfg.SessionTTL)
	if err != nil {
		log.Fatalf("failed to parse session TTL: %v", err)
	}

	util.InitLogger(cfg.LogLevel)

	st, err := newStore(cfg)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	images, uploadsDir, err := newImageStorage(cfg)
	if err != nil {
		log.Fatalf("failed to init image storage: %v", err)
	}
	sessions, err := auth.NewSessions(cfg.JWTSecret, sessionTTL)
	if err != nil {
		log.Fatalf("failed to init sessions: %v", err)
	}

	appCore := app.New(st, sessions, images)
	if cfg.DatabaseURL == "" && cfg.DemoSeed {
		if err := appCore.SeedDemo(); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		slog.Info("demo data seeded", "username", app.DemoUsername)
	}

	httpServer, err := server.New(server.Config{
		App:                       appCore,
		RedisAddr:                 cfg.RedisAddr,
		RedisPassword:             cfg.RedisPassword,
		AuthRateLimitPerMinute:    cfg.AuthRateLimitPerMinute,
		InquiryRateLimitPerMinute: cfg.InquiryRateLimitPerMinute,
		TrustedProxyCIDRs:         cfg.TrustedProxyCIDRs,
		MaxUploadBytes:            cfg.MaxUploadBytes,
		MaxUploadFiles:            cfg.MaxUploadFiles,
		UploadsDir:                uploadsDir,
	})
	if err != nil {
		log.Fatalf("failed to init server: %v", err)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		slog.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if err := group.Wait(); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

// newStore picks the backend: Postgres when a database URL is configured,
// the in-memory store otherwise.
func newStore(cfg config.FileConfig) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		slog.Info("using in-memory store")
		return store.NewMemoryStore(), nil
	}
	slog.Info("using postgres store")
	return store.NewGormStore(cfg.DatabaseURL)
}

// newImageStorage returns the storage backend and, for the file driver, the
// directory the server should expose under /uploads/.
func newImageStorage(cfg config.FileConfig) (storage.ImageStorage, string, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMinio:
		images, err := storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.MinioPublicURL,
		})
		if err != nil {
			return nil, "", err
		}
		return images, "", nil
	default:
		files, err := storage.NewFileStore(cfg.UploadDir)
		if err != nil {
			return nil, "", err
		}
		return files, files.Dir(), nil
	}
}
