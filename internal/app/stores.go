package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/agrox/fieldops/internal/backend"
	"github.com/agrox/fieldops/internal/backend/memstore"
	"github.com/agrox/fieldops/internal/backend/pgstore"
	"github.com/agrox/fieldops/internal/backend/s3store"
	"github.com/agrox/fieldops/internal/backend/supabase"
	"github.com/agrox/fieldops/internal/config"
	"github.com/agrox/fieldops/internal/http/handlers"
	"github.com/agrox/fieldops/internal/logger"
	"github.com/agrox/fieldops/internal/probe"
	"github.com/agrox/fieldops/internal/repository"
)

var errNoSupabase = errors.New("app: SUPABASE_URL is required for the rest driver")

// Stores are the backend drivers selected by configuration.
type Stores struct {
	Tables backend.TableStore
	Blobs  backend.BlobStore
	Auth   backend.Authenticator
	Checks map[string]handlers.Check
	Close  func()
}

// OpenStores connects the drivers named by TABLE_DRIVER and STORAGE_DRIVER.
// The memory driver gets the first candidate of every catalog resource.
func OpenStores(ctx context.Context, cfg *config.Config, catalog *probe.Catalog) (*Stores, error) {
	s := &Stores{Checks: map[string]handlers.Check{}, Close: func() {}}

	var rest *supabase.Client
	if cfg.SupabaseURL != "" {
		rest = supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.BackendTimeout)
		s.Auth = rest
	}

	var mem *memstore.Store
	memory := func() *memstore.Store {
		if mem == nil {
			mem = memstore.New("http://localhost:" + cfg.HTTPPort + "/files")
			if err := repository.DeclareSchema(mem, catalog); err != nil {
				logger.L().WithError(err).Error("memory schema incomplete")
			}
			mem.CreateFunction(repository.EnsureUserRowFunction)
		}
		return mem
	}

	switch cfg.TableDriver {
	case config.DriverREST:
		if rest == nil {
			return nil, errNoSupabase
		}
		s.Tables = rest
	case config.DriverPostgres:
		db, err := pgstore.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pg := pgstore.New(db)
		s.Tables = pg
		s.Checks["database"] = pg.Ping
		s.Close = func() {
			if err := db.Close(); err != nil {
				logger.L().WithError(err).Warn("close database")
			}
		}
	case config.DriverMemory:
		s.Tables = memory()
	default:
		return nil, fmt.Errorf("app: unknown table driver %q", cfg.TableDriver)
	}

	switch cfg.StorageDriver {
	case config.DriverREST:
		if rest == nil {
			return nil, errNoSupabase
		}
		s.Blobs = rest
	case config.DriverS3:
		s.Blobs = s3store.New(s3store.Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicURL:       cfg.S3PublicURL,
		})
	case config.DriverMemory:
		s.Blobs = memory()
	default:
		return nil, fmt.Errorf("app: unknown storage driver %q", cfg.StorageDriver)
	}

	if s.Auth == nil && mem != nil {
		s.Auth = mem
	}
	if s.Auth == nil && cfg.SupabaseJWTSecret == "" {
		return nil, fmt.Errorf("app: tokens cannot be verified: set SUPABASE_URL or SUPABASE_JWT_SECRET")
	}

	logger.With(logrus.Fields{
		"tables":  cfg.TableDriver,
		"storage": cfg.StorageDriver,
	}).Info("backend drivers ready")
	return s, nil
}
