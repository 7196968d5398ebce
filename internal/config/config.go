package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Drivers for TABLE_DRIVER and STORAGE_DRIVER.
const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

// Config holds the startup parameters of the gateway.
type Config struct {
	Env      string
	HTTPPort string
	LogLevel string

	SupabaseURL       string
	SupabaseAnonKey   string
	SupabaseJWTSecret string
	BackendTimeout    time.Duration

	TableDriver string
	DatabaseURL string

	StorageDriver     string
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string

	AdaptersFile string

	MaxUploadSizeMB     int64
	GeoTimeout          time.Duration
	DamagePhotoRequired bool
	SupportPhone        string
	BootstrapTTL        time.Duration

	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the environment, and .env when present.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env not found, using the process environment: %v", err)
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:      env,
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SupabaseURL:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseAnonKey:   getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),

		TableDriver:   strings.ToLower(getEnv("TABLE_DRIVER", DriverREST)),
		DatabaseURL:   getDatabaseURL(),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverREST)),

		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", "auto"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicURL:       getEnv("S3_PUBLIC_URL", ""),

		AdaptersFile: getEnv("ADAPTERS_FILE", ""),
		SupportPhone: getEnv("SUPPORT_PHONE", ""),
	}

	cfg.BackendTimeout = mustParseDuration(getEnv("BACKEND_TIMEOUT", "15s"))
	cfg.MaxUploadSizeMB = mustParseInt64(getEnv("MAX_UPLOAD_MB", "10"))
	cfg.GeoTimeout = mustParseDuration(getEnv("GEO_TIMEOUT", "8s"))
	cfg.DamagePhotoRequired = mustParseBool(getEnv("DAMAGE_PHOTO_REQUIRED", "true"))
	cfg.BootstrapTTL = mustParseDuration(getEnv("BOOTSTRAP_TTL", "1h"))
	cfg.RateLimitLimit = mustParseInt64(getEnv("RATE_LIMIT_LIMIT", "60"))
	cfg.RateLimitPeriod = mustParseDuration(getEnv("RATE_LIMIT_PERIOD", "1m"))

	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS is required in production")
		}
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	} else {
		for _, origin := range strings.Split(originsStr, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.TableDriver {
	case DriverREST, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("config: unknown TABLE_DRIVER %q", c.TableDriver)
	}
	switch c.StorageDriver {
	case DriverREST, DriverS3, DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	needsSupabase := c.TableDriver == DriverREST || c.StorageDriver == DriverREST
	if needsSupabase && c.SupabaseURL == "" {
		if c.IsProduction() {
			return fmt.Errorf("config: SUPABASE_URL is required in production")
		}
		log.Printf("config: WARNING - SUPABASE_URL is empty, falling back to the in-memory backend")
		c.TableDriver, c.StorageDriver = DriverMemory, DriverMemory
	}
	if c.SupabaseURL != "" {
		if _, err := url.ParseRequestURI(c.SupabaseURL); err != nil {
			return fmt.Errorf("config: SUPABASE_URL: %w", err)
		}
	}

	if c.TableDriver == DriverPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config: DATABASE_URL is required with TABLE_DRIVER=postgres")
	}
	if c.StorageDriver == DriverS3 && c.S3Endpoint == "" {
		return fmt.Errorf("config: S3_ENDPOINT is required with STORAGE_DRIVER=s3")
	}

	if c.IsProduction() {
		if c.TableDriver == DriverMemory || c.StorageDriver == DriverMemory {
			return fmt.Errorf("config: the memory driver is not allowed in production")
		}
		if c.SupabaseJWTSecret != "" && len(c.SupabaseJWTSecret) < 32 {
			return fmt.Errorf("config: SUPABASE_JWT_SECRET must be at least 32 characters")
		}
	}
	if c.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// getEnv returns the variable or fallback.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getDatabaseURL returns DATABASE_URL, or builds one from the POSTGRESQL_* variables
// hosting platforms set.
func getDatabaseURL() string {
	if dbURL := getEnv("DATABASE_URL", ""); dbURL != "" {
		return dbURL
	}

	host := getEnv("POSTGRESQL_HOST", "")
	port := getEnv("POSTGRESQL_PORT", "5432")
	user := getEnv("POSTGRESQL_USER", "")
	password := getEnv("POSTGRESQL_PASSWORD", "")
	dbname := getEnv("POSTGRESQL_DBNAME", "")

	if host != "" && user != "" && dbname != "" {
		userInfo := url.UserPassword(user, password)
		return fmt.Sprintf("postgres://%s@%s:%s/%s?sslmode=require",
			userInfo.String(), host, port, dbname)
	}
	return ""
}

func mustParseDuration(v string) time.Duration {
	dur, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: cannot parse duration %q: %v", v, err)
	}
	return dur
}

func mustParseInt64(v string) int64 {
	num, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("config: cannot parse number %q: %v", v, err)
	}
	return num
}

func mustParseBool(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("config: cannot parse boolean %q: %v", v, err)
	}
	return b
}
