package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "folio.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "FOLIO_PORT")
	setString(&cfg.Server.CORSOrigin, "FOLIO_CORS_ORIGIN")
	setBool(&cfg.Server.TrustProxy, "FOLIO_TRUST_PROXY")
	setDuration(&cfg.Server.RequestTimeout, "FOLIO_REQUEST_TIMEOUT")

	setString(&cfg.Site.PrimaryHost, "FOLIO_PRIMARY_HOST")
	setString(&cfg.Site.Origin, "FOLIO_ORIGIN")

	setString(&cfg.Store.Backend, "FOLIO_STORE_BACKEND")
	setString(&cfg.Store.URL, "NATS_URL")
	setString(&cfg.Store.Bucket, "FOLIO_STORE_BUCKET")
	setInt(&cfg.Store.History, "FOLIO_STORE_HISTORY")
	setDuration(&cfg.Store.LookupTimeout, "FOLIO_STORE_LOOKUP_TIMEOUT")

	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "FOLIO_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "FOLIO_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "FOLIO_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "FOLIO_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "FOLIO_PG_HEALTH_CHECK")

	setBool(&cfg.Auth.Enabled, "FOLIO_AUTH_ENABLED")
	setString(&cfg.Auth.JWTSecret, "FOLIO_JWT_SECRET")
	setDuration(&cfg.Auth.AccessTokenExpiry, "FOLIO_ACCESS_TOKEN_EXPIRY")
	setInt(&cfg.Auth.BcryptCost, "FOLIO_BCRYPT_COST")

	setString(&cfg.Tenant.ClaimMode, "FOLIO_CLAIM_MODE")

	setInt64(&cfg.Cache.L1MaxSizeMB, "FOLIO_CACHE_L1_SIZE_MB")
	setDuration(&cfg.Cache.PublicTTL, "FOLIO_CACHE_PUBLIC_TTL")

	setInt(&cfg.Breaker.MaxFailures, "FOLIO_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "FOLIO_BREAKER_TIMEOUT")

	setFloat64(&cfg.Rate.RequestsPerSecond, "FOLIO_RATE_RPS")
	setInt(&cfg.Rate.Burst, "FOLIO_RATE_BURST")
	setDuration(&cfg.Rate.CleanupInterval, "FOLIO_RATE_CLEANUP_INTERVAL")
	setDuration(&cfg.Rate.MaxIdleTime, "FOLIO_RATE_MAX_IDLE_TIME")

	setInt64(&cfg.Import.MaxBytes, "FOLIO_IMPORT_MAX_BYTES")
	setInt(&cfg.Import.MaxConcurrent, "FOLIO_IMPORT_MAX_CONCURRENT")

	setString(&cfg.Logging.Level, "FOLIO_LOG_LEVEL")
	setString(&cfg.Logging.Service, "FOLIO_LOG_SERVICE")
	setBool(&cfg.Logging.Async, "FOLIO_LOG_ASYNC")

	setBool(&cfg.OTEL.Enabled, "FOLIO_OTEL_ENABLED")
	setString(&cfg.OTEL.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	setString(&cfg.OTEL.ServiceName, "OTEL_SERVICE_NAME")
	setBool(&cfg.OTEL.Insecure, "FOLIO_OTEL_INSECURE")
	setFloat64(&cfg.OTEL.SampleRate, "FOLIO_OTEL_SAMPLE_RATE")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Site.PrimaryHost == "" {
		return errors.New("site.primary_host is required")
	}
	switch cfg.Store.Backend {
	case StoreNATS:
		if cfg.Store.URL == "" {
			return errors.New("store.url is required for the nats backend")
		}
		if cfg.Store.Bucket == "" {
			return errors.New("store.bucket is required for the nats backend")
		}
		if cfg.Store.History < 1 || cfg.Store.History > 64 {
			return errors.New("store.history must be between 1 and 64")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", StoreNATS, StoreMemory, cfg.Store.Backend)
	}
	if cfg.Store.LookupTimeout <= 0 {
		return errors.New("store.lookup_timeout must be > 0")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Auth.Enabled && len(cfg.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwt_secret must be at least 32 characters when auth is enabled")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return errors.New("auth.bcrypt_cost must be between 4 and 31")
	}
	if cfg.Tenant.ClaimMode != ClaimOverwrite && cfg.Tenant.ClaimMode != ClaimExclusive {
		return fmt.Errorf("tenant.claim_mode must be %q or %q", ClaimOverwrite, ClaimExclusive)
	}
	if cfg.Cache.L1MaxSizeMB < 1 {
		return errors.New("cache.l1_max_size_mb must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Rate.Burst < 1 {
		return errors.New("rate.burst must be >= 1")
	}
	if cfg.Import.MaxBytes < 1 {
		return errors.New("import.max_bytes must be >= 1")
	}
	if cfg.Import.MaxConcurrent < 1 {
		return errors.New("import.max_concurrent must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
