package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AdapterTypePGXPool = "pgx.pool"
	AdapterTypeSQLDB   = "sql.db"
	AdapterTypeSQLXDB  = "sqlx.db"

	EnginePostgres = "postgres"
	EngineMemory   = "memory"

	envDatabaseDSN        = "LOANS_DATABASE_DSN"
	envReplicaDSN         = "LOANS_REPLICA_DSN"
	envAdapterType        = "LOANS_ADAPTER_TYPE"
	envStoreEngine        = "LOANS_STORE_ENGINE"
	envHTTPAddr           = "LOANS_HTTP_ADDR"
	envCORSOrigins        = "LOANS_CORS_ORIGINS"
	envRequestsPerMinute  = "LOANS_REQUESTS_PER_MINUTE"
	envRedisAddr          = "LOANS_REDIS_ADDR"
	envRedisPassword      = "LOANS_REDIS_PASSWORD"
	envCatalogBaseURL     = "LOANS_CATALOG_BASE_URL"
	envCatalogRatePerSec  = "LOANS_CATALOG_RATE_PER_SECOND"
	envMaxExtensions      = "LOANS_MAX_EXTENSIONS"
	envLogLevel           = "LOANS_LOG_LEVEL"
	envObservability      = "LOANS_OBSERVABILITY_ENABLED"
	defaultHTTPAddr       = ":8080"
	defaultCatalogBaseURL = "https://www.googleapis.com/books/v1"
	defaultServiceName    = "loan-lifecycle"
)

var (
	ErrReadingConfigFileFailed = errors.New("reading config file failed")
	ErrParsingConfigFailed     = errors.New("parsing config failed")
	ErrInvalidConfig           = errors.New("invalid config")
)

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	CORSOrigins       []string `yaml:"corsOrigins"`
	RequestsPerMinute int      `yaml:"requestsPerMinute"`
}

type DatabaseConfig struct {
	// Engine selects the loan store: "postgres" or "memory".
	Engine            string `yaml:"engine"`
	DSN               string `yaml:"dsn"`
	ReplicaDSN        string `yaml:"replicaDsn"`
	AdapterType       string `yaml:"adapterType"`
	LoanTable         string `yaml:"loanTable"`
	NotificationTable string `yaml:"notificationTable"`
	CreateSchema      bool   `yaml:"createSchema"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CatalogConfig struct {
	BaseURL           string        `yaml:"baseUrl"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	Timeout           time.Duration `yaml:"timeout"`
}

type LendingConfig struct {
	// MaxExtensions caps how often one loan may be extended. Zero means unlimited.
	MaxExtensions int `yaml:"maxExtensions"`
}

type ObservabilityConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"serviceName"`
	LogLevel    string `yaml:"logLevel"`
}

// Config is the complete process configuration of the loan server.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Lending       LendingConfig       `yaml:"lending"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// Default returns the configuration used when no file and no environment overrides are present.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:              defaultHTTPAddr,
			CORSOrigins:       []string{"http://localhost:5173"},
			RequestsPerMinute: 30,
		},
		Database: DatabaseConfig{
			Engine:            EnginePostgres,
			DSN:               PostgresDefaultDSN(),
			AdapterType:       AdapterTypePGXPool,
			LoanTable:         "loan_requests",
			NotificationTable: "loan_notifications",
			CreateSchema:      true,
		},
		Catalog: CatalogConfig{
			BaseURL:           defaultCatalogBaseURL,
			RequestsPerSecond: 5,
			Timeout:           5 * time.Second,
		},
		Observability: ObservabilityConfig{
			ServiceName: defaultServiceName,
			LogLevel:    "info",
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path (skipped if path is empty),
// the optional .env file at envFile, and the environment. The result is validated.
func Load(path string, envFile string) (Config, error) {
	cfg := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadingConfigFileFailed, err)
		}

		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return Config{}, errors.Join(ErrParsingConfigFailed, err)
		}
	}

	if envFile != "" {
		// a missing .env file is fine, the process environment still applies
		_ = godotenv.Load(envFile)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Parse reads a YAML document on top of the defaults without touching the environment.
func Parse(doc []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(doc, &cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfigFailed, err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	loadEnvString(&c.Database.DSN, envDatabaseDSN)
	loadEnvString(&c.Database.ReplicaDSN, envReplicaDSN)
	loadEnvString(&c.Database.AdapterType, envAdapterType)
	loadEnvString(&c.Database.Engine, envStoreEngine)
	loadEnvString(&c.HTTP.Addr, envHTTPAddr)
	loadEnvString(&c.Redis.Addr, envRedisAddr)
	loadEnvString(&c.Redis.Password, envRedisPassword)
	loadEnvString(&c.Catalog.BaseURL, envCatalogBaseURL)
	loadEnvString(&c.Observability.LogLevel, envLogLevel)

	if origins := os.Getenv(envCORSOrigins); origins != "" {
		c.HTTP.CORSOrigins = strings.Split(origins, ",")
	}

	if err := loadEnvInt(&c.HTTP.RequestsPerMinute, envRequestsPerMinute); err != nil {
		return err
	}

	if err := loadEnvInt(&c.Lending.MaxExtensions, envMaxExtensions); err != nil {
		return err
	}

	if err := loadEnvFloat(&c.Catalog.RequestsPerSecond, envCatalogRatePerSec); err != nil {
		return err
	}

	return loadEnvBool(&c.Observability.Enabled, envObservability)
}

// Validate rejects inconsistent values.
func (c Config) Validate() error {
	switch c.Database.Engine {
	case EngineMemory:
	case EnginePostgres:
		if err := c.Database.validatePostgres(); err != nil {
			return err
		}
	default:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("unknown store engine %q", c.Database.Engine))
	}

	if c.Lending.MaxExtensions < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("max extensions must not be negative"))
	}

	if c.HTTP.RequestsPerMinute < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("requests per minute must not be negative"))
	}

	if c.Catalog.RequestsPerSecond < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("catalog requests per second must not be negative"))
	}

	return nil
}

func (d DatabaseConfig) validatePostgres() error {
	switch d.AdapterType {
	case AdapterTypePGXPool, AdapterTypeSQLDB, AdapterTypeSQLXDB:
	default:
		return errors.Join(ErrInvalidConfig, fmt.Errorf("unknown adapter type %q", d.AdapterType))
	}

	if d.DSN == "" {
		return errors.Join(ErrInvalidConfig, errors.New("database dsn must not be empty"))
	}

	if d.ReplicaDSN != "" && d.AdapterType != AdapterTypePGXPool {
		return errors.Join(ErrInvalidConfig, errors.New("a replica is only supported with the pgx.pool adapter"))
	}

	return nil
}

func loadEnvString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func loadEnvInt(target *int, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return errors.Join(ErrParsingConfigFailed, fmt.Errorf("%s: %w", key, err))
	}

	*target = parsed

	return nil
}

func loadEnvFloat(target *float64, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return errors.Join(ErrParsingConfigFailed, fmt.Errorf("%s: %w", key, err))
	}

	*target = parsed

	return nil
}

func loadEnvBool(target *bool, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return errors.Join(ErrParsingConfigFailed, fmt.Errorf("%s: %w", key, err))
	}

	*target = parsed

	return nil
}
