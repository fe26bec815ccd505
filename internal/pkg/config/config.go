package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, secrets)
// - default: Values common across all environments (timezone, timeouts, limits)
// -----------------------------------------------------------------------------

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	Mongo     MongoConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"PORT" required:"true"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type MongoConfig struct {
	URI            string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017/?replicaSet=rs0"`
	Database       string        `envconfig:"MONGO_DATABASE" default:"equipment_reservation"`
	ConnectTimeout time.Duration `envconfig:"MONGO_CONNECT_TIMEOUT" default:"10s"`
	ReadTimeout    time.Duration `envconfig:"MONGO_READ_TIMEOUT" default:"5s"`
	WriteTimeout   time.Duration `envconfig:"MONGO_WRITE_TIMEOUT" default:"10s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID,X-Cache"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAMESITE" default:"Lax"`
}

// CacheConfig only governs catalog reads; availability is never cached.
type CacheConfig struct {
	CatalogTTL      time.Duration `envconfig:"CACHE_CATALOG_TTL" default:"30s"`
	CleanupInterval time.Duration `envconfig:"CACHE_CLEANUP_INTERVAL" default:"5m"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"RATE_LIMIT_RPS" default:"2"`
	Burst             int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return errors.New("DB_USER and DB_NAME are required for the postgres store")
		}
	case StoreDriverMongo:
		if c.Mongo.URI == "" {
			return errors.New("MONGO_URI is required for the mongo store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	return nil
}

func LoadConfig() (Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8889",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: time.Second,
		},
		Store: StoreConfig{
			Driver: StoreDriverPostgres,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error",
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
		},
		Cache: CacheConfig{
			CatalogTTL:      time.Second,
			CleanupInterval: time.Minute,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
		},
	}
}
