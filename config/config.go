package config

import (
	"fmt"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	CONFIG_PATH = "./res/config.yaml"

	// DefaultPort is used when neither the config file nor the PORT
	// environment variable provides one.
	DefaultPort = "8099"
)

// ServiceConfig holds the configuration for the service. Values come from
// the YAML file first; matching environment variables override them.
type ServiceConfig struct {
	ServiceName string            `yaml:"service_name" env:"SERVICE_NAME" validate:"required"`
	LogLevel    string            `yaml:"loglevel" env:"LOG_LEVEL" validate:"required"`
	Host        string            `yaml:"host" env:"HOST"`
	Port        string            `yaml:"port" env:"PORT" validate:"required"`
	WWWDir      string            `yaml:"www_dir" env:"WWW_DIR"`
	Redirects   map[string]string `yaml:"redirects"`
	Session     SessionConfig     `yaml:"session" validate:"required"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Storage     Storage           `yaml:"storage" validate:"required"`
}

// SessionConfig holds the cookie and password hashing settings.
type SessionConfig struct {
	CookieName string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" validate:"required"`
	// HashScheme picks the digest for new records: sha256 (legacy format,
	// the default) or bcrypt.
	HashScheme string `yaml:"hash_scheme" env:"HASH_SCHEME" validate:"omitempty,oneof=sha256 bcrypt"`
}

// RateLimitConfig bounds the login form submission rate.
type RateLimitConfig struct {
	LoginRPS   float64 `yaml:"login_rps" env:"LOGIN_RPS"`
	LoginBurst int     `yaml:"login_burst" env:"LOGIN_BURST"`
}

type Storage struct {
	Type string `yaml:"type" env:"STORAGE_TYPE" validate:"required,oneof=file sqlite postgres mongo"`
	// For the flat credential file
	File FileConfig `yaml:"file_config" validate:"omitempty"`
	// For SQLite
	SQLite SQLiteConfig `yaml:"sqlite_config" validate:"omitempty"`
	// For PostgreSQL
	Postgres PostgresConfig `yaml:"postgres_config" validate:"omitempty"`
	// For MongoDB
	MongoDB MongoDBConfig `yaml:"mongodb_config" validate:"omitempty"`
}

type FileConfig struct {
	Path string `yaml:"path" env:"DATA_FILE"`
}

type SQLiteConfig struct {
	Path string `yaml:"path" env:"SQLITE_PATH"`
}

type PostgresConfig struct {
	DSN             string        `yaml:"dsn" env:"DATABASE_DSN"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type MongoDBConfig struct {
	DSN          string        `yaml:"dsn" env:"MONGO_DSN"`
	DatabaseName string        `yaml:"database_name"`
	Timeout      time.Duration `yaml:"timeout"`
}

// ReadLocalConfig reads the service configuration from a YAML file at the
// specified path, then overlays environment variables (a .env file is
// honored when present). If there is an error reading the file or
// unmarshaling the content, it returns an error.
func ReadLocalConfig(configPath string) (*ServiceConfig, error) {
	config := &ServiceConfig{}

	yamlFile, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	err = yaml.Unmarshal(yamlFile, config)
	if err != nil {
		return nil, err
	}

	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if config.Port == "" {
		config.Port = DefaultPort
	}

	return config, nil
}
