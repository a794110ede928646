package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

type Config struct {
	Env      string
	LogLevel string
	LogFile  string
	PageSize int
	DB       DBConfig
}

// DBConfig holds the backing store connection parameters.
type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Path     string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	pageSize, err := strconv.Atoi(GetEnv("PAGE_SIZE", "2"))
	if err != nil || pageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be a positive integer, got %q", os.Getenv("PAGE_SIZE"))
	}

	cfg := &Config{
		Env:      GetEnv("ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		LogFile:  GetEnv("LOG_FILE", "./data/note-app.log"),
		PageSize: pageSize,
		DB: DBConfig{
			Driver:   GetEnv("DB_DRIVER", DriverPostgres),
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnv("DB_PORT", "5432"),
			Name:     GetEnv("DB_NAME", "Notes"),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD", ""),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
			Path:     GetEnv("DB_PATH", "./data/notes.db"),
		},
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", cfg.DB.Driver, DriverPostgres, DriverSQLite)
	}

	return cfg, nil
}

// DSN builds the data source name for the configured driver.
func (c DBConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

// Redacted returns a loggable description of the connection target.
func (c DBConfig) Redacted() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf("%s@%s/%s", c.User, net.JoinHostPort(c.Host, c.Port), c.Name)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
