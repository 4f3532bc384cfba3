package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	Lunch    LunchConfig
	Telegram TelegramConfig
	Log      LogConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN returns the postgres connection string for pgxpool.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
	)
}

type HTTPConfig struct {
	Address         string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimit       float64 // requests per second
	RateLimitBurst  int
}

type LunchConfig struct {
	Store         string // "postgres" or "memory"
	Timezone      string
	EventDaysFile string
	RegisterURL   string // link offered when no menu is registered
	AutoMigrate   bool
}

type TelegramConfig struct {
	Token string // optional; bot is disabled when empty
}

type LogConfig struct {
	Level  string
	Format string // "json" or "console"
}

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	DefaultTimezone    = "Asia/Seoul"
	DefaultRegisterURL = "http://lunch.hyungdew.com"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	httpPort, err := getEnvInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 200)
	if err != nil {
		return nil, err
	}
	shutdownSeconds, err := getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	readTimeout, err := getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	writeTimeout, err := getEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	rateLimit, err := strconv.ParseFloat(getEnv("RATE_LIMIT", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT: %w", err)
	}

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "lunch"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Address:         getEnv("HTTP_ADDRESS", ""),
			Port:            httpPort,
			ReadTimeout:     readTimeout,
			WriteTimeout:    writeTimeout,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: time.Duration(shutdownSeconds) * time.Second,
			RateLimit:       rateLimit,
			RateLimitBurst:  burst,
		},
		Lunch: LunchConfig{
			Store:         getEnv("LUNCH_STORE", StorePostgres),
			Timezone:      getEnv("LUNCH_TIMEZONE", DefaultTimezone),
			EventDaysFile: getEnv("EVENT_DAYS_FILE", ""),
			RegisterURL:   getEnv("REGISTER_URL", DefaultRegisterURL),
			AutoMigrate:   getEnvBool("AUTO_MIGRATE"),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TOKEN", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}, nil
}

// Location resolves the configured timezone used to decide what "today" is.
func (c LunchConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// getEnvBool accepts "1" or "true" (any case), like AUTO_MIGRATE always has.
func getEnvBool(key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	return v == "1" || strings.EqualFold(v, "true")
}
