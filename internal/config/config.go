package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StorageFile     StorageBackend = "file"
	StoragePostgres StorageBackend = "postgres"
)

type Config struct {
	Port string

	StorageBackend StorageBackend
	DataFile       string

	DBDriver   string // "pgx" or "postgres"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	TaskPoolBackend string // "sqlite" or "memory"
	TaskPoolDSN     string

	AuthEnabled       bool
	JWTSecret         string
	JWTIssuer         string
	JWTTTL            time.Duration
	AdminPasswordHash string

	RateLimitPerMinute int

	TimezoneOffsetHours int
	RolloverCronEnabled bool
	RolloverTime        string // HH:MM in the civil timezone
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v == "1" || strings.EqualFold(v, "true")
}

func getIntEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] Could not read .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port: getEnv("PORT", "8080"),

		StorageBackend: StorageBackend(getEnv("STORAGE_BACKEND", string(StorageFile))),
		DataFile:       getEnv("DATA_FILE", "data/weekly.json"),

		DBDriver:   getEnv("DB_DRIVER", "pgx"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "kanso_weekly"),

		RedisEnabled:  getBoolEnv("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		TaskPoolBackend: getEnv("TASK_POOL_BACKEND", "sqlite"),
		TaskPoolDSN:     getEnv("TASK_POOL_DSN", "data/tasks.db"),

		AuthEnabled:       getBoolEnv("AUTH_ENABLED", false),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTIssuer:         getEnv("JWT_ISSUER", "kanso-weekly-engine"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		RolloverCronEnabled: getBoolEnv("ROLLOVER_CRON_ENABLED", true),
		RolloverTime:        getEnv("ROLLOVER_TIME", "00:00"),
	}

	var err error

	if cfg.RedisDB, err = getIntEnv("REDIS_DB", 0); err != nil {
		return cfg, err
	}
	if cfg.RateLimitPerMinute, err = getIntEnv("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return cfg, err
	}
	if cfg.TimezoneOffsetHours, err = getIntEnv("TIMEZONE_OFFSET_HOURS", -5); err != nil {
		return cfg, err
	}

	ttlHours, err := getIntEnv("JWT_TTL_HOURS", 72)
	if err != nil {
		return cfg, err
	}
	cfg.JWTTTL = time.Duration(ttlHours) * time.Hour

	switch cfg.StorageBackend {
	case StorageMemory, StorageFile, StoragePostgres:
	default:
		return cfg, fmt.Errorf("STORAGE_BACKEND must be memory, file or postgres, got %q", cfg.StorageBackend)
	}

	switch cfg.DBDriver {
	case "pgx", "postgres":
	default:
		return cfg, fmt.Errorf("DB_DRIVER must be pgx or postgres, got %q", cfg.DBDriver)
	}

	if cfg.TimezoneOffsetHours < -12 || cfg.TimezoneOffsetHours > 14 {
		return cfg, fmt.Errorf("TIMEZONE_OFFSET_HOURS out of range: %d", cfg.TimezoneOffsetHours)
	}

	if cfg.AuthEnabled && (cfg.JWTSecret == "" || cfg.AdminPasswordHash == "") {
		return cfg, fmt.Errorf("AUTH_ENABLED requires JWT_SECRET and ADMIN_PASSWORD_HASH")
	}

	return cfg, nil
}

// PostgresDSN builds the connection string for both supported drivers.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
