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

// Config holds the configuration for the planner service.
type Config struct {
	Port string

	// Persistence
	StoreBackend string
	StateFile    string
	RedisAddr    string
	RedisDB      int
	MongoURI     string
	SQLitePath   string

	// Auth (optional)
	JWTSecret        string
	AuthPasswordHash string

	AllowedOrigins     []string
	RouteMissingCoords string

	// Place search
	NominatimServer  string
	SearchCitySuffix string
	SearchCacheTTL   time.Duration

	// ShareFragment seeds startup from a share link instead of stored state.
	ShareFragment string

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file and then builds the Config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment only")
	}
	return NewFromEnv()
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		StoreBackend:       strings.ToLower(getEnv("STORE_BACKEND", "memory")),
		StateFile:          getEnv("STATE_FILE", "./data/state.json"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		SQLitePath:         getEnv("SQLITE_PATH", "./data/planner.db"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AuthPasswordHash:   os.Getenv("AUTH_PASSWORD_HASH"),
		RouteMissingCoords: strings.ToLower(getEnv("ROUTE_MISSING_COORDS", "drop")),
		NominatimServer:    getEnv("NOMINATIM_SERVER", "https://nominatim.openstreetmap.org"),
		SearchCitySuffix:   getEnv("SEARCH_CITY_SUFFIX", "Matsuyama Japan"),
		SearchCacheTTL:     24 * time.Hour,
		ShareFragment:      strings.TrimPrefix(os.Getenv("SHARE_FRAGMENT"), "#"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
	}

	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if ttl := os.Getenv("SEARCH_CACHE_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SEARCH_CACHE_TTL value: %w", err)
		}
		cfg.SearchCacheTTL = d
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
		}
		cfg.RedisDB = n
	}

	switch cfg.RouteMissingCoords {
	case "drop", "append":
	default:
		return nil, fmt.Errorf("invalid ROUTE_MISSING_COORDS value %q: want drop or append", cfg.RouteMissingCoords)
	}

	switch cfg.StoreBackend {
	case "memory", "file", "sqlite":
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR environment variable not set")
		}
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGODB_URI environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	if cfg.AuthPasswordHash != "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	return cfg, nil
}

// AuthEnabled reports whether mutating routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AuthPasswordHash != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
