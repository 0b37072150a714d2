package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr       string
	BackendURL string

	SessionSecret string
	SessionStore  string
	SessionTTL    time.Duration
	CookieSecure  bool

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RequestTimeout     time.Duration
	DashboardRefresh   time.Duration
	TestimonialRefresh time.Duration

	AllowOrigins string
	AuthRate     float64
}

// Session store kinds accepted by VEGRUIT_SESSION_STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Addr:       getEnvOrDefault("VEGRUIT_ADDR", ":8080"),
		BackendURL: strings.TrimRight(getEnvOrDefault("VEGRUIT_BACKEND_URL", "http://localhost:5000/api"), "/"),

		SessionSecret: os.Getenv("VEGRUIT_SESSION_SECRET"),
		SessionStore:  strings.ToLower(getEnvOrDefault("VEGRUIT_SESSION_STORE", StoreMemory)),
		SessionTTL:    getDuration("VEGRUIT_SESSION_TTL", 30*24*time.Hour),
		CookieSecure:  getBool("VEGRUIT_COOKIE_SECURE", false),

		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		RequestTimeout:     getDuration("VEGRUIT_REQUEST_TIMEOUT", 15*time.Second),
		DashboardRefresh:   getDuration("VEGRUIT_DASHBOARD_REFRESH", 30*time.Second),
		TestimonialRefresh: getDuration("VEGRUIT_TESTIMONIAL_REFRESH", 60*time.Second),

		AllowOrigins: getEnvOrDefault("VEGRUIT_ALLOW_ORIGINS", "*"),
		AuthRate:     getFloat("VEGRUIT_AUTH_RATE", 5),
	}
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

// getDuration accepts Go duration strings ("30s") or plain seconds ("30").
// Zero and negative values fall back to def.
func getDuration(key string, def time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		secs, err := strconv.Atoi(val)
		if err != nil {
			return def
		}
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return def
	}
	return b
}

func getInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return i
}

func getFloat(key string, def float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return def
	}
	return f
}
