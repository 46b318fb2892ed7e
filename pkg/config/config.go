package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string

	ServerPort int

	DatabaseURL string
	DBDriver    string

	JWTSecret  []byte
	SessionTTL time.Duration

	LogLevel string

	LoginDelay    time.Duration
	CheckoutDelay time.Duration

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	CloudinaryURL string

	CORSOrigins []string
	CSRF        bool
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "vivero"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: EnvDefault("DATABASE_URL", "vivero.db"),
		DBDriver:    EnvDefault("DB_DRIVER", "pgx"),

		JWTSecret:  []byte(os.Getenv("JWT_SECRET")),
		SessionTTL: EnvDurationDefault("SESSION_TTL", 24*time.Hour),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),

		LoginDelay:    EnvDurationDefault("LOGIN_DELAY", 500*time.Millisecond),
		CheckoutDelay: EnvDurationDefault("CHECKOUT_DELAY", 2*time.Second),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),

		CORSOrigins: CSV(os.Getenv("CORS_ORIGINS")),
		CSRF:        EnvBoolDefault("CSRF_ENABLED", false),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// EnvDurationDefault accepts Go durations ("750ms") or a bare number of
// milliseconds ("750").
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if ms, err := strconv.Atoi(v); err == nil {
		if ms < 0 {
			return def
		}
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}
