package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	SessionCookieName string
	CookieSecure      bool

	// MASTER impersonation cookie, signed independently of the session
	ImpersonationSecret     string
	ImpersonationCookieName string
	ImpersonationTTL        time.Duration

	CORSAllowedOrigins []string
	LoginRateLimit     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RecurrenceCron    string
	RecurrenceLockTTL time.Duration

	PosthogAPIKey   string
	PosthogEndpoint string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`

	OtelServiceName string
	OtelEndpoint    string
	OtelInsecure    bool
}

const insecureDefaultSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", insecureDefaultSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "clinihof")
	v.SetDefault("SESSION_COOKIE_NAME", "clinihof_session")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("IMPERSONATION_SECRET", "")
	v.SetDefault("IMPERSONATION_COOKIE_NAME", "clinihof_impersonation")
	v.SetDefault("IMPERSONATION_TTL", "4h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RECURRENCE_CRON", "")
	v.SetDefault("RECURRENCE_LOCK_TTL", "5m")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_REDIRECT_URL", "")
	v.SetDefault("OTEL_SERVICE_NAME", "clinihof-backend")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:             v.GetString("PGSQL_URL"),
		MigrationsPath:          v.GetString("MIGRATIONS_PATH"),
		Port:                    v.GetString("PORT"),
		IsProduction:            v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:           v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:               v.GetString("JWT_SECRET"),
		JWTIssuer:               v.GetString("JWT_ISSUER"),
		SessionCookieName:       v.GetString("SESSION_COOKIE_NAME"),
		CookieSecure:            v.GetBool("COOKIE_SECURE"),
		ImpersonationSecret:     v.GetString("IMPERSONATION_SECRET"),
		ImpersonationCookieName: v.GetString("IMPERSONATION_COOKIE_NAME"),
		CORSAllowedOrigins:      splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:          v.GetString("LOGIN_RATE_LIMIT"),
		RedisAddr:               v.GetString("REDIS_ADDR"),
		RedisPassword:           v.GetString("REDIS_PASSWORD"),
		RedisDB:                 v.GetInt("REDIS_DB"),
		RecurrenceCron:          v.GetString("RECURRENCE_CRON"),
		PosthogAPIKey:           v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:         v.GetString("POSTHOG_ENDPOINT"),
		GoogleClientID:          v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:      v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:       v.GetString("GOOGLE_REDIRECT_URL"),
		OtelServiceName:         v.GetString("OTEL_SERVICE_NAME"),
		OtelEndpoint:            v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelInsecure:            v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == insecureDefaultSecret {
		cfg.JWTSecret = insecureDefaultSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.ImpersonationSecret == "" {
		cfg.ImpersonationSecret = cfg.JWTSecret + ":impersonation"
		log.Println("Warning: IMPERSONATION_SECRET not set. Deriving it from JWT_SECRET.")
	}

	cfg.JWTExpiryDuration = parseDuration(v.GetString("JWT_EXPIRY_DURATION"), 12*time.Hour, "JWT_EXPIRY_DURATION")
	cfg.ImpersonationTTL = parseDuration(v.GetString("IMPERSONATION_TTL"), 4*time.Hour, "IMPERSONATION_TTL")
	cfg.RecurrenceLockTTL = parseDuration(v.GetString("RECURRENCE_LOCK_TTL"), 5*time.Minute, "RECURRENCE_LOCK_TTL")

	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign in will not function.")
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration, key string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
