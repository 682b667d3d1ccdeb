package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	OAuth      OAuthConfig
	Cloudinary CloudinaryConfig
	Tracking   TrackingConfig
	Commission CommissionConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	BaseURL      string // public site base, used to build referral links
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type OAuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type TrackingConfig struct {
	// ClickDedupWindow is how long a repeat click from the same
	// affiliate+IP pair is dropped.
	ClickDedupWindow time.Duration
	RateLimit        int
	RateWindow       time.Duration
}

type CommissionConfig struct {
	// DefaultRate applies when neither the program nor the affiliate
	// carries an explicit commission rate.
	DefaultRate decimal.Decimal
	MinPayout   decimal.Decimal
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         envStr("PORT", "8080"),
			Env:          envStr("APP_ENV", "development"),
			BaseURL:      envStr("APP_BASE_URL", "http://localhost:8080"),
			ReadTimeout:  envDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: envDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             envStr("DATABASE_DSN", "root:@tcp(localhost:3306)/afiliasi?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    envInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    envInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: envDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessSecret:  envStr("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: envStr("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  envDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: envDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),
			Issuer:        envStr("JWT_ISSUER", "afiliasi"),
		},
		OAuth: OAuthConfig{
			GoogleClientID:     envStr("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: envStr("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  envStr("GOOGLE_REDIRECT_URL", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: envStr("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    envStr("CLOUDINARY_API_KEY", ""),
			APISecret: envStr("CLOUDINARY_API_SECRET", ""),
		},
		Tracking: TrackingConfig{
			ClickDedupWindow: envDuration("CLICK_DEDUP_WINDOW", 5*time.Minute),
			RateLimit:        envInt("RATE_LIMIT", 100),
			RateWindow:       envDuration("RATE_WINDOW", time.Minute),
		},
		Commission: CommissionConfig{
			DefaultRate: envDecimal("DEFAULT_COMMISSION_RATE", decimal.NewFromFloat(10.00)),
			MinPayout:   envDecimal("MIN_PAYOUT_AMOUNT", decimal.NewFromInt(10000)),
		},
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return fallback
}
