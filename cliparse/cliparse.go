package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// MinJWTSecretLength is the shortest HMAC secret accepted for signing tokens.
const MinJWTSecretLength = 16

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	JWTSecret    string
	TokenTTL     time.Duration
	AdminEmails  []string
	CORSOrigins  []string
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS (case-insensitive)
func (c Config) IsAdminEmail(email string) bool {
	for _, e := range c.AdminEmails {
		if strings.EqualFold(e, email) {
			return true
		}
	}
	return false
}

// ParseFlags validates flags and fills in env fallbacks and defaults.
// A .env file in the working directory is loaded first; it never overrides
// variables that are already set.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Missing .env is fine
	_ = godotenv.Load()

	fs := flag.NewFlagSet("health-mate", flag.ContinueOnError)

	var tokenTTL, adminEmails, corsOrigins string

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&tokenTTL, "token-ttl", "", "Session token lifetime, e.g. 168h")
	fs.StringVar(&adminEmails, "admin-emails", "", "Comma-separated emails granted the admin role")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, fmt.Errorf("unsupported database type %q (use postgres or sqlite)", cfg.DatabaseType)
	}

	// Secret - MUST be provided, there is no built-in default
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}
	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return Config{}, fmt.Errorf("JWT_SECRET must be at least %d bytes", MinJWTSecretLength)
	}

	if tokenTTL == "" {
		tokenTTL = os.Getenv("TOKEN_TTL")
	}
	if tokenTTL == "" {
		cfg.TokenTTL = 7 * 24 * time.Hour
	} else {
		ttl, err := time.ParseDuration(tokenTTL)
		if err != nil || ttl <= 0 {
			return Config{}, errors.New("invalid TOKEN_TTL (expected a positive duration such as 168h)")
		}
		cfg.TokenTTL = ttl
	}

	if adminEmails == "" {
		adminEmails = os.Getenv("ADMIN_EMAILS")
	}
	cfg.AdminEmails = splitList(adminEmails)

	if corsOrigins == "" {
		corsOrigins = os.Getenv("CORS_ORIGINS")
	}
	cfg.CORSOrigins = splitList(corsOrigins)
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
