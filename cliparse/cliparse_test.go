// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef-test"

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ADMIN_EMAILS", "Root@Example.com, ops@example.com")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected default database type postgres, got %q", cfg.DatabaseType)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected default token TTL of 7 days, got %v", cfg.TokenTTL)
	}
	if !cfg.IsAdminEmail("root@example.com") || !cfg.IsAdminEmail("ops@example.com") {
		t.Errorf("expected admin emails to be parsed, got %v", cfg.AdminEmails)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("expected wildcard CORS origin, got %v", cfg.CORSOrigins)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-t", "sqlite", "-jwt-secret", testSecret, "-token-ttl", "1h"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("expected 1h token TTL, got %v", cfg.TokenTTL)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing database url", map[string]string{"JWT_SECRET": testSecret}, nil},
		{"missing jwt secret", map[string]string{"DATABASE_URL": "postgres://test"}, nil},
		{"short jwt secret", map[string]string{"DATABASE_URL": "postgres://test", "JWT_SECRET": "short"}, nil},
		{"bad port", map[string]string{"DATABASE_URL": "postgres://test", "JWT_SECRET": testSecret, "PORT": "abc"}, nil},
		{"bad ttl", map[string]string{"DATABASE_URL": "postgres://test", "JWT_SECRET": testSecret, "TOKEN_TTL": "-5m"}, nil},
		{"bad database type", map[string]string{"DATABASE_URL": "postgres://test", "JWT_SECRET": testSecret}, []string{"-t", "mysql"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "JWT_SECRET", "TOKEN_TTL"} {
				t.Setenv(k, "")
				os.Unsetenv(k)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
