// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded before parsing. Values already
present in the process environment win over the file.

# Config Fields

  - Port: Server listen port (default: 5000)
  - DatabaseURL: PostgreSQL connection string or SQLite DSN (required)
  - DatabaseType: postgres or sqlite (default: postgres)
  - JWTSecret: HMAC secret for session tokens (required, at least 16 bytes)
  - TokenTTL: Session token lifetime (default: 168h)
  - AdminEmails: Accounts registered with these emails get the admin role
  - CORSOrigins: Allowed browser origins (default: *)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	--jwt-secret   JWT signing secret
	--token-ttl    Token lifetime
	--admin-emails Admin email list
	--cors-origins Allowed origins

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	JWT_SECRET    → --jwt-secret
	TOKEN_TTL     → --token-ttl
	ADMIN_EMAILS  → --admin-emails
	CORS_ORIGINS  → --cors-origins

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - JWT_SECRET must be provided; there is no built-in fallback
*/
package cliparse
