// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Health Mate API server.

Health Mate is a health-assistant chat app. The browser talks to the hosted
language model directly; this server stores accounts, saved conversations,
subscriptions, and appointment bookings, and serves the admin dashboard.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... JWT_SECRET=... go run .

Or with flags against a local SQLite file:

	go run . -p 5000 -t sqlite -d "file:healthmate.db" -jwt-secret "..."

A .env file in the working directory is also read.

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string or SQLite DSN
  - JWT_SECRET (--jwt-secret): Secret for signing session tokens

Optional settings:

  - PORT (-p): Server port (default: 5000)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - TOKEN_TTL (--token-ttl): Session lifetime (default: 168h)
  - ADMIN_EMAILS (--admin-emails): Emails registered as admins
  - CORS_ORIGINS (--cors-origins): Allowed browser origins

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, chats, subscriptions, appointments, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: Bearer auth, CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Password hashing, session tokens, IDs
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
