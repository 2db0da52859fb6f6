// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

Two drivers are supported, selected by DATABASE_TYPE:

  - postgres: github.com/lib/pq, used in production
  - sqlite: modernc.org/sqlite, used for local development and tests

	conn, err := db.Open(db.DriverPostgres, cfg.DatabaseURL)

Queries use $N placeholders, which both drivers accept.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, db.DriverPostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: Accounts with bcrypt password hashes and a role (user or admin)
  - chats: Saved assistant conversations; messages are a JSON array
  - subscriptions: At most one plan per user
  - appointments: Specialist bookings in fixed hourly slots

# Relationships

	users 1──* chats
	users 1──1 subscriptions
	users 1──* appointments

All foreign keys use ON DELETE CASCADE.

# Constraint Errors

IsUniqueViolation recognizes duplicate-key errors from either driver, so
handlers can map them to 400/409 responses without matching error strings.
*/
package db
