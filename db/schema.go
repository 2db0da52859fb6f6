// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, driver string) error {
	ddl, err := Schema(driver)
	if err != nil {
		return err
	}

	// SQLite drivers only run the first statement of a multi-statement Exec
	// reliably, so apply one statement at a time for both dialects.
	for _, stmt := range strings.Split(ddl, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Schema returns the DDL for the given driver. The two dialects differ only in
// column types; table and column names are identical so queries are shared.
func Schema(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return strings.NewReplacer("{{json}}", "JSONB", "{{money}}", "NUMERIC(10,2)", "{{ts}}", "TIMESTAMPTZ").Replace(schema), nil
	case DriverSQLite:
		return strings.NewReplacer("{{json}}", "TEXT", "{{money}}", "REAL", "{{ts}}", "TIMESTAMP").Replace(schema), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
    created_at {{ts}} NOT NULL
);

-- Chats
CREATE TABLE IF NOT EXISTS chats (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    bot_type TEXT NOT NULL,
    title TEXT NOT NULL,
    messages {{json}} NOT NULL,
    created_at {{ts}} NOT NULL,
    updated_at {{ts}} NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chats_user_created ON chats(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_chats_user_bot_type ON chats(user_id, bot_type);

-- Subscriptions (one per user)
CREATE TABLE IF NOT EXISTS subscriptions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
    plan_type TEXT NOT NULL,
    amount {{money}} NOT NULL,
    payment_status TEXT NOT NULL,
    start_date {{ts}} NOT NULL,
    renewal_date {{ts}} NOT NULL,
    created_at {{ts}} NOT NULL,
    updated_at {{ts}} NOT NULL
);

-- Appointments
CREATE TABLE IF NOT EXISTS appointments (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    specialist TEXT NOT NULL,
    appointment_date TEXT NOT NULL,
    appointment_time TEXT NOT NULL,
    reason TEXT NOT NULL,
    notes TEXT,
    status TEXT NOT NULL DEFAULT 'scheduled' CHECK (status IN ('scheduled', 'cancelled')),
    created_at {{ts}} NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_appointments_user ON appointments(user_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
    ON appointments(specialist, appointment_date, appointment_time)
    WHERE status = 'scheduled';
`
