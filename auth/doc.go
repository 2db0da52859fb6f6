// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens, and ID generation.

# Passwords

Passwords are stored only as bcrypt hashes:

	hash, err := auth.HashPassword(pw)
	err = auth.CheckPassword(hash, pw) // ErrPasswordMismatch on a wrong password

# Session Tokens

Tokens are HS256 JWTs carrying the user ID, email, and role:

	token, expiresAt, err := auth.IssueToken(id, email, role, secret, ttl, time.Now())
	claims, err := auth.ParseToken(token, secret)

The secret comes from configuration (JWT_SECRET); there is no default.
ParseToken rejects tokens signed with any other algorithm and returns
ErrExpiredToken or ErrInvalidToken on failure.

# ID Generation

Random UUIDs for database records:

	id := auth.NewID()

# Emails

NormalizeEmail lowercases and trims before storage and lookup, so logins
are case-insensitive. ValidateEmail rejects display-name forms and domains
without a dot.
*/
package auth
