// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Health Mate API.

# Route Registration

NewRouter creates a configured handler with all endpoints, wrapped in CORS:

	handler := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Accounts (public):

	POST /api/register - Create account
	POST /api/login    - Exchange credentials for a bearer token

Everything below requires Authorization: Bearer <token>.

	GET /api/me - Current user

Chat history (only the caller's chats are visible):

	POST   /api/chats               - Save a conversation
	GET    /api/chats?botType=      - List conversations
	GET    /api/chats/{id}          - Conversation with messages
	PUT    /api/chats/{id}          - Rename
	PUT    /api/chats/{id}/messages - Replace transcript
	DELETE /api/chats/{id}          - Delete

Subscriptions:

	POST /api/subscriptions    - Subscribe or change plan
	GET  /api/subscriptions/me - Current plan or null

Appointments:

	GET  /api/appointments/slots       - Free slots for a date
	GET  /api/appointments             - Caller's scheduled bookings
	POST /api/appointments             - Book
	POST /api/appointments/{id}/cancel - Cancel

Admin (requires the admin role):

	GET /api/admin/stats
	GET /api/admin/users
	GET /api/admin/activity
	GET /api/admin/subscriptions

# Handler Initialization

All handlers receive the database connection and configuration:

	chatHandler := handlers.NewChatHandler(db, cfg)
*/
package router
