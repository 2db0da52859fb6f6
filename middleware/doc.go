// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /api/chats", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status, duration_ms).

# Authentication

RequireAuth checks the Authorization: Bearer header and stores the token
claims in the request context:

	mux.HandleFunc("GET /api/chats", middleware.RequireAuth(secret, chatHandler.ListChats))

	claims, ok := middleware.ClaimsFromContext(r.Context())

A missing token is 401; an invalid or expired token is 403. RequireAdmin
additionally requires the admin role and must be nested inside RequireAuth.

# CORS Middleware

Enable cross-origin requests for the browser client:

	handler := middleware.CORS(cfg.CORSOrigins, mux)

Listed origins are echoed back with credentials allowed. A "*" entry answers
every other origin with a bare wildcard and no credentials, which is enough
for bearer-token clients. Allows methods GET, POST, PUT, DELETE,
OPTIONS with headers Content-Type and Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (capped at MaxBodyBytes):

	var req models.SaveChatRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
