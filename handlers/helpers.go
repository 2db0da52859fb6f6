// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"time"

	"github.com/danielhkuo/health-mate/auth"
	"github.com/danielhkuo/health-mate/middleware"
)

// currentUser returns the token claims set by RequireAuth, writing a 401
// when they are absent (route registered without the middleware).
func currentUser(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "No token provided")
		return nil, false
	}
	return claims, true
}

// parseBody decodes the JSON body, answering 413 or 400 on failure
func parseBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		if middleware.IsBodyTooLarge(err) {
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

// now is the storage clock; all timestamps are written in UTC
func now() time.Time {
	return time.Now().UTC()
}
