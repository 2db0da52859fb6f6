// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/health-mate/auth"
	"github.com/danielhkuo/health-mate/cliparse"
	"github.com/danielhkuo/health-mate/db"
	"github.com/danielhkuo/health-mate/middleware"
	"github.com/danielhkuo/health-mate/models"
)

// bcrypt ignores input past 72 bytes
const maxPasswordBytes = 72

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// Register handles POST /api/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !parseBody(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	email := auth.NormalizeEmail(req.Email)

	// Validate input
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if !auth.ValidateEmail(email) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if len(req.Password) > maxPasswordBytes {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Password must be at most 72 bytes")
		return
	}

	// Check if email already exists
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error during registration")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	role := models.RoleUser
	if h.cfg.IsAdminEmail(email) {
		role = models.RoleAdmin
	}

	userID := auth.NewID()
	_, err = h.db.Exec(`
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, userID, name, email, hash, role, now())

	if err != nil {
		// Lost a race with a concurrent registration
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Email already registered")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	slog.Info("user registered", "user_id", userID, "role", role)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		Message: "User registered successfully!",
		User: models.PublicUser{
			ID:    userID,
			Name:  name,
			Email: email,
		},
	})
}

// Login handles POST /api/login
// Unknown email and wrong password get the same response.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !parseBody(w, r, &req) {
		return
	}

	email := auth.NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please fill in all fields")
		return
	}

	var user models.PublicUser
	var hash string
	err := h.db.QueryRow(`
		SELECT id, name, email, role, password_hash
		FROM users
		WHERE email = $1
	`, email).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &hash)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	if err := auth.CheckPassword(hash, req.Password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			slog.Error("failed to check password", "user_id", user.ID, "error", err)
		}
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, expiresAt, err := auth.IssueToken(user.ID, user.Email, user.Role, h.cfg.JWTSecret, h.cfg.TokenTTL, now())
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "remote", middleware.GetClientIP(r))

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Message:   "Login successful!",
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// Me handles GET /api/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var user models.PublicUser
	err := h.db.QueryRow(`
		SELECT id, name, email, role FROM users WHERE id = $1
	`, claims.UserID).Scan(&user.ID, &user.Name, &user.Email, &user.Role)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, user)
}
