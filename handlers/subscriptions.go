// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/danielhkuo/health-mate/auth"
	"github.com/danielhkuo/health-mate/cliparse"
	"github.com/danielhkuo/health-mate/middleware"
	"github.com/danielhkuo/health-mate/models"
)

// RenewalPeriod is the billing cycle applied on every purchase
const RenewalPeriod = 30 * 24 * time.Hour

// maxAmount is the first value the NUMERIC(10,2) amount column cannot hold
const maxAmount = 1e8

type SubscriptionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSubscriptionHandler(db *sql.DB, cfg cliparse.Config) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, cfg: cfg}
}

// CreateSubscription handles POST /api/subscriptions
// Creates the caller's subscription or switches its plan. Payment is
// simulated; card fields in the body are ignored and never stored.
func (h *SubscriptionHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.CreateSubscriptionRequest
	if !parseBody(w, r, &req) {
		return
	}

	if !req.Amount.Valid {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid amount format")
		return
	}
	amount := req.Amount.Value
	if amount < 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be a non-negative number")
		return
	}
	if amount >= maxAmount {
		middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be less than 100000000")
		return
	}
	if !isValidPlan(req.PlanType) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "planType must be one of: Free Plan, Basic Plan, Premium Plan")
		return
	}

	startDate := now()
	renewalDate := startDate.Add(RenewalPeriod)

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var userExists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, claims.UserID).Scan(&userExists); err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !userExists {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	// Check if user already has a subscription
	var existingID string
	err = tx.QueryRow(`
		SELECT id FROM subscriptions WHERE user_id = $1
	`, claims.UserID).Scan(&existingID)

	isUpdate := err != sql.ErrNoRows
	if err != nil && isUpdate {
		slog.Error("failed to query subscription", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if isUpdate {
		_, err = tx.Exec(`
			UPDATE subscriptions
			SET plan_type = $1, amount = $2, payment_status = $3, renewal_date = $4, updated_at = $5
			WHERE id = $6
		`, req.PlanType, amount, models.PaymentCompleted, renewalDate, startDate, existingID)
	} else {
		existingID = auth.NewID()
		_, err = tx.Exec(`
			INSERT INTO subscriptions
				(id, user_id, plan_type, amount, payment_status, start_date, renewal_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, existingID, claims.UserID, req.PlanType, amount, models.PaymentCompleted, startDate, renewalDate, startDate, startDate)
	}
	if err != nil {
		slog.Error("failed to save subscription", "error", err, "update", isUpdate)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save subscription")
		return
	}

	sub, err := scanSubscription(tx.QueryRow(subscriptionSelect+` WHERE id = $1`, existingID))
	if err != nil {
		slog.Error("failed to reload subscription", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save subscription")
		return
	}

	slog.Info("subscription saved", "subscription_id", sub.ID, "user_id", claims.UserID, "plan", sub.PlanType, "update", isUpdate)

	middleware.JSONResponse(w, http.StatusOK, models.CreateSubscriptionResponse{
		Success:      true,
		Message:      "Payment successful!",
		Subscription: sub,
	})
}

// GetMySubscription handles GET /api/subscriptions/me
// Responds with {"subscription": null} when the caller has none.
func (h *SubscriptionHandler) GetMySubscription(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	sub, err := scanSubscription(h.db.QueryRow(subscriptionSelect+` WHERE user_id = $1`, claims.UserID))
	if err == sql.ErrNoRows {
		middleware.JSONResponse(w, http.StatusOK, models.MySubscriptionResponse{Subscription: nil})
		return
	}
	if err != nil {
		slog.Error("failed to query subscription", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MySubscriptionResponse{Subscription: &sub})
}

const subscriptionSelect = `
	SELECT id, user_id, plan_type, amount, payment_status,
	       start_date, renewal_date, created_at, updated_at
	FROM subscriptions`

func scanSubscription(row *sql.Row) (models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.PlanType, &s.Amount, &s.PaymentStatus,
		&s.StartDate, &s.RenewalDate, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func isValidPlan(plan string) bool {
	for _, p := range models.Plans {
		if p.Name == plan {
			return true
		}
	}
	return false
}
