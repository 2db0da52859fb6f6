// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/health-mate/cliparse"
	"github.com/danielhkuo/health-mate/middleware"
	"github.com/danielhkuo/health-mate/models"
)

const (
	// ActiveWindow bounds "active sessions": users with a chat this recent
	ActiveWindow = 24 * time.Hour
	recentLimit  = 10
	dateLayout   = "2006-01-02"
	timeLayout   = "15:04"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// Stats handles GET /api/admin/stats
// The counters are independent, so they are queried concurrently.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var stats models.AdminStats
	var paidUsers int
	var revenue float64

	cutoff := now().Add(-ActiveWindow)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		return h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalUsers)
	})
	g.Go(func() error {
		return h.db.QueryRowContext(ctx, `
			SELECT COUNT(DISTINCT user_id) FROM chats WHERE created_at > $1
		`, cutoff).Scan(&stats.ActiveSessions)
	})
	g.Go(func() error {
		return h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chats`).Scan(&stats.TotalChats)
	})
	g.Go(func() error {
		return h.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM subscriptions WHERE plan_type <> $1
		`, models.PlanFree).Scan(&paidUsers)
	})
	g.Go(func() error {
		return h.db.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(amount), 0) FROM subscriptions
		`).Scan(&revenue)
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to compute admin stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	stats.SubscriptionRate = subscriptionRate(paidUsers, stats.TotalUsers)
	stats.TotalRevenue = math.Round(revenue*100) / 100

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// Users handles GET /api/admin/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT u.id, u.name, u.email, u.role, u.created_at, COALESCE(s.plan_type, $1)
		FROM users u
		LEFT JOIN subscriptions s ON s.user_id = u.id
		ORDER BY u.created_at DESC
	`, models.PlanFree)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ref := now()
	users := []models.AdminUser{}
	for rows.Next() {
		var u models.AdminUser
		var createdAt time.Time
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &createdAt, &u.Plan); err != nil {
			slog.Error("failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		u.JoinDate = createdAt.UTC().Format(dateLayout)
		u.MemberFor = strings.TrimSpace(humanize.RelTime(createdAt, ref, "", ""))
		u.Status = "Active"
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminUsersResponse{Users: users})
}

// Activity handles GET /api/admin/activity
// Lists the most recent chats across all users.
func (h *AdminHandler) Activity(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, user_id, bot_type, created_at
		FROM chats
		ORDER BY created_at DESC
		LIMIT $1
	`, recentLimit)
	if err != nil {
		slog.Error("failed to query activity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ref := now()
	activity := []models.ActivityEntry{}
	for rows.Next() {
		var e models.ActivityEntry
		var botType string
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &e.UserID, &botType, &createdAt); err != nil {
			slog.Error("failed to scan activity", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		e.Event = "Chat with " + strings.ReplaceAll(botType, "-", " ")
		e.Date = createdAt.UTC().Format(dateLayout)
		e.Time = createdAt.UTC().Format(timeLayout)
		e.Ago = humanize.RelTime(createdAt, ref, "ago", "from now")
		e.Status = "Active"
		activity = append(activity, e)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate activity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminActivityResponse{Activity: activity})
}

// Subscriptions handles GET /api/admin/subscriptions
// Returns per-plan user counts and the latest subscriptions.
func (h *AdminHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	counts, err := h.planCounts(r)
	if err != nil {
		slog.Error("failed to count plans", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	plans := make([]models.PlanUsage, 0, len(models.Plans))
	for _, p := range models.Plans {
		plans = append(plans, models.PlanUsage{Name: p.Name, Users: counts[p.Name], Price: p.Price})
	}

	rows, err := h.db.QueryContext(r.Context(), `
		SELECT u.name, s.plan_type, s.start_date, s.renewal_date, s.amount
		FROM subscriptions s
		JOIN users u ON s.user_id = u.id
		ORDER BY s.created_at DESC
		LIMIT $1
	`, recentLimit)
	if err != nil {
		slog.Error("failed to query recent subscriptions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	recent := []models.RecentSubscription{}
	for rows.Next() {
		var rs models.RecentSubscription
		var start, renewal time.Time
		if err := rows.Scan(&rs.User, &rs.Plan, &start, &renewal, &rs.Amount); err != nil {
			slog.Error("failed to scan subscription", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		rs.StartDate = start.UTC().Format(dateLayout)
		rs.RenewalDate = renewal.UTC().Format(dateLayout)
		recent = append(recent, rs)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate subscriptions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminSubscriptionsResponse{
		Plans:               plans,
		RecentSubscriptions: recent,
	})
}

func (h *AdminHandler) planCounts(r *http.Request) (map[string]int, error) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT plan_type, COUNT(*) FROM subscriptions GROUP BY plan_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var plan string
		var n int
		if err := rows.Scan(&plan, &n); err != nil {
			return nil, err
		}
		counts[plan] = n
	}
	return counts, rows.Err()
}

// subscriptionRate is the rounded percentage of users on a paid plan
func subscriptionRate(paid, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(paid) * 100 / float64(total)))
}
