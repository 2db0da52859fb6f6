// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/health-mate/auth"
	"github.com/danielhkuo/health-mate/cliparse"
	"github.com/danielhkuo/health-mate/db"
	"github.com/danielhkuo/health-mate/middleware"
	"github.com/danielhkuo/health-mate/models"
)

// Slots are the bookable start times for every specialist, every day
var Slots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

const defaultReason = "General consultation"

type AppointmentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAppointmentHandler(db *sql.DB, cfg cliparse.Config) *AppointmentHandler {
	return &AppointmentHandler{db: db, cfg: cfg}
}

// AvailableSlots handles GET /api/appointments/slots?date=YYYY-MM-DD&specialist=
func (h *AppointmentHandler) AvailableSlots(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDate(r.URL.Query().Get("date"))
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date is required (YYYY-MM-DD)")
		return
	}
	specialist := strings.TrimSpace(r.URL.Query().Get("specialist"))
	if specialist == "" {
		specialist = models.DefaultSpecialist
	}

	rows, err := h.db.Query(`
		SELECT appointment_time FROM appointments
		WHERE appointment_date = $1 AND specialist = $2 AND status = $3
	`, date, specialist, models.AppointmentScheduled)
	if err != nil {
		slog.Error("failed to query booked slots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	booked := make(map[string]bool)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			slog.Error("failed to scan slot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		booked[t] = true
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate slots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	free := []string{}
	for _, s := range Slots {
		if !booked[s] {
			free = append(free, s)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.AvailableSlotsResponse{
		Date:       date,
		Specialist: specialist,
		Slots:      free,
	})
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.BookAppointmentRequest
	if !parseBody(w, r, &req) {
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if date < now().Format(dateLayout) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must not be in the past")
		return
	}
	slot, ok := parseSlot(req.Time)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "time must be one of: "+strings.Join(Slots, ", "))
		return
	}

	appt := models.Appointment{
		ID:         auth.NewID(),
		Specialist: strings.TrimSpace(req.Specialist),
		Date:       date,
		Time:       slot,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     models.AppointmentScheduled,
		CreatedAt:  now(),
	}
	if appt.Specialist == "" {
		appt.Specialist = models.DefaultSpecialist
	}
	if appt.Reason == "" {
		appt.Reason = defaultReason
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		appt.Notes = &notes
	}

	// Check if slot is available
	var taken bool
	err := h.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM appointments
			WHERE appointment_date = $1 AND appointment_time = $2
			  AND specialist = $3 AND status = $4
		)
	`, appt.Date, appt.Time, appt.Specialist, models.AppointmentScheduled).Scan(&taken)
	if err != nil {
		slog.Error("failed to check slot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		middleware.ErrorResponse(w, http.StatusConflict, appt.Specialist+" is not available at "+appt.Time+" on "+appt.Date)
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO appointments
			(id, user_id, specialist, appointment_date, appointment_time, reason, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, appt.ID, claims.UserID, appt.Specialist, appt.Date, appt.Time, appt.Reason, appt.Notes, appt.Status, appt.CreatedAt)

	if err != nil {
		// The partial unique index catches a concurrent booking of the same slot
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, appt.Specialist+" is not available at "+appt.Time+" on "+appt.Date)
			return
		}
		if db.IsForeignKeyViolation(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to insert appointment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to book appointment")
		return
	}

	slog.Info("appointment booked", "appointment_id", appt.ID, "user_id", claims.UserID, "specialist", appt.Specialist)

	middleware.JSONResponse(w, http.StatusCreated, models.BookAppointmentResponse{Appointment: appt})
}

// ListAppointments handles GET /api/appointments
// Returns the caller's scheduled appointments in calendar order.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT id, specialist, appointment_date, appointment_time, reason, notes, status, created_at
		FROM appointments
		WHERE user_id = $1 AND status = $2
		ORDER BY appointment_date, appointment_time
	`, claims.UserID, models.AppointmentScheduled)
	if err != nil {
		slog.Error("failed to query appointments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	appts := []models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		var notes sql.NullString
		if err := rows.Scan(&a.ID, &a.Specialist, &a.Date, &a.Time, &a.Reason, &notes, &a.Status, &a.CreatedAt); err != nil {
			slog.Error("failed to scan appointment", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if notes.Valid {
			a.Notes = &notes.String
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate appointments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListAppointmentsResponse{Appointments: appts})
}

// CancelAppointment handles POST /api/appointments/{id}/cancel
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	apptID := r.PathValue("id")

	var status string
	err := h.db.QueryRow(`
		SELECT status FROM appointments WHERE id = $1 AND user_id = $2
	`, apptID, claims.UserID).Scan(&status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if err != nil {
		slog.Error("failed to query appointment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if status == models.AppointmentCancelled {
		middleware.ErrorResponse(w, http.StatusConflict, "Appointment already cancelled")
		return
	}

	// Guard on status so a concurrent cancel is not applied twice
	result, err := h.db.Exec(`
		UPDATE appointments SET status = $1
		WHERE id = $2 AND user_id = $3 AND status = $4
	`, models.AppointmentCancelled, apptID, claims.UserID, models.AppointmentScheduled)
	if err != nil {
		slog.Error("failed to cancel appointment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}
	n, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to cancel appointment", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cancel appointment")
		return
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Appointment already cancelled")
		return
	}

	slog.Info("appointment cancelled", "appointment_id", apptID, "user_id", claims.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// parseDate validates a YYYY-MM-DD calendar date
func parseDate(s string) (string, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return t.Format(dateLayout), true
}

// parseSlot accepts HH:MM or HH:MM:SS and returns the matching HH:MM slot
func parseSlot(s string) (string, bool) {
	s = strings.TrimSpace(s)
	var t time.Time
	var err error
	if t, err = time.Parse("15:04", s); err != nil {
		if t, err = time.Parse("15:04:05", s); err != nil || t.Second() != 0 {
			return "", false
		}
	}
	hhmm := t.Format("15:04")
	for _, slot := range Slots {
		if slot == hhmm {
			return hhmm, true
		}
	}
	return "", false
}
