// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/health-mate/models"
	"github.com/danielhkuo/health-mate/testutil"
)

func tomorrow() string {
	return time.Now().UTC().Add(24 * time.Hour).Format("2006-01-02")
}

func bookAs(t *testing.T, handler *AppointmentHandler, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.AsUser(testutil.MakeRequest("POST", "/api/appointments", body, nil), userID, "", models.RoleUser)
	w := httptest.NewRecorder()
	handler.BookAppointment(w, req)
	return w
}

func TestBookAppointment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAppointmentHandler(db, testutil.GetTestConfig())
	userID := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	date := tomorrow()

	tests := []struct {
		name       string
		body       models.BookAppointmentRequest
		wantStatus int
	}{
		{"valid booking", models.BookAppointmentRequest{Date: date, Time: "09:00", Specialist: "Cardiologist", Reason: "Checkup"}, http.StatusCreated},
		{"seconds accepted", models.BookAppointmentRequest{Date: date, Time: "10:00:00"}, http.StatusCreated},
		{"slot already taken", models.BookAppointmentRequest{Date: date, Time: "09:00", Specialist: "Cardiologist"}, http.StatusConflict},
		{"same slot other specialist", models.BookAppointmentRequest{Date: date, Time: "09:00", Specialist: "Dermatologist"}, http.StatusCreated},
		{"not a slot", models.BookAppointmentRequest{Date: date, Time: "10:30"}, http.StatusBadRequest},
		{"garbage time", models.BookAppointmentRequest{Date: date, Time: "noon"}, http.StatusBadRequest},
		{"bad date", models.BookAppointmentRequest{Date: "2025-13-40", Time: "09:00"}, http.StatusBadRequest},
		{"past date", models.BookAppointmentRequest{Date: "2000-01-01", Time: "09:00"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := bookAs(t, handler, userID, tt.body)
			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestBookAppointmentDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAppointmentHandler(db, testutil.GetTestConfig())
	userID := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	w := bookAs(t, handler, userID, models.BookAppointmentRequest{Date: tomorrow(), Time: "14:00", Notes: "  bring scans  "})
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.BookAppointmentResponse
	testutil.AssertJSON(t, w, &resp)
	appt := resp.Appointment
	require.NotEmpty(t, appt.ID)
	require.Equal(t, models.DefaultSpecialist, appt.Specialist)
	require.Equal(t, "General consultation", appt.Reason)
	require.Equal(t, "14:00", appt.Time)
	require.Equal(t, models.AppointmentScheduled, appt.Status)
	require.NotNil(t, appt.Notes)
	require.Equal(t, "bring scans", *appt.Notes)
}

func TestBookAppointmentDeletedUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAppointmentHandler(db, testutil.GetTestConfig())
	userID := testutil.CreateTestUser(t, db, "Gone", "gone@example.com", models.RoleUser)
	_, err := db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	require.NoError(t, err)

	w := bookAs(t, handler, userID, models.BookAppointmentRequest{Date: tomorrow(), Time: "10:00", Specialist: "Neurologist"})
	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	require.Equal(t, "User not found", resp.Message)

	// The slot is still free
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM appointments`).Scan(&count))
	require.Zero(t, count)
}

func TestAvailableSlots(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAppointmentHandler(db, testutil.GetTestConfig())
	userID := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	date := tomorrow()

	slots := func(t *testing.T, query string) models.AvailableSlotsResponse {
		t.Helper()
		w := httptest.NewRecorder()
		handler.AvailableSlots(w, httptest.NewRequest("GET", "/api/appointments/slots"+query, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.AvailableSlotsResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	resp := slots(t, "?date="+date)
	require.Equal(t, Slots, resp.Slots)
	require.Equal(t, models.DefaultSpecialist, resp.Specialist)

	testutil.AssertStatus(t, bookAs(t, handler, userID, models.BookAppointmentRequest{Date: date, Time: "11:00"}), http.StatusCreated)
	testutil.AssertStatus(t, bookAs(t, handler, userID, models.BookAppointmentRequest{Date: date, Time: "15:00", Specialist: "Cardiologist"}), http.StatusCreated)

	resp = slots(t, "?date="+date)
	require.Equal(t, []string{"09:00", "10:00", "14:00", "15:00", "16:00"}, resp.Slots)

	resp = slots(t, "?date="+date+"&specialist=Cardiologist")
	require.Equal(t, []string{"09:00", "10:00", "11:00", "14:00", "16:00"}, resp.Slots)

	w := httptest.NewRecorder()
	handler.AvailableSlots(w, httptest.NewRequest("GET", "/api/appointments/slots", nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestListAndCancelAppointments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewAppointmentHandler(db, testutil.GetTestConfig())
	alice := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	date := tomorrow()

	var ids []string
	for _, slot := range []string{"16:00", "09:00"} {
		w := bookAs(t, handler, alice, models.BookAppointmentRequest{Date: date, Time: slot})
		testutil.AssertStatus(t, w, http.StatusCreated)
		var resp models.BookAppointmentResponse
		testutil.AssertJSON(t, w, &resp)
		ids = append(ids, resp.Appointment.ID)
	}
	testutil.AssertStatus(t, bookAs(t, handler, bob, models.BookAppointmentRequest{Date: date, Time: "10:00"}), http.StatusCreated)

	list := func(t *testing.T, userID string) []models.Appointment {
		t.Helper()
		req := testutil.AsUser(httptest.NewRequest("GET", "/api/appointments", nil), userID, "", models.RoleUser)
		w := httptest.NewRecorder()
		handler.ListAppointments(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.ListAppointmentsResponse
		testutil.AssertJSON(t, w, &resp)
		return resp.Appointments
	}

	cancel := func(userID, id string) *httptest.ResponseRecorder {
		req := testutil.AsUser(httptest.NewRequest("POST", "/api/appointments/"+id+"/cancel", nil), userID, "", models.RoleUser)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.CancelAppointment(w, req)
		return w
	}

	// Calendar order, owner only
	appts := list(t, alice)
	require.Len(t, appts, 2)
	require.Equal(t, "09:00", appts[0].Time)
	require.Equal(t, "16:00", appts[1].Time)
	require.Nil(t, appts[0].Notes)

	testutil.AssertStatus(t, cancel(bob, ids[0]), http.StatusNotFound)
	testutil.AssertStatus(t, cancel(alice, ids[0]), http.StatusOK)
	testutil.AssertStatus(t, cancel(alice, ids[0]), http.StatusConflict)
	testutil.AssertStatus(t, cancel(alice, "missing"), http.StatusNotFound)

	appts = list(t, alice)
	require.Len(t, appts, 1)
	require.Equal(t, "09:00", appts[0].Time)

	// The cancelled slot can be booked again
	testutil.AssertStatus(t, bookAs(t, handler, bob, models.BookAppointmentRequest{Date: date, Time: "16:00"}), http.StatusCreated)
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:00", "09:00", true},
		{" 14:00 ", "14:00", true},
		{"16:00:00", "16:00", true},
		{"16:00:30", "", false},
		{"9:00", "09:00", true},
		{"12:00", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseSlot(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}
