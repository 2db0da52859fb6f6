// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/health-mate/cliparse"
	"github.com/danielhkuo/health-mate/handlers"
	"github.com/danielhkuo/health-mate/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	userHandler := handlers.NewUserHandler(db, cfg)
	chatHandler := handlers.NewChatHandler(db, cfg)
	subscriptionHandler := handlers.NewSubscriptionHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg)
	symptomHandler := handlers.NewSymptomHandler()

	public := middleware.WithLogging
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireAdmin(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /api/register", public(userHandler.Register))
	mux.HandleFunc("POST /api/login", public(userHandler.Login))
	mux.HandleFunc("GET /api/me", authed(userHandler.Me))

	// Chat history (owner-scoped)
	mux.HandleFunc("POST /api/chats", authed(chatHandler.SaveChat))
	mux.HandleFunc("GET /api/chats", authed(chatHandler.ListChats))
	mux.HandleFunc("GET /api/chats/{id}", authed(chatHandler.GetChat))
	mux.HandleFunc("PUT /api/chats/{id}", authed(chatHandler.UpdateChatTitle))
	mux.HandleFunc("PUT /api/chats/{id}/messages", authed(chatHandler.UpdateChatMessages))
	mux.HandleFunc("DELETE /api/chats/{id}", authed(chatHandler.DeleteChat))

	// Subscriptions
	mux.HandleFunc("POST /api/subscriptions", authed(subscriptionHandler.CreateSubscription))
	mux.HandleFunc("GET /api/subscriptions/me", authed(subscriptionHandler.GetMySubscription))

	// Appointments
	mux.HandleFunc("GET /api/appointments/slots", authed(appointmentHandler.AvailableSlots))
	mux.HandleFunc("GET /api/appointments", authed(appointmentHandler.ListAppointments))
	mux.HandleFunc("POST /api/appointments", authed(appointmentHandler.BookAppointment))
	mux.HandleFunc("POST /api/appointments/{id}/cancel", authed(appointmentHandler.CancelAppointment))

	// Symptom checker
	mux.HandleFunc("POST /api/symptoms/analyze", authed(symptomHandler.Analyze))
	mux.HandleFunc("GET /api/symptoms/conditions", public(symptomHandler.Conditions))

	// Admin dashboard
	mux.HandleFunc("GET /api/admin/stats", admin(adminHandler.Stats))
	mux.HandleFunc("GET /api/admin/users", admin(adminHandler.Users))
	mux.HandleFunc("GET /api/admin/activity", admin(adminHandler.Activity))
	mux.HandleFunc("GET /api/admin/subscriptions", admin(adminHandler.Subscriptions))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("health-mate API v1"))
	})

	return middleware.CORS(cfg.CORSOrigins, mux)
}
