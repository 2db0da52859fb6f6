// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Health Mate API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Registration, login, current user
  - ChatHandler: Saved conversations per assistant panel
  - SubscriptionHandler: Plan purchase (simulated payment) and lookup
  - AppointmentHandler: Specialist slot booking
  - AdminHandler: Dashboard aggregates
  - SymptomHandler: Symptom text to condition and specialist

Handlers are created via constructor functions that accept *sql.DB and Config:

	chatHandler := handlers.NewChatHandler(db, cfg)

SymptomHandler needs neither; it only holds the in-memory condition index.

# Authorization

Every handler except Register and Login runs behind middleware.RequireAuth
and reads the caller from the token claims. Queries on chats,
subscriptions, and appointments always filter on the caller's user_id;
a row owned by someone else is reported as 404, exactly like a missing one.

AdminHandler runs behind middleware.RequireAdmin as well.

# Chats

Messages are stored as the JSON array the client sends. When no title is
given, the first user message (truncated to 50 characters) is used.

	POST   /api/chats         → SaveChat
	GET    /api/chats         → ListChats (optional ?botType=)
	GET    /api/chats/{id}    → GetChat
	PUT    /api/chats/{id}    → UpdateChatTitle
	PUT    /api/chats/{id}/messages → UpdateChatMessages
	DELETE /api/chats/{id}    → DeleteChat

# Subscriptions

A user holds at most one subscription. Posting again switches the plan
and pushes the renewal date to 30 days out.

# Appointments

Each specialist has six fixed daily slots (see Slots). A partial unique
index on scheduled bookings prevents double-booking under concurrency.

# Symptoms

SymptomAnalyzer scores every entry of models.Conditions by how many of its
symptom phrases occur in the user's text, case and spacing ignored. The
top three are returned best first and the first one's specialist is the
recommendation. The submitted text is never stored or logged.

	POST /api/symptoms/analyze    → Analyze
	GET  /api/symptoms/conditions → Conditions (optional ?specialist=)
*/
package handlers
