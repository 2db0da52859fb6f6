// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the browser client.

# Request Types

  - RegisterRequest, LoginRequest: account credentials
  - SaveChatRequest: botType, title, messages (raw JSON array)
  - UpdateChatTitleRequest, UpdateChatMessagesRequest
  - CreateSubscriptionRequest: planType and amount; card fields are ignored
  - BookAppointmentRequest: date, time, specialist, reason, notes

# Amount

Amount decodes either a JSON number or a numeric string, so the payment
form can send "9.99" or 9.99. An unparseable value leaves Valid false.

# Response Types

All error responses use ErrorResponse:

	{"error": "Not Found", "message": "Chat not found"}

List responses always carry an empty array rather than null.

# Constants

Bot types, plan names, roles, and appointment statuses are defined as
string constants and validated by the handlers.
*/
package models
