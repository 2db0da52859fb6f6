// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/health-mate/auth"
	"github.com/danielhkuo/health-mate/cliparse"
	"github.com/danielhkuo/health-mate/db"
	"github.com/danielhkuo/health-mate/middleware"
	"github.com/danielhkuo/health-mate/models"
)

const (
	defaultChatTitle = "New Chat"
	derivedTitleLen  = 50
	maxTitleLen      = 200
)

type ChatHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewChatHandler(db *sql.DB, cfg cliparse.Config) *ChatHandler {
	return &ChatHandler{db: db, cfg: cfg}
}

// SaveChat handles POST /api/chats
func (h *ChatHandler) SaveChat(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req models.SaveChatRequest
	if !parseBody(w, r, &req) {
		return
	}

	if !isValidBotType(req.BotType) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			"botType must be one of: general-health, mental-health, orthopedic, fitness, pdf-analyzer")
		return
	}

	messages, ok := parseMessages(req.Messages)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "messages must be a JSON array")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = deriveTitle(messages)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title must be at most 200 characters")
		return
	}

	chatID := auth.NewID()
	ts := now()
	_, err := h.db.Exec(`
		INSERT INTO chats (id, user_id, bot_type, title, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, chatID, claims.UserID, req.BotType, title, string(req.Messages), ts, ts)

	if err != nil {
		// Token outlived its account
		if db.IsForeignKeyViolation(err) {
			middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		slog.Error("failed to insert chat", "error", err, "user_id", claims.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save chat")
		return
	}

	slog.Info("chat saved", "chat_id", chatID, "user_id", claims.UserID, "bot_type", req.BotType)

	middleware.JSONResponse(w, http.StatusOK, models.SaveChatResponse{
		ID:      chatID,
		Success: true,
	})
}

// ListChats handles GET /api/chats?botType=
// Returns the caller's chats, newest first.
func (h *ChatHandler) ListChats(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	query := `SELECT id, title, created_at FROM chats WHERE user_id = $1`
	args := []interface{}{claims.UserID}

	if botType := r.URL.Query().Get("botType"); botType != "" {
		query += ` AND bot_type = $2`
		args = append(args, botType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := h.db.Query(query, args...)
	if err != nil {
		slog.Error("failed to query chats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	chats := []models.ChatSummary{}
	for rows.Next() {
		var c models.ChatSummary
		if err := rows.Scan(&c.ID, &c.Title, &c.Date); err != nil {
			slog.Error("failed to scan chat", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		chats = append(chats, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate chats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ListChatsResponse{Chats: chats})
}

// GetChat handles GET /api/chats/{id}
// Another user's chat is reported as not found.
func (h *ChatHandler) GetChat(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	chatID := r.PathValue("id")
	if chatID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "chat id is required")
		return
	}

	var chat models.Chat
	var messages []byte
	err := h.db.QueryRow(`
		SELECT id, title, bot_type, messages, created_at
		FROM chats
		WHERE id = $1 AND user_id = $2
	`, chatID, claims.UserID).Scan(&chat.ID, &chat.Title, &chat.BotType, &messages, &chat.Date)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Chat not found")
		return
	}
	if err != nil {
		slog.Error("failed to query chat", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	chat.Messages = json.RawMessage(messages)

	middleware.JSONResponse(w, http.StatusOK, chat)
}

// UpdateChatTitle handles PUT /api/chats/{id}
func (h *ChatHandler) UpdateChatTitle(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	chatID := r.PathValue("id")

	var req models.UpdateChatTitleRequest
	if !parseBody(w, r, &req) {
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title must be at most 200 characters")
		return
	}

	result, err := h.db.Exec(`
		UPDATE chats SET title = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, title, now(), chatID, claims.UserID)
	if !h.checkAffected(w, result, err, "failed to update chat title") {
		return
	}

	slog.Info("chat renamed", "chat_id", chatID, "user_id", claims.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.UpdateChatTitleResponse{
		Success: true,
		Chat:    models.ChatTitle{ID: chatID, Title: title},
	})
}

// UpdateChatMessages handles PUT /api/chats/{id}/messages
// Replaces the stored transcript as a conversation continues.
func (h *ChatHandler) UpdateChatMessages(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	chatID := r.PathValue("id")

	var req models.UpdateChatMessagesRequest
	if !parseBody(w, r, &req) {
		return
	}
	if _, ok := parseMessages(req.Messages); !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "messages must be a JSON array")
		return
	}

	result, err := h.db.Exec(`
		UPDATE chats SET messages = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, string(req.Messages), now(), chatID, claims.UserID)
	if !h.checkAffected(w, result, err, "failed to update chat messages") {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// DeleteChat handles DELETE /api/chats/{id}
func (h *ChatHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	claims, ok := currentUser(w, r)
	if !ok {
		return
	}

	chatID := r.PathValue("id")

	result, err := h.db.Exec(`
		DELETE FROM chats WHERE id = $1 AND user_id = $2
	`, chatID, claims.UserID)
	if !h.checkAffected(w, result, err, "failed to delete chat") {
		return
	}

	slog.Info("chat deleted", "chat_id", chatID, "user_id", claims.UserID)

	middleware.JSONResponse(w, http.StatusOK, models.SuccessResponse{Success: true})
}

// checkAffected maps an ownership-scoped write to 500/404, returning true
// when exactly the caller's row was touched.
func (h *ChatHandler) checkAffected(w http.ResponseWriter, result sql.Result, err error, logMsg string) bool {
	if err != nil {
		slog.Error(logMsg, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	n, err := result.RowsAffected()
	if err != nil {
		slog.Error(logMsg, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Chat not found")
		return false
	}
	return true
}

// chatMessage is the subset of a client message used to derive titles
type chatMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// parseMessages checks that raw is a JSON array and decodes what it can
// of each element. Elements of other shapes are kept in storage untouched.
func parseMessages(raw json.RawMessage) ([]chatMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, false
	}

	msgs := make([]chatMessage, 0, len(elems))
	for _, e := range elems {
		var m chatMessage
		_ = json.Unmarshal(e, &m)
		msgs = append(msgs, m)
	}
	return msgs, true
}

// deriveTitle uses the first user message, truncated, or the default title
func deriveTitle(msgs []chatMessage) string {
	for _, m := range msgs {
		text := strings.Join(strings.Fields(m.Text), " ")
		if m.Sender != "user" || text == "" {
			continue
		}
		if utf8.RuneCountInString(text) <= derivedTitleLen {
			return text
		}
		runes := []rune(text)
		return string(runes[:derivedTitleLen]) + "..."
	}
	return defaultChatTitle
}

func isValidBotType(botType string) bool {
	switch botType {
	case models.BotGeneralHealth, models.BotMentalHealth, models.BotOrthopedic,
		models.BotFitness, models.BotPDFAnalyzer:
		return true
	}
	return false
}
