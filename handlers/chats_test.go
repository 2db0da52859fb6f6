// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/health-mate/models"
	"github.com/danielhkuo/health-mate/testutil"
)

func TestSaveChat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewChatHandler(db, cfg)

	userID := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantTitle  string
	}{
		{
			name:       "explicit title",
			body:       `{"botType":"fitness","title":"Leg day","messages":[{"text":"hi","sender":"user"}]}`,
			wantStatus: http.StatusOK,
			wantTitle:  "Leg day",
		},
		{
			name:       "title from first user message",
			body:       `{"botType":"mental-health","messages":[{"text":"Welcome","sender":"bot"},{"text":"I feel anxious","sender":"user"}]}`,
			wantStatus: http.StatusOK,
			wantTitle:  "I feel anxious",
		},
		{
			name:       "no user message",
			body:       `{"botType":"orthopedic","messages":[{"text":"Welcome","sender":"bot"}]}`,
			wantStatus: http.StatusOK,
			wantTitle:  "New Chat",
		},
		{
			name:       "empty transcript",
			body:       `{"botType":"pdf-analyzer","messages":[]}`,
			wantStatus: http.StatusOK,
			wantTitle:  "New Chat",
		},
		{
			name:       "unknown bot type",
			body:       `{"botType":"astrology","messages":[]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "messages not an array",
			body:       `{"botType":"fitness","messages":{"text":"hi"}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "messages missing",
			body:       `{"botType":"fitness"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.AsUser(testutil.MakeRequest("POST", "/api/chats", tt.body, nil), userID, "alice@example.com", models.RoleUser)
			w := httptest.NewRecorder()

			handler.SaveChat(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp models.SaveChatResponse
			testutil.AssertJSON(t, w, &resp)
			require.True(t, resp.Success)
			require.NotEmpty(t, resp.ID)

			var title, owner string
			err := db.QueryRow(`SELECT title, user_id FROM chats WHERE id = $1`, resp.ID).Scan(&title, &owner)
			require.NoError(t, err)
			require.Equal(t, tt.wantTitle, title)
			require.Equal(t, userID, owner)
		})
	}
}

func TestSaveChatDeletedUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewChatHandler(db, testutil.GetTestConfig())

	// The token outlives the account it was issued for
	userID := testutil.CreateTestUser(t, db, "Gone", "gone@example.com", models.RoleUser)
	_, err := db.Exec(`DELETE FROM users WHERE id = $1`, userID)
	require.NoError(t, err)

	req := testutil.AsUser(testutil.MakeRequest("POST", "/api/chats", `{"botType":"fitness","messages":[]}`, nil), userID, "gone@example.com", models.RoleUser)
	w := httptest.NewRecorder()
	handler.SaveChat(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	require.Equal(t, "User not found", resp.Message)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM chats`).Scan(&count))
	require.Zero(t, count)
}

func TestDeriveTitle(t *testing.T) {
	long := strings.Repeat("é", 60)

	tests := []struct {
		name string
		msgs []chatMessage
		want string
	}{
		{"empty", nil, "New Chat"},
		{"bot only", []chatMessage{{Text: "hello", Sender: "bot"}}, "New Chat"},
		{"blank user text skipped", []chatMessage{{Text: "   ", Sender: "user"}, {Text: "knee pain", Sender: "user"}}, "knee pain"},
		{"whitespace collapsed", []chatMessage{{Text: "sore\n  back", Sender: "user"}}, "sore back"},
		{"truncated by runes", []chatMessage{{Text: long, Sender: "user"}}, strings.Repeat("é", 50) + "..."},
		{"exactly at limit", []chatMessage{{Text: strings.Repeat("a", 50), Sender: "user"}}, strings.Repeat("a", 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, deriveTitle(tt.msgs))
		})
	}
}

func TestListChats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewChatHandler(db, cfg)

	alice := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)

	base := time.Now().UTC().Add(-time.Hour)
	oldest := testutil.CreateTestChat(t, db, alice, models.BotFitness, "Oldest", base)
	middle := testutil.CreateTestChat(t, db, alice, models.BotGeneralHealth, "Middle", base.Add(time.Minute))
	newest := testutil.CreateTestChat(t, db, alice, models.BotFitness, "Newest", base.Add(2*time.Minute))
	testutil.CreateTestChat(t, db, bob, models.BotFitness, "Bob's chat", base.Add(3*time.Minute))

	list := func(t *testing.T, userID, query string) []models.ChatSummary {
		t.Helper()
		req := testutil.AsUser(httptest.NewRequest("GET", "/api/chats"+query, nil), userID, "", models.RoleUser)
		w := httptest.NewRecorder()
		handler.ListChats(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ListChatsResponse
		testutil.AssertJSON(t, w, &resp)
		return resp.Chats
	}

	t.Run("newest first and owner only", func(t *testing.T) {
		chats := list(t, alice, "")
		require.Len(t, chats, 3)
		require.Equal(t, []string{newest, middle, oldest}, []string{chats[0].ID, chats[1].ID, chats[2].ID})
		require.Equal(t, "Newest", chats[0].Title)
	})

	t.Run("bot type filter", func(t *testing.T) {
		chats := list(t, alice, "?botType=fitness")
		require.Len(t, chats, 2)
		require.Equal(t, newest, chats[0].ID)
		require.Equal(t, oldest, chats[1].ID)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		carol := testutil.CreateTestUser(t, db, "Carol", "carol@example.com", models.RoleUser)
		req := testutil.AsUser(httptest.NewRequest("GET", "/api/chats", nil), carol, "", models.RoleUser)
		w := httptest.NewRecorder()
		handler.ListChats(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		require.JSONEq(t, `{"chats":[]}`, w.Body.String())
	})
}

func TestGetChat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewChatHandler(db, cfg)

	alice := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	chatID := testutil.CreateTestChat(t, db, alice, models.BotOrthopedic, "Knee", time.Now().UTC())

	get := func(userID, id string) *httptest.ResponseRecorder {
		req := testutil.AsUser(httptest.NewRequest("GET", "/api/chats/"+id, nil), userID, "", models.RoleUser)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.GetChat(w, req)
		return w
	}

	w := get(alice, chatID)
	testutil.AssertStatus(t, w, http.StatusOK)

	var chat models.Chat
	testutil.AssertJSON(t, w, &chat)
	require.Equal(t, chatID, chat.ID)
	require.Equal(t, "Knee", chat.Title)
	require.Equal(t, models.BotOrthopedic, chat.BotType)
	require.JSONEq(t, `[{"text":"hello","sender":"user"}]`, string(chat.Messages))

	// Another user's chat is indistinguishable from a missing one
	testutil.AssertStatus(t, get(bob, chatID), http.StatusNotFound)
	testutil.AssertStatus(t, get(alice, "no-such-chat"), http.StatusNotFound)
}

func TestUpdateChatTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewChatHandler(db, cfg)

	alice := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	chatID := testutil.CreateTestChat(t, db, alice, models.BotFitness, "Old", time.Now().UTC())

	tests := []struct {
		name       string
		userID     string
		title      string
		wantStatus int
	}{
		{"rename own chat", alice, "  Renamed  ", http.StatusOK},
		{"empty title", alice, "   ", http.StatusBadRequest},
		{"title too long", alice, strings.Repeat("t", 201), http.StatusBadRequest},
		{"other user's chat", bob, "Hijacked", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/api/chats/"+chatID, models.UpdateChatTitleRequest{Title: tt.title}, nil)
			req = testutil.AsUser(req, tt.userID, "", models.RoleUser)
			req.SetPathValue("id", chatID)
			w := httptest.NewRecorder()

			handler.UpdateChatTitle(w, req)
			testutil.AssertStatus(t, w, tt.wantStatus)

			if tt.wantStatus == http.StatusOK {
				var resp models.UpdateChatTitleResponse
				testutil.AssertJSON(t, w, &resp)
				require.True(t, resp.Success)
				require.Equal(t, models.ChatTitle{ID: chatID, Title: "Renamed"}, resp.Chat)
			}
		})
	}

	var title string
	require.NoError(t, db.QueryRow(`SELECT title FROM chats WHERE id = $1`, chatID).Scan(&title))
	require.Equal(t, "Renamed", title)
}

func TestUpdateChatMessages(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewChatHandler(db, cfg)

	alice := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	chatID := testutil.CreateTestChat(t, db, alice, models.BotFitness, "Chat", time.Now().UTC())

	update := func(userID, body string) *httptest.ResponseRecorder {
		req := testutil.AsUser(testutil.MakeRequest("PUT", "/api/chats/"+chatID+"/messages", body, nil), userID, "", models.RoleUser)
		req.SetPathValue("id", chatID)
		w := httptest.NewRecorder()
		handler.UpdateChatMessages(w, req)
		return w
	}

	transcript := `{"messages":[{"text":"hello","sender":"user"},{"text":"Hi! How can I help?","sender":"bot"}]}`

	testutil.AssertStatus(t, update(bob, transcript), http.StatusNotFound)
	testutil.AssertStatus(t, update(alice, `{"messages":"hello"}`), http.StatusBadRequest)
	testutil.AssertStatus(t, update(alice, transcript), http.StatusOK)

	var stored string
	require.NoError(t, db.QueryRow(`SELECT messages FROM chats WHERE id = $1`, chatID).Scan(&stored))

	var msgs []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stored), &msgs))
	require.Len(t, msgs, 2)
	require.Equal(t, "bot", msgs[1]["sender"])
}

func TestDeleteChat(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewChatHandler(db, cfg)

	alice := testutil.CreateTestUser(t, db, "Alice", "alice@example.com", models.RoleUser)
	bob := testutil.CreateTestUser(t, db, "Bob", "bob@example.com", models.RoleUser)
	chatID := testutil.CreateTestChat(t, db, alice, models.BotFitness, "Chat", time.Now().UTC())

	del := func(userID string) *httptest.ResponseRecorder {
		req := testutil.AsUser(httptest.NewRequest("DELETE", "/api/chats/"+chatID, nil), userID, "", models.RoleUser)
		req.SetPathValue("id", chatID)
		w := httptest.NewRecorder()
		handler.DeleteChat(w, req)
		return w
	}

	testutil.AssertStatus(t, del(bob), http.StatusNotFound)
	testutil.AssertStatus(t, del(alice), http.StatusOK)
	testutil.AssertStatus(t, del(alice), http.StatusNotFound)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM chats`).Scan(&count))
	require.Equal(t, 0, count)
}
