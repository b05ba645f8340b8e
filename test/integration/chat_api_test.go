package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"irene-companion-be/internal/bootstrap"
	"irene-companion-be/internal/config"
	"irene-companion-be/internal/dto"
	"irene-companion-be/internal/pkg/serverutils"
	"irene-companion-be/internal/server"
	"irene-companion-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatAPI(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	sessionId := uuid.New().String()

	t.Run("Daily quote needs no session", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/quote/v1/daily", nil)
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode)
	})

	t.Run("Quick replies", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/chat/v1/quick-replies", nil)
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode)

		var body struct {
			Data []string `json:"data"`
		}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Len(t, body.Data, 4)
	})

	t.Run("Conversations require session header", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/chat/v1/conversations", nil)
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, res.StatusCode)
	})

	var conversationId string
	t.Run("Create conversation", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/chat/v1/conversations", nil)
		req.Header.Set(serverutils.SessionHeader, sessionId)
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, 200, res.StatusCode)

		var body struct {
			Data dto.CreateConversationResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		conversationId = body.Data.Id.String()
		assert.NotEmpty(t, conversationId)
	})

	t.Run("Empty history for new conversation", func(t *testing.T) {
		url := fmt.Sprintf("/api/chat/v1/conversations/%s/messages", conversationId)
		req := httptest.NewRequest("GET", url, nil)
		req.Header.Set(serverutils.SessionHeader, sessionId)
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, res.StatusCode)
	})

	t.Run("Profile round trip", func(t *testing.T) {
		payload, _ := json.Marshal(dto.UpdateProfileRequest{Name: "Integration Tester"})
		req := httptest.NewRequest("PUT", "/api/profile/v1", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(serverutils.SessionHeader, sessionId)
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, 200, res.StatusCode)

		req = httptest.NewRequest("GET", "/api/profile/v1", nil)
		req.Header.Set(serverutils.SessionHeader, sessionId)
		res, err = app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, 200, res.StatusCode)

		var body struct {
			Data dto.GetProfileResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.Equal(t, "Integration Tester", body.Data.Name)
	})

	if os.Getenv("GOOGLE_GEMINI_API_KEY") == "" {
		t.Log("GOOGLE_GEMINI_API_KEY not set, skipping send flow")
		return
	}

	t.Run("Send chat", func(t *testing.T) {
		payload, _ := json.Marshal(dto.SendChatRequest{
			ConversationId: uuid.MustParse(conversationId),
			Content:        "I'm feeling anxious",
		})
		req := httptest.NewRequest("POST", "/api/chat/v1/send", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(serverutils.SessionHeader, sessionId)
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, 200, res.StatusCode)

		var body struct {
			Data dto.SendChatResponse `json:"data"`
		}
		require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
		assert.NotEmpty(t, body.Data.Reply)
	})
}
