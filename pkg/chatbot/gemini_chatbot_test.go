package chatbot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateContentMissingKey(t *testing.T) {
	// Must fail before any network call.
	client := NewClientWithBaseURL("", "gemini-1.5-flash", "http://127.0.0.1:1")

	_, err := client.GenerateContent(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateContentSuccess(t *testing.T) {
	var gotPath string
	var gotKey string
	var gotPayload GeminiChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)

		_ = json.NewEncoder(w).Encode(GeminiChatResponse{
			Candidates: []*GeminiChatCandidate{
				{
					Content: &GeminiChatContent{
						Parts: []*GeminiChatParts{{Text: "I'm here for you."}},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", "gemini-1.5-flash", server.URL)
	reply, err := client.GenerateContent(context.Background(), "I feel anxious")

	assert.NoError(t, err)
	assert.Equal(t, "I'm here for you.", reply)
	assert.Equal(t, "/gemini-1.5-flash:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "I feel anxious", gotPayload.Contents[0].Parts[0].Text)
}

func TestGenerateContentStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": "quota exceeded"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", "", server.URL)
	_, err := client.GenerateContent(context.Background(), "hello")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGenerateContentNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(GeminiChatResponse{})
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", "", server.URL)
	_, err := client.GenerateContent(context.Background(), "hello")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no candidate text")
}

func TestNewClientDefaultsModel(t *testing.T) {
	client := NewClient("key", "")
	assert.Equal(t, defaultModel, client.model)
}
