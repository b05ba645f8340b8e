package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySuccess(t *testing.T) {
	var gotPath string
	var gotPayload predictRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_ = json.NewEncoder(w).Encode(predictResponse{Data: []string{"sadness"}})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	label := client.Classify(context.Background(), "I am feeling down")

	assert.Equal(t, "sadness", label)
	assert.Equal(t, "/api/predict", gotPath)
	assert.Equal(t, []string{"I am feeling down"}, gotPayload.Data)
}

func TestClassifyFallsBackToNeutral(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "empty data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(predictResponse{Data: []string{}})
			},
		},
		{
			name: "empty label",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(predictResponse{Data: []string{""}})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL)
			assert.Equal(t, FallbackLabel, client.Classify(context.Background(), "hello"))
		})
	}
}

func TestClassifyUnreachableEndpoint(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	assert.Equal(t, FallbackLabel, client.Classify(context.Background(), "hello"))
}

func TestClassifyWithoutBaseURL(t *testing.T) {
	client := NewClient("")
	assert.Equal(t, FallbackLabel, client.Classify(context.Background(), "hello"))
}
