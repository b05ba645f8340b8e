package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMissingAPIKey is returned before any network call when no credential is
// configured.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1/models"
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 15 * time.Second
)

type GeminiChatParts struct {
	Text string `json:"text"`
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
}

type GeminiChatRequest struct {
	Contents []*GeminiChatContent `json:"contents"`
}

type GeminiChatCandidate struct {
	Content *GeminiChatContent `json:"content"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

// Client is a thin wrapper over the generateContent endpoint. One request per
// invocation, no retry.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      model,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithBaseURL exists for tests that point the client at a stub
// server.
func NewClientWithBaseURL(apiKey, model, baseURL string) *Client {
	c := NewClient(apiKey, model)
	c.baseURL = baseURL
	return c
}

func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := GeminiChatRequest{
		Contents: []*GeminiChatContent{
			{
				Parts: []*GeminiChatParts{
					{
						Text: prompt,
					},
				},
			},
		},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 ||
		geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response has no candidate text")
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
