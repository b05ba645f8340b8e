package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// FallbackLabel is returned on any classification failure. Classification is
// best effort and must never block the response pipeline.
const FallbackLabel = "neutral"

const defaultTimeout = 15 * time.Second

type predictRequest struct {
	Data []string `json:"data"`
}

type predictResponse struct {
	Data []string `json:"data"`
}

// Client calls a Gradio-style sentiment endpoint with a one element batch.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Classify returns the sentiment label for text. Exactly one outbound call,
// no retry; transport failures, non-2xx statuses and malformed bodies all
// degrade to FallbackLabel.
func (c *Client) Classify(ctx context.Context, text string) string {
	if c.baseURL == "" {
		return FallbackLabel
	}

	payload, err := json.Marshal(predictRequest{Data: []string{text}})
	if err != nil {
		return FallbackLabel
	}

	url := fmt.Sprintf("%s/api/predict", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return FallbackLabel
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[WARN] sentiment request failed: %v", err)
		return FallbackLabel
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return FallbackLabel
	}

	if res.StatusCode != http.StatusOK {
		log.Printf("[WARN] sentiment endpoint returned status %d", res.StatusCode)
		return FallbackLabel
	}

	var predictRes predictResponse
	if err := json.Unmarshal(resBody, &predictRes); err != nil {
		log.Printf("[WARN] sentiment response malformed: %v", err)
		return FallbackLabel
	}
	if len(predictRes.Data) == 0 || predictRes.Data[0] == "" {
		return FallbackLabel
	}

	return predictRes.Data[0]
}
