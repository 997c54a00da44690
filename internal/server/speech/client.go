// Package speech renders assistant replies as audio. The upstream
// text-to-speech provider returns raw audio bytes; the service stores them in
// the S3-compatible bucket and hands the client a time-limited URL.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UpstreamClient calls the text-to-speech provider and returns audio bytes.
type UpstreamClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func NewUpstreamClient(endpoint, apiKey string) *UpstreamClient {
	return &UpstreamClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

// Synthesize renders the text as speech and returns the audio payload.
func (c *UpstreamClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	raw, err := json.Marshal(synthesizeRequest{Text: text, ModelID: "eleven_monolingual_v1"})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	if c.apiKey != "" {
		req.Header.Set("xi-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("upstream returned empty audio")
	}

	return audio, nil
}
