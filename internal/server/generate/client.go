// Package generate proxies reply enrichment to an upstream language-model
// endpoint. Upstream trouble never reaches the client as an error: the
// service substitutes a supportive fallback and the API stays 200.
package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// UpstreamClient calls a generateContent-style endpoint and extracts the
// first candidate's text.
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

type upstreamRequest struct {
	Contents []upstreamContent `json:"contents"`
}

type upstreamContent struct {
	Parts []upstreamPart `json:"parts"`
}

type upstreamPart struct {
	Text string `json:"text"`
}

type upstreamResponse struct {
	Candidates []struct {
		Content upstreamContent `json:"content"`
	} `json:"candidates"`
}

// Complete sends the prompt upstream and returns the generated text.
func (c *UpstreamClient) Complete(ctx context.Context, prompt string) (string, error) {
	body := upstreamRequest{
		Contents: []upstreamContent{{Parts: []upstreamPart{{Text: prompt}}}},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upstream request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading upstream response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream returned %d", resp.StatusCode)
	}

	var parsed upstreamResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decoding upstream response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("upstream returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
