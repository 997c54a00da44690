// Package api is the HTTP client for the Mood-Tracker backend. Each call maps
// to one endpoint; request and response schemas are strict, and any shape
// mismatch is reported as an error for the caller to classify; the session
// core decides what is recoverable, not this package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/khmorad/Mood-Tracker/internal/common"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the current access token, or "" for anonymous calls.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Client talks to the Mood-Tracker backend over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient builds a client for the backend at baseURL. tokens may be nil for
// a client that only ever makes anonymous calls.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     tokens,
	}
}

// errorBody is the backend's uniform error payload.
type errorBody struct {
	Error string `json:"error"`
}

// doJSON performs one request with an optional JSON body and decodes a JSON
// response into out (which may be nil). Non-2xx responses are returned as
// *APIError carrying the backend's human-readable detail.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set(common.AccessTokenHeaderName, "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return &APIError{StatusCode: resp.StatusCode, Detail: eb.Error}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}
