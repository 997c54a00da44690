package api

import (
	"context"
	"fmt"
	"net/http"
)

type generateRequest struct {
	Message string `json:"message"`
}

type generateResponse struct {
	Message string `json:"message"`
}

// Generate sends a prompt to the enrichment endpoint and returns the
// assistant reply. The response schema is strict: a 2xx body without a
// non-empty message field is an error, the same class as a failed request.
// The caller (the session pipeline) masks both behind its fallback reply.
func (c *Client) Generate(ctx context.Context, message string) (string, error) {
	var resp generateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/generate", generateRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "", fmt.Errorf("generate: empty reply from server")
	}
	return resp.Message, nil
}
