package api

import (
	"context"
	"fmt"
	"net/http"
)

type speechRequest struct {
	Text string `json:"text"`
}

type speechResponse struct {
	URL string `json:"url"`
}

// Synthesize asks the server to render text as speech and returns a URL to
// the playable audio. Failures here never touch the transcript; the caller
// shows a transient notice and moves on.
func (c *Client) Synthesize(ctx context.Context, text string) (string, error) {
	var resp speechResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/text-to-speech", speechRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("text-to-speech: no audio url in response")
	}
	return resp.URL, nil
}
