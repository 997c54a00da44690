package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/khmorad/Mood-Tracker/internal/client/models"
)

// ListEntries fetches all journal entries for the given user. The server
// returns them in storage order; callers that care about day scoping or
// ordering do their own filtering.
func (c *Client) ListEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	path := "/api/journal-entries?user_id=" + url.QueryEscape(userID)
	var entries []models.JournalEntry
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateEntry persists one journal entry and returns the stored record with
// its server-assigned id.
func (c *Client) CreateEntry(ctx context.Context, entry models.JournalEntry) (*models.JournalEntry, error) {
	var created models.JournalEntry
	if err := c.doJSON(ctx, http.MethodPost, "/api/journal-entries", entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
