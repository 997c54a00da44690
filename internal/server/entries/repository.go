package entries

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	ListByUserAndDate(ctx context.Context, userID, journalDate string) ([]Entry, error)
	ActiveUserIDs(ctx context.Context, journalDate string) ([]string, error)
}
