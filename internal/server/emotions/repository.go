package emotions

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, rec *Record) (*Record, error)
	Exists(ctx context.Context, userID, journalDate string) (bool, error)
	ListByUser(ctx context.Context, userID, journalDate string) ([]Record, error)
	ListRange(ctx context.Context, userID, startDate, endDate string) ([]Record, error)
}
