package entries

import (
	"context"
	"fmt"
	"strings"

	"github.com/khmorad/Mood-Tracker/internal/common"
)

// ValidationError lists the required fields missing from a create request.
// It unwraps to common.ErrorValidation so transport code can match it.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Missing, ", ")
}

func (e *ValidationError) Unwrap() error { return common.ErrorValidation }

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists one journal exchange. The entry text and the
// reply are stored verbatim; the server does not re-derive the reply.
func (s *Service) Create(ctx context.Context, entry *Entry) (*Entry, error) {

	var missing []string
	if entry.UserID == "" {
		missing = append(missing, "user_id")
	}
	if entry.EntryText == "" {
		missing = append(missing, "entry_text")
	}
	if entry.JournalDate == "" {
		missing = append(missing, "journal_date")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	entry, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %v", err)
	}

	return entry, nil
}

// ListByUser returns every stored entry for the user, oldest first. Day
// scoping is the client's concern; the server hands back the full record set.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	if userID == "" {
		return nil, &ValidationError{Missing: []string{"user_id"}}
	}
	return s.repo.ListByUser(ctx, userID)
}
