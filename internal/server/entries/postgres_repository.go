package entries

import (
	"context"
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, entry *Entry) (*Entry, error) {

	query :=
		`INSERT INTO journal_entries (user_id, entry_text, ai_response, journal_date, episode_flag)
		VALUES ($1, $2, $3, $4, $5)
		 RETURNING entry_id
		 `

	err := r.db.QueryRowContext(ctx, query,
		entry.UserID, entry.EntryText, entry.AIResponse, entry.JournalDate, entry.EpisodeFlag).Scan(&entry.EntryID)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return entry, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Entry, error) {

	query :=
		`SELECT entry_id, user_id, entry_text, ai_response, journal_date, episode_flag
		 FROM journal_entries
		 WHERE user_id = $1
		 ORDER BY entry_id
		 `

	return r.queryEntries(ctx, query, userID)
}

func (r *PostgresRepository) ListByUserAndDate(ctx context.Context, userID, journalDate string) ([]Entry, error) {

	query :=
		`SELECT entry_id, user_id, entry_text, ai_response, journal_date, episode_flag
		 FROM journal_entries
		 WHERE user_id = $1 AND journal_date = $2
		 ORDER BY entry_id
		 `

	return r.queryEntries(ctx, query, userID, journalDate)
}

func (r *PostgresRepository) ActiveUserIDs(ctx context.Context, journalDate string) ([]string, error) {

	query :=
		`SELECT DISTINCT user_id
		 FROM journal_entries
		 WHERE journal_date = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, journalDate)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		userIDs = append(userIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return userIDs, nil
}

func (r *PostgresRepository) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.EntryID, &e.UserID, &e.EntryText, &e.AIResponse, &e.JournalDate, &e.EpisodeFlag); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return entries, nil
}
