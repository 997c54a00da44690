package emotions

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

const recordColumns = `user_id, entry_id, journal_date, happy, stressed, anxious, angry, sad, agitated, neutral`

func (r *PostgresRepository) Create(ctx context.Context, rec *Record) (*Record, error) {

	query :=
		`INSERT INTO emotions (` + recordColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `

	_, err := r.db.ExecContext(ctx, query,
		rec.UserID, rec.EntryID, rec.JournalDate,
		rec.Happy, rec.Stressed, rec.Anxious, rec.Angry, rec.Sad, rec.Agitated, rec.Neutral)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return rec, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, journalDate string) (bool, error) {

	query :=
		`SELECT EXISTS (
			SELECT 1 FROM emotions WHERE user_id = $1 AND journal_date = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, journalDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("error performing sql request: %v", err)
	}

	return exists, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID, journalDate string) ([]Record, error) {

	query :=
		`SELECT ` + recordColumns + `
		 FROM emotions
		 WHERE user_id = $1 AND ($2 = '' OR journal_date = $2)
		 ORDER BY journal_date DESC
		 `

	return r.queryRecords(ctx, query, userID, journalDate)
}

func (r *PostgresRepository) ListRange(ctx context.Context, userID, startDate, endDate string) ([]Record, error) {

	query :=
		`SELECT ` + recordColumns + `
		 FROM emotions
		 WHERE user_id = $1
		   AND ($2 = '' OR journal_date >= $2)
		   AND ($3 = '' OR journal_date <= $3)
		 ORDER BY journal_date ASC
		 `

	return r.queryRecords(ctx, query, userID, startDate, endDate)
}

func (r *PostgresRepository) queryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.UserID, &rec.EntryID, &rec.JournalDate,
			&rec.Happy, &rec.Stressed, &rec.Anxious, &rec.Angry, &rec.Sad, &rec.Agitated, &rec.Neutral); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return records, nil
}
