package emotions

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	repo, err := NewPostgresRepository(db)
	if err != nil {
		t.Fatalf("NewPostgresRepository error: %v", err)
	}
	return repo, mock, db
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"user_id", "entry_id", "journal_date",
		"happy", "stressed", "anxious", "angry", "sad", "agitated", "neutral",
	})
}

func TestCreate_InsertsAllScores(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+emotions`).
		WithArgs("u-1", int64(14), "2024-03-01", 2, 7, 6, 1, 3, 4, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rec := &Record{
		UserID:      "u-1",
		EntryID:     14,
		JournalDate: "2024-03-01",
		Scores:      Scores{Happy: 2, Stressed: 7, Anxious: 6, Angry: 1, Sad: 3, Agitated: 4, Neutral: 2},
	}
	if _, err := repo.Create(context.Background(), rec); err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+emotions`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &Record{UserID: "u-1"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestExists_FoundAndMissing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+EXISTS`).
		WithArgs("u-1", "2024-03-01").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`(?s)^SELECT\s+EXISTS`).
		WithArgs("u-1", "2024-03-02").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	got, err := repo.Exists(context.Background(), "u-1", "2024-03-01")
	if err != nil || !got {
		t.Fatalf("Exists = %v, %v; want true", got, err)
	}
	got, err = repo.Exists(context.Background(), "u-1", "2024-03-02")
	if err != nil || got {
		t.Fatalf("Exists = %v, %v; want false", got, err)
	}
}

func TestListByUser_ScansRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := recordRows().
		AddRow("u-1", int64(14), "2024-03-02", 1, 8, 7, 0, 4, 5, 1).
		AddRow("u-1", int64(9), "2024-03-01", 6, 2, 1, 0, 1, 0, 3)
	mock.ExpectQuery(`(?s)^SELECT\s+user_id,.*FROM\s+emotions\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u-1", "").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1", "")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].Stressed != 8 || got[1].EntryID != 9 {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestListRange_EmptyResult(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+user_id,.*FROM\s+emotions`).
		WithArgs("ghost", "2024-03-01", "2024-03-07").
		WillReturnRows(recordRows())

	got, err := repo.ListRange(context.Background(), "ghost", "2024-03-01", "2024-03-07")
	if err != nil {
		t.Fatalf("ListRange error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}
