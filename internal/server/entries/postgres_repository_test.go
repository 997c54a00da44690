package entries

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

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"entry_id"}).AddRow(int64(7))
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+journal_entries`).
		WithArgs("u-1", "long day", "tell me more", "2024-03-01", 0).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), &Entry{
		UserID:      "u-1",
		EntryText:   "long day",
		AIResponse:  "tell me more",
		JournalDate: "2024-03-01",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.EntryID != 7 {
		t.Fatalf("unexpected entry: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+journal_entries`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &Entry{UserID: "u-1"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestListByUser_ScansRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"entry_id", "user_id", "entry_text", "ai_response", "journal_date", "episode_flag"}).
		AddRow(int64(1), "u-1", "a", "ra", "2024-03-01", 0).
		AddRow(int64(2), "u-1", "b", "rb", "2024-03-01", 1)
	mock.ExpectQuery(`(?s)^SELECT\s+entry_id,.*FROM\s+journal_entries\s+WHERE\s+user_id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[1].EpisodeFlag != 1 {
		t.Fatalf("unexpected entries: %+v", got)
	}
}

func TestListByUser_EmptyResult(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"entry_id", "user_id", "entry_text", "ai_response", "journal_date", "episode_flag"})
	mock.ExpectQuery(`(?s)^SELECT\s+entry_id,.*FROM\s+journal_entries`).
		WithArgs("ghost").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %+v", got)
	}
}
