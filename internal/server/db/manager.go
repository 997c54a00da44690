// Package db wires the PostgreSQL connection, repositories, and embedded
// migrations into one manager.
package db

import (
	"context"
	"database/sql"

	"github.com/khmorad/Mood-Tracker/internal/server/emotions"
	"github.com/khmorad/Mood-Tracker/internal/server/entries"
	"github.com/khmorad/Mood-Tracker/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Entries() entries.Repository
	Emotions() emotions.Repository
}
