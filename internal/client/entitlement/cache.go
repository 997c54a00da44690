// Package entitlement caches the session's subscription snapshot on the
// client.
//
// The snapshot is a single keyed record {tier, expires_at, captured_at} kept
// in the local sqlite database. It is written from two places only: seeding
// from credential claims when the cache is cold, and explicit server
// confirmations after a plan change. A snapshot older than MaxAge is treated
// as absent, not merely stale: Get evicts it and reports nothing. There is no
// background expiry timer.
package entitlement

import (
	"context"
	"encoding/json"
	"time"

	"github.com/khmorad/Mood-Tracker/internal/client/repositories/metadata"
)

const snapshotKey = "subscription"

// MaxAge is how long a stored snapshot stays servable. Past this window the
// credential (or the server) is the only source of truth again.
const MaxAge = 5 * time.Minute

// Snapshot is a point-in-time view of the session's subscription.
type Snapshot struct {
	Tier       string `json:"tier"`
	ExpiresAt  string `json:"expires_at,omitempty"`
	CapturedAt int64  `json:"captured_at"` // unix milliseconds
}

// Cache is the time-boxed local store for subscription snapshots.
// Last write wins; there is no merge logic.
type Cache struct {
	repo metadata.Repository
	now  func() time.Time
}

func NewCache(repo metadata.Repository) *Cache {
	return &Cache{repo: repo, now: time.Now}
}

// NewCacheWithClock is a constructor for tests that need to control time.
func NewCacheWithClock(repo metadata.Repository, now func() time.Time) *Cache {
	return &Cache{repo: repo, now: now}
}

// Get returns the stored snapshot, or nil when none is stored or the stored
// one has aged out. An aged-out snapshot is deleted as a side effect so it can
// never be served by a later call either.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	raw, err := c.repo.Get(ctx, snapshotKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		// An unreadable snapshot is as good as none; drop it.
		_ = c.repo.Delete(ctx, snapshotKey)
		return nil, nil
	}

	age := c.now().UnixMilli() - s.CapturedAt
	if age > MaxAge.Milliseconds() {
		if err := c.repo.Delete(ctx, snapshotKey); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &s, nil
}

// Put overwrites the snapshot unconditionally with a fresh capture time.
func (c *Cache) Put(ctx context.Context, tier string, expiresAt string) error {
	s := Snapshot{
		Tier:       tier,
		ExpiresAt:  expiresAt,
		CapturedAt: c.now().UnixMilli(),
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.repo.Set(ctx, snapshotKey, raw)
}

// Clear removes the snapshot. Used on logout; safe to call repeatedly.
func (c *Cache) Clear(ctx context.Context) error {
	return c.repo.Delete(ctx, snapshotKey)
}
