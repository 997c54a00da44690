package emotions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khmorad/Mood-Tracker/internal/server/entries"
)

func TestNextRun_BeforeAndAfterTheDailySlot(t *testing.T) {
	s := NewScheduler(nil, testLogger())

	morning := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC), s.nextRun(morning))

	late := time.Date(2024, 3, 1, 23, 45, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 3, 2, 23, 30, 0, 0, time.UTC), s.nextRun(late))

	exact := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 3, 2, 23, 30, 0, 0, time.UTC), s.nextRun(exact))
}

func TestCatchUp_FillsMissedDaysOnly(t *testing.T) {
	source := &fakeEntrySource{entries: []entries.Entry{
		{EntryID: 1, UserID: "u-1", EntryText: "a", AIResponse: "r", JournalDate: "2024-03-07"},
		{EntryID: 2, UserID: "u-1", EntryText: "b", AIResponse: "r", JournalDate: "2024-03-08"},
	}}
	repo := &fakeRecordRepo{records: []Record{
		{UserID: "u-1", JournalDate: "2024-03-08"},
	}}
	svc := NewService(source, repo, &fakeUpstream{reply: `{"neutral": 5}`}, testLogger())

	s := NewScheduler(svc, testLogger())
	s.now = func() time.Time { return time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC) }
	s.pause = 0

	covered := s.CatchUp(context.Background(), 7)
	require.Equal(t, 2, covered)

	// only 2024-03-07 needed a new record
	require.Len(t, repo.records, 2)
	require.Equal(t, "2024-03-07", repo.records[1].JournalDate)
}

func TestCatchUp_HonorsCancel(t *testing.T) {
	svc := NewService(&fakeEntrySource{}, &fakeRecordRepo{}, &fakeUpstream{}, testLogger())
	s := NewScheduler(svc, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Zero(t, s.CatchUp(ctx, 7))
}
