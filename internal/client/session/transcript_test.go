package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranscript_AppendAssignsSequentialSeq(t *testing.T) {
	tr := NewTranscript("hi")

	require.Equal(t, 1, tr.Append("a"))
	require.Equal(t, 2, tr.Append("b"))
	require.Equal(t, 3, tr.Len())
}

func TestTranscript_ReplyIsWrittenAtMostOnce(t *testing.T) {
	tr := NewTranscript("hi")
	seq := tr.Append("a")

	tr.setReply(seq, "first")
	tr.setReply(seq, "second")

	turn, ok := tr.Turn(seq)
	require.True(t, ok)
	require.Equal(t, "first", turn.Reply)
}

func TestTranscript_ClearSavedOnlyAffectsSaved(t *testing.T) {
	tr := NewTranscript("hi")
	seq := tr.Append("a")

	tr.setStatus(seq, StatusFailed)
	tr.clearSaved(seq)
	turn, _ := tr.Turn(seq)
	require.Equal(t, StatusFailed, turn.Status, "failed must stay failed")

	tr.setStatus(seq, StatusSaved)
	tr.clearSaved(seq)
	turn, _ = tr.Turn(seq)
	require.Equal(t, StatusNone, turn.Status)
}

func TestTranscript_TurnsReturnsACopy(t *testing.T) {
	tr := NewTranscript("hi")
	tr.Append("a")

	snapshot := tr.Turns()
	snapshot[1].UserText = "mutated"

	turn, _ := tr.Turn(1)
	require.Equal(t, "a", turn.UserText)
}

func TestTranscript_OutOfRangeAccessorsAreSafe(t *testing.T) {
	tr := NewTranscript("hi")

	_, ok := tr.Turn(5)
	require.False(t, ok)
	tr.setReply(5, "x")
	tr.setStatus(-1, StatusSaved)
	tr.clearSaved(9)
}

func TestTranscript_ConcurrentAppends(t *testing.T) {
	tr := NewTranscript("hi")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Append("x")
		}()
	}
	wg.Wait()

	turns := tr.Turns()
	require.Len(t, turns, 51)
	for i, turn := range turns {
		require.Equal(t, i, turn.Seq)
	}
}

func TestStatus_String(t *testing.T) {
	require.Equal(t, "", StatusNone.String())
	require.Equal(t, "saving", StatusPending.String())
	require.Equal(t, "saved", StatusSaved.String())
	require.Equal(t, "save failed", StatusFailed.String())
}
