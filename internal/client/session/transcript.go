// Package session holds the client's conversation state for one login
// session: the in-memory transcript, the submission pipeline that enriches
// and persists each turn, and the one-shot history reconciliation against the
// server's journal records.
package session

import "sync"

// Status tracks how far a turn has made it toward the server.
//
// Lifecycle per turn: StatusNone → StatusPending → StatusSaved or
// StatusFailed. A saved turn drops back to StatusNone after the display
// window; a failed one stays failed until the user's next action.
type Status int

const (
	StatusNone Status = iota
	StatusPending
	StatusSaved
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "saving"
	case StatusSaved:
		return "saved"
	case StatusFailed:
		return "save failed"
	default:
		return ""
	}
}

// Turn is one user/assistant exchange. A turn with empty UserText is the
// session greeting; it is synthesized locally and never persisted.
type Turn struct {
	Seq      int
	UserText string
	Reply    string
	Status   Status
}

// IsGreeting reports whether the turn is the synthetic session greeting.
func (t Turn) IsGreeting() bool { return t.UserText == "" }

// Transcript is the ordered, in-memory list of turns for one session.
//
// Seq values are 0-based insertion order, stable and gap-free. The transcript
// lives only as long as the session; it is rebuilt from the server plus fresh
// submissions on every start. All methods are safe for concurrent use.
type Transcript struct {
	mu    sync.Mutex
	turns []Turn
}

// NewTranscript returns a transcript seeded with the greeting turn.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{}
	t.turns = append(t.turns, Turn{Seq: 0, UserText: "", Reply: greeting})
	return t
}

// Append adds a turn with the given user text and no reply yet, returning its
// sequence number. The turn is visible to readers immediately.
func (t *Transcript) Append(userText string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	seq := len(t.turns)
	t.turns = append(t.turns, Turn{Seq: seq, UserText: userText})
	return seq
}

// appendHistory adds an already-answered turn recovered from the server.
func (t *Transcript) appendHistory(userText, reply string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	seq := len(t.turns)
	t.turns = append(t.turns, Turn{Seq: seq, UserText: userText, Reply: reply})
}

// setReply records the assistant reply for a turn. A reply is written at most
// once; later writes are ignored.
func (t *Transcript) setReply(seq int, reply string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq < 0 || seq >= len(t.turns) {
		return
	}
	if t.turns[seq].Reply == "" {
		t.turns[seq].Reply = reply
	}
}

func (t *Transcript) setStatus(seq int, s Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq < 0 || seq >= len(t.turns) {
		return
	}
	t.turns[seq].Status = s
}

// clearSaved drops a turn's status from Saved back to None once the display
// window has passed. Any other status is left alone, so a Failed marker can
// never be cleared this way.
func (t *Transcript) clearSaved(seq int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq < 0 || seq >= len(t.turns) {
		return
	}
	if t.turns[seq].Status == StatusSaved {
		t.turns[seq].Status = StatusNone
	}
}

// Turn returns a copy of the turn with the given sequence number.
func (t *Transcript) Turn(seq int) (Turn, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if seq < 0 || seq >= len(t.turns) {
		return Turn{}, false
	}
	return t.turns[seq], true
}

// Turns returns a snapshot of all turns in order.
func (t *Transcript) Turns() []Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of turns, greeting included.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}
