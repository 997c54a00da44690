package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/khmorad/Mood-Tracker/internal/client/models"
	"github.com/khmorad/Mood-Tracker/internal/common"
	"github.com/khmorad/Mood-Tracker/internal/logging"
)

// FallbackReply is shown when the enrichment call fails. The conversation
// must never show a dead turn, so a failed enrichment is masked as a normal
// reply rather than surfaced as an error.
const FallbackReply = "I'm sorry, I'm having trouble processing that right now. Could you try again? 💙"

// SavedDisplayWindow is how long the "saved" marker stays on a turn before
// clearing. Purely a display affordance; the record is already persisted.
const SavedDisplayWindow = 3 * time.Second

// RecordStore is the narrow view of the backend's journal store the session
// needs: read everything for a subject, create one record.
type RecordStore interface {
	ListEntries(ctx context.Context, userID string) ([]models.JournalEntry, error)
	CreateEntry(ctx context.Context, entry models.JournalEntry) (*models.JournalEntry, error)
}

// Enricher produces the assistant reply for a prompt.
type Enricher interface {
	Generate(ctx context.Context, message string) (string, error)
}

// Session owns one login session's conversation state and its collaborators.
// Construct one per session at start, drop it at logout; nothing here is
// package-level.
type Session struct {
	user       models.User
	transcript *Transcript
	records    RecordStore
	enricher   Enricher
	logger     logging.Logger

	savedWindow time.Duration
	today       func() string

	mu            sync.Mutex
	mood          string
	historyLoaded bool
}

// New builds a session for the given user (zero-value UserID means an
// anonymous session). The transcript starts with a personalized greeting.
func New(user models.User, records RecordStore, enricher Enricher, logger logging.Logger) *Session {
	return &Session{
		user:        user,
		transcript:  NewTranscript(Greeting(user)),
		records:     records,
		enricher:    enricher,
		logger:      logger,
		savedWindow: SavedDisplayWindow,
		today:       func() string { return time.Now().Format(common.JournalDateLayout) },
	}
}

// Greeting returns the synthetic opening message for a user.
func Greeting(user models.User) string {
	if user.UserID == "" {
		return "Hello! How are you feeling today? I'm here to listen and support you. 💙"
	}
	return fmt.Sprintf("Hello %s! How are you feeling today? I'm here to listen and support you. 💙", user.DisplayName())
}

// Transcript exposes the session's transcript for rendering.
func (s *Session) Transcript() *Transcript { return s.transcript }

// User returns the user this session was built for.
func (s *Session) User() models.User { return s.user }

// SetMood records the mood the user picked; it is passed to the enrichment
// service as free-form context on subsequent submissions.
func (s *Session) SetMood(mood string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mood = mood
}

func (s *Session) currentMood() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mood
}

// LoadHistory merges today's persisted journal records into the transcript,
// after the greeting, oldest first. It runs at most once per session: the
// guard is set even when the fetch fails, because losing history degrades the
// session far less than re-appending it in a loop would. Anonymous sessions
// have nothing to load.
func (s *Session) LoadHistory(ctx context.Context) {
	s.mu.Lock()
	if s.historyLoaded {
		s.mu.Unlock()
		return
	}
	s.historyLoaded = true
	s.mu.Unlock()

	if s.user.UserID == "" {
		return
	}

	entries, err := s.records.ListEntries(ctx, s.user.UserID)
	if err != nil {
		s.logger.Warn(ctx, "could not load journal history, starting fresh", "error", err.Error())
		return
	}

	today := s.today()
	var todays []models.JournalEntry
	for _, e := range entries {
		if datePart(e.JournalDate) == today {
			todays = append(todays, e)
		}
	}
	sort.SliceStable(todays, func(i, j int) bool {
		return todays[i].JournalDate < todays[j].JournalDate
	})

	for _, e := range todays {
		s.transcript.appendHistory(e.EntryText, e.AIResponse)
	}

	s.logger.Info(ctx, "journal history loaded", "entries", len(todays))
}

// Submit runs one turn through the pipeline: optimistic append, enrichment,
// then persistence. It returns the final state of the turn for rendering.
//
// Each stage fails independently. A failed enrichment yields the fallback
// reply and the pipeline still attempts persistence; a failed persistence
// leaves a sticky Failed marker on the turn. Callers serialize submissions;
// the session does not queue or coalesce concurrent calls.
func (s *Session) Submit(ctx context.Context, userText string) Turn {
	seq := s.transcript.Append(userText)

	reply, err := s.enricher.Generate(ctx, s.buildPrompt(seq, userText))
	if err != nil || reply == "" {
		if err != nil {
			s.logger.Warn(ctx, "enrichment failed, using fallback reply", "error", err.Error())
		}
		reply = FallbackReply
	}
	s.transcript.setReply(seq, reply)

	if s.user.UserID == "" {
		// Anonymous turns stay local; there is nothing to persist.
		turn, _ := s.transcript.Turn(seq)
		return turn
	}

	s.transcript.setStatus(seq, StatusPending)

	_, err = s.records.CreateEntry(ctx, models.JournalEntry{
		UserID:      s.user.UserID,
		EntryText:   userText,
		AIResponse:  reply,
		JournalDate: s.today(),
		EpisodeFlag: 0,
	})
	if err != nil {
		s.logger.Warn(ctx, "journal entry save failed", "error", err.Error())
		s.transcript.setStatus(seq, StatusFailed)
	} else {
		s.transcript.setStatus(seq, StatusSaved)
		time.AfterFunc(s.savedWindow, func() { s.transcript.clearSaved(seq) })
	}

	turn, _ := s.transcript.Turn(seq)
	return turn
}

// buildPrompt linearizes the transcript into the free-form prompt the
// enrichment service expects: instruction, user context, the new message and
// the prior exchanges oldest first.
func (s *Session) buildPrompt(seq int, userText string) string {
	var history []string
	for _, turn := range s.transcript.Turns() {
		if turn.Seq == seq {
			// The optimistic turn being submitted right now is the prompt
			// itself, not history.
			continue
		}
		history = append(history, fmt.Sprintf("User message: %s, AI response: %s", turn.UserText, turn.Reply))
	}

	info := map[string]string{
		"firstName": s.user.FirstName,
		"lastName":  s.user.LastName,
		"email":     s.user.Email,
	}
	if mood := s.currentMood(); mood != "" {
		info["currentMood"] = mood
	}
	userInfo, _ := json.Marshal(info)

	return fmt.Sprintf(
		"Your response to the user needs to be encouraging, supportive, include nonverbal cues and always end with a question that could dig deeper. "+
			"Name of the user: user info: %s, User message: %s, Previous messages: %s",
		userInfo, userText, strings.Join(history, " "))
}

// datePart reduces a journal date or timestamp string to its calendar-day
// prefix for comparison.
func datePart(v string) string {
	if len(v) >= len(common.JournalDateLayout) {
		return v[:len(common.JournalDateLayout)]
	}
	return v
}
