// Package emotions scores the emotional content of each user's daily
// conversation and stores one record per user-day. Scoring runs through the
// same upstream model that produces assistant replies; when the model fails
// or returns garbage the default scores are stored instead, so a user-day is
// analyzed at most once.
package emotions

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/khmorad/Mood-Tracker/internal/logging"
	"github.com/khmorad/Mood-Tracker/internal/server/entries"
)

// Upstream produces the model completion for a prompt.
type Upstream interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// EntrySource is the slice of the entries repository the analyzer reads.
type EntrySource interface {
	ListByUserAndDate(ctx context.Context, userID, journalDate string) ([]entries.Entry, error)
	ActiveUserIDs(ctx context.Context, journalDate string) ([]string, error)
}

const scorePrompt = `Analyze the following conversation for emotional content and return ONLY a JSON object with emotion scores (0-10 scale):

Conversation: %s

Return format (no other text):
{"happy": 0, "stressed": 0, "anxious": 0, "angry": 0, "sad": 0, "agitated": 0, "neutral": 0}

Rules:
- Score each emotion 0-10 based on intensity
- Multiple emotions can have high scores
- If no clear emotion, set neutral higher
- Return ONLY the JSON object`

var jsonObject = regexp.MustCompile(`\{[^{}]+\}`)

type Service struct {
	entries  EntrySource
	records  Repository
	upstream Upstream
	logger   logging.Logger
}

func NewService(entries EntrySource, records Repository, upstream Upstream, logger logging.Logger) *Service {
	return &Service{
		entries:  entries,
		records:  records,
		upstream: upstream,
		logger:   logger,
	}
}

// AnalyzeUserDay scores one user's conversation for one calendar day. It
// reports whether a record exists for that day after the call: an already
// analyzed day is not re-scored, and a day with no entries yields nothing.
func (s *Service) AnalyzeUserDay(ctx context.Context, userID, journalDate string) (bool, error) {

	exists, err := s.records.Exists(ctx, userID, journalDate)
	if err != nil {
		return false, fmt.Errorf("error checking existing analysis: %v", err)
	}
	if exists {
		return true, nil
	}

	dayEntries, err := s.entries.ListByUserAndDate(ctx, userID, journalDate)
	if err != nil {
		return false, fmt.Errorf("error loading day entries: %v", err)
	}
	if len(dayEntries) == 0 {
		return false, nil
	}

	scores := s.scoreConversation(ctx, conversationText(dayEntries))

	rec := &Record{
		UserID:      userID,
		EntryID:     dayEntries[len(dayEntries)-1].EntryID,
		JournalDate: journalDate,
		Scores:      scores,
	}
	if _, err := s.records.Create(ctx, rec); err != nil {
		return false, fmt.Errorf("error saving analysis: %v", err)
	}

	s.logger.Info(ctx, "emotion analysis stored", "user_id", userID, "journal_date", journalDate)
	return true, nil
}

// AnalyzeDay scores every user who wrote on the given day, pausing between
// users to stay under upstream rate limits. Returns the number of user-days
// covered after the pass.
func (s *Service) AnalyzeDay(ctx context.Context, journalDate string, pause time.Duration) int {

	userIDs, err := s.entries.ActiveUserIDs(ctx, journalDate)
	if err != nil {
		s.logger.Error(ctx, "could not list active users", "journal_date", journalDate, "error", err.Error())
		return 0
	}

	covered := 0
	for i, userID := range userIDs {
		if i > 0 && pause > 0 {
			select {
			case <-time.After(pause):
			case <-ctx.Done():
				return covered
			}
		}

		ok, err := s.AnalyzeUserDay(ctx, userID, journalDate)
		if err != nil {
			s.logger.Error(ctx, "emotion analysis failed", "user_id", userID, "journal_date", journalDate, "error", err.Error())
			continue
		}
		if ok {
			covered++
		}
	}

	return covered
}

// ListByUser returns the user's analysis records, newest day first. An empty
// journalDate means all days.
func (s *Service) ListByUser(ctx context.Context, userID, journalDate string) ([]Record, error) {
	return s.records.ListByUser(ctx, userID, journalDate)
}

// ListRange returns the user's records inside the inclusive date range,
// oldest first. Empty bounds are open.
func (s *Service) ListRange(ctx context.Context, userID, startDate, endDate string) ([]Record, error) {
	return s.records.ListRange(ctx, userID, startDate, endDate)
}

// scoreConversation asks the upstream model for scores and falls back to the
// defaults when the reply cannot be used. It never fails.
func (s *Service) scoreConversation(ctx context.Context, conversation string) Scores {

	raw, err := s.upstream.Complete(ctx, fmt.Sprintf(scorePrompt, conversation))
	if err != nil {
		s.logger.Warn(ctx, "upstream scoring failed, storing defaults", "error", err.Error())
		return DefaultScores()
	}

	match := jsonObject.FindString(raw)
	if match == "" {
		s.logger.Warn(ctx, "no JSON object in upstream reply, storing defaults")
		return DefaultScores()
	}

	var scores Scores
	if err := json.Unmarshal([]byte(match), &scores); err != nil {
		s.logger.Warn(ctx, "unparsable scores in upstream reply, storing defaults", "error", err.Error())
		return DefaultScores()
	}

	return scores.Clamp()
}

// conversationText linearizes a day's entries into the transcript the model
// scores.
func conversationText(dayEntries []entries.Entry) string {
	var b strings.Builder
	for _, e := range dayEntries {
		b.WriteString("User: ")
		b.WriteString(e.EntryText)
		b.WriteString("\nAI: ")
		b.WriteString(e.AIResponse)
		b.WriteString("\n")
	}
	return b.String()
}
