package emotions

// Scores grades each tracked emotion on a 0-10 scale for one user-day.
type Scores struct {
	Happy    int `json:"happy"`
	Stressed int `json:"stressed"`
	Anxious  int `json:"anxious"`
	Angry    int `json:"angry"`
	Sad      int `json:"sad"`
	Agitated int `json:"agitated"`
	Neutral  int `json:"neutral"`
}

// DefaultScores is stored when analysis fails: mildly neutral, nothing else.
func DefaultScores() Scores {
	return Scores{Neutral: 5}
}

// Clamp bounds every score to the 0-10 scale.
func (s Scores) Clamp() Scores {
	for _, p := range []*int{&s.Happy, &s.Stressed, &s.Anxious, &s.Angry, &s.Sad, &s.Agitated, &s.Neutral} {
		if *p < 0 {
			*p = 0
		}
		if *p > 10 {
			*p = 10
		}
	}
	return s
}

// Record is one stored analysis result, keyed to the day's latest journal
// entry. JSON field names match the wire contract.
type Record struct {
	UserID      string `json:"user_id"`
	EntryID     int64  `json:"entry_id"`
	JournalDate string `json:"journal_date"`
	Scores
}
