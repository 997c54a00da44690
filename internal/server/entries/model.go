package entries

// Entry is one persisted journal exchange. JSON field names match the wire
// contract the client expects.
type Entry struct {
	EntryID     int64  `json:"entry_id"`
	UserID      string `json:"user_id"`
	EntryText   string `json:"entry_text"`
	AIResponse  string `json:"ai_response"`
	JournalDate string `json:"journal_date"`
	EpisodeFlag int    `json:"episode_flag"`
}
