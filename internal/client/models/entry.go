// Package models defines the client-side views of server-owned records.
package models

// JournalEntry mirrors a journal record held by the backend. The client only
// ever creates entries (through the save call) or reads them back during
// history reconciliation; it never updates or deletes them.
type JournalEntry struct {
	ID          int64  `json:"entry_id"`
	UserID      string `json:"user_id"`
	EntryText   string `json:"entry_text"`
	AIResponse  string `json:"ai_response"`
	JournalDate string `json:"journal_date"`
	EpisodeFlag int    `json:"episode_flag"`
}

// User is the session's view of the logged-in user, assembled from credential
// claims and the locally cached subscription snapshot.
type User struct {
	UserID              string
	FirstName           string
	LastName            string
	Email               string
	SubscriptionTier    string
	SubscriptionExpires string
}

// DisplayName returns the name to greet the user with, falling back to the
// email local part when no first name is present.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return "User"
}
