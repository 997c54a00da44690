package users

import "time"

type User struct {
	UserID              string
	Email               string
	PasswordHash        []byte
	FirstName           string
	LastName            string
	SubscriptionTier    string
	SubscriptionExpires string
	CreatedAt           time.Time
}
