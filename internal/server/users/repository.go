package users

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateSubscription(ctx context.Context, userID, tier, expires string) error
	ListExpiringSubscriptions(ctx context.Context) ([]User, error)
}
