package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/khmorad/Mood-Tracker/internal/common"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) (*PostgresRepository, error) {
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {

	query :=
		`INSERT INTO users (email, password_hash, first_name, last_name, subscription_tier, subscription_expires)
         VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING user_id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.SubscriptionTier, user.SubscriptionExpires).Scan(&user.UserID, &user.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query :=
		`SELECT user_id, email, password_hash, first_name, last_name, subscription_tier, subscription_expires, created_at
		 FROM users
		 WHERE email = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.UserID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.SubscriptionTier, &user.SubscriptionExpires, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, userID string) (*User, error) {
	query :=
		`SELECT user_id, email, password_hash, first_name, last_name, subscription_tier, subscription_expires, created_at
		 FROM users
		 WHERE user_id = $1
		 `

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.UserID, &user.Email, &user.PasswordHash, &user.FirstName, &user.LastName,
		&user.SubscriptionTier, &user.SubscriptionExpires, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

// ListExpiringSubscriptions returns every user on a paid tier with an expiry
// date set. Deciding which of them have actually lapsed is the service's job.
func (r *PostgresRepository) ListExpiringSubscriptions(ctx context.Context) ([]User, error) {
	query :=
		`SELECT user_id, email, password_hash, first_name, last_name, subscription_tier, subscription_expires, created_at
		 FROM users
		 WHERE subscription_tier <> 'Free' AND subscription_expires <> ''
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
			&u.SubscriptionTier, &u.SubscriptionExpires, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %v", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %v", err)
	}

	return out, nil
}

func (r *PostgresRepository) UpdateSubscription(ctx context.Context, userID, tier, expires string) error {
	query :=
		`UPDATE users
		 SET subscription_tier = $2, subscription_expires = $3
		 WHERE user_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, userID, tier, expires)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
