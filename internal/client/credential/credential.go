// Package credential reads the session credential stored on the client.
//
// The access token is an opaque JWT issued by the server. The client never
// verifies its signature (it has no signing secret); it only decodes the claim
// payload to learn who the session belongs to. A missing or malformed token is
// the anonymous-session state, not an error. Callers cannot and must not
// distinguish "missing" from "corrupt".
package credential

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/khmorad/Mood-Tracker/internal/client/repositories/metadata"
)

const tokenKey = "access_token"

// Claims is the decoded payload of the session credential.
type Claims struct {
	UserID                string `json:"user_id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Email                 string `json:"email"`
	SubscriptionTier      string `json:"subscription_tier,omitempty"`
	SubscriptionExpiresAt string `json:"subscription_expires_at,omitempty"`
	jwt.RegisteredClaims
}

// Reader extracts session claims from the locally stored credential.
type Reader struct {
	repo metadata.Repository
}

func NewReader(repo metadata.Repository) *Reader {
	return &Reader{repo: repo}
}

// Token returns the raw stored access token, or "" when none is stored.
func (r *Reader) Token(ctx context.Context) string {
	v, err := r.repo.Get(ctx, tokenKey)
	if err != nil || v == nil {
		return ""
	}
	return string(v)
}

// Save stores the access token, replacing any previous one.
func (r *Reader) Save(ctx context.Context, token string) error {
	return r.repo.Set(ctx, tokenKey, []byte(token))
}

// Clear removes the stored token. Clearing an absent token is a no-op.
func (r *Reader) Clear(ctx context.Context) error {
	return r.repo.Delete(ctx, tokenKey)
}

// Read returns the decoded claims of the stored credential, or nil for an
// anonymous session. Decode failures are deliberately swallowed: a token the
// client cannot parse is treated exactly like no token at all.
func (r *Reader) Read(ctx context.Context) *Claims {
	token := r.Token(ctx)
	if token == "" {
		return nil
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.UserID == "" {
		return nil
	}
	return claims
}
