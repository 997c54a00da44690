package credential

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/khmorad/Mood-Tracker/internal/client/repositories/metadata"
)

func setupReader(t *testing.T) (*Reader, context.Context) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:credential_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);
DELETE FROM metadata;`)
	require.NoError(t, err)

	return NewReader(metadata.NewSQLiteRepository(db)), context.Background()
}

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestReader_ReadDecodesStoredToken(t *testing.T) {
	r, ctx := setupReader(t)

	token := signedToken(t, Claims{
		UserID:                "u1",
		FirstName:             "Dana",
		Email:                 "dana@example.com",
		SubscriptionTier:      "Plus",
		SubscriptionExpiresAt: "2025-01-01",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	require.NoError(t, r.Save(ctx, token))

	claims := r.Read(ctx)
	require.NotNil(t, claims)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "Dana", claims.FirstName)
	require.Equal(t, "Plus", claims.SubscriptionTier)
	require.Equal(t, "2025-01-01", claims.SubscriptionExpiresAt)
}

func TestReader_ReadMissingTokenIsAnonymous(t *testing.T) {
	r, ctx := setupReader(t)
	require.Nil(t, r.Read(ctx))
}

func TestReader_ReadMalformedTokenIsAnonymous(t *testing.T) {
	r, ctx := setupReader(t)

	// Malformed must be indistinguishable from absent.
	require.NoError(t, r.Save(ctx, "not.a.jwt"))
	require.Nil(t, r.Read(ctx))
}

func TestReader_ClearIsIdempotent(t *testing.T) {
	r, ctx := setupReader(t)

	require.NoError(t, r.Save(ctx, "anything"))
	require.NoError(t, r.Clear(ctx))
	require.NoError(t, r.Clear(ctx))
	require.Empty(t, r.Token(ctx))
}
