// Package auth issues and verifies the HS256 access tokens the API hands out
// at login. The claim payload carries the user profile and subscription so the
// client can personalize the session without a round trip.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/khmorad/Mood-Tracker/internal/common"
)

// Claims includes the registered claims plus the user profile fields the
// client decodes from the token.
type Claims struct {
	UserID                string `json:"user_id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Email                 string `json:"email"`
	SubscriptionTier      string `json:"subscription_tier,omitempty"`
	SubscriptionExpiresAt string `json:"subscription_expires_at,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs an access token carrying the given claims. The expiry
// registered claim is set here; any value the caller put there is replaced.
func GenerateToken(claims Claims, secretKey []byte, validityDuration time.Duration) (string, error) {
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetClaimsFromToken verifies the token signature and expiry and returns the
// decoded claims.
func GetClaimsFromToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
