// Package services contains application services for the Mood-Tracker client.
// This file defines the auth service: register, login, logout, and resolving
// the current user from the stored credential plus the local subscription
// cache.
package services

import (
	"context"
	"fmt"

	"github.com/khmorad/Mood-Tracker/internal/client/credential"
	"github.com/khmorad/Mood-Tracker/internal/client/entitlement"
	"github.com/khmorad/Mood-Tracker/internal/client/models"
)

// Backend is the slice of the API client the auth service depends on.
type Backend interface {
	Register(ctx context.Context, email, firstName, lastName string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (string, error)
	Ping(ctx context.Context) error
}

// AuthService manages the session credential and resolves the current user.
//
// Contract:
//   - Login: authenticate against the server and store the access token.
//   - Register: create a new account on the server.
//   - CurrentUser: decode claims, overlay the cached subscription snapshot,
//     and seed a cold cache from the claims.
//   - Logout: drop the token and the cached snapshot; idempotent.
type AuthService interface {
	Register(ctx context.Context, email, firstName, lastName string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) *models.User
	Ping(ctx context.Context) error
}

type authService struct {
	backend Backend
	creds   *credential.Reader
	cache   *entitlement.Cache
}

func NewAuthService(backend Backend, creds *credential.Reader, cache *entitlement.Cache) AuthService {
	return &authService{backend: backend, creds: creds, cache: cache}
}

func (a *authService) Register(ctx context.Context, email, firstName, lastName string, password []byte) error {
	return a.backend.Register(ctx, email, firstName, lastName, password)
}

// Login authenticates and stores the fresh token. Any snapshot cached for a
// previous session is dropped so the new credential seeds the cache cleanly.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	token, err := a.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := a.cache.Clear(ctx); err != nil {
		return fmt.Errorf("clearing subscription cache: %w", err)
	}
	if err := a.creds.Save(ctx, token); err != nil {
		return fmt.Errorf("storing access token: %w", err)
	}
	return nil
}

// Logout removes the credential and the cached subscription snapshot.
// Calling it on an already logged-out session is a no-op.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.creds.Clear(ctx); err != nil {
		return err
	}
	return a.cache.Clear(ctx)
}

// CurrentUser resolves the session's user, or nil for an anonymous session.
//
// The cached snapshot wins over credential claims when both carry a tier: a
// server confirmation is always more recent than the token's issue time. When
// the cache is empty and the claims carry a tier, the cache is seeded once
// from the claims, so later reads inside the staleness window are served
// locally without ever overwriting a fresher confirmed value.
func (a *authService) CurrentUser(ctx context.Context) *models.User {
	claims := a.creds.Read(ctx)
	if claims == nil {
		return nil
	}

	user := &models.User{
		UserID:              claims.UserID,
		FirstName:           claims.FirstName,
		LastName:            claims.LastName,
		Email:               claims.Email,
		SubscriptionTier:    claims.SubscriptionTier,
		SubscriptionExpires: claims.SubscriptionExpiresAt,
	}

	snapshot, err := a.cache.Get(ctx)
	if err == nil && snapshot != nil {
		user.SubscriptionTier = snapshot.Tier
		user.SubscriptionExpires = snapshot.ExpiresAt
	} else if err == nil && claims.SubscriptionTier != "" {
		_ = a.cache.Put(ctx, claims.SubscriptionTier, claims.SubscriptionExpiresAt)
	}

	if user.SubscriptionTier == "" {
		user.SubscriptionTier = "Free"
	}
	return user
}

func (a *authService) Ping(ctx context.Context) error {
	return a.backend.Ping(ctx)
}
