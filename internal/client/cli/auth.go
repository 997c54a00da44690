package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/khmorad/Mood-Tracker/internal/client/api"
	"github.com/khmorad/Mood-Tracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for their profile and password and attempts to
// create a new account via the AuthService.
//
// On success it prints "Success! You can now log in." and returns nil. The
// password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}

	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, email, firstName, lastName, password); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// On success the access token is stored locally, the connectivity Mode is set
// to online, and a fresh conversation session is started for the user with
// today's journal history reconciled in.
//
// The password is securely wiped before returning. A server that cannot be
// reached (errors.Is(err, api.ErrUnavailable)) flips the Mode to offline.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Printf("Server unavailable, try again later")
			a.setMode(ModeOffline)
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successful")
	a.setMode(ModeOnline)

	a.startSession(ctx)
	if u := a.session.User(); u.UserID != "" {
		fmt.Printf("Welcome back, %s!\n", u.DisplayName())
	}
	return nil
}

// Logout clears the stored credential and the cached subscription snapshot,
// then restarts the session as anonymous. It is safe to call when already
// logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.startSession(ctx)
	fmt.Println("Logged out.")
	return nil
}

// WhoAmI prints the current user and their effective subscription.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.authService.CurrentUser(ctx)
	if u == nil {
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", u.DisplayName(), u.Email)
	if u.SubscriptionExpires != "" {
		fmt.Printf("Subscription: %s (expires %s)\n", u.SubscriptionTier, u.SubscriptionExpires)
	} else {
		fmt.Printf("Subscription: %s\n", u.SubscriptionTier)
	}
	return nil
}
