package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/khmorad/Mood-Tracker/internal/common"
	"github.com/khmorad/Mood-Tracker/internal/server/auth"
	"github.com/khmorad/Mood-Tracker/internal/server/config"
)

// Subscription plan names accepted by ActivatePlan.
const (
	PlanFree         = "Free"
	PlanPlus         = "Plus"
	PlanProfessional = "Professional"
)

// PlusTrialDays is the length of the Plus trial granted on activation.
const PlusTrialDays = 7

// PlanActivation is the confirmation returned after a plan switch.
type PlanActivation struct {
	Message             string
	SubscriptionTier    string
	SubscriptionExpires string
}

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	now                         func() time.Time
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
	}
}

func (s *Service) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {

	if !strings.Contains(email, "@") {
		return nil, common.ErrorInvalidLoginFormat
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorLoginAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &User{
		Email:            email,
		PasswordHash:     hash,
		FirstName:        firstName,
		LastName:         lastName,
		SubscriptionTier: PlanFree,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

// Login verifies credentials and issues an access token carrying the user's
// profile and subscription claims.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(auth.Claims{
		UserID:                user.UserID,
		FirstName:             user.FirstName,
		LastName:              user.LastName,
		Email:                 user.Email,
		SubscriptionTier:      user.SubscriptionTier,
		SubscriptionExpiresAt: user.SubscriptionExpires,
	}, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}

// ActivatePlan switches the user's subscription and returns the confirmation
// the client shows. Plus starts a time-boxed trial; Free and Professional
// carry no expiry.
func (s *Service) ActivatePlan(ctx context.Context, userID, plan string) (*PlanActivation, error) {

	var expires, message string

	switch plan {
	case PlanFree:
		message = "Successfully switched to the Free plan!"
	case PlanPlus:
		expires = s.now().AddDate(0, 0, PlusTrialDays).Format(common.JournalDateLayout)
		message = fmt.Sprintf("Successfully started your %d-day free trial of Plus plan!", PlusTrialDays)
	case PlanProfessional:
		message = "Successfully activated the Professional plan!"
	default:
		return nil, common.ErrorUnknownSubscription
	}

	if err := s.repo.UpdateSubscription(ctx, userID, plan, expires); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return &PlanActivation{
		Message:             message,
		SubscriptionTier:    plan,
		SubscriptionExpires: expires,
	}, nil
}

// DowngradeExpired moves every user whose paid subscription has lapsed back
// to the Free plan and clears the expiry. Expiry dates are calendar days; a
// subscription counts as lapsed from the start of its expiry date. Returns
// the number of users downgraded; update failures are joined into the error
// without stopping the sweep.
func (s *Service) DowngradeExpired(ctx context.Context) (int, error) {

	candidates, err := s.repo.ListExpiringSubscriptions(ctx)
	if err != nil {
		return 0, fmt.Errorf("error listing expiring subscriptions: %v", err)
	}

	today := s.now().Format(common.JournalDateLayout)

	downgraded := 0
	var errs []error
	for _, u := range candidates {
		if u.SubscriptionExpires > today {
			continue
		}
		if err := s.repo.UpdateSubscription(ctx, u.UserID, PlanFree, ""); err != nil {
			errs = append(errs, fmt.Errorf("user %s: %w", u.UserID, err))
			continue
		}
		downgraded++
	}

	return downgraded, errors.Join(errs...)
}
