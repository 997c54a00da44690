package services

import (
	"context"

	"github.com/khmorad/Mood-Tracker/internal/client/api"
	"github.com/khmorad/Mood-Tracker/internal/client/entitlement"
)

// PlanActivator is the slice of the API client the subscription service uses.
type PlanActivator interface {
	ActivatePlan(ctx context.Context, userID, plan string) (*api.PlanActivation, error)
}

// SubscriptionService switches plans and keeps the local snapshot in step
// with the server's confirmations.
type SubscriptionService interface {
	ActivatePlan(ctx context.Context, userID, plan string) (*api.PlanActivation, error)
}

type subscriptionService struct {
	backend PlanActivator
	cache   *entitlement.Cache
}

func NewSubscriptionService(backend PlanActivator, cache *entitlement.Cache) SubscriptionService {
	return &subscriptionService{backend: backend, cache: cache}
}

// ActivatePlan requests the plan change and, on confirmation, overwrites the
// cached snapshot with the server's values. The confirmation is authoritative;
// last write wins.
func (s *subscriptionService) ActivatePlan(ctx context.Context, userID, plan string) (*api.PlanActivation, error) {
	activation, err := s.backend.ActivatePlan(ctx, userID, plan)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, activation.SubscriptionTier, activation.SubscriptionExpires); err != nil {
		return nil, err
	}
	return activation, nil
}
