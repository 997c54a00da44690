package api

import (
	"context"
	"net/http"
)

type activatePlanRequest struct {
	UserID string `json:"user_id"`
	Plan   string `json:"plan"`
}

// PlanActivation is the server's confirmation of a plan change. It is the
// authoritative value the entitlement cache is updated from.
type PlanActivation struct {
	Message             string `json:"message"`
	SubscriptionTier    string `json:"subscription_tier"`
	SubscriptionExpires string `json:"subscription_expires"`
}

// ActivatePlan switches the user onto a plan and returns the confirmed
// subscription state.
func (c *Client) ActivatePlan(ctx context.Context, userID, plan string) (*PlanActivation, error) {
	var resp PlanActivation
	err := c.doJSON(ctx, http.MethodPost, "/api/pricing/activate-plan", activatePlanRequest{UserID: userID, Plan: plan}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
