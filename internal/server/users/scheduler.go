package users

import (
	"context"
	"time"

	"github.com/khmorad/Mood-Tracker/internal/logging"
)

// planCheckInterval is how often lapsed trials are swept back to Free.
const planCheckInterval = time.Hour

// PlanScheduler periodically downgrades lapsed paid subscriptions. The sweep
// runs once at startup and then on a fixed interval.
type PlanScheduler struct {
	service  *Service
	logger   logging.Logger
	interval time.Duration
}

func NewPlanScheduler(service *Service, logger logging.Logger) *PlanScheduler {
	return &PlanScheduler{
		service:  service,
		logger:   logger,
		interval: planCheckInterval,
	}
}

// Run blocks until ctx is cancelled.
func (p *PlanScheduler) Run(ctx context.Context) {

	p.logger.Info(ctx, "plan expiry scheduler started", "interval", p.interval.String())
	p.sweep(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.sweep(ctx)
		case <-ctx.Done():
			p.logger.Info(context.Background(), "plan expiry scheduler stopped")
			return
		}
	}
}

func (p *PlanScheduler) sweep(ctx context.Context) {
	downgraded, err := p.service.DowngradeExpired(ctx)
	if err != nil {
		p.logger.Error(ctx, "plan expiry sweep failed", "error", err.Error())
	}
	if downgraded > 0 {
		p.logger.Info(ctx, "lapsed subscriptions downgraded", "count", downgraded)
	}
}
