package dashboard

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Reporter periodically logs the aggregate statistics so operators can watch
// pipeline throughput without polling the API.
type Reporter struct {
	service  *Service
	interval time.Duration
}

// NewReporter creates a reporter over the dashboard service.
func NewReporter(service *Service) *Reporter {
	return &Reporter{
		service:  service,
		interval: 5 * time.Minute, // Configurable reporting interval
	}
}

// Start begins the reporting loop. It runs until the context is cancelled.
func (r *Reporter) Start(ctx context.Context) {
	logger := log.With().Str("component", "dashboard_reporter").Logger()
	logger.Info().Msg("starting dashboard reporter")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down dashboard reporter")
			return
		case <-ticker.C:
			stats := r.service.Statistics()
			logger.Info().
				Int("active_orders", stats.ActiveOrders).
				Float64("completed_volume", stats.CompletedVolume).
				Float64("pending_volume", stats.PendingVolume).
				Int("users_under_review", stats.UsersUnderReview).
				Int("open_enquiries", stats.OpenEnquiries).
				Int("open_callbacks", stats.OpenCallbacks).
				Bool("has_failed_transaction", stats.HasFailedTransaction).
				Msg("dashboard summary")
		}
	}
}
