package dashboard

import (
	"github.com/gin-gonic/gin"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/views"
	"github.com/oredesk/ops-api/pkg/response"
)

// Service computes the aggregate dashboard read. Everything is derived from
// the snapshot on demand; there are no counters to drift.
type Service struct {
	store *store.Store
}

// NewService creates a dashboard service backed by the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Statistics returns the aggregate view over the current snapshot.
func (s *Service) Statistics() views.Statistics {
	return views.DashboardStatistics(s.store.Snapshot())
}

// GinHandlers contains HTTP handlers for dashboard endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for dashboard endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// StatisticsHandler handles GET requests for aggregate statistics
func (h *GinHandlers) StatisticsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.Statistics())
	}
}
