package support

import (
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
	"github.com/oredesk/ops-api/internal/validation"
	"github.com/oredesk/ops-api/pkg/response"
)

// EnquiryRequest files or revises a support enquiry.
type EnquiryRequest struct {
	UserID  string `json:"user_id"`
	Type    string `json:"type" validate:"required,oneof=General Callback"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message"`
	Status  string `json:"status" validate:"omitempty,oneof=Open Resolved"`
}

// DisputeRequest raises or revises a dispute against an order.
type DisputeRequest struct {
	OrderID    string `json:"order_id" validate:"required"`
	UserID     string `json:"user_id"`
	Reason     string `json:"reason" validate:"required"`
	Status     string `json:"status" validate:"required"`
	Resolution string `json:"resolution"`
}

// ActivityRequest appends one entry to the bounded activity log.
type ActivityRequest struct {
	UserID      string `json:"user_id"`
	Description string `json:"description" validate:"required"`
}

// Service handles enquiries, disputes and the activity log.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) AddEnquiry(req EnquiryRequest) types.Enquiry {
	status := req.Status
	if status == "" {
		status = types.EnquiryStatusOpen
	}
	enquiry := types.Enquiry{
		ID:        "ENQ_" + uuid.New().String(),
		UserID:    req.UserID,
		Type:      req.Type,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    status,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	s.store.Dispatch(store.AddEnquiry{Enquiry: enquiry})
	return enquiry
}

func (s *Service) UpdateEnquiry(enquiryID string, req EnquiryRequest) (types.Enquiry, error) {
	existing, ok := findByID(s.store.Snapshot().Enquiries, enquiryID, func(e types.Enquiry) string { return e.ID })
	if !ok {
		return types.Enquiry{}, response.ErrNotFound
	}

	enquiry := existing
	enquiry.UserID = req.UserID
	enquiry.Type = req.Type
	enquiry.Subject = req.Subject
	enquiry.Message = req.Message
	if req.Status != "" {
		enquiry.Status = req.Status
	}

	s.store.Dispatch(store.UpdateEnquiry{Enquiry: enquiry})
	return enquiry, nil
}

func (s *Service) ListEnquiries() []types.Enquiry {
	return s.store.Snapshot().Enquiries
}

func (s *Service) AddDispute(req DisputeRequest) types.Dispute {
	dispute := types.Dispute{
		ID:         "DSP_" + uuid.New().String(),
		OrderID:    req.OrderID,
		UserID:     req.UserID,
		Reason:     req.Reason,
		Status:     req.Status,
		Resolution: req.Resolution,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	s.store.Dispatch(store.AddDispute{Dispute: dispute})
	return dispute
}

func (s *Service) UpdateDispute(disputeID string, req DisputeRequest) (types.Dispute, error) {
	existing, ok := findByID(s.store.Snapshot().Disputes, disputeID, func(d types.Dispute) string { return d.ID })
	if !ok {
		return types.Dispute{}, response.ErrNotFound
	}

	dispute := existing
	dispute.OrderID = req.OrderID
	dispute.UserID = req.UserID
	dispute.Reason = req.Reason
	dispute.Status = req.Status
	dispute.Resolution = req.Resolution

	s.store.Dispatch(store.UpdateDispute{Dispute: dispute})
	return dispute, nil
}

func (s *Service) ListDisputes() []types.Dispute {
	return s.store.Snapshot().Disputes
}

func (s *Service) RecordActivity(req ActivityRequest) types.AppActivity {
	activity := types.AppActivity{
		ID:          "ACT_" + uuid.New().String(),
		UserID:      req.UserID,
		Description: req.Description,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	s.store.Dispatch(store.AddAppActivity{Activity: activity})
	return activity
}

func (s *Service) ListActivity() []types.AppActivity {
	return s.store.Snapshot().Activities
}

func findByID[T any](list []T, target string, id func(T) string) (T, bool) {
	for i := range list {
		if id(list[i]) == target {
			return list[i], true
		}
	}
	var zero T
	return zero, false
}

// GinHandlers contains HTTP handlers for support endpoints
type GinHandlers struct {
	service  *Service
	validate *validatorv10.Validate
}

func NewGinHandlers(service *Service, validate *validatorv10.Validate) *GinHandlers {
	return &GinHandlers{
		service:  service,
		validate: validate,
	}
}

func (h *GinHandlers) bind(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		response.BadRequest(c, err.Error())
		return false
	}
	if err := h.validate.Struct(out); err != nil {
		response.ValidationFailed(c, validation.ErrorsToMap(err))
		return false
	}
	return true
}

func (h *GinHandlers) AddEnquiryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EnquiryRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.AddEnquiry(req))
	}
}

func (h *GinHandlers) UpdateEnquiryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EnquiryRequest
		if !h.bind(c, &req) {
			return
		}
		enquiry, err := h.service.UpdateEnquiry(c.Param("enquiry_id"), req)
		response.Handle(c, enquiry, err)
	}
}

func (h *GinHandlers) ListEnquiriesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListEnquiries())
	}
}

func (h *GinHandlers) AddDisputeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DisputeRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.AddDispute(req))
	}
}

func (h *GinHandlers) UpdateDisputeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DisputeRequest
		if !h.bind(c, &req) {
			return
		}
		dispute, err := h.service.UpdateDispute(c.Param("dispute_id"), req)
		response.Handle(c, dispute, err)
	}
}

func (h *GinHandlers) ListDisputesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListDisputes())
	}
}

func (h *GinHandlers) RecordActivityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ActivityRequest
		if !h.bind(c, &req) {
			return
		}
		response.Success(c, h.service.RecordActivity(req))
	}
}

func (h *GinHandlers) ListActivityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListActivity())
	}
}
