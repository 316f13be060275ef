package orders

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
	"github.com/oredesk/ops-api/internal/validation"
	"github.com/oredesk/ops-api/internal/views"
	"github.com/oredesk/ops-api/pkg/response"
)

// Service drives orders through the fulfillment pipeline. It owns id
// generation and timestamping; consistency of status and step progress is
// the store's job.
type Service struct {
	store *store.Store
}

// NewService creates an order service backed by the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// CreateOrder builds a new order from the request and dispatches it. The
// order enters the pipeline at its first step.
func (s *Service) CreateOrder(req CreateOrderRequest) types.Order {
	logger := log.With().
		Str("service", "orders").
		Str("order_type", req.Type).
		Logger()

	order := types.Order{
		ID:               "ORD_" + uuid.New().String(),
		Type:             req.Type,
		UserID:           req.UserID,
		Mineral:          req.Mineral,
		Quantity:         req.Quantity,
		Unit:             req.Unit,
		Currency:         req.Currency,
		EstimatedAmount:  req.EstimatedAmount,
		Facility:         req.Facility,
		BuyerCountry:     req.BuyerCountry,
		SellerCountry:    req.SellerCountry,
		DeliveryLocation: req.DeliveryLocation,
		ContactName:      req.ContactName,
		ContactPhone:     req.ContactPhone,
		Summary:          req.Summary,
		NegotiatedPrice:  req.NegotiatedPrice,
		LCNumber:         req.LCNumber,
		LCBank:           req.LCBank,
		CreatedAt:        time.Now().Format(time.RFC3339),
		UpdatedAt:        time.Now().Format(time.RFC3339),
	}

	s.store.Dispatch(store.CreateOrder{Order: order})

	created := s.store.Snapshot().Orders[order.ID]
	logger.Info().
		Str("order_id", created.ID).
		Str("status", created.Status).
		Msg("order created")
	return created
}

// GetOrder retrieves an order by its ID
func (s *Service) GetOrder(orderID string) (types.Order, error) {
	order, ok := s.store.Snapshot().Orders[orderID]
	if !ok {
		return types.Order{}, response.ErrNotFound
	}
	return order, nil
}

// UpdateStatus moves an order to a new status. The status must be one of the
// order's step vocabulary, the "Completed" alias, or "Cancelled". A step
// payload, when supplied, replaces the order's captured step data wholesale.
func (s *Service) UpdateStatus(orderID string, req UpdateStatusRequest) (types.Order, error) {
	logger := log.With().
		Str("service", "orders").
		Str("order_id", orderID).
		Str("status", req.Status).
		Logger()

	order, ok := s.store.Snapshot().Orders[orderID]
	if !ok {
		return types.Order{}, response.ErrNotFound
	}

	if req.Status != types.StatusCancelled && types.StepIndex(order.Type, req.Status) < 0 {
		return types.Order{}, fmt.Errorf("status %q is not in the %s pipeline", req.Status, order.Type)
	}

	order.Status = req.Status
	if req.FlowStepData != nil {
		order.FlowStepData = req.FlowStepData
	}
	order.UpdatedAt = time.Now().Format(time.RFC3339)

	s.store.Dispatch(store.UpdateOrder{Order: order})

	updated := s.store.Snapshot().Orders[orderID]
	logger.Info().Msg("order status updated")
	return updated, nil
}

// Cancel ends an order's pipeline. The record stays in the table; cancelled
// is a status, not a deletion.
func (s *Service) Cancel(orderID string) (types.Order, error) {
	return s.UpdateStatus(orderID, UpdateStatusRequest{Status: types.StatusCancelled})
}

// AppendComm adds one entry to the order's communication log.
func (s *Service) AppendComm(orderID string, req CommEntryRequest) (types.Order, error) {
	if _, ok := s.store.Snapshot().Orders[orderID]; !ok {
		return types.Order{}, response.ErrNotFound
	}

	s.store.Dispatch(store.AppendOrderComm{
		OrderID: orderID,
		Entry: types.CommEntry{
			Author:  req.Author,
			Message: req.Message,
			SentAt:  time.Now().Format(time.RFC3339),
		},
	})
	return s.store.Snapshot().Orders[orderID], nil
}

// AppendSent adds one record to the order's sent-to-user history.
func (s *Service) AppendSent(orderID string, req SentRecordRequest) (types.Order, error) {
	if _, ok := s.store.Snapshot().Orders[orderID]; !ok {
		return types.Order{}, response.ErrNotFound
	}

	s.store.Dispatch(store.AppendSentToUser{
		OrderID: orderID,
		Record: types.SentRecord{
			Kind:   req.Kind,
			Detail: req.Detail,
			SentAt: time.Now().Format(time.RFC3339),
		},
	})
	return s.store.Snapshot().Orders[orderID], nil
}

// ListBuy returns the buy-side projection of the order table.
func (s *Service) ListBuy() []types.Order {
	return views.BuyOrders(s.store.Snapshot())
}

// ListSell returns the sell-side projection of the order table.
func (s *Service) ListSell() []types.Order {
	return views.SellOrders(s.store.Snapshot())
}

// GinHandlers contains HTTP handlers for order endpoints
type GinHandlers struct {
	service  *Service
	store    *store.Store
	validate *validatorv10.Validate
}

// NewGinHandlers creates a new set of HTTP handlers for order endpoints
func NewGinHandlers(service *Service, st *store.Store, validate *validatorv10.Validate) *GinHandlers {
	return &GinHandlers{
		service:  service,
		store:    st,
		validate: validate,
	}
}

// CreateOrderHandler handles POST requests to create new orders
func (h *GinHandlers) CreateOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		for _, warning := range validation.ReferenceWarnings(h.store.Snapshot(), "", req.UserID) {
			log.Warn().Str("service", "orders").Msg(warning)
		}

		response.Success(c, h.service.CreateOrder(req))
	}
}

// GetOrderHandler handles GET requests for a single order
// URL parameter: order_id
func (h *GinHandlers) GetOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := h.service.GetOrder(c.Param("order_id"))
		response.Handle(c, order, err)
	}
}

// ListBuyOrdersHandler handles GET requests for the buy-side view
func (h *GinHandlers) ListBuyOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListBuy())
	}
}

// ListSellOrdersHandler handles GET requests for the sell-side view
func (h *GinHandlers) ListSellOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, h.service.ListSell())
	}
}

// UpdateStatusHandler handles POST requests advancing an order's status
// URL parameter: order_id
func (h *GinHandlers) UpdateStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		order, err := h.service.UpdateStatus(c.Param("order_id"), req)
		if err != nil && err != response.ErrNotFound {
			response.BadRequest(c, err.Error())
			return
		}
		response.Handle(c, order, err)
	}
}

// CancelOrderHandler handles POST requests cancelling an order
// URL parameter: order_id
func (h *GinHandlers) CancelOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := h.service.Cancel(c.Param("order_id"))
		response.Handle(c, order, err)
	}
}

// AppendCommHandler handles POST requests appending to the comm log
// URL parameter: order_id
func (h *GinHandlers) AppendCommHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CommEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		order, err := h.service.AppendComm(c.Param("order_id"), req)
		response.Handle(c, order, err)
	}
}

// AppendSentHandler handles POST requests appending a sent-to-user record
// URL parameter: order_id
func (h *GinHandlers) AppendSentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SentRecordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		order, err := h.service.AppendSent(c.Param("order_id"), req)
		response.Handle(c, order, err)
	}
}
