package logistics

import (
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

// SetDetailsRequest replaces the logistics record for an order wholesale.
type SetDetailsRequest struct {
	CarrierName      string `json:"carrier_name" validate:"required"`
	TrackingNumber   string `json:"tracking_number"`
	QRPayload        string `json:"qr_payload"`
	ShippingAmount   string `json:"shipping_amount"`
	ShippingCurrency string `json:"shipping_currency"`
	ContactName      string `json:"contact_name"`
	ContactPhone     string `json:"contact_phone"`
	PickupDate       string `json:"pickup_date"`
	DeliveryDate     string `json:"delivery_date"`
	Status           string `json:"status"`
}

// PartnerEntryRequest submits or revises a partner testing/shipment entry.
type PartnerEntryRequest struct {
	OrderID          string `json:"order_id" validate:"required"`
	PartnerName      string `json:"partner_name" validate:"required"`
	TestingStatus    string `json:"testing_status"`
	ShipmentStatus   string `json:"shipment_status"`
	CarrierName      string `json:"carrier_name"`
	TrackingNumber   string `json:"tracking_number"`
	ShippingAmount   string `json:"shipping_amount"`
	ShippingCurrency string `json:"shipping_currency"`
	ContactName      string `json:"contact_name"`
	ContactPhone     string `json:"contact_phone"`
}

// Service manages logistics records and partner third-party entries. The
// store keeps the two in sync: every partner entry projects onto the
// logistics record of its current order id.
type Service struct {
	store *store.Store
}

// NewService creates a logistics service backed by the given store.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// SetDetails upserts the logistics record for an order. The previous record,
// if any, is replaced entirely.
func (s *Service) SetDetails(orderID string, req SetDetailsRequest) types.LogisticsDetails {
	details := types.LogisticsDetails{
		OrderID:          orderID,
		CarrierName:      req.CarrierName,
		TrackingNumber:   req.TrackingNumber,
		QRPayload:        req.QRPayload,
		ShippingAmount:   req.ShippingAmount,
		ShippingCurrency: req.ShippingCurrency,
		ContactName:      req.ContactName,
		ContactPhone:     req.ContactPhone,
		PickupDate:       req.PickupDate,
		DeliveryDate:     req.DeliveryDate,
		Status:           req.Status,
	}

	s.store.Dispatch(store.SetLogisticsDetails{Details: details})

	log.Info().
		Str("service", "logistics").
		Str("order_id", orderID).
		Str("carrier", details.CarrierName).
		Msg("logistics details set")
	return details
}

// GetDetails looks up the logistics record for an order.
func (s *Service) GetDetails(orderID string) (types.LogisticsDetails, error) {
	details, ok := views.LogisticsForOrder(s.store.Snapshot(), orderID)
	if !ok {
		return types.LogisticsDetails{}, response.ErrNotFound
	}
	return details, nil
}

// AddPartnerEntry appends a partner-submitted entry and derives the
// corresponding logistics record.
func (s *Service) AddPartnerEntry(req PartnerEntryRequest) types.PartnerThirdPartyEntry {
	entry := entryFromRequest("TPE_"+uuid.New().String(), req)
	entry.SubmittedAt = time.Now().Format(time.RFC3339)

	s.store.Dispatch(store.AddPartnerThirdParty{Entry: entry})

	log.Info().
		Str("service", "logistics").
		Str("entry_id", entry.ID).
		Str("order_id", entry.OrderID).
		Msg("partner entry added")
	return entry
}

// UpdatePartnerEntry replaces an existing partner entry. Moving the entry to
// another order also moves its logistics projection.
func (s *Service) UpdatePartnerEntry(entryID string, req PartnerEntryRequest) (types.PartnerThirdPartyEntry, error) {
	snapshot := s.store.Snapshot()

	var submittedAt string
	found := false
	for i := range snapshot.ThirdParty {
		if snapshot.ThirdParty[i].ID == entryID {
			submittedAt = snapshot.ThirdParty[i].SubmittedAt
			found = true
			break
		}
	}
	if !found {
		return types.PartnerThirdPartyEntry{}, response.ErrNotFound
	}

	entry := entryFromRequest(entryID, req)
	entry.SubmittedAt = submittedAt

	s.store.Dispatch(store.UpdatePartnerThirdParty{Entry: entry})

	log.Info().
		Str("service", "logistics").
		Str("entry_id", entry.ID).
		Str("order_id", entry.OrderID).
		Msg("partner entry updated")
	return entry, nil
}

// PartnerEntryForOrder returns the entry projected onto an order, when one
// exists (first-submitted-wins).
func (s *Service) PartnerEntryForOrder(orderID string) (types.PartnerThirdPartyEntry, error) {
	entry, ok := views.ThirdPartyForOrder(s.store.Snapshot(), orderID)
	if !ok {
		return types.PartnerThirdPartyEntry{}, response.ErrNotFound
	}
	return entry, nil
}

func entryFromRequest(id string, req PartnerEntryRequest) types.PartnerThirdPartyEntry {
	return types.PartnerThirdPartyEntry{
		ID:               id,
		OrderID:          req.OrderID,
		PartnerName:      req.PartnerName,
		TestingStatus:    req.TestingStatus,
		ShipmentStatus:   req.ShipmentStatus,
		CarrierName:      req.CarrierName,
		TrackingNumber:   req.TrackingNumber,
		ShippingAmount:   req.ShippingAmount,
		ShippingCurrency: req.ShippingCurrency,
		ContactName:      req.ContactName,
		ContactPhone:     req.ContactPhone,
	}
}

// GinHandlers contains HTTP handlers for logistics endpoints
type GinHandlers struct {
	service  *Service
	store    *store.Store
	validate *validatorv10.Validate
}

// NewGinHandlers creates a new set of HTTP handlers for logistics endpoints
func NewGinHandlers(service *Service, st *store.Store, validate *validatorv10.Validate) *GinHandlers {
	return &GinHandlers{
		service:  service,
		store:    st,
		validate: validate,
	}
}

// SetDetailsHandler handles PUT requests replacing logistics details
// URL parameter: order_id
func (h *GinHandlers) SetDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetDetailsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		orderID := c.Param("order_id")
		for _, warning := range validation.ReferenceWarnings(h.store.Snapshot(), orderID, "") {
			log.Warn().Str("service", "logistics").Msg(warning)
		}

		response.Success(c, h.service.SetDetails(orderID, req))
	}
}

// GetDetailsHandler handles GET requests for logistics details
// URL parameter: order_id
func (h *GinHandlers) GetDetailsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		details, err := h.service.GetDetails(c.Param("order_id"))
		response.Handle(c, details, err)
	}
}

// AddPartnerEntryHandler handles POST requests submitting partner entries
func (h *GinHandlers) AddPartnerEntryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PartnerEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		for _, warning := range validation.ReferenceWarnings(h.store.Snapshot(), req.OrderID, "") {
			log.Warn().Str("service", "logistics").Msg(warning)
		}

		response.Success(c, h.service.AddPartnerEntry(req))
	}
}

// UpdatePartnerEntryHandler handles PUT requests revising partner entries
// URL parameter: entry_id
func (h *GinHandlers) UpdatePartnerEntryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PartnerEntryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		if err := h.validate.Struct(req); err != nil {
			response.ValidationFailed(c, validation.ErrorsToMap(err))
			return
		}

		entry, err := h.service.UpdatePartnerEntry(c.Param("entry_id"), req)
		response.Handle(c, entry, err)
	}
}

// PartnerEntryForOrderHandler handles GET requests for the entry projected
// onto an order
// URL parameter: order_id
func (h *GinHandlers) PartnerEntryForOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		entry, err := h.service.PartnerEntryForOrder(c.Param("order_id"))
		response.Handle(c, entry, err)
	}
}
