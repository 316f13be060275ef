package orders

import (
	"github.com/oredesk/ops-api/internal/types"
)

// CreateOrderRequest is the payload for POST /orders.
type CreateOrderRequest struct {
	Type            string `json:"type" validate:"required,oneof=Buy Sell"`
	UserID          string `json:"user_id"`
	Mineral         string `json:"mineral" validate:"required"`
	Quantity        string `json:"quantity" validate:"required"`
	Unit            string `json:"unit" validate:"required"`
	Currency        string `json:"currency"`
	EstimatedAmount string `json:"estimated_amount"`

	Facility      types.FacilityInfo `json:"facility"`
	BuyerCountry  string             `json:"buyer_country"`
	SellerCountry string             `json:"seller_country"`

	DeliveryLocation types.Location `json:"delivery_location"`
	ContactName      string         `json:"contact_name"`
	ContactPhone     string         `json:"contact_phone"`
	Summary          string         `json:"summary"`

	NegotiatedPrice string `json:"negotiated_price"`
	LCNumber        string `json:"lc_number"`
	LCBank          string `json:"lc_bank"`
}

// UpdateStatusRequest advances an order to a new pipeline status, optionally
// capturing the step payload recorded at that point.
type UpdateStatusRequest struct {
	Status       string              `json:"status" validate:"required"`
	FlowStepData *types.FlowStepData `json:"flow_step_data"`
}

// CommEntryRequest appends one communication-log entry.
type CommEntryRequest struct {
	Author  string `json:"author" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SentRecordRequest appends one sent-to-user record.
type SentRecordRequest struct {
	Kind   string `json:"kind" validate:"required"`
	Detail string `json:"detail" validate:"required"`
}
