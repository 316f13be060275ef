package types

// OrderType selects the fulfillment pipeline an order moves through.
const (
	OrderTypeBuy  = "Buy"
	OrderTypeSell = "Sell"
)

// Order status values outside the step vocabularies.
const (
	StatusCancelled = "Cancelled"
	// StatusCompleted is an accepted alias for the last step label.
	StatusCompleted = "Completed"
)

// Transaction enumerations.
const (
	MethodBankTransfer = "Bank Transfer"
	MethodWise         = "Wise"
	MethodBlockchain   = "Blockchain Settlement"

	TxStatusPending   = "Pending"
	TxStatusCompleted = "Completed"
	TxStatusFailed    = "Failed"
)

// Registry user status values.
const (
	UserStatusActive      = "Active"
	UserStatusUnderReview = "Under Review"
	UserStatusSuspended   = "Suspended"
)

// Enquiry enumerations.
const (
	EnquiryTypeGeneral  = "General"
	EnquiryTypeCallback = "Callback"

	EnquiryStatusOpen     = "Open"
	EnquiryStatusResolved = "Resolved"
)

// Location is a delivery or facility address.
type Location struct {
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// FacilityInfo is the processing facility attached to an order.
type FacilityInfo struct {
	Name    string `json:"name,omitempty"`
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
}

// CommEntry is one row of an order's communication log.
type CommEntry struct {
	Author  string `json:"author"`
	Message string `json:"message"`
	SentAt  string `json:"sent_at"`
}

// SentRecord is one item shared with the owning user from the ops side.
type SentRecord struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
	SentAt string `json:"sent_at"`
}

// PaymentInitiation is captured when the payment step of an order completes.
type PaymentInitiation struct {
	Method      string `json:"method"`
	InitiatedAt string `json:"initiated_at"`
}

// SampleTestResult is captured when a sell order clears its sample test step.
type SampleTestResult struct {
	Lab      string `json:"lab,omitempty"`
	Result   string `json:"result,omitempty"`
	TestedAt string `json:"tested_at,omitempty"`
}

// ShipmentInfo is captured when the shipment step is scheduled.
type ShipmentInfo struct {
	Carrier      string `json:"carrier,omitempty"`
	ScheduledFor string `json:"scheduled_for,omitempty"`
}

// FlowStepData holds per-step payloads recorded as an order advances.
// Each field corresponds to one pipeline step; unfilled steps stay nil/empty.
type FlowStepData struct {
	ConfirmedAmount  string             `json:"confirmed_amount,omitempty"`
	SampleTest       *SampleTestResult  `json:"sample_test,omitempty"`
	Shipment         *ShipmentInfo      `json:"shipment,omitempty"`
	PaymentInitiated *PaymentInitiation `json:"payment_initiated,omitempty"`
}

// Order is the central entity of the marketplace. Status and FlowSteps are
// kept mutually consistent by the transition function; everything else is
// caller-supplied.
type Order struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // Buy or Sell
	UserID   string `json:"user_id,omitempty"`
	Mineral  string `json:"mineral"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`

	Facility        FacilityInfo `json:"facility"`
	Currency        string       `json:"currency"`
	EstimatedAmount string       `json:"estimated_amount"`

	Status       string        `json:"status"`
	FlowSteps    []FlowStep    `json:"flow_steps"`
	FlowStepData *FlowStepData `json:"flow_step_data,omitempty"`

	// Countries override the linked user/facility when set.
	BuyerCountry  string `json:"buyer_country,omitempty"`
	SellerCountry string `json:"seller_country,omitempty"`

	// Buy-specific fields.
	DeliveryLocation Location `json:"delivery_location,omitempty"`
	ContactName      string   `json:"contact_name,omitempty"`
	ContactPhone     string   `json:"contact_phone,omitempty"`
	Summary          string   `json:"summary,omitempty"`

	// Sell-specific fields.
	NegotiatedPrice  string `json:"negotiated_price,omitempty"`
	SampleTestStatus string `json:"sample_test_status,omitempty"`
	LCNumber         string `json:"lc_number,omitempty"`
	LCBank           string `json:"lc_bank,omitempty"`

	CommLog    []CommEntry  `json:"comm_log,omitempty"`
	SentToUser []SentRecord `json:"sent_to_user,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Transaction is a settlement record referencing an order by id. The
// reference is soft: no existence check anywhere.
type Transaction struct {
	ID                 string `json:"id"`
	OrderID            string `json:"order_id"`
	UserID             string `json:"user_id,omitempty"`
	Amount             string `json:"amount"`
	Currency           string `json:"currency"`
	Method             string `json:"method"` // Bank Transfer, Wise, Blockchain Settlement
	Status             string `json:"status"` // Pending, Completed, Failed
	Reference          string `json:"reference,omitempty"`
	IsInternational    *bool  `json:"is_international,omitempty"`
	PayerCountry       string `json:"payer_country,omitempty"`
	BeneficiaryCountry string `json:"beneficiary_country,omitempty"`
	CreatedAt          string `json:"created_at"`
}

// LogisticsDetails is the carrier/tracking record shown externally.
// At most one exists per order id; writes replace the whole record.
type LogisticsDetails struct {
	OrderID          string `json:"order_id"`
	CarrierName      string `json:"carrier_name,omitempty"`
	TrackingNumber   string `json:"tracking_number,omitempty"`
	QRPayload        string `json:"qr_payload,omitempty"`
	ShippingAmount   string `json:"shipping_amount,omitempty"`
	ShippingCurrency string `json:"shipping_currency,omitempty"`
	ContactName      string `json:"contact_name,omitempty"`
	ContactPhone     string `json:"contact_phone,omitempty"`
	PickupDate       string `json:"pickup_date,omitempty"`
	DeliveryDate     string `json:"delivery_date,omitempty"`
	Status           string `json:"status,omitempty"`
}

// PartnerThirdPartyEntry is a partner-submitted testing/shipment record.
// Its own id is distinct from the order id it points at.
type PartnerThirdPartyEntry struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	PartnerName      string `json:"partner_name"`
	TestingStatus    string `json:"testing_status,omitempty"`
	ShipmentStatus   string `json:"shipment_status,omitempty"`
	CarrierName      string `json:"carrier_name,omitempty"`
	TrackingNumber   string `json:"tracking_number,omitempty"`
	ShippingAmount   string `json:"shipping_amount,omitempty"`
	ShippingCurrency string `json:"shipping_currency,omitempty"`
	ContactName      string `json:"contact_name,omitempty"`
	ContactPhone     string `json:"contact_phone,omitempty"`
	SubmittedAt      string `json:"submitted_at"`
}

// VideoCall is one scheduled verification call on a user record.
type VideoCall struct {
	ScheduledFor string `json:"scheduled_for"`
	Purpose      string `json:"purpose,omitempty"`
	Outcome      string `json:"outcome,omitempty"`
}

// DocumentRequest is one document asked of a user.
type DocumentRequest struct {
	Document    string `json:"document"`
	RequestedAt string `json:"requested_at"`
	Received    bool   `json:"received"`
}

// RegistryUser is a person or company record. Its id is the foreign key used
// by orders, payment methods and activity records; none of those references
// are enforced.
type RegistryUser struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Country string `json:"country,omitempty"`
	Status  string `json:"status"` // Active, Under Review, Suspended

	VideoCalls       []VideoCall       `json:"video_calls,omitempty"`
	DocumentRequests []DocumentRequest `json:"document_requests,omitempty"`

	CreatedAt string `json:"created_at"`
}

// AppActivity is one row of the bounded, newest-first activity log.
type AppActivity struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// VerificationLogEntry is one row of the bounded, newest-first verification log.
type VerificationLogEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Field     string `json:"field"`
	Outcome   string `json:"outcome"`
	Note      string `json:"note,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Enquiry is an inbound support request.
type Enquiry struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	Type      string `json:"type"` // General, Callback
	Subject   string `json:"subject"`
	Message   string `json:"message,omitempty"`
	Status    string `json:"status"` // Open, Resolved
	CreatedAt string `json:"created_at"`
}

// Dispute is a contested order raised by either side.
type Dispute struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	UserID     string `json:"user_id,omitempty"`
	Reason     string `json:"reason"`
	Status     string `json:"status"`
	Resolution string `json:"resolution,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// Payout is an outbound payment to a user.
type Payout struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Method    string `json:"method,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Facility is a processing or storage site.
type Facility struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Country  string   `json:"country,omitempty"`
	Region   string   `json:"region,omitempty"`
	Capacity string   `json:"capacity,omitempty"`
	Minerals []string `json:"minerals,omitempty"`
}

// PaymentMethod is a stored payment instrument for a user.
type PaymentMethod struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Type      string `json:"type"`
	Label     string `json:"label,omitempty"`
	Details   string `json:"details,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// ActiveTestingOrder tracks an order currently at a testing lab.
type ActiveTestingOrder struct {
	ID                 string `json:"id"`
	OrderID            string `json:"order_id"`
	Lab                string `json:"lab"`
	Stage              string `json:"stage"`
	ExpectedCompletion string `json:"expected_completion,omitempty"`
}

// Mineral is a marketplace listing. Unlike orders, listings can be removed.
type Mineral struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Grade        string `json:"grade,omitempty"`
	PricePerUnit string `json:"price_per_unit,omitempty"`
	Unit         string `json:"unit,omitempty"`
	Origin       string `json:"origin,omitempty"`
	Available    bool   `json:"available"`
}
