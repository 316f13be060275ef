package store

import (
	"github.com/oredesk/ops-api/internal/types"
)

// Action is one intended state change. The set of implementations below is
// the closed vocabulary: the transition function ignores anything else.
// Callers construct fully-formed payloads (ids included); the core never
// allocates identifiers.
type Action interface {
	isAction()
}

// CreateOrder appends a new order. No duplicate-id check is performed; id
// uniqueness is the caller's responsibility. An empty status is normalized
// to the first step of the order's pipeline.
type CreateOrder struct {
	Order types.Order
}

// UpdateOrder replaces the order with a matching id wholesale. The step
// progress list is rederived from the payload's type and status; any
// caller-supplied FlowSteps value is ignored.
type UpdateOrder struct {
	Order types.Order
}

// AppendOrderComm appends one entry to an order's communication log.
type AppendOrderComm struct {
	OrderID string
	Entry   types.CommEntry
}

// AppendSentToUser appends one record to an order's sent-to-user history.
type AppendSentToUser struct {
	OrderID string
	Record  types.SentRecord
}

// AddTransaction appends a settlement record.
type AddTransaction struct {
	Transaction types.Transaction
}

// UpdateTransaction replaces the transaction with a matching id.
type UpdateTransaction struct {
	Transaction types.Transaction
}

// SetLogisticsDetails upserts the logistics record for its order id. The
// record is replaced as a whole; stale fields are not merged.
type SetLogisticsDetails struct {
	Details types.LogisticsDetails
}

// AddPartnerThirdParty appends a partner entry and derives the logistics
// record for the entry's order id.
type AddPartnerThirdParty struct {
	Entry types.PartnerThirdPartyEntry
}

// UpdatePartnerThirdParty replaces the entry with a matching id and rederives
// the logistics record for the entry's current order id. If the order id
// changed since the stored version, the logistics record under the previous
// order id is deleted: an entry is never split across two logistics records.
type UpdatePartnerThirdParty struct {
	Entry types.PartnerThirdPartyEntry
}

// AddUser appends a registry user.
type AddUser struct {
	User types.RegistryUser
}

// UpdateUser replaces the user with a matching id.
type UpdateUser struct {
	User types.RegistryUser
}

// UpdateUserStatus toggles membership of a user id in the suspended and
// restricted sets. A nil field leaves that set untouched.
type UpdateUserStatus struct {
	UserID     string
	Suspended  *bool
	Restricted *bool
}

// AddVideoCall appends a verification call to a user record.
type AddVideoCall struct {
	UserID string
	Call   types.VideoCall
}

// AddDocumentRequest appends a document request to a user record.
type AddDocumentRequest struct {
	UserID  string
	Request types.DocumentRequest
}

// AddAppActivity prepends to the activity log, keeping the 200 most recent.
type AddAppActivity struct {
	Activity types.AppActivity
}

// RecordVerification prepends to the verification log, keeping the 500 most
// recent.
type RecordVerification struct {
	Entry types.VerificationLogEntry
}

// AddEnquiry appends a support enquiry.
type AddEnquiry struct {
	Enquiry types.Enquiry
}

// UpdateEnquiry replaces the enquiry with a matching id.
type UpdateEnquiry struct {
	Enquiry types.Enquiry
}

// AddDispute appends a dispute.
type AddDispute struct {
	Dispute types.Dispute
}

// UpdateDispute replaces the dispute with a matching id.
type UpdateDispute struct {
	Dispute types.Dispute
}

// AddPayout appends a payout.
type AddPayout struct {
	Payout types.Payout
}

// UpdatePayout replaces the payout with a matching id.
type UpdatePayout struct {
	Payout types.Payout
}

// AddFacility appends a facility.
type AddFacility struct {
	Facility types.Facility
}

// UpdateFacility replaces the facility with a matching id.
type UpdateFacility struct {
	Facility types.Facility
}

// AddPaymentMethod appends a payment method.
type AddPaymentMethod struct {
	Method types.PaymentMethod
}

// UpdatePaymentMethod replaces the payment method with a matching id.
type UpdatePaymentMethod struct {
	Method types.PaymentMethod
}

// AddActiveTestingOrder appends an active testing record.
type AddActiveTestingOrder struct {
	Testing types.ActiveTestingOrder
}

// UpdateActiveTestingOrder replaces the testing record with a matching id.
type UpdateActiveTestingOrder struct {
	Testing types.ActiveTestingOrder
}

// AddMineral appends a marketplace listing.
type AddMineral struct {
	Mineral types.Mineral
}

// UpdateMineral replaces the listing with a matching id.
type UpdateMineral struct {
	Mineral types.Mineral
}

// RemoveMineral deletes a listing. Minerals are the only entity physically
// removed; orders are cancelled by status, never deleted.
type RemoveMineral struct {
	MineralID string
}

// AddCustomCategory appends a category name.
type AddCustomCategory struct {
	Name string
}

func (CreateOrder) isAction()              {}
func (UpdateOrder) isAction()              {}
func (AppendOrderComm) isAction()          {}
func (AppendSentToUser) isAction()         {}
func (AddTransaction) isAction()           {}
func (UpdateTransaction) isAction()        {}
func (SetLogisticsDetails) isAction()      {}
func (AddPartnerThirdParty) isAction()     {}
func (UpdatePartnerThirdParty) isAction()  {}
func (AddUser) isAction()                  {}
func (UpdateUser) isAction()               {}
func (UpdateUserStatus) isAction()         {}
func (AddVideoCall) isAction()             {}
func (AddDocumentRequest) isAction()       {}
func (AddAppActivity) isAction()           {}
func (RecordVerification) isAction()       {}
func (AddEnquiry) isAction()               {}
func (UpdateEnquiry) isAction()            {}
func (AddDispute) isAction()               {}
func (UpdateDispute) isAction()            {}
func (AddPayout) isAction()                {}
func (UpdatePayout) isAction()             {}
func (AddFacility) isAction()              {}
func (UpdateFacility) isAction()           {}
func (AddPaymentMethod) isAction()         {}
func (UpdatePaymentMethod) isAction()      {}
func (AddActiveTestingOrder) isAction()    {}
func (UpdateActiveTestingOrder) isAction() {}
func (AddMineral) isAction()               {}
func (UpdateMineral) isAction()            {}
func (RemoveMineral) isAction()            {}
func (AddCustomCategory) isAction()        {}
