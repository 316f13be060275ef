package store

import (
	"github.com/oredesk/ops-api/internal/types"
)

// Snapshot is the complete state of every entity collection at one point in
// time. Consumers must treat a snapshot as frozen: mutation only ever happens
// by dispatching an action, which produces a new snapshot. Collections not
// named by an action stay reference-identical across transitions so consumers
// can cheaply detect which slice changed.
type Snapshot struct {
	// Orders is the single order table, keyed by order id. Buy and sell
	// views are filtered projections over it, never separate storage.
	Orders map[string]types.Order

	Transactions []types.Transaction

	// Logistics holds at most one record per order id.
	Logistics map[string]types.LogisticsDetails

	ThirdParty []types.PartnerThirdPartyEntry

	Users           []types.RegistryUser
	Activities      []types.AppActivity
	VerificationLog []types.VerificationLogEntry
	Enquiries       []types.Enquiry
	Disputes        []types.Dispute
	Payouts         []types.Payout
	Facilities      []types.Facility
	PaymentMethods  []types.PaymentMethod
	ActiveTesting   []types.ActiveTestingOrder
	Minerals        []types.Mineral

	CustomCategories []string

	// Membership side-tables for user moderation state. Kept unexported so
	// the sets never cross the core boundary raw; use IsSuspended and
	// IsRestricted.
	suspended  map[string]struct{}
	restricted map[string]struct{}
}

// NewSnapshot returns an empty snapshot with all keyed collections ready.
func NewSnapshot() Snapshot {
	return Snapshot{
		Orders:     make(map[string]types.Order),
		Logistics:  make(map[string]types.LogisticsDetails),
		suspended:  make(map[string]struct{}),
		restricted: make(map[string]struct{}),
	}
}

// IsSuspended reports whether the user id is in the suspended set.
func (s Snapshot) IsSuspended(userID string) bool {
	_, ok := s.suspended[userID]
	return ok
}

// IsRestricted reports whether the user id is in the restricted set.
func (s Snapshot) IsRestricted(userID string) bool {
	_, ok := s.restricted[userID]
	return ok
}
