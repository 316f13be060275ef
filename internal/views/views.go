// Package views holds the read-only projections consumers render from.
// Every function is pure: same snapshot in, same value out, input never
// mutated.
package views

import (
	"sort"
	"strconv"
	"strings"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
)

// UnknownName is returned whenever a user reference cannot be resolved.
const UnknownName = "—"

// ResolveUserName returns the display name for a user id, or UnknownName
// when the id is empty or not in the registry.
func ResolveUserName(users []types.RegistryUser, userID string) string {
	if userID == "" {
		return UnknownName
	}
	for i := range users {
		if users[i].ID == userID {
			return users[i].Name
		}
	}
	return UnknownName
}

// IsOrderInternational reports whether an order crosses a border: the buyer
// country (explicit on the order, else the linked user's) and the seller
// country (explicit, else the facility's, else the delivery location's) are
// both known and differ after trimming. An unknown side is never
// international.
func IsOrderInternational(order types.Order, users []types.RegistryUser) bool {
	buyer := strings.TrimSpace(order.BuyerCountry)
	if buyer == "" {
		for i := range users {
			if users[i].ID == order.UserID {
				buyer = strings.TrimSpace(users[i].Country)
				break
			}
		}
	}

	seller := strings.TrimSpace(order.SellerCountry)
	if seller == "" {
		seller = strings.TrimSpace(order.Facility.Country)
	}
	if seller == "" {
		seller = strings.TrimSpace(order.DeliveryLocation.Country)
	}

	if buyer == "" || seller == "" {
		return false
	}
	return buyer != seller
}

// IsTransactionInternational classifies a settlement record. An explicit
// flag on the transaction wins; otherwise the referenced order decides; with
// no order found, the payer and beneficiary countries are compared directly.
func IsTransactionInternational(tx types.Transaction, orders map[string]types.Order, users []types.RegistryUser) bool {
	if tx.IsInternational != nil {
		return *tx.IsInternational
	}
	if order, ok := orders[tx.OrderID]; ok {
		return IsOrderInternational(order, users)
	}
	payer := strings.TrimSpace(tx.PayerCountry)
	beneficiary := strings.TrimSpace(tx.BeneficiaryCountry)
	if payer == "" || beneficiary == "" {
		return false
	}
	return payer != beneficiary
}

// LogisticsForOrder looks up the logistics record for an order id.
func LogisticsForOrder(s store.Snapshot, orderID string) (types.LogisticsDetails, bool) {
	details, ok := s.Logistics[orderID]
	return details, ok
}

// ThirdPartyForOrder returns the partner entry for an order id. The list is
// append-only, so first match in list order means first-submitted-wins when
// several entries share an order id.
func ThirdPartyForOrder(s store.Snapshot, orderID string) (types.PartnerThirdPartyEntry, bool) {
	for i := range s.ThirdParty {
		if s.ThirdParty[i].OrderID == orderID {
			return s.ThirdParty[i], true
		}
	}
	return types.PartnerThirdPartyEntry{}, false
}

// BuyOrders is the buy-side projection of the order table.
func BuyOrders(s store.Snapshot) []types.Order {
	return ordersOfType(s, types.OrderTypeBuy)
}

// SellOrders is the sell-side projection of the order table.
func SellOrders(s store.Snapshot) []types.Order {
	return ordersOfType(s, types.OrderTypeSell)
}

func ordersOfType(s store.Snapshot, orderType string) []types.Order {
	out := make([]types.Order, 0, len(s.Orders))
	for _, order := range s.Orders {
		if order.Type == orderType {
			out = append(out, order)
		}
	}
	// Deterministic ordering for display; creation order carries no meaning.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Statistics is the aggregate dashboard read.
type Statistics struct {
	ActiveOrders         int     `json:"active_orders"`
	CompletedVolume      float64 `json:"completed_volume"`
	PendingVolume        float64 `json:"pending_volume"`
	UsersUnderReview     int     `json:"users_under_review"`
	OpenEnquiries        int     `json:"open_enquiries"`
	OpenCallbacks        int     `json:"open_callbacks"`
	HasFailedTransaction bool    `json:"has_failed_transaction"`
}

// DashboardStatistics computes the aggregate view from the snapshot alone,
// so it can never drift from the underlying collections.
func DashboardStatistics(s store.Snapshot) Statistics {
	var stats Statistics

	for _, order := range s.Orders {
		if !types.IsTerminalStatus(order.Type, order.Status) {
			stats.ActiveOrders++
		}
	}

	for i := range s.Transactions {
		switch s.Transactions[i].Status {
		case types.TxStatusCompleted:
			stats.CompletedVolume += parseAmount(s.Transactions[i].Amount)
		case types.TxStatusPending:
			stats.PendingVolume += parseAmount(s.Transactions[i].Amount)
		case types.TxStatusFailed:
			stats.HasFailedTransaction = true
		}
	}

	for i := range s.Users {
		if s.Users[i].Status == types.UserStatusUnderReview {
			stats.UsersUnderReview++
		}
	}

	for i := range s.Enquiries {
		if s.Enquiries[i].Status == types.EnquiryStatusResolved {
			continue
		}
		stats.OpenEnquiries++
		if s.Enquiries[i].Type == types.EnquiryTypeCallback {
			stats.OpenCallbacks++
		}
	}

	return stats
}

// parseAmount reads a numeric value out of a free-form amount string. Every
// character except digits, the decimal point and a sign is stripped first;
// anything still unparsable counts as zero.
func parseAmount(amount string) float64 {
	var b strings.Builder
	for _, r := range amount {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	value, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return value
}
