package store

import (
	"github.com/oredesk/ops-api/internal/types"
)

// Bounded log sizes.
const (
	maxActivityLog     = 200
	maxVerificationLog = 500
)

// Apply computes the snapshot that results from one action. It is pure,
// total and synchronous: it never errors, unknown actions are no-ops, and
// updates naming a missing id leave the snapshot unchanged. Only the
// collections an action concerns are replaced; everything else keeps its
// identity from the input snapshot.
func Apply(s Snapshot, action Action) Snapshot {
	switch a := action.(type) {
	case CreateOrder:
		order := a.Order
		if order.Status == "" {
			order.Status = types.StepsFor(order.Type)[0]
		}
		order.FlowSteps = types.DeriveFlowSteps(order.Type, order.Status)
		s.Orders = withOrder(s.Orders, order)

	case UpdateOrder:
		if _, ok := s.Orders[a.Order.ID]; !ok {
			return s
		}
		order := a.Order
		order.FlowSteps = types.DeriveFlowSteps(order.Type, order.Status)
		s.Orders = withOrder(s.Orders, order)

	case AppendOrderComm:
		order, ok := s.Orders[a.OrderID]
		if !ok {
			return s
		}
		order.CommLog = appendItem(order.CommLog, a.Entry)
		s.Orders = withOrder(s.Orders, order)

	case AppendSentToUser:
		order, ok := s.Orders[a.OrderID]
		if !ok {
			return s
		}
		order.SentToUser = appendItem(order.SentToUser, a.Record)
		s.Orders = withOrder(s.Orders, order)

	case AddTransaction:
		s.Transactions = appendItem(s.Transactions, a.Transaction)

	case UpdateTransaction:
		s.Transactions = replaceByID(s.Transactions, a.Transaction, func(t types.Transaction) string { return t.ID })

	case SetLogisticsDetails:
		s.Logistics = withLogistics(s.Logistics, a.Details)

	case AddPartnerThirdParty:
		derived := logisticsFromEntry(a.Entry, s.Logistics[a.Entry.OrderID])
		s.ThirdParty = appendItem(s.ThirdParty, a.Entry)
		s.Logistics = withLogistics(s.Logistics, derived)

	case UpdatePartnerThirdParty:
		stored, ok := findByID(s.ThirdParty, a.Entry.ID, func(e types.PartnerThirdPartyEntry) string { return e.ID })
		if !ok {
			return s
		}
		logistics := cloneLogistics(s.Logistics)
		if stored.OrderID != a.Entry.OrderID {
			delete(logistics, stored.OrderID)
		}
		logistics[a.Entry.OrderID] = logisticsFromEntry(a.Entry, logistics[a.Entry.OrderID])
		s.ThirdParty = replaceByID(s.ThirdParty, a.Entry, func(e types.PartnerThirdPartyEntry) string { return e.ID })
		s.Logistics = logistics

	case AddUser:
		s.Users = appendItem(s.Users, a.User)

	case UpdateUser:
		s.Users = replaceByID(s.Users, a.User, func(u types.RegistryUser) string { return u.ID })

	case UpdateUserStatus:
		if a.Suspended != nil {
			s.suspended = withMembership(s.suspended, a.UserID, *a.Suspended)
		}
		if a.Restricted != nil {
			s.restricted = withMembership(s.restricted, a.UserID, *a.Restricted)
		}

	case AddVideoCall:
		s.Users = mutateByID(s.Users, a.UserID,
			func(u types.RegistryUser) string { return u.ID },
			func(u types.RegistryUser) types.RegistryUser {
				u.VideoCalls = appendItem(u.VideoCalls, a.Call)
				return u
			})

	case AddDocumentRequest:
		s.Users = mutateByID(s.Users, a.UserID,
			func(u types.RegistryUser) string { return u.ID },
			func(u types.RegistryUser) types.RegistryUser {
				u.DocumentRequests = appendItem(u.DocumentRequests, a.Request)
				return u
			})

	case AddAppActivity:
		s.Activities = prependBounded(s.Activities, a.Activity, maxActivityLog)

	case RecordVerification:
		s.VerificationLog = prependBounded(s.VerificationLog, a.Entry, maxVerificationLog)

	case AddEnquiry:
		s.Enquiries = appendItem(s.Enquiries, a.Enquiry)

	case UpdateEnquiry:
		s.Enquiries = replaceByID(s.Enquiries, a.Enquiry, func(e types.Enquiry) string { return e.ID })

	case AddDispute:
		s.Disputes = appendItem(s.Disputes, a.Dispute)

	case UpdateDispute:
		s.Disputes = replaceByID(s.Disputes, a.Dispute, func(d types.Dispute) string { return d.ID })

	case AddPayout:
		s.Payouts = appendItem(s.Payouts, a.Payout)

	case UpdatePayout:
		s.Payouts = replaceByID(s.Payouts, a.Payout, func(p types.Payout) string { return p.ID })

	case AddFacility:
		s.Facilities = appendItem(s.Facilities, a.Facility)

	case UpdateFacility:
		s.Facilities = replaceByID(s.Facilities, a.Facility, func(f types.Facility) string { return f.ID })

	case AddPaymentMethod:
		s.PaymentMethods = appendItem(s.PaymentMethods, a.Method)

	case UpdatePaymentMethod:
		s.PaymentMethods = replaceByID(s.PaymentMethods, a.Method, func(m types.PaymentMethod) string { return m.ID })

	case AddActiveTestingOrder:
		s.ActiveTesting = appendItem(s.ActiveTesting, a.Testing)

	case UpdateActiveTestingOrder:
		s.ActiveTesting = replaceByID(s.ActiveTesting, a.Testing, func(t types.ActiveTestingOrder) string { return t.ID })

	case AddMineral:
		s.Minerals = appendItem(s.Minerals, a.Mineral)

	case UpdateMineral:
		s.Minerals = replaceByID(s.Minerals, a.Mineral, func(m types.Mineral) string { return m.ID })

	case RemoveMineral:
		s.Minerals = removeByID(s.Minerals, a.MineralID, func(m types.Mineral) string { return m.ID })

	case AddCustomCategory:
		s.CustomCategories = appendItem(s.CustomCategories, a.Name)
	}

	return s
}

// logisticsFromEntry derives the logistics record a partner entry projects
// to. Shipping amount, currency and contact fields left blank on the entry
// inherit whatever the previous logistics record held; everything else is
// taken from the entry as-is.
func logisticsFromEntry(entry types.PartnerThirdPartyEntry, prev types.LogisticsDetails) types.LogisticsDetails {
	details := types.LogisticsDetails{
		OrderID:          entry.OrderID,
		CarrierName:      entry.CarrierName,
		TrackingNumber:   entry.TrackingNumber,
		ShippingAmount:   entry.ShippingAmount,
		ShippingCurrency: entry.ShippingCurrency,
		ContactName:      entry.ContactName,
		ContactPhone:     entry.ContactPhone,
		Status:           entry.ShipmentStatus,
	}
	if details.ShippingAmount == "" {
		details.ShippingAmount = prev.ShippingAmount
	}
	if details.ShippingCurrency == "" {
		details.ShippingCurrency = prev.ShippingCurrency
	}
	if details.ContactName == "" {
		details.ContactName = prev.ContactName
	}
	if details.ContactPhone == "" {
		details.ContactPhone = prev.ContactPhone
	}
	return details
}

// appendItem copies the list before appending so the input slice stays frozen.
func appendItem[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}

// replaceByID swaps out the element with a matching id. When no element
// matches, the input slice is returned untouched so the collection keeps its
// identity.
func replaceByID[T any](list []T, item T, id func(T) string) []T {
	target := id(item)
	for i := range list {
		if id(list[i]) == target {
			out := make([]T, len(list))
			copy(out, list)
			out[i] = item
			return out
		}
	}
	return list
}

// mutateByID applies fn to the element with a matching id, copying the list.
// Missing ids leave the input untouched.
func mutateByID[T any](list []T, target string, id func(T) string, fn func(T) T) []T {
	for i := range list {
		if id(list[i]) == target {
			out := make([]T, len(list))
			copy(out, list)
			out[i] = fn(out[i])
			return out
		}
	}
	return list
}

// removeByID filters out the element with a matching id. Missing ids leave
// the input untouched.
func removeByID[T any](list []T, target string, id func(T) string) []T {
	for i := range list {
		if id(list[i]) == target {
			out := make([]T, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}

// findByID returns the element with a matching id.
func findByID[T any](list []T, target string, id func(T) string) (T, bool) {
	for i := range list {
		if id(list[i]) == target {
			return list[i], true
		}
	}
	var zero T
	return zero, false
}

// prependBounded puts the newest item first and truncates to max entries.
func prependBounded[T any](list []T, item T, max int) []T {
	out := make([]T, 0, min(len(list)+1, max))
	out = append(out, item)
	if len(list) > max-1 {
		list = list[:max-1]
	}
	return append(out, list...)
}

func withOrder(orders map[string]types.Order, order types.Order) map[string]types.Order {
	out := make(map[string]types.Order, len(orders)+1)
	for id, o := range orders {
		out[id] = o
	}
	out[order.ID] = order
	return out
}

func withLogistics(logistics map[string]types.LogisticsDetails, details types.LogisticsDetails) map[string]types.LogisticsDetails {
	out := cloneLogistics(logistics)
	out[details.OrderID] = details
	return out
}

func cloneLogistics(logistics map[string]types.LogisticsDetails) map[string]types.LogisticsDetails {
	out := make(map[string]types.LogisticsDetails, len(logistics)+1)
	for id, d := range logistics {
		out[id] = d
	}
	return out
}

func withMembership(set map[string]struct{}, id string, member bool) map[string]struct{} {
	out := make(map[string]struct{}, len(set)+1)
	for k := range set {
		out[k] = struct{}{}
	}
	if member {
		out[id] = struct{}{}
	} else {
		delete(out, id)
	}
	return out
}
