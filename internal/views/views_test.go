package views

import (
	"testing"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
)

func TestResolveUserName(t *testing.T) {
	users := []types.RegistryUser{
		{ID: "USR_1", Name: "Amara Banda"},
		{ID: "USR_2", Name: "Chen Wei"},
	}

	if got := ResolveUserName(users, "USR_2"); got != "Chen Wei" {
		t.Errorf("got %q", got)
	}
	if got := ResolveUserName(users, ""); got != UnknownName {
		t.Errorf("empty id resolved to %q, want %q", got, UnknownName)
	}
	if got := ResolveUserName(users, "USR_9"); got != UnknownName {
		t.Errorf("missing id resolved to %q, want %q", got, UnknownName)
	}
}

func TestIsOrderInternational(t *testing.T) {
	users := []types.RegistryUser{
		{ID: "USR_1", Name: "Amara", Country: "Zambia"},
	}

	tests := []struct {
		name  string
		order types.Order
		want  bool
	}{
		{
			name:  "explicit countries differ",
			order: types.Order{Type: types.OrderTypeBuy, BuyerCountry: "Germany", SellerCountry: "Zambia"},
			want:  true,
		},
		{
			name:  "explicit countries equal",
			order: types.Order{Type: types.OrderTypeBuy, BuyerCountry: "Zambia", SellerCountry: "Zambia"},
			want:  false,
		},
		{
			name:  "buyer falls back to linked user",
			order: types.Order{Type: types.OrderTypeBuy, UserID: "USR_1", SellerCountry: "Chile"},
			want:  true,
		},
		{
			name:  "seller falls back to facility",
			order: types.Order{Type: types.OrderTypeSell, BuyerCountry: "Germany", Facility: types.FacilityInfo{Country: "Zambia"}},
			want:  true,
		},
		{
			name:  "seller falls back to delivery location",
			order: types.Order{Type: types.OrderTypeSell, BuyerCountry: "Germany", DeliveryLocation: types.Location{Country: "Germany"}},
			want:  false,
		},
		{
			name:  "unknown side is never international",
			order: types.Order{Type: types.OrderTypeBuy, BuyerCountry: "Germany"},
			want:  false,
		},
		{
			name:  "whitespace is not a country",
			order: types.Order{Type: types.OrderTypeBuy, BuyerCountry: "  ", SellerCountry: "Zambia"},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOrderInternational(tt.order, users); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTransactionInternational(t *testing.T) {
	yes := true
	orders := map[string]types.Order{
		"ORD_1": {ID: "ORD_1", Type: types.OrderTypeBuy, BuyerCountry: "Germany", SellerCountry: "Zambia"},
	}

	// explicit flag wins over everything
	tx := types.Transaction{OrderID: "ORD_1", IsInternational: &yes}
	if !IsTransactionInternational(tx, map[string]types.Order{}, nil) {
		t.Error("explicit flag ignored")
	}

	// referenced order decides
	tx = types.Transaction{OrderID: "ORD_1"}
	if !IsTransactionInternational(tx, orders, nil) {
		t.Error("order classification not used")
	}

	// no order found: direct country comparison
	tx = types.Transaction{OrderID: "ORD_MISSING", PayerCountry: "Chile", BeneficiaryCountry: "China"}
	if !IsTransactionInternational(tx, orders, nil) {
		t.Error("payer/beneficiary comparison not used")
	}
	tx = types.Transaction{OrderID: "ORD_MISSING", PayerCountry: "Chile"}
	if IsTransactionInternational(tx, orders, nil) {
		t.Error("missing beneficiary should never be international")
	}
}

func TestBuySellProjections(t *testing.T) {
	s := store.NewSnapshot()
	s = store.Apply(s, store.CreateOrder{Order: types.Order{ID: "ORD_B2", Type: types.OrderTypeBuy}})
	s = store.Apply(s, store.CreateOrder{Order: types.Order{ID: "ORD_B1", Type: types.OrderTypeBuy}})
	s = store.Apply(s, store.CreateOrder{Order: types.Order{ID: "ORD_S1", Type: types.OrderTypeSell}})

	buys := BuyOrders(s)
	if len(buys) != 2 {
		t.Fatalf("buy orders = %d, want 2", len(buys))
	}
	if buys[0].ID != "ORD_B1" || buys[1].ID != "ORD_B2" {
		t.Errorf("buy projection not sorted by id: %s, %s", buys[0].ID, buys[1].ID)
	}

	sells := SellOrders(s)
	if len(sells) != 1 || sells[0].ID != "ORD_S1" {
		t.Errorf("sell projection = %+v", sells)
	}
}

func TestThirdPartyForOrderFirstSubmittedWins(t *testing.T) {
	s := store.NewSnapshot()
	s = store.Apply(s, store.AddPartnerThirdParty{Entry: types.PartnerThirdPartyEntry{
		ID: "TPE_1", OrderID: "ORD_1", PartnerName: "SGS Lab",
	}})
	s = store.Apply(s, store.AddPartnerThirdParty{Entry: types.PartnerThirdPartyEntry{
		ID: "TPE_2", OrderID: "ORD_1", PartnerName: "Bureau Veritas",
	}})

	entry, ok := ThirdPartyForOrder(s, "ORD_1")
	if !ok {
		t.Fatal("no entry found")
	}
	if entry.ID != "TPE_1" {
		t.Errorf("entry = %s, want the first-submitted TPE_1", entry.ID)
	}
}

func TestDashboardStatistics(t *testing.T) {
	s := store.NewSnapshot()
	s = store.Apply(s, store.CreateOrder{Order: types.Order{ID: "ORD_1", Type: types.OrderTypeBuy}})
	s = store.Apply(s, store.CreateOrder{Order: types.Order{
		ID: "ORD_2", Type: types.OrderTypeSell, Status: types.StatusCancelled,
	}})
	s = store.Apply(s, store.CreateOrder{Order: types.Order{
		ID: "ORD_3", Type: types.OrderTypeBuy, Status: types.StepOrderCompleted,
	}})

	s = store.Apply(s, store.AddTransaction{Transaction: types.Transaction{
		ID: "TXN_1", Status: types.TxStatusCompleted, Amount: "$120,000.50",
	}})
	s = store.Apply(s, store.AddTransaction{Transaction: types.Transaction{
		ID: "TXN_2", Status: types.TxStatusPending, Amount: "30000",
	}})
	s = store.Apply(s, store.AddTransaction{Transaction: types.Transaction{
		ID: "TXN_3", Status: types.TxStatusFailed, Amount: "999",
	}})

	s = store.Apply(s, store.AddUser{User: types.RegistryUser{ID: "USR_1", Status: types.UserStatusUnderReview}})
	s = store.Apply(s, store.AddUser{User: types.RegistryUser{ID: "USR_2", Status: types.UserStatusActive}})

	s = store.Apply(s, store.AddEnquiry{Enquiry: types.Enquiry{
		ID: "ENQ_1", Type: types.EnquiryTypeGeneral, Status: types.EnquiryStatusOpen,
	}})
	s = store.Apply(s, store.AddEnquiry{Enquiry: types.Enquiry{
		ID: "ENQ_2", Type: types.EnquiryTypeCallback, Status: types.EnquiryStatusOpen,
	}})
	s = store.Apply(s, store.AddEnquiry{Enquiry: types.Enquiry{
		ID: "ENQ_3", Type: types.EnquiryTypeCallback, Status: types.EnquiryStatusResolved,
	}})

	stats := DashboardStatistics(s)

	if stats.ActiveOrders != 1 {
		t.Errorf("active orders = %d, want 1", stats.ActiveOrders)
	}
	if stats.CompletedVolume != 120000.50 {
		t.Errorf("completed volume = %v, want 120000.50", stats.CompletedVolume)
	}
	if stats.PendingVolume != 30000 {
		t.Errorf("pending volume = %v, want 30000", stats.PendingVolume)
	}
	if !stats.HasFailedTransaction {
		t.Error("failed transaction not flagged")
	}
	if stats.UsersUnderReview != 1 {
		t.Errorf("users under review = %d, want 1", stats.UsersUnderReview)
	}
	if stats.OpenEnquiries != 2 {
		t.Errorf("open enquiries = %d, want 2", stats.OpenEnquiries)
	}
	if stats.OpenCallbacks != 1 {
		t.Errorf("open callbacks = %d, want 1", stats.OpenCallbacks)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1200", 1200},
		{"$1,200.50", 1200.50},
		{"USD 300", 300},
		{"", 0},
		{"pending", 0},
	}
	for _, tt := range tests {
		if got := parseAmount(tt.in); got != tt.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
