package settlement

import (
	"strings"
	"testing"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
)

func TestAddTransactionDefaultsToPending(t *testing.T) {
	service := NewService(store.New())

	tx := service.AddTransaction(AddTransactionRequest{
		OrderID:  "ORD_1",
		Amount:   "120000",
		Currency: "USD",
		Method:   types.MethodBankTransfer,
	})
	if !strings.HasPrefix(tx.ID, "TXN_") {
		t.Errorf("transaction id = %q, want TXN_ prefix", tx.ID)
	}
	if tx.Status != types.TxStatusPending {
		t.Errorf("status = %q, want %q", tx.Status, types.TxStatusPending)
	}
}

func TestUpdateTransaction(t *testing.T) {
	service := NewService(store.New())

	tx := service.AddTransaction(AddTransactionRequest{
		OrderID: "ORD_1", Amount: "100", Currency: "USD", Method: types.MethodWise,
	})

	updated, err := service.UpdateTransaction(tx.ID, UpdateTransactionRequest{
		Amount: "100", Currency: "USD", Method: types.MethodWise, Status: types.TxStatusCompleted,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != types.TxStatusCompleted {
		t.Errorf("status = %q", updated.Status)
	}

	if _, err := service.UpdateTransaction("TXN_MISSING", UpdateTransactionRequest{
		Amount: "1", Currency: "USD", Method: types.MethodWise, Status: types.TxStatusPending,
	}); err == nil {
		t.Error("expected an error for a missing transaction")
	}
}

func TestListTransactionsResolvesInternational(t *testing.T) {
	st := store.New()
	service := NewService(st)

	// cross-border order linked to the transaction
	st.Dispatch(store.CreateOrder{Order: types.Order{
		ID:            "ORD_1",
		Type:          types.OrderTypeBuy,
		BuyerCountry:  "Germany",
		SellerCountry: "Zambia",
	}})

	service.AddTransaction(AddTransactionRequest{
		OrderID: "ORD_1", Amount: "100", Currency: "USD", Method: types.MethodBankTransfer,
	})
	service.AddTransaction(AddTransactionRequest{
		OrderID: "ORD_UNLINKED", Amount: "50", Currency: "USD", Method: types.MethodWise,
	})

	list := service.ListTransactions()
	if len(list) != 2 {
		t.Fatalf("transactions = %d, want 2", len(list))
	}
	if !list[0].International {
		t.Error("transaction on a cross-border order should be international")
	}
	if list[1].International {
		t.Error("transaction with no order and no countries should be domestic")
	}
}

func TestPayoutLifecycle(t *testing.T) {
	service := NewService(store.New())

	payout := service.AddPayout(PayoutRequest{
		UserID: "USR_1", Amount: "5000", Currency: "USD", Status: "Pending",
	})
	if !strings.HasPrefix(payout.ID, "PAY_") {
		t.Errorf("payout id = %q", payout.ID)
	}

	updated, err := service.UpdatePayout(payout.ID, PayoutRequest{
		UserID: "USR_1", Amount: "5000", Currency: "USD", Status: "Paid",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "Paid" {
		t.Errorf("status = %q", updated.Status)
	}

	if got := service.ListPayouts(); len(got) != 1 || got[0].Status != "Paid" {
		t.Errorf("payouts = %+v", got)
	}
}
