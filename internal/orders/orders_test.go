package orders

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/types"
	"github.com/oredesk/ops-api/internal/validation"
)

func newTestRouter() (*gin.Engine, *store.Store) {
	gin.SetMode(gin.TestMode)
	st := store.New()
	handlers := NewGinHandlers(NewService(st), st, validation.New())

	router := gin.New()
	router.POST("/orders", handlers.CreateOrderHandler())
	router.GET("/orders/buy", handlers.ListBuyOrdersHandler())
	router.GET("/orders/sell", handlers.ListSellOrdersHandler())
	router.GET("/orders/:order_id", handlers.GetOrderHandler())
	router.POST("/orders/:order_id/status", handlers.UpdateStatusHandler())
	router.POST("/orders/:order_id/cancel", handlers.CancelOrderHandler())
	return router, st
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) types.Order {
	t.Helper()
	var envelope struct {
		Success bool        `json:"success"`
		Data    types.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v, body: %s", err, w.Body.String())
	}
	return envelope.Data
}

func TestCreateOrderEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, "POST", "/orders", CreateOrderRequest{
		Type:     types.OrderTypeSell,
		Mineral:  "Tantalite",
		Quantity: "40",
		Unit:     "MT",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", w.Code, w.Body.String())
	}

	order := decodeOrder(t, w)
	if !strings.HasPrefix(order.ID, "ORD_") {
		t.Errorf("order id = %q, want ORD_ prefix", order.ID)
	}
	if order.Status != types.StepOrderSubmitted {
		t.Errorf("status = %q, want %q", order.Status, types.StepOrderSubmitted)
	}
	if len(order.FlowSteps) != 6 {
		t.Errorf("sell order flow steps = %d, want 6", len(order.FlowSteps))
	}
}

func TestCreateOrderValidation(t *testing.T) {
	router, st := newTestRouter()

	w := doJSON(t, router, "POST", "/orders", CreateOrderRequest{
		Type: "Swap", Mineral: "Tantalite", Quantity: "40", Unit: "MT",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(st.Snapshot().Orders) != 0 {
		t.Error("invalid request reached the store")
	}
}

func TestUpdateStatusEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	created := decodeOrder(t, doJSON(t, router, "POST", "/orders", CreateOrderRequest{
		Type: types.OrderTypeBuy, Mineral: "Copper Cathode", Quantity: "100", Unit: "MT",
	}))

	w := doJSON(t, router, "POST", "/orders/"+created.ID+"/status", UpdateStatusRequest{
		Status: types.StepPaymentInitiated,
		FlowStepData: &types.FlowStepData{
			PaymentInitiated: &types.PaymentInitiation{
				Method:      types.MethodWise,
				InitiatedAt: "Feb 3, 2026",
			},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	order := decodeOrder(t, w)
	if order.Status != types.StepPaymentInitiated {
		t.Errorf("status = %q", order.Status)
	}
	if !order.FlowSteps[3].Active {
		t.Errorf("step 3 not active: %+v", order.FlowSteps)
	}
	if order.FlowStepData.PaymentInitiated == nil ||
		order.FlowStepData.PaymentInitiated.Method != types.MethodWise {
		t.Errorf("payment step data = %+v", order.FlowStepData.PaymentInitiated)
	}
}

func TestUpdateStatusRejectsForeignStep(t *testing.T) {
	router, _ := newTestRouter()

	created := decodeOrder(t, doJSON(t, router, "POST", "/orders", CreateOrderRequest{
		Type: types.OrderTypeBuy, Mineral: "Copper Cathode", Quantity: "100", Unit: "MT",
	}))

	// Sample Test Required exists only in the sell pipeline
	w := doJSON(t, router, "POST", "/orders/"+created.ID+"/status", UpdateStatusRequest{
		Status: types.StepSampleTestRequired,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body: %s", w.Code, w.Body.String())
	}
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	router, _ := newTestRouter()

	w := doJSON(t, router, "POST", "/orders/ORD_MISSING/status", UpdateStatusRequest{
		Status: types.StepOrderConfirmed,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body: %s", w.Code, w.Body.String())
	}
}

func TestCancelKeepsOrderInTable(t *testing.T) {
	router, st := newTestRouter()

	created := decodeOrder(t, doJSON(t, router, "POST", "/orders", CreateOrderRequest{
		Type: types.OrderTypeBuy, Mineral: "Copper Cathode", Quantity: "100", Unit: "MT",
	}))

	w := doJSON(t, router, "POST", "/orders/"+created.ID+"/cancel", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}

	stored, ok := st.Snapshot().Orders[created.ID]
	if !ok {
		t.Fatal("cancelled order was deleted")
	}
	if stored.Status != types.StatusCancelled {
		t.Errorf("status = %q, want %q", stored.Status, types.StatusCancelled)
	}
}

func TestBuySellListEndpoints(t *testing.T) {
	router, _ := newTestRouter()

	doJSON(t, router, "POST", "/orders", CreateOrderRequest{
		Type: types.OrderTypeBuy, Mineral: "Copper Cathode", Quantity: "100", Unit: "MT",
	})
	doJSON(t, router, "POST", "/orders", CreateOrderRequest{
		Type: types.OrderTypeSell, Mineral: "Tantalite", Quantity: "40", Unit: "MT",
	})

	var envelope struct {
		Data []types.Order `json:"data"`
	}
	w := doJSON(t, router, "GET", "/orders/buy", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Type != types.OrderTypeBuy {
		t.Errorf("buy list = %+v", envelope.Data)
	}

	w = doJSON(t, router, "GET", "/orders/sell", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Type != types.OrderTypeSell {
		t.Errorf("sell list = %+v", envelope.Data)
	}
}
