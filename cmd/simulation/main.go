package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oredesk/ops-api/internal/catalog"
	"github.com/oredesk/ops-api/internal/dashboard"
	"github.com/oredesk/ops-api/internal/logistics"
	"github.com/oredesk/ops-api/internal/orders"
	"github.com/oredesk/ops-api/internal/registry"
	"github.com/oredesk/ops-api/internal/settlement"
	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/support"
	"github.com/oredesk/ops-api/internal/types"
	"github.com/oredesk/ops-api/internal/validation"
)

const (
	minOrders     = 10
	maxOrders     = 60
	numWorkers    = 4
	serverAddress = "http://localhost:8080"
)

var (
	minerals  = []string{"Copper Cathode", "Lithium Spodumene", "Cobalt Hydroxide", "Tantalite", "Gold Dore"}
	countries = []string{"Zambia", "DR Congo", "Chile", "Australia", "China", "Germany"}
	carriers  = []string{"DHL", "Maersk", "Bolloré", "Kuehne+Nagel"}
	methods   = []string{types.MethodBankTransfer, types.MethodWise, types.MethodBlockchain}
)

// init configures the logger for the simulation with pretty printing and timestamp
func init() {
	// Configure pretty logging
	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
}

// routeStats tracks performance statistics for an API endpoint
type routeStats struct {
	name       string
	durations  []time.Duration
	totalCalls int
	failures   int
}

// addDuration records a new duration measurement for the route
func (rs *routeStats) addDuration(d time.Duration) {
	rs.durations = append(rs.durations, d)
	rs.totalCalls++
}

// calculate computes performance statistics from recorded durations
// Returns min, max, mean, median, 95th percentile, and 99th percentile durations
func (rs *routeStats) calculate() (min, max, mean, median, p95, p99 time.Duration) {
	if len(rs.durations) == 0 {
		return 0, 0, 0, 0, 0, 0
	}

	// Sort durations for percentile calculations
	sort.Slice(rs.durations, func(i, j int) bool {
		return rs.durations[i] < rs.durations[j]
	})

	min = rs.durations[0]
	max = rs.durations[len(rs.durations)-1]

	// Calculate mean
	var sum time.Duration
	for _, d := range rs.durations {
		sum += d
	}
	mean = sum / time.Duration(len(rs.durations))

	// Calculate median
	median = rs.durations[len(rs.durations)/2]

	// Calculate percentiles
	p95idx := int(math.Ceil(float64(len(rs.durations))*0.95)) - 1
	p99idx := int(math.Ceil(float64(len(rs.durations))*0.99)) - 1
	p95 = rs.durations[p95idx]
	p99 = rs.durations[p99idx]

	return
}

// simulationClient handles HTTP communication with the operations API
type simulationClient struct {
	baseURL string
	client  *http.Client
	mu      sync.Mutex
	stats   map[string]*routeStats
}

// newSimulationClient creates and initializes a new simulation client
func newSimulationClient() *simulationClient {
	client := &http.Client{
		Timeout: 10 * time.Second,
	}

	return &simulationClient{
		baseURL: serverAddress,
		client:  client,
		stats: map[string]*routeStats{
			"user":        {name: "Create User"},
			"order":       {name: "Create Order"},
			"status":      {name: "Update Status"},
			"logistics":   {name: "Set Logistics"},
			"third_party": {name: "Partner Entry"},
			"transaction": {name: "Add Transaction"},
			"dashboard":   {name: "Dashboard Stats"},
		},
	}
}

// record stores one measurement under the named route, marking a failure
// when the call errored.
func (sc *simulationClient) record(route string, start time.Time, failed bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	rs := sc.stats[route]
	rs.addDuration(time.Since(start))
	if failed {
		rs.failures++
	}
}

// post sends a JSON payload and decodes the envelope's data field into out.
// Out may be nil when the caller does not need the body.
func (sc *simulationClient) post(method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, sc.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := sc.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debug().Str("path", path).Str("response", string(respBody)).Msg("API response")

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%s %s failed with status %d: %s", method, path, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	envelope := struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w, body: %s", err, string(respBody))
	}
	return json.Unmarshal(envelope.Data, out)
}

// createUser registers a marketplace user and returns its ID
func (sc *simulationClient) createUser(req registry.UserRequest) (string, error) {
	start := time.Now()
	var user types.RegistryUser
	err := sc.post("POST", "/api/v1/users", req, &user)
	sc.record("user", start, err != nil)
	if err != nil {
		return "", err
	}
	if user.ID == "" {
		return "", fmt.Errorf("no user ID in response")
	}
	return user.ID, nil
}

// createOrder submits a new order and returns it
func (sc *simulationClient) createOrder(req orders.CreateOrderRequest) (*types.Order, error) {
	start := time.Now()
	var order types.Order
	err := sc.post("POST", "/api/v1/orders", req, &order)
	sc.record("order", start, err != nil)
	if err != nil {
		return nil, err
	}
	if order.ID == "" {
		return nil, fmt.Errorf("no order ID in response")
	}
	return &order, nil
}

// updateStatus advances an order to the given pipeline status
func (sc *simulationClient) updateStatus(orderID string, req orders.UpdateStatusRequest) (*types.Order, error) {
	start := time.Now()
	var order types.Order
	err := sc.post("POST", fmt.Sprintf("/api/v1/orders/%s/status", orderID), req, &order)
	sc.record("status", start, err != nil)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// setLogistics replaces the logistics record for an order
func (sc *simulationClient) setLogistics(orderID string, req logistics.SetDetailsRequest) error {
	start := time.Now()
	err := sc.post("PUT", fmt.Sprintf("/api/v1/orders/%s/logistics", orderID), req, nil)
	sc.record("logistics", start, err != nil)
	return err
}

// addPartnerEntry submits a partner third-party entry
func (sc *simulationClient) addPartnerEntry(req logistics.PartnerEntryRequest) error {
	start := time.Now()
	err := sc.post("POST", "/api/v1/third-party", req, nil)
	sc.record("third_party", start, err != nil)
	return err
}

// addTransaction records a settlement transaction against an order
func (sc *simulationClient) addTransaction(req settlement.AddTransactionRequest) error {
	start := time.Now()
	err := sc.post("POST", "/api/v1/transactions", req, nil)
	sc.record("transaction", start, err != nil)
	return err
}

// dashboardStatistics fetches the aggregate dashboard counters
func (sc *simulationClient) dashboardStatistics() (map[string]any, error) {
	start := time.Now()
	req, err := http.NewRequest("GET", sc.baseURL+"/api/v1/dashboard/statistics", nil)
	if err != nil {
		return nil, err
	}

	resp, err := sc.client.Do(req)
	sc.record("dashboard", start, err != nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// printPerformanceStats outputs formatted performance statistics for all API endpoints
func (sc *simulationClient) printPerformanceStats() {
	fmt.Println("\n📊 API Performance Statistics")
	fmt.Println(strings.Repeat("-", 100))
	fmt.Printf("%-20s %10s %10s %10s %10s %10s %10s %10s %10s\n",
		"Endpoint", "Calls", "Errors", "Min", "Max", "Mean", "Median", "P95", "P99")
	fmt.Println(strings.Repeat("-", 100))

	for _, stats := range sc.stats {
		min, max, mean, median, p95, p99 := stats.calculate()
		fmt.Printf("%-20s %10d %10d %10s %10s %10s %10s %10s %10s\n",
			stats.name,
			stats.totalCalls,
			stats.failures,
			min.Round(time.Millisecond),
			max.Round(time.Millisecond),
			mean.Round(time.Millisecond),
			median.Round(time.Millisecond),
			p95.Round(time.Millisecond),
			p99.Round(time.Millisecond))
	}
	fmt.Println(strings.Repeat("-", 100))
}

// main runs the marketplace simulation
// It starts a local API server and drives orders through the full pipeline
func main() {
	// Start the server in a goroutine
	go func() {
		if err := startServer(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for server to start
	time.Sleep(2 * time.Second)

	simClient := newSimulationClient()

	// Register a pool of users up front
	var userIDs []string
	for i := 0; i < numWorkers*2; i++ {
		userID, err := simClient.createUser(registry.UserRequest{
			Name:    fmt.Sprintf("Trader %d", i+1),
			Company: fmt.Sprintf("Minerals Co %d", i+1),
			Email:   fmt.Sprintf("trader%d@example.com", i+1),
			Country: countries[rand.Intn(len(countries))],
			Status:  types.UserStatusActive,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to register user")
		}
		userIDs = append(userIDs, userID)
	}
	log.Info().Int("users", len(userIDs)).Msg("Users registered")

	// Generate random number of orders to process
	targetOrders := rand.Intn(maxOrders-minOrders) + minOrders
	log.Info().Int("target_orders", targetOrders).Msg("Starting simulation")

	// Channel to collect created orders
	ordersChan := make(chan *types.Order, targetOrders)
	var wg sync.WaitGroup

	// Start worker goroutines
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			createOrdersHTTP(workerID, targetOrders/numWorkers, simClient, userIDs, ordersChan)
		}(i)
	}

	// Wait for all orders to be created
	wg.Wait()
	close(ordersChan)

	var created []*types.Order
	for order := range ordersChan {
		created = append(created, order)
	}
	log.Info().Int("orders_created", len(created)).Msg("All orders created")

	// Collect statistics during processing
	stats := struct {
		TotalOrders     int
		CompletedOrders int
		CancelledOrders int
		FailedSteps     int
		StartTime       time.Time
		Minerals        map[string]int
		Types           map[string]int
	}{
		StartTime: time.Now(),
		Minerals:  make(map[string]int),
		Types:     make(map[string]int),
	}
	stats.TotalOrders = len(created)

	// Walk each order through its pipeline
	for _, order := range created {
		stats.Minerals[order.Mineral]++
		stats.Types[order.Type]++

		// A few orders are cancelled mid-flight
		if rand.Intn(10) == 0 {
			if _, err := simClient.updateStatus(order.ID, orders.UpdateStatusRequest{
				Status: types.StatusCancelled,
			}); err != nil {
				log.Error().Err(err).Str("order_id", order.ID).Msg("Failed to cancel order")
				stats.FailedSteps++
				continue
			}
			stats.CancelledOrders++
			log.Info().Str("order_id", order.ID).Msg("Order cancelled")
			continue
		}

		if err := advanceOrder(simClient, order); err != nil {
			log.Error().Err(err).Str("order_id", order.ID).Msg("Failed to advance order")
			stats.FailedSteps++
			continue
		}
		stats.CompletedOrders++
	}

	// Fetch final dashboard counters
	dashStats, err := simClient.dashboardStatistics()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch dashboard statistics")
	}

	// Print summary
	duration := time.Since(stats.StartTime)
	fmt.Println("\n" + strings.Repeat("=", 80))
	fmt.Println("⛏️  MARKETPLACE SIMULATION SUMMARY")
	fmt.Println(strings.Repeat("=", 80))

	fmt.Printf(`
📊 Order Statistics
------------------
Total Orders:     %d
Completed:        %d
Cancelled:        %d
Failed Steps:     %d
Duration:         %v

📈 Mineral Distribution
---------------------
`, stats.TotalOrders, stats.CompletedOrders, stats.CancelledOrders,
		stats.FailedSteps, duration.Round(time.Millisecond))

	// Print mineral distribution with simple ASCII bar chart
	maxMineralCount := 0
	for _, count := range stats.Minerals {
		if count > maxMineralCount {
			maxMineralCount = count
		}
	}
	for mineral, count := range stats.Minerals {
		barLength := int(float64(count) / float64(maxMineralCount) * 20)
		bar := strings.Repeat("█", barLength)
		fmt.Printf("%-20s: %s (%d)\n", mineral, bar, count)
	}

	fmt.Println("\n📉 Type Distribution")
	fmt.Println("------------------")
	for orderType, count := range stats.Types {
		barLength := int(float64(count) / float64(stats.TotalOrders) * 20)
		bar := strings.Repeat("█", barLength)
		fmt.Printf("%-4s: %s (%d)\n", orderType, bar, count)
	}

	fmt.Println("\n📋 Dashboard Counters")
	fmt.Println("-------------------")
	for key, value := range dashStats {
		fmt.Printf("%-24s: %v\n", key, value)
	}

	fmt.Println("\n" + strings.Repeat("=", 80))

	successRate := float64(stats.CompletedOrders) / float64(stats.TotalOrders) * 100
	log.Info().
		Float64("success_rate", successRate).
		Int("total_orders", stats.TotalOrders).
		Int("completed_orders", stats.CompletedOrders).
		Dur("duration", duration).
		Msg("Simulation completed")

	simClient.printPerformanceStats()
}

// advanceOrder walks an order through every remaining pipeline step,
// attaching step payloads and side records the way operators do
func advanceOrder(simClient *simulationClient, order *types.Order) error {
	steps := types.StepsFor(order.Type)

	// The first step is recorded at creation; walk the rest
	for _, status := range steps[1:] {
		req := orders.UpdateStatusRequest{Status: status}

		switch status {
		case types.StepSampleTestRequired:
			req.FlowStepData = &types.FlowStepData{
				SampleTest: &types.SampleTestResult{
					Lab:      "SGS Lab",
					Result:   "Passed",
					TestedAt: time.Now().Format("Jan 2, 2006"),
				},
			}
			// Sell orders hand the sample to a testing partner
			if err := simClient.addPartnerEntry(logistics.PartnerEntryRequest{
				OrderID:       order.ID,
				PartnerName:   "SGS Lab",
				TestingStatus: "In Progress",
			}); err != nil {
				return err
			}
		case types.StepOrderConfirmed:
			req.FlowStepData = &types.FlowStepData{
				ConfirmedAmount: order.EstimatedAmount,
			}
		case types.StepShipmentScheduled:
			carrier := carriers[rand.Intn(len(carriers))]
			req.FlowStepData = &types.FlowStepData{
				Shipment: &types.ShipmentInfo{
					Carrier:      carrier,
					ScheduledFor: time.Now().AddDate(0, 0, 7).Format("Jan 2, 2006"),
				},
			}
			if err := simClient.setLogistics(order.ID, logistics.SetDetailsRequest{
				CarrierName:      carrier,
				TrackingNumber:   fmt.Sprintf("TRK-%06d", rand.Intn(1000000)),
				ShippingAmount:   fmt.Sprintf("%d", rand.Intn(5000)+500),
				ShippingCurrency: "USD",
				Status:           "Scheduled",
			}); err != nil {
				return err
			}
		case types.StepPaymentInitiated:
			method := methods[rand.Intn(len(methods))]
			req.FlowStepData = &types.FlowStepData{
				PaymentInitiated: &types.PaymentInitiation{
					Method:      method,
					InitiatedAt: time.Now().Format("Jan 2, 2006"),
				},
			}
			if err := simClient.addTransaction(settlement.AddTransactionRequest{
				OrderID:  order.ID,
				UserID:   order.UserID,
				Amount:   order.EstimatedAmount,
				Currency: "USD",
				Method:   method,
				Status:   types.TxStatusCompleted,
			}); err != nil {
				return err
			}
		}

		updated, err := simClient.updateStatus(order.ID, req)
		if err != nil {
			return err
		}
		log.Info().
			Str("order_id", order.ID).
			Str("status", updated.Status).
			Msg("Order advanced")
	}

	return nil
}

// createOrdersHTTP generates and submits random orders to the API
// Runs as a worker goroutine, sending created orders to ordersChan
func createOrdersHTTP(workerID, numOrders int, simClient *simulationClient, userIDs []string, ordersChan chan<- *types.Order) {
	for i := 0; i < numOrders; i++ {
		orderType := types.OrderTypeBuy
		if rand.Intn(2) == 1 {
			orderType = types.OrderTypeSell
		}

		req := orders.CreateOrderRequest{
			Type:            orderType,
			UserID:          userIDs[rand.Intn(len(userIDs))],
			Mineral:         minerals[rand.Intn(len(minerals))],
			Quantity:        fmt.Sprintf("%d", rand.Intn(500)+10),
			Unit:            "MT",
			Currency:        "USD",
			EstimatedAmount: fmt.Sprintf("%d", rand.Intn(900000)+100000),
		}
		if orderType == types.OrderTypeBuy {
			req.BuyerCountry = countries[rand.Intn(len(countries))]
			req.DeliveryLocation = types.Location{
				City:    "Rotterdam",
				Country: "Netherlands",
			}
		} else {
			req.SellerCountry = countries[rand.Intn(len(countries))]
			req.Facility = types.FacilityInfo{
				Name:    fmt.Sprintf("Facility %d", workerID+1),
				Country: countries[rand.Intn(len(countries))],
			}
		}

		order, err := simClient.createOrder(req)
		if err != nil {
			log.Error().Err(err).
				Int("worker_id", workerID).
				Str("mineral", req.Mineral).
				Msg("Failed to create order")
			continue
		}

		ordersChan <- order
		log.Info().
			Int("worker_id", workerID).
			Str("order_id", order.ID).
			Str("type", order.Type).
			Str("mineral", order.Mineral).
			Str("quantity", order.Quantity).
			Msg("Order created")

		// Random sleep between orders
		time.Sleep(time.Duration(rand.Intn(200)) * time.Millisecond)
	}
}

// startServer initializes and starts the operations API server
// Sets up all required services, handlers and routes
func startServer() error {
	st := store.New()
	validate := validation.New()

	// Initialize services
	orderService := orders.NewService(st)
	settlementService := settlement.NewService(st)
	logisticsService := logistics.NewService(st)
	registryService := registry.NewService(st)
	supportService := support.NewService(st)
	catalogService := catalog.NewService(st)
	dashboardService := dashboard.NewService(st)

	// Initialize router
	router := gin.Default()
	orderHandlers := orders.NewGinHandlers(orderService, st, validate)
	settlementHandlers := settlement.NewGinHandlers(settlementService, st, validate)
	logisticsHandlers := logistics.NewGinHandlers(logisticsService, st, validate)
	registryHandlers := registry.NewGinHandlers(registryService, validate)
	supportHandlers := support.NewGinHandlers(supportService, validate)
	catalogHandlers := catalog.NewGinHandlers(catalogService, validate)
	dashboardHandlers := dashboard.NewGinHandlers(dashboardService)

	// Setup routes
	setupRoutes(router, orderHandlers, settlementHandlers, logisticsHandlers,
		registryHandlers, supportHandlers, catalogHandlers, dashboardHandlers)

	// Start the server
	return router.Run(":8080")
}

// setupRoutes configures the endpoints the simulation exercises
func setupRoutes(
	router *gin.Engine,
	orderHandlers *orders.GinHandlers,
	settlementHandlers *settlement.GinHandlers,
	logisticsHandlers *logistics.GinHandlers,
	registryHandlers *registry.GinHandlers,
	supportHandlers *support.GinHandlers,
	catalogHandlers *catalog.GinHandlers,
	dashboardHandlers *dashboard.GinHandlers,
) {
	v1 := router.Group("/api/v1")
	{
		ordersGroup := v1.Group("/orders")
		{
			ordersGroup.POST("", orderHandlers.CreateOrderHandler())
			ordersGroup.GET("/buy", orderHandlers.ListBuyOrdersHandler())
			ordersGroup.GET("/sell", orderHandlers.ListSellOrdersHandler())
			ordersGroup.GET("/:order_id", orderHandlers.GetOrderHandler())
			ordersGroup.POST("/:order_id/status", orderHandlers.UpdateStatusHandler())
			ordersGroup.POST("/:order_id/cancel", orderHandlers.CancelOrderHandler())
			ordersGroup.PUT("/:order_id/logistics", logisticsHandlers.SetDetailsHandler())
			ordersGroup.GET("/:order_id/logistics", logisticsHandlers.GetDetailsHandler())
		}

		v1.POST("/third-party", logisticsHandlers.AddPartnerEntryHandler())
		v1.POST("/transactions", settlementHandlers.AddTransactionHandler())
		v1.GET("/transactions", settlementHandlers.ListTransactionsHandler())
		v1.POST("/users", registryHandlers.AddUserHandler())
		v1.GET("/users", registryHandlers.ListUsersHandler())
		v1.POST("/enquiries", supportHandlers.AddEnquiryHandler())
		v1.GET("/minerals", catalogHandlers.ListMineralsHandler())
		v1.GET("/dashboard/statistics", dashboardHandlers.StatisticsHandler())
	}
}
