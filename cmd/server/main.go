package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/oredesk/ops-api/internal/catalog"
	"github.com/oredesk/ops-api/internal/config"
	"github.com/oredesk/ops-api/internal/dashboard"
	"github.com/oredesk/ops-api/internal/logistics"
	"github.com/oredesk/ops-api/internal/orders"
	"github.com/oredesk/ops-api/internal/registry"
	"github.com/oredesk/ops-api/internal/settlement"
	"github.com/oredesk/ops-api/internal/store"
	"github.com/oredesk/ops-api/internal/support"
	"github.com/oredesk/ops-api/internal/validation"
	"github.com/oredesk/ops-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// init configures the application logging based on environment settings
// In development mode, it enables pretty printing with timestamps
// Debug logging can be enabled via DEBUG environment variable
func init() {
	// Configure pretty logging for development
	if os.Getenv("ENVIRONMENT") != "production" {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		zlog.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// main initializes and runs the operations API server with graceful shutdown
// support. All state lives in the in-memory store and resets on restart.
func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// The single source of truth for every screen
	st := store.New()
	validate := validation.New()

	// Initialize router
	router := gin.Default()

	// Initialize services and handlers
	orderService := orders.NewService(st)
	orderHandlers := orders.NewGinHandlers(orderService, st, validate)

	settlementService := settlement.NewService(st)
	settlementHandlers := settlement.NewGinHandlers(settlementService, st, validate)

	logisticsService := logistics.NewService(st)
	logisticsHandlers := logistics.NewGinHandlers(logisticsService, st, validate)

	registryService := registry.NewService(st)
	registryHandlers := registry.NewGinHandlers(registryService, validate)

	supportService := support.NewService(st)
	supportHandlers := support.NewGinHandlers(supportService, validate)

	catalogService := catalog.NewService(st)
	catalogHandlers := catalog.NewGinHandlers(catalogService, validate)

	dashboardService := dashboard.NewService(st)
	dashboardHandlers := dashboard.NewGinHandlers(dashboardService)

	// Start the periodic statistics reporter
	reporter := dashboard.NewReporter(dashboardService)
	reporterCtx, reporterCancel := context.WithCancel(context.Background())
	defer reporterCancel()

	go reporter.Start(reporterCtx)

	// Setup middleware
	router.Use(middleware.RateLimit())
	router.Use(middleware.RequestLogger())

	// Setup API routes
	setupRoutes(router, orderHandlers, settlementHandlers, logisticsHandlers,
		registryHandlers, supportHandlers, catalogHandlers, dashboardHandlers)

	// Create server
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr(),
		Handler: router,
	}

	// Graceful shutdown setup
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	zlog.Info().Msg("Server exiting")
}

// setupRoutes configures all API endpoints and their handlers
// Routes are grouped by domain: orders, settlement, logistics, registry,
// support, catalog and dashboard all read from and dispatch into the same
// store.
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
			ordersGroup.POST("/:order_id/comm", orderHandlers.AppendCommHandler())
			ordersGroup.POST("/:order_id/sent", orderHandlers.AppendSentHandler())
			ordersGroup.GET("/:order_id/logistics", logisticsHandlers.GetDetailsHandler())
			ordersGroup.PUT("/:order_id/logistics", logisticsHandlers.SetDetailsHandler())
			ordersGroup.GET("/:order_id/third-party", logisticsHandlers.PartnerEntryForOrderHandler())
		}

		transactions := v1.Group("/transactions")
		{
			transactions.POST("", settlementHandlers.AddTransactionHandler())
			transactions.GET("", settlementHandlers.ListTransactionsHandler())
			transactions.PUT("/:transaction_id", settlementHandlers.UpdateTransactionHandler())
		}

		payouts := v1.Group("/payouts")
		{
			payouts.POST("", settlementHandlers.AddPayoutHandler())
			payouts.GET("", settlementHandlers.ListPayoutsHandler())
			payouts.PUT("/:payout_id", settlementHandlers.UpdatePayoutHandler())
		}

		thirdParty := v1.Group("/third-party")
		{
			thirdParty.POST("", logisticsHandlers.AddPartnerEntryHandler())
			thirdParty.PUT("/:entry_id", logisticsHandlers.UpdatePartnerEntryHandler())
		}

		users := v1.Group("/users")
		{
			users.POST("", registryHandlers.AddUserHandler())
			users.GET("", registryHandlers.ListUsersHandler())
			users.GET("/:user_id", registryHandlers.GetUserHandler())
			users.PUT("/:user_id", registryHandlers.UpdateUserHandler())
			users.POST("/:user_id/moderation", registryHandlers.ModerateHandler())
			users.POST("/:user_id/video-calls", registryHandlers.AddVideoCallHandler())
			users.POST("/:user_id/document-requests", registryHandlers.AddDocumentRequestHandler())
		}

		v1.POST("/payment-methods", registryHandlers.AddPaymentMethodHandler())
		v1.PUT("/payment-methods/:method_id", registryHandlers.UpdatePaymentMethodHandler())
		v1.POST("/verification", registryHandlers.RecordVerificationHandler())
		v1.GET("/verification", registryHandlers.VerificationLogHandler())

		enquiries := v1.Group("/enquiries")
		{
			enquiries.POST("", supportHandlers.AddEnquiryHandler())
			enquiries.GET("", supportHandlers.ListEnquiriesHandler())
			enquiries.PUT("/:enquiry_id", supportHandlers.UpdateEnquiryHandler())
		}

		disputes := v1.Group("/disputes")
		{
			disputes.POST("", supportHandlers.AddDisputeHandler())
			disputes.GET("", supportHandlers.ListDisputesHandler())
			disputes.PUT("/:dispute_id", supportHandlers.UpdateDisputeHandler())
		}

		activity := v1.Group("/activity")
		{
			activity.POST("", supportHandlers.RecordActivityHandler())
			activity.GET("", supportHandlers.ListActivityHandler())
		}

		minerals := v1.Group("/minerals")
		{
			minerals.POST("", catalogHandlers.AddMineralHandler())
			minerals.GET("", catalogHandlers.ListMineralsHandler())
			minerals.PUT("/:mineral_id", catalogHandlers.UpdateMineralHandler())
			minerals.DELETE("/:mineral_id", catalogHandlers.RemoveMineralHandler())
		}

		facilities := v1.Group("/facilities")
		{
			facilities.POST("", catalogHandlers.AddFacilityHandler())
			facilities.GET("", catalogHandlers.ListFacilitiesHandler())
			facilities.PUT("/:facility_id", catalogHandlers.UpdateFacilityHandler())
		}

		testing := v1.Group("/testing")
		{
			testing.POST("", catalogHandlers.AddTestingOrderHandler())
			testing.GET("", catalogHandlers.ListTestingOrdersHandler())
			testing.PUT("/:testing_id", catalogHandlers.UpdateTestingOrderHandler())
		}

		categories := v1.Group("/categories")
		{
			categories.POST("", catalogHandlers.AddCategoryHandler())
			categories.GET("", catalogHandlers.ListCategoriesHandler())
		}

		v1.GET("/dashboard/statistics", dashboardHandlers.StatisticsHandler())
	}
}
