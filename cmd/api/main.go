package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/restroworks/restropos-api/internal/application/service"
	"github.com/restroworks/restropos-api/internal/config"
	"github.com/restroworks/restropos-api/internal/infrastructure/database"
	"github.com/restroworks/restropos-api/internal/infrastructure/repository"
	"github.com/restroworks/restropos-api/internal/logging"
	"github.com/restroworks/restropos-api/internal/presentation/http/handler"
	"github.com/restroworks/restropos-api/internal/presentation/http/routes"
	"github.com/restroworks/restropos-api/internal/presentation/ws"
	"github.com/restroworks/restropos-api/pkg/printer"
	"github.com/restroworks/restropos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	if cfg.Log.FilePath != "" {
		logCfg.FilePath = cfg.Log.FilePath
	}
	logger := logging.New(logCfg)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		logger.Warn().Err(err).Msg("failed to seed default data")
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	outletRepo := repository.NewOutletRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	tableRepo := repository.NewTableRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	taxRateRepo := repository.NewTaxRateRepository(db)
	billRepo := repository.NewBillRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printers
	kotPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.KOTType,
		cfg.Printer.KOTUSBPath,
		cfg.Printer.KOTAddress,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize KOT printer")
		kotPrinter = printer.NewNullPrinter()
	}
	billPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.BillType,
		cfg.Printer.BillUSBPath,
		cfg.Printer.BillAddress,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to initialize bill printer")
		billPrinter = printer.NewNullPrinter()
	}

	// WebSocket hub for table view push
	hub := ws.NewHub(logger)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	outletService := service.NewOutletService(outletRepo, settingsRepo, departmentRepo, cfg.Billing)
	taxRateService := service.NewTaxRateService(taxRateRepo, logger)
	customerService := service.NewCustomerService(customerRepo)
	menuService := service.NewMenuService(menuRepo)
	tableService := service.NewTableService(tableRepo, billRepo, outletService, logger)
	printerService := service.NewPrinterService(
		kotPrinter, billPrinter,
		cfg.Printer.KOTType, cfg.Printer.BillType,
		cfg.Printer.PaperWidth,
		cfg.Billing.UPIVPA,
		logger,
	)
	billingService := service.NewBillingService(
		billRepo, tableRepo, customerRepo,
		taxRateService, outletService, printerService,
		hub, logger,
	)
	tableMonitor := service.NewTableMonitor(tableService, outletRepo, hub, cfg.Billing.TablePollInterval, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Bill:     handler.NewBillHandler(billingService),
		Table:    handler.NewTableHandler(tableService, outletService),
		Customer: handler.NewCustomerHandler(customerService),
		Menu:     handler.NewMenuHandler(menuService),
		Outlet:   handler.NewOutletHandler(outletService, taxRateService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Hub:             hub,
		Logger:          logger,
	})

	// Background workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	go tableMonitor.Run(ctx)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info().
			Str("service", cfg.App.Name).
			Str("env", cfg.App.Env).
			Str("port", port).
			Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}

	_ = kotPrinter.Close()
	_ = billPrinter.Close()
	logger.Info().Msg("server stopped")
}
