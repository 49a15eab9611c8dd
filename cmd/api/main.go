package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/config"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/internal/infrastructure/database"
	"github.com/sangkips/stockdesk/internal/infrastructure/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/session"
	"github.com/sangkips/stockdesk/internal/presentation/http/handler"
	"github.com/sangkips/stockdesk/internal/presentation/http/routes"
	"github.com/sangkips/stockdesk/pkg/amountwords"
	"github.com/sangkips/stockdesk/pkg/logger"
	"github.com/sangkips/stockdesk/pkg/printer"
	"go.uber.org/zap"
)

const purgeInterval = 10 * time.Minute

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(logger.Config{
		Development: cfg.App.IsDevelopment(),
		Level:       cfg.Log.Level,
		Encoding:    cfg.Log.Encoding,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, idempotencyRepo, err := openStores(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to open session store", zap.String("driver", cfg.Session.Driver), zap.Error(err))
	}
	session.StartJanitor(ctx, "sessions", sessions, purgeInterval, zl)
	session.StartJanitor(ctx, "idempotency", idempotencyRepo, purgeInterval, zl)

	sessionService := service.NewSessionService(sessions, cfg.Session.TTL, zl)

	client, err := backend.NewClient(backend.Config{
		BaseURL:     cfg.Backend.BaseURL,
		Timeout:     cfg.Backend.Timeout,
		LegacyVerbs: cfg.Backend.LegacyVerbs,
	}, backend.WithLogger(zl.Named("backend")), backend.OnUnauthorized(sessionService.Teardown))
	if err != nil {
		zl.Fatal("invalid backend configuration", zap.Error(err))
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(client)
	purchaseRepo := repository.NewPurchaseRepository(client)
	saleRepo := repository.NewSaleRepository(client)
	damageRepo := repository.NewDamageRepository(client)
	expenseRepo := repository.NewExpenseRepository(client)
	reportRepo := repository.NewReportRepository(client)

	// Initialize printer
	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.Target())
	if err != nil {
		zl.Warn("failed to initialize printer", zap.Error(err))
		thermalPrinter = printer.NewNullPrinter()
	}
	layout, err := printer.ParseLayout(cfg.Printer.Width)
	if err != nil {
		zl.Warn("invalid printer width, using 58mm", zap.Error(err))
		layout = printer.Layout58mm
	}
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.Type, layout, service.StoreInfo{
		Name:     cfg.Store.Name,
		Address:  cfg.Store.Address,
		Phone:    cfg.Store.Phone,
		Currency: amountwords.Currency{Major: cfg.Store.Currency, Minor: cfg.Store.Fraction},
	}, zl)

	// Initialize services
	busy := &listing.Busy{}
	productService := service.NewProductService(productRepo, busy, zl)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, printerService, busy, zl)
	saleService := service.NewSaleService(saleRepo, productRepo, printerService, busy, zl)
	damageService := service.NewDamageService(damageRepo, productRepo, busy, zl)
	expenseService := service.NewExpenseService(expenseRepo, busy, zl)
	reportService := service.NewReportService(reportRepo, printerService, busy, zl)

	handlers := &routes.Handlers{
		Session:  handler.NewSessionHandler(sessionService),
		Product:  handler.NewProductHandler(productService),
		Purchase: handler.NewPurchaseHandler(purchaseService),
		Sale:     handler.NewSaleHandler(saleService),
		Damage:   handler.NewDamageHandler(damageService),
		Expense:  handler.NewExpenseHandler(expenseService),
		Report:   handler.NewReportHandler(reportService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		Logger:          zl,
		Sessions:        sessionService,
		IdempotencyRepo: idempotencyRepo,
		Busy:            busy,
		Ctx:             ctx,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("starting server",
			zap.String("name", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
			zap.String("backend", cfg.Backend.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStores picks the session and idempotency stores for the configured driver.
func openStores(ctx context.Context, cfg *config.Config, zl *zap.Logger) (domainRepo.SessionRepository, domainRepo.IdempotencyRepository, error) {
	switch cfg.Session.Driver {
	case "redis":
		client, err := session.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedisStore(client), repository.NewRedisIdempotencyRepository(client), nil
	case "postgres":
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, zl)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db, zl); err != nil {
			return nil, nil, err
		}
		return session.NewPostgresStore(db), repository.NewIdempotencyRepository(db), nil
	default:
		return session.NewMemoryStore(), repository.NewMemoryIdempotencyRepository(), nil
	}
}
