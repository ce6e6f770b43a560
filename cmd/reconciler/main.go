package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	. "github.com/DrGermanius/Reconciler/internal"
	"github.com/DrGermanius/Reconciler/internal/retry"
)

func main() {
	//decimals at json as numbers
	//https://github.com/shopspring/decimal/issues/21
	decimal.MarshalJSONWithoutQuotes = true

	z, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer z.Sync() //nolint:errcheck
	sugaredLogger := z.Sugar()

	cfg, err := NewConfig()
	if err != nil {
		sugaredLogger.Fatal(err)
	}

	repository, err := NewRepository(cfg.DatabaseURI, sugaredLogger)
	if err != nil {
		sugaredLogger.Fatal(err)
	}
	defer repository.Close()

	if !cfg.IsAccountingConfigured() {
		sugaredLogger.Warn("accounting integration is not configured, orders will not be booked")
	}
	if !cfg.IsWarehouseConfigured() {
		sugaredLogger.Warn("warehouse integration is not configured, orders will not be shipped")
	}

	clock := NewSystemClock()
	downstream := Downstream{
		Accounting: NewAccountingService(cfg.Accounting.URL, cfg.Accounting.APIKey, cfg.Accounting.Timeout, sugaredLogger),
		Warehouse:  NewWarehouseService(cfg.Warehouse.URL, cfg.Warehouse.APIKey, cfg.Warehouse.Timeout, sugaredLogger),
		Probe:      cfg.Capabilities,
	}
	audit := NewAuditLog(repository, sugaredLogger, clock, cfg.Audit.MaxPayloadBytes)
	engine := retry.New(cfg.RetryPolicy())

	service := NewService(repository, downstream, engine, audit, clock, sugaredLogger)
	handlers := NewHandlers(service, sugaredLogger)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	handlers.Register(app, cfg.AdminSecret)

	go func() {
		if err := app.Listen(cfg.RunAddress); err != nil {
			sugaredLogger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugaredLogger.Info("Shutting down service...")

	if err = app.Shutdown(); err != nil {
		sugaredLogger.Errorf("Shutdown error: %s", err.Error())
	}
}
