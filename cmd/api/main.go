package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sokha/pos-api/internal/application/auth"
	"github.com/sokha/pos-api/internal/application/inventory"
	"github.com/sokha/pos-api/internal/application/reporting"
	"github.com/sokha/pos-api/internal/application/usecase"
	"github.com/sokha/pos-api/internal/infrastructure/payway"
	"github.com/sokha/pos-api/internal/infrastructure/postgres"
	"github.com/sokha/pos-api/internal/infrastructure/telegram"
	httpRouter "github.com/sokha/pos-api/internal/interfaces/http"
	"github.com/sokha/pos-api/pkg/config"
	"github.com/sokha/pos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	staffRepo := postgres.NewStaffRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	currencyRepo := postgres.NewCurrencyRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	reportingRepo := postgres.NewReportingRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	engine := inventory.NewInventoryUseCase(txRunner, productRepo, warehouseRepo, log)
	authUC := auth.NewAuthUseCase(staffRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, reportingRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	settingsUC := usecase.NewSettingsUseCase(currencyRepo)
	reportingUC := reporting.NewReportingUseCase(
		reportingRepo, saleRepo,
		cfg.Inventory.LowStockThreshold, cfg.Inventory.ExpiryHorizonDays,
	)

	paywayClient := payway.NewClient(cfg.PayWay)
	telegramNotifier := telegram.NewNotifier(cfg.Telegram, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		SettingsUC:  settingsUC,
		Engine:      engine,
		ReportingUC: reportingUC,
		PayWay:      paywayClient,
		Telegram:    telegramNotifier,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
