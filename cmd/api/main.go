package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafeteria-api/internal/application/fulfillment"
	"github.com/jhoicas/cafeteria-api/internal/infrastructure/notify"
	"github.com/jhoicas/cafeteria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/cafeteria-api/internal/interfaces/http"
	"github.com/jhoicas/cafeteria-api/pkg/config"
	"github.com/jhoicas/cafeteria-api/pkg/logger"
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

	orderRepo := postgres.NewOrderRepository(pool)
	menuRepo := postgres.NewMenuItemRepository(pool)
	invRepo := postgres.NewInventoryItemRepository(pool)
	alertRepo := postgres.NewInventoryAlertRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	notifier := notify.NewLogNotifier(log)

	serviceFeePct, err := decimal.NewFromString(cfg.Fees.ServiceFeePct)
	if err != nil {
		log.Fatal().Err(err).Msg("FEES_SERVICE_PCT inválido")
	}
	commissionPct, err := decimal.NewFromString(cfg.Fees.CommissionPct)
	if err != nil {
		log.Fatal().Err(err).Msg("FEES_COMMISSION_PCT inválido")
	}

	orchestrator := fulfillment.NewOrchestrator(txRunner, orderRepo, menuRepo, notifier)
	restockUC := fulfillment.NewRestockUseCase(txRunner, invRepo, notifier)
	alertUC := fulfillment.NewAlertUseCase(alertRepo, invRepo, notifier)
	expiryUC := fulfillment.NewExpirySweepUseCase(
		invRepo, alertRepo, notifier,
		time.Duration(cfg.Stock.ExpiryWarnDays)*24*time.Hour,
	)
	queryUC := fulfillment.NewQueryUseCase(orderRepo, menuRepo, invRepo, serviceFeePct, commissionPct)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Cafeteria API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Orchestrator: orchestrator,
		Restock:      restockUC,
		Alerts:       alertUC,
		Expiry:       expiryUC,
		Queries:      queryUC,
		JWTSecret:    cfg.JWT.Secret,
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
