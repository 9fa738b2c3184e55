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
	"github.com/tu-usuario/tapiceria-pro/internal/application/auth"
	"github.com/tu-usuario/tapiceria-pro/internal/application/finance"
	"github.com/tu-usuario/tapiceria-pro/internal/application/usecase"
	"github.com/tu-usuario/tapiceria-pro/internal/application/workshop"
	infraemail "github.com/tu-usuario/tapiceria-pro/internal/infrastructure/email"
	"github.com/tu-usuario/tapiceria-pro/internal/infrastructure/mongodb"
	infrapdf "github.com/tu-usuario/tapiceria-pro/internal/infrastructure/pdf"
	httpRouter "github.com/tu-usuario/tapiceria-pro/internal/interfaces/http"
	"github.com/tu-usuario/tapiceria-pro/pkg/config"
	"github.com/tu-usuario/tapiceria-pro/pkg/logger"
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
	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	orderRepo := mongodb.NewOrderRepository(db)
	statusRepo := mongodb.NewInvoiceStatusRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)
	materialRepo := mongodb.NewMaterialCompanyRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	txRunner := mongodb.NewCompletionTxRunner(client, db)

	params := finance.Params{
		TasaIVA:           decimal.NewFromFloat(cfg.Taller.TasaIVA),
		RecargoTarjetaPct: decimal.NewFromFloat(cfg.Taller.RecargoTarjetaPct),
	}

	emailSender := infraemail.NewGomailSender(cfg.SMTP, cfg.Taller.URLResenas)
	pdfGenerator := infrapdf.NewMarotoSummaryGenerator(cfg.SMTP.FromName)

	orchestrator := workshop.NewCompletionOrchestrator(
		orderRepo, statusRepo, customerRepo, materialRepo,
		txRunner, emailSender, pdfGenerator,
		params, log,
	)
	dashboardUC := workshop.NewDashboardUseCase(orderRepo, statusRepo, materialRepo, params)
	allocationUC := workshop.NewAllocationUseCase(orderRepo, materialRepo, params)
	statusUC := usecase.NewInvoiceStatusUseCase(statusRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Tapicería Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Orchestrator: orchestrator,
		Dashboard:    dashboardUC,
		AllocationUC: allocationUC,
		StatusUC:     statusUC,
		CustomerUC:   customerUC,
		AuthUC:       authUC,
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
