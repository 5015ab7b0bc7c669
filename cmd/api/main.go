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
	appanalytics "github.com/tu-usuario/facturas-api/internal/application/analytics"
	"github.com/tu-usuario/facturas-api/internal/application/auth"
	"github.com/tu-usuario/facturas-api/internal/application/billing"
	"github.com/tu-usuario/facturas-api/internal/application/users"
	infrapdf "github.com/tu-usuario/facturas-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/facturas-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/facturas-api/internal/interfaces/http"
	"github.com/tu-usuario/facturas-api/pkg/config"
	"github.com/tu-usuario/facturas-api/pkg/logger"
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

	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	customerUC := billing.NewCustomerUseCase(customerRepo, invoiceRepo, userRepo, txRunner)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, customerRepo, userRepo, log.Zerolog())

	// PDF: representación gráfica de la factura
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, customerRepo, userRepo, pdfGenerator)

	profileUC := users.NewProfileUseCase(userRepo, customerRepo, invoiceRepo)
	analyticsUC := appanalytics.NewSummaryUseCase(analyticsRepo)

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
		Title:    "Facturas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		InvoiceUC:   invoiceUC,
		PDFUC:       pdfUC,
		ProfileUC:   profileUC,
		AnalyticsUC: analyticsUC,
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

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor HTTP")
	}
	log.Info().Msg("servidor detenido")
}
