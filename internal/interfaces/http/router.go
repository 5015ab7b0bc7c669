package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/facturas-api/internal/application/analytics"
	"github.com/tu-usuario/facturas-api/internal/application/auth"
	"github.com/tu-usuario/facturas-api/internal/application/billing"
	"github.com/tu-usuario/facturas-api/internal/application/users"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	CustomerUC  *billing.CustomerUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PDFUC       *billing.PDFUseCase
	ProfileUC   *users.ProfileUseCase
	AnalyticsUC *analytics.SummaryUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil del usuario
	userHandler := NewUserHandler(deps.ProfileUC)
	protected.Get("/users/me", userHandler.Me)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Patch("/:id", customerHandler.Patch)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Get("/:id/invoices", customerHandler.ListInvoices)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Patch("/:id", invoiceHandler.Patch)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/increment", invoiceHandler.Increment)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Analítica
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	protected.Get("/analytics/summary", analyticsHandler.Summary)
}
