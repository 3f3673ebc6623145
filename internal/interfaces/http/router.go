package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/oltiademi/hatom-invoice-task/internal/application/auth"
	"github.com/oltiademi/hatom-invoice-task/internal/application/billing"
	"github.com/oltiademi/hatom-invoice-task/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ClientUC  *billing.ClientUseCase
	ServiceUC *billing.ServiceUseCase
	InvoiceUC *billing.InvoiceUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	anyRole := []string{entity.RoleSuperadmin, entity.RoleAdmin, entity.RoleManager}

	// Users: login público, registro solo para usuarios ya autenticados.
	users := api.Group("/users")
	authHandler := NewAuthHandler(deps.AuthUC)
	users.Post("/login", authHandler.Login)
	users.Post("/register",
		AuthMiddleware(deps.JWTSecret),
		RequireRole(anyRole...),
		authHandler.Register,
	)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(anyRole...))

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/create", clientHandler.Create)
	clients.Get("/all", clientHandler.List)
	clients.Get("/findById/:businessId", clientHandler.GetByBusinessID)
	clients.Patch("/update/:businessId", clientHandler.Update)
	clients.Delete("/delete/:businessId", clientHandler.Delete)

	// Services (protegido)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Post("/create", serviceHandler.Create)
	services.Get("/all", serviceHandler.List)
	services.Get("/findById/:serviceId", serviceHandler.GetByID)
	services.Patch("/update/:serviceId", serviceHandler.Update)
	services.Delete("/delete/:serviceId", serviceHandler.Delete)

	// Invoices (protegido; crear restringido a superadmin/admin, borrar solo superadmin)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/create",
		RequireRole(entity.RoleSuperadmin, entity.RoleAdmin),
		invoiceHandler.Create,
	)
	invoices.Get("/all", invoiceHandler.List)
	invoices.Get("/findByNumber", invoiceHandler.GetByNumber)
	invoices.Patch("/update", invoiceHandler.Update)
	invoices.Delete("/delete",
		RequireRole(entity.RoleSuperadmin),
		invoiceHandler.Delete,
	)
}
