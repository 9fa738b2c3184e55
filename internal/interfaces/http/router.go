package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/tapiceria-pro/internal/application/auth"
	"github.com/tu-usuario/tapiceria-pro/internal/application/usecase"
	"github.com/tu-usuario/tapiceria-pro/internal/application/workshop"
	"github.com/tu-usuario/tapiceria-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Orchestrator *workshop.CompletionOrchestrator
	Dashboard    *workshop.DashboardUseCase
	AllocationUC *workshop.AllocationUseCase
	StatusUC     *usecase.InvoiceStatusUseCase
	CustomerUC   *usecase.CustomerUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
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

	// Catálogo de estados (cualquier rol autenticado)
	statusHandler := NewStatusHandler(deps.StatusUC)
	protected.Get("/invoice-statuses", statusHandler.List)

	// Clientes (cualquier rol autenticado)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Órdenes y flujo de cierre (admin y taller; ventas solo lee)
	workshopHandler := NewWorkshopHandler(deps.Orchestrator, deps.Dashboard)
	orders := protected.Group("/orders")
	orders.Get("/", workshopHandler.ListOrders)
	orders.Get("/:orderType/:id", workshopHandler.GetOrder)
	orders.Post("/:orderType/:id/completion",
		RequireRole(entity.RoleAdmin, entity.RoleTaller),
		workshopHandler.StartCompletion)

	// Distribución mensual (edición independiente, admin y taller)
	allocationHandler := NewAllocationHandler(deps.AllocationUC)
	orders.Get("/:orderType/:id/allocation", allocationHandler.GetAllocation)
	orders.Put("/:orderType/:id/allocation",
		RequireRole(entity.RoleAdmin, entity.RoleTaller),
		allocationHandler.UpdateAllocation)

	// Sesiones de cierre (admin y taller)
	sessions := protected.Group("/completion-sessions",
		RequireRole(entity.RoleAdmin, entity.RoleTaller))
	sessions.Get("/:sessionId", workshopHandler.GetSession)
	sessions.Post("/:sessionId/remediate", workshopHandler.ApplyRemediation)
	sessions.Patch("/:sessionId/percentage", workshopHandler.SetPercentage)
	sessions.Post("/:sessionId/confirm", workshopHandler.Confirm)
	sessions.Post("/:sessionId/cancel-confirmation", workshopHandler.CancelConfirmation)
	sessions.Post("/:sessionId/commit", workshopHandler.Commit)
	sessions.Post("/:sessionId/pending", workshopHandler.CommitPending)
	sessions.Delete("/:sessionId", workshopHandler.Abandon)
}
