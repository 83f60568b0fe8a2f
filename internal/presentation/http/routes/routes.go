package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinehub-api/internal/config"
	domainRepo "github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/internal/presentation/http/handler"
	"github.com/sangkips/dinehub-api/internal/presentation/http/middleware"
	"github.com/sangkips/dinehub-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Order       *handler.OrderHandler
	Invoice     *handler.InvoiceHandler
	Payment     *handler.PaymentHandler
	Shift       *handler.ShiftHandler
	Void        *handler.VoidHandler
	Inventory   *handler.InventoryHandler
	Table       *handler.TableHandler
	Reservation *handler.ReservationHandler
	Dish        *handler.DishHandler
	Customer    *handler.CustomerHandler
	Audit       *handler.AuditHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Orders
	registerOrderRoutes(protected, h, deps)

	// Invoices
	registerInvoiceRoutes(protected, h, deps)

	// Shifts
	registerShiftRoutes(protected, h)

	// Void requests
	registerVoidRoutes(protected, h)

	// Inventory
	registerInventoryRoutes(protected, h)

	// Tables and reservations
	registerTableRoutes(protected, h)

	// Menu
	registerDishRoutes(protected, h)

	// Customers
	registerCustomerRoutes(protected, h)

	// Audit trail
	registerAuditRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	orders.Use(middleware.RequirePermission("manage-orders"))
	{
		orders.GET("", h.Order.List)
		// Order creation uses idempotency middleware to prevent duplicates
		orders.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.PUT("/:id", h.Order.Update)
		orders.POST("/:id/cancel", h.Order.Cancel)
		orders.PUT("/:id/lines/:line_id/status", h.Order.UpdateLineStatus)
		orders.POST("/:id/lines/:line_id/void", h.Order.VoidItem)
		orders.GET("/:id/movements", h.Inventory.ListMovements)
	}
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	invoices := protected.Group("/invoices")
	invoices.Use(middleware.RequirePermission("manage-payments"))
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/export/csv", h.Invoice.ExportCSV)
		invoices.GET("/export/xlsx", h.Invoice.ExportXLSX)
		invoices.POST("/merge", h.Invoice.Merge)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.GET("/:id/print", h.Invoice.Print)
		invoices.GET("/:id/payments", h.Payment.ListByInvoice)
		invoices.POST("/:id/split/items", h.Invoice.SplitByItems)
		invoices.POST("/:id/split/people", h.Invoice.SplitByPeople)
		// Settlement uses idempotency middleware to prevent double charges
		invoices.POST("/:id/pay", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Payment.Pay)
	}
}

func registerShiftRoutes(protected *gin.RouterGroup, h *Handlers) {
	shifts := protected.Group("/shifts")
	shifts.Use(middleware.RequirePermission("manage-shifts"))
	{
		shifts.GET("", h.Shift.List)
		shifts.POST("", h.Shift.Open)
		shifts.GET("/active", h.Shift.GetActive)
		shifts.POST("/:id/close", h.Shift.Close)
		shifts.GET("/:id/zreport", h.Shift.GetZReport)
		shifts.GET("/:id/zreport/export", h.Shift.ExportZReport)
	}
}

func registerVoidRoutes(protected *gin.RouterGroup, h *Handlers) {
	voids := protected.Group("/voids")
	{
		voids.GET("", h.Void.List)
		voids.POST("", middleware.RequirePermission("manage-orders"), h.Void.Create)
		voids.POST("/:id/approve", middleware.RequirePermission("approve-voids"), h.Void.Approve)
		voids.POST("/:id/reject", middleware.RequirePermission("approve-voids"), h.Void.Reject)
	}
}

func registerInventoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	materials := protected.Group("/materials")
	materials.Use(middleware.RequirePermission("manage-inventory"))
	{
		materials.GET("", h.Inventory.ListMaterials)
		materials.POST("", h.Inventory.CreateMaterial)
		materials.PUT("/:id", h.Inventory.UpdateMaterial)
		materials.POST("/:id/stock", h.Inventory.AddStock)
	}
}

func registerTableRoutes(protected *gin.RouterGroup, h *Handlers) {
	tables := protected.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.GET("/:id", h.Table.Get)
		tables.POST("", middleware.RequirePermission("manage-tables"), h.Table.Create)
		tables.PUT("/:id", middleware.RequirePermission("manage-tables"), h.Table.Update)
		tables.PUT("/:id/status", middleware.RequirePermission("manage-tables"), h.Table.UpdateStatus)
		tables.DELETE("/:id", middleware.RequirePermission("manage-tables"), h.Table.Delete)
		tables.POST("/:id/reservations", middleware.RequirePermission("manage-tables"), h.Reservation.Create)
	}

	reservations := protected.Group("/reservations")
	reservations.Use(middleware.RequirePermission("manage-tables"))
	{
		reservations.GET("", h.Reservation.List)
		reservations.POST("/:id/cancel", h.Reservation.Cancel)
	}
}

func registerDishRoutes(protected *gin.RouterGroup, h *Handlers) {
	dishes := protected.Group("/dishes")
	{
		dishes.GET("", h.Dish.List)
		dishes.GET("/:id", h.Dish.Get)
		dishes.POST("", middleware.RequirePermission("manage-menu"), h.Dish.Create)
		dishes.PUT("/:id", middleware.RequirePermission("manage-menu"), h.Dish.Update)
		dishes.DELETE("/:id", middleware.RequirePermission("manage-menu"), h.Dish.Delete)
		dishes.POST("/:id/recipe", middleware.RequirePermission("manage-menu"), h.Dish.AddRecipeLine)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission("manage-customers"))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.GET("/:id/history", h.Customer.History)
	}
}

func registerAuditRoutes(protected *gin.RouterGroup, h *Handlers) {
	audit := protected.Group("/audit")
	audit.Use(middleware.RequirePermission("view-reports"))
	{
		audit.GET("", h.Audit.List)
	}
}
