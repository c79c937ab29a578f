package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/restroworks/restropos-api/internal/config"
	"github.com/restroworks/restropos-api/internal/domain/entity"
	domainRepo "github.com/restroworks/restropos-api/internal/domain/repository"
	"github.com/restroworks/restropos-api/internal/presentation/http/handler"
	"github.com/restroworks/restropos-api/internal/presentation/http/middleware"
	"github.com/restroworks/restropos-api/internal/presentation/ws"
	"github.com/restroworks/restropos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Bill     *handler.BillHandler
	Table    *handler.TableHandler
	Customer *handler.CustomerHandler
	Menu     *handler.MenuHandler
	Outlet   *handler.OutletHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Hub             *ws.Hub
	Logger          zerolog.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
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
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-outlet rate limiter
		rateLimiter := middleware.NewOutletRateLimiter(middleware.RateLimiterConfig{
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

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	// Table view
	tables := protected.Group("/tables")
	{
		tables.GET("", h.Table.List)
		tables.POST("", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Table.Create)
		tables.PUT("/:id", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Table.Update)
		tables.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Table.Delete)
		tables.PUT("/:id/status", h.Table.UpdateStatus)
	}
	protected.GET("/table-departments", h.Table.ListDepartments)

	// Menu
	menu := protected.Group("/menu")
	{
		menu.GET("", h.Menu.List)
		menu.GET("/:code", h.Menu.GetByCode)
		menu.POST("", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Menu.Create)
		menu.PUT("/:id", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Menu.Update)
		menu.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin), h.Menu.Delete)
	}

	// Customers
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/mobile/:mobile", h.Customer.GetByMobile)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Customer.Delete)
	}

	// Bills / KOTs
	bills := protected.Group("/bills")
	{
		// A double-tapped save button must not create two orders
		bills.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Bill.Save)
		bills.GET("", h.Bill.List)
		bills.GET("/kots/saved", h.Bill.ListSavedKOTs)
		bills.GET("/table/:table_id/status", h.Bill.TableStatus)
		bills.GET("/:id", h.Bill.Get)
		bills.POST("/:id/print", h.Bill.Print)
		bills.POST("/:id/settle", h.Bill.Settle)
		bills.POST("/:id/reverse-kot", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Bill.ReverseKOT)
		bills.GET("/:id/upi-qr", h.Bill.UPIQR)
	}

	// Outlet, settings and tax master
	protected.GET("/outlet", h.Outlet.Get)
	protected.GET("/settings", h.Outlet.GetSettings)
	protected.PUT("/settings", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Outlet.UpdateSettings)
	protected.GET("/tax-rates", h.Outlet.ListTaxRates)
	protected.PUT("/tax-rates", middleware.RequireRole(entity.RoleAdmin), h.Outlet.UpsertTaxRate)

	// Printers
	protected.GET("/printers/status", h.Printer.Status)
	protected.POST("/printers/test", middleware.RequireRole(entity.RoleAdmin, entity.RoleManager), h.Printer.Test)

	// Table view push channel
	protected.GET("/ws/tables", deps.Hub.HandleConnection)
}
