package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/config"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/handler"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/middleware"
	"github.com/sangkips/servicecenter-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Customer     *handler.CustomerHandler
	Service      *handler.ServiceHandler
	Invoice      *handler.InvoiceHandler
	Stock        *handler.StockHandler
	ProductPrice *handler.ProductPriceHandler
	Dashboard    *handler.DashboardHandler
	Receipt      *handler.ReceiptHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

var (
	ownerOnly = []enum.StaffRole{enum.StaffRoleOwner}
	managers  = []enum.StaffRole{enum.StaffRoleOwner, enum.StaffRoleAdmin}
	billers   = []enum.StaffRole{enum.StaffRoleOwner, enum.StaffRoleAdmin, enum.StaffRoleInvoiceBiller}
)

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
		BurstSize:         deps.Cfg.RateLimit.Burst,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("/auth")
		public.Use(rateLimiter.Middleware())
		registerAuthRoutes(public, h)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())
		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(auth *gin.RouterGroup, h *Handlers) {
	auth.GET("/setup", h.Auth.SetupStatus)
	auth.POST("/setup", h.Auth.Setup)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/logout", h.Auth.Logout)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(deps.IdempotencyRepo)

	protected.GET("/auth/me", h.Auth.Me)

	staff := protected.Group("/staff", middleware.RequireRole(ownerOnly...))
	{
		staff.GET("", h.Auth.ListStaff)
		staff.POST("", h.Auth.RegisterStaff)
	}

	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", middleware.RequireRole(managers...), h.Customer.Create)
		customers.PUT("/:id", middleware.RequireRole(managers...), h.Customer.Update)
		customers.POST("/import", middleware.RequireRole(managers...), h.Customer.Import)
	}

	services := protected.Group("/services")
	{
		services.GET("", h.Service.List)
		services.GET("/:id", h.Service.Get)
		services.POST("", middleware.RequireRole(managers...), idempotent, h.Service.Create)
		services.PUT("/:id", middleware.RequireRole(managers...), h.Service.Update)
	}

	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.POST("", middleware.RequireRole(billers...), idempotent, h.Invoice.Create)
		invoices.POST("/:id/send", middleware.RequireRole(billers...), h.Invoice.Send)
		invoices.POST("/:id/payment", middleware.RequireRole(billers...), h.Invoice.MarkPaid)
		invoices.GET("/:id/receipt", h.Receipt.Get)
		invoices.POST("/:id/print", middleware.RequireRole(billers...), h.Receipt.Print)
	}

	stock := protected.Group("/stock")
	{
		stock.GET("", h.Stock.List)
		stock.GET("/:id", h.Stock.Get)
		stock.POST("", middleware.RequireRole(managers...), h.Stock.Create)
		stock.PUT("/:id", middleware.RequireRole(managers...), h.Stock.Update)
		stock.DELETE("/:id", middleware.RequireRole(ownerOnly...), h.Stock.Delete)
	}

	prices := protected.Group("/product-prices")
	{
		prices.GET("", h.ProductPrice.List)
		prices.GET("/:id", h.ProductPrice.Get)
		prices.POST("", middleware.RequireRole(managers...), h.ProductPrice.Create)
		prices.PUT("/:id", middleware.RequireRole(managers...), h.ProductPrice.Update)
		prices.DELETE("/:id", middleware.RequireRole(ownerOnly...), h.ProductPrice.Delete)
	}

	protected.GET("/printer/status", h.Receipt.PrinterStatus)
	protected.GET("/dashboard/stats", middleware.RequireRole(managers...), h.Dashboard.GetStats)
	protected.POST("/reminders/run", middleware.RequireRole(managers...), h.Dashboard.RunReminders)
}
