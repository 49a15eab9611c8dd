package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/config"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/presentation/http/handler"
	"github.com/sangkips/stockdesk/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Session  *handler.SessionHandler
	Product  *handler.ProductHandler
	Purchase *handler.PurchaseHandler
	Sale     *handler.SaleHandler
	Damage   *handler.DamageHandler
	Expense  *handler.ExpenseHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	Logger          *zap.Logger
	Sessions        middleware.SessionResolver
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Busy is the indicator shared by the services; /health reports it.
	Busy *listing.Busy
	// Ctx bounds background work such as the rate limiter sweep.
	Ctx context.Context
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "ok",
			"service":   deps.Cfg.App.Name,
			"busy":      deps.Busy.Active(),
			"in_flight": deps.Busy.Count(),
		})
	})

	ctx := deps.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	v1 := router.Group("/api/v1")
	{
		// Public routes
		registerSessionRoutes(v1, h)

		// Protected routes (cached session required)
		protected := v1.Group("")
		protected.Use(middleware.SessionMiddleware(deps.Sessions))

		rateLimiter := middleware.NewBusinessRateLimiter(ctx, middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerSessionRoutes(rg *gin.RouterGroup, h *Handlers) {
	session := rg.Group("/session")
	{
		session.POST("", h.Session.Open)
		session.DELETE("", h.Session.Close)
	}
}

func registerProtectedRoutes(rg *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo:   deps.IdempotencyRepo,
		Logger: deps.Logger,
	})

	products := rg.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/options", h.Product.Options)
		products.GET("/:id", h.Product.Get)
	}

	purchases := rg.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", idempotent, h.Purchase.Create)
		purchases.POST("/draft", h.Purchase.Draft)
		purchases.GET("/:id", h.Purchase.Get)
		purchases.GET("/:id/invoice", h.Purchase.Invoice)
	}

	sales := rg.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotent, h.Sale.Create)
		sales.POST("/draft", h.Sale.Draft)
		sales.GET("/:id", h.Sale.Get)
		sales.GET("/:id/invoice", h.Sale.Invoice)
		sales.GET("/:id/return", h.Sale.Return)
		sales.POST("/:id/print", h.Sale.Print)
	}

	damages := rg.Group("/damages")
	{
		damages.GET("", h.Damage.List)
		damages.POST("", idempotent, h.Damage.Create)
		damages.POST("/draft", h.Damage.Draft)
		damages.GET("/:id", h.Damage.Get)
	}

	rg.GET("/expenses", h.Expense.List)
	expenseTypes := rg.Group("/expense-types")
	{
		expenseTypes.GET("", h.Expense.ListTypes)
		expenseTypes.POST("", h.Expense.SaveType)
		expenseTypes.DELETE("/:id", h.Expense.DeleteType)
	}

	reports := rg.Group("/reports")
	{
		reports.GET("/business", h.Report.Business)
		reports.GET("/business/print", h.Report.BusinessPrint)
		reports.GET("/low-stock", h.Product.LowStock)
		reports.GET("/receivables", h.Report.Receivables)
		reports.GET("/payables", h.Report.Payables)
	}

	printer := rg.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}
