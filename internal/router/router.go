package router

import (
	"time"

	"github.com/Vaibhav-12521/Invento/internal/config"
	"github.com/Vaibhav-12521/Invento/internal/handler"
	"github.com/Vaibhav-12521/Invento/internal/middleware"
	"github.com/Vaibhav-12521/Invento/internal/repository"
	"github.com/Vaibhav-12521/Invento/internal/service"
	"github.com/Vaibhav-12521/Invento/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo, saleRepo)
	saleSvc := service.NewSaleService(saleRepo, productRepo, dispatcher)
	reportSvc := service.NewReportService(reportRepo, productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	salesH := handler.NewSalesHandler(saleSvc, saleRepo, cfg.PDFStoragePath)
	reportsH := handler.NewReportsHandler(reportSvc, rdb)
	catalogH := handler.NewCatalogHandler(productSvc, saleSvc, productRepo, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Read-only projections for external consumers — no side effects
	api := r.Group("/api")
	{
		api.GET("/products", catalogH.ListProducts)
		api.GET("/products/:id/availability", catalogH.GetAvailability)
		api.GET("/sales/:id", catalogH.GetSale)
	}

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.PATCH("/:id/stock", productsH.AdjustStock)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.GetByID)
			sales.POST("", salesH.RecordSale)
			sales.DELETE("/:id", salesH.Delete)
			sales.GET("/:id/receipt", salesH.Receipt)
		}

		reports := v1.Group("/reports")
		{
			reports.GET("/dashboard", reportsH.Dashboard)
			reports.GET("/sales", reportsH.Windowed)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
