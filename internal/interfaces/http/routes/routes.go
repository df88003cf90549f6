// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/autoshop-backend/internal/config"
	"github.com/your-org/autoshop-backend/internal/interfaces/http/handlers"
	"github.com/your-org/autoshop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group. Reads are open to any
// authenticated or anonymous caller; mutations require a token so the ledger
// can attribute them.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupPartRoutes(rg, db, cfg)
	SetupInventoryRoutes(rg, db, cfg)
	SetupPurchaseOrderRoutes(rg, db, cfg)
	SetupSupplierRoutes(rg, db, cfg)
}

// SetupPartRoutes sets up part catalog and stock query routes
func SetupPartRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	partHandler := handlers.NewPartHandler(db, cfg)
	inventoryHandler := handlers.NewInventoryHandler(db, cfg)

	parts := rg.Group("/parts")
	parts.Use(middleware.OptionalAuth(cfg))
	{
		parts.GET("", partHandler.GetParts)
		parts.GET("/check-stock", partHandler.CheckStock)
		parts.GET("/reorder-suggestions", partHandler.GetReorderSuggestions)
		parts.GET("/:id", partHandler.GetPart)
	}

	protected := rg.Group("/parts")
	protected.Use(middleware.Auth(cfg))
	{
		protected.POST("", partHandler.CreatePart)
		protected.POST("/:id/adjust-stock", inventoryHandler.AdjustStock)
	}
}

// SetupInventoryRoutes sets up inventory ledger routes
func SetupInventoryRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	inventoryHandler := handlers.NewInventoryHandler(db, cfg)

	inventory := rg.Group("/inventory")
	inventory.Use(middleware.OptionalAuth(cfg))
	{
		inventory.GET("/transactions", inventoryHandler.ListTransactions)
		inventory.GET("/transactions/summary", inventoryHandler.SummarizeTransactions)
	}

	protected := rg.Group("/inventory")
	protected.Use(middleware.Auth(cfg))
	{
		protected.POST("/transactions", inventoryHandler.RecordTransaction)
	}
}

// SetupPurchaseOrderRoutes sets up purchase order routes
func SetupPurchaseOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	poHandler := handlers.NewPurchaseOrderHandler(db, cfg)

	orders := rg.Group("/purchase-orders")
	orders.Use(middleware.OptionalAuth(cfg))
	{
		orders.GET("", poHandler.GetPurchaseOrders)
		orders.GET("/:id", poHandler.GetPurchaseOrder)
	}

	protected := rg.Group("/purchase-orders")
	protected.Use(middleware.Auth(cfg))
	{
		protected.POST("", poHandler.CreatePurchaseOrder)
		protected.POST("/:id/status", poHandler.UpdateStatus)
		protected.POST("/:id/receive", poHandler.Receive)
	}
}

// SetupSupplierRoutes sets up supplier routes
func SetupSupplierRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	supplierHandler := handlers.NewSupplierHandler(db, cfg)

	suppliers := rg.Group("/suppliers")
	suppliers.Use(middleware.OptionalAuth(cfg))
	{
		suppliers.GET("", supplierHandler.GetSuppliers)
		suppliers.GET("/:id", supplierHandler.GetSupplier)
	}

	protected := rg.Group("/suppliers")
	protected.Use(middleware.Auth(cfg))
	{
		protected.POST("", supplierHandler.CreateSupplier)
	}
}
