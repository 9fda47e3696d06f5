package router

import (
	"budget-tracker/internal/config"
	"budget-tracker/internal/handler"
	"budget-tracker/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and registers all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	// the web UI is served from a different origin
	origins := cfg.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
	}))

	pageSize := cfg.App.PageSize

	categoryHandler := handler.NewCategoryHandler(db, pageSize)
	r.POST("/categories", categoryHandler.CreateCategory)
	r.GET("/categories", categoryHandler.ListCategories)
	r.PUT("/categories/:id", categoryHandler.UpdateCategory)
	r.DELETE("/categories/:id", categoryHandler.DeleteCategory)

	transactionHandler := handler.NewTransactionHandler(db, pageSize)
	r.POST("/transactions", transactionHandler.CreateTransaction)
	r.GET("/transactions", transactionHandler.ListTransactions)
	r.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
	r.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	summaryHandler := handler.NewSummaryHandler(db)
	r.GET("/summary", summaryHandler.GetSummary)

	exportHandler := handler.NewExportHandler(db)
	r.GET("/export/csv", exportHandler.ExportCSV)
	r.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
