package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"bizledger/internal/config"
	"bizledger/internal/database"
	apperrors "bizledger/internal/errors"
	"bizledger/internal/handlers"
	"bizledger/internal/logger"
	"bizledger/internal/middleware"
	"bizledger/internal/report"
	"bizledger/internal/services"
	"bizledger/internal/validator"

	_ "bizledger/internal/docs" // Import swagger docs
)

// @title           Bizledger API
// @version         1.0
// @description     Bizledger is a small-business ledger service: ownership-scoped transactions, sales, purchases, categories and branches, with file import and CSV export.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	branchService := services.NewBranchService(db)
	transactionService := services.NewTransactionService(db, "transactions", apperrors.ErrTransactionNotFound)
	salesService := services.NewTransactionService(db, "sales_transactions", apperrors.ErrSalesTransactionNotFound)
	purchaseService := services.NewTransactionService(db, "purchase_transactions", apperrors.ErrPurchaseTransactionNotFound)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	branchHandler := handlers.NewBranchHandler(branchService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Identity-provider webhook, outside the per-user scope
	v1.POST("/users", userHandler.SyncUser)

	// Every other route is scoped to the owner named in the path.
	owner := v1.Group("/:email")
	owner.Use(middleware.GatewayAuth(appConfig.GatewayJWTSecret))
	owner.Use(middleware.Identity(userService))

	// Category routes
	categories := owner.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.POST("", categoryHandler.CreateCategory)
	categories.PATCH("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)
	categories.POST("/bulk-delete", categoryHandler.BulkDeleteCategories)

	// Branch routes
	branches := owner.Group("/branches")
	branches.GET("", branchHandler.ListBranches)
	branches.GET("/:id", branchHandler.GetBranchByID)
	branches.POST("", branchHandler.CreateBranch)
	branches.PATCH("/:id", branchHandler.UpdateBranch)
	branches.DELETE("/:id", branchHandler.DeleteBranch)
	branches.POST("/bulk-delete", branchHandler.BulkDeleteBranches)

	// The three transaction families share one route shape.
	families := []struct {
		path     string
		resource string
		service  services.TransactionServicer
	}{
		{"/transactions", "Transaction", transactionService},
		{"/sales-transactions", "Sales Transaction", salesService},
		{"/purchase-transactions", "Purchase Transaction", purchaseService},
	}
	for _, f := range families {
		txHandler := handlers.NewTransactionHandler(f.service, f.resource)
		importHandler := handlers.NewImportHandler(f.service, branchService)
		reportHandler := handlers.NewReportHandler(report.NewGenerator(f.service), f.path[1:]+".csv")

		g := owner.Group(f.path)
		g.GET("", txHandler.ListTransactions)
		g.GET("/:id", txHandler.GetTransactionByID)
		g.POST("", txHandler.CreateTransaction)
		g.POST("/bulk-create", txHandler.BulkCreateTransactions)
		g.PATCH("/:id", txHandler.UpdateTransaction)
		g.DELETE("/:id", txHandler.DeleteTransaction)
		g.POST("/bulk-delete", txHandler.BulkDeleteTransactions)
		g.POST("/import", importHandler.ImportTransactions)
		g.GET("/summary", reportHandler.Summary)
		g.GET("/export", reportHandler.Export)
	}

	log.Infof("Starting Bizledger backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
