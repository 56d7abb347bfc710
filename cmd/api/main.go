package main

import (
	"log"
	"os"

	_ "forestry-backend/api/swagger" // swagger docs
	"forestry-backend/internal/database"
	"forestry-backend/internal/handler"
	"forestry-backend/internal/middleware"
	"forestry-backend/internal/model"
	"forestry-backend/internal/repository"
	"forestry-backend/internal/service"
	"forestry-backend/internal/websocket"
	"forestry-backend/internal/workflow"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Forestry Reporting API
// @version         1.0
// @description     Multi-tenant forestry reporting and approval workflow API.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "forestry")
	dbSslMode := getEnv("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	if err := database.SeedSystemRoles(db); err != nil {
		log.Fatalf("Failed to seed system roles: %v", err)
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Workflow core: every report type registered once at startup
	registry := workflow.NewRegistry()
	model.RegisterReportEntities(registry)
	engine := workflow.NewEngine(db)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo)
	auditService := service.NewAuditService(auditRepo)
	statisticsService := service.NewStatisticsService(db)
	workflowService := service.NewWorkflowService(registry, engine, txManager, auditRepo, wsHub)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditHandler(auditService)
	statisticsHandler := handler.NewStatisticsHandler(statisticsService)
	workflowHandler := handler.NewWorkflowHandler(workflowService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))
	statisticsHandler.RegisterRoutes(router.Group(""))
	workflowHandler.RegisterRoutes(router.Group(""))
	mountReportRoutes(router, db)

	port := getEnv("PORT", "8080")

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// mountReportRoutes wires the CRUD surface for every registered report type.
// Route names must match the workflow registry names in RegisterReportEntities.
func mountReportRoutes(router *gin.Engine, db *gorm.DB) {
	mountReport[model.TimberProductionReport](router, db, "timber")
	mountReport[model.ForestProductReport](router, db, "forest-product")
	mountReport[model.ForestFireReport](router, db, "fire")
	mountReport[model.ReforestationReport](router, db, "reforestation")
	mountReport[model.TourismVisitReport](router, db, "tourism")
	mountReport[model.TransactionValueReport](router, db, "transaction")
}

func mountReport[T any, PT model.ReportPtr[T]](router *gin.Engine, db *gorm.DB, name string) {
	repo := repository.NewReportRepository[T](db)
	svc := service.NewReportService[T, PT](repo)
	handler.NewReportHandler[T, PT](name, svc).RegisterRoutes(router.Group(""))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
