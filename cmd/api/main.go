package main

import (
	_ "backoffice/api/swagger" // swagger docs
	"backoffice/internal/database"
	"backoffice/internal/handler"
	"backoffice/internal/middleware"
	"backoffice/internal/model"
	"backoffice/internal/permission"
	"backoffice/internal/service"
	"backoffice/internal/store"
	"backoffice/internal/websocket"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Case-Tracking Back-Office API
// @version         1.0
// @description     Administrative API for the case-tracking system: roles, users, permissions, themes and data maintenance.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	// Relational mirror is optional: when DB_HOST is unset the service runs
	// file-only and reports the mirror as unavailable.
	var db *gorm.DB
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		dbPort := os.Getenv("DB_PORT")
		dbUser := os.Getenv("DB_USER")
		dbPassword := os.Getenv("DB_PASSWORD")
		dbName := os.Getenv("DB_NAME")
		dbSslMode := os.Getenv("DB_SSLMODE")

		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "postgres"
		}
		if dbSslMode == "" {
			dbSslMode = "disable"
		}

		dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

		conn, err := database.NewConnection(dsn)
		if err != nil {
			log.Printf("Relational mirror unavailable: %v", err)
		} else {
			log.Println("Connected to PostgreSQL mirror.")
			db = conn
		}
	} else {
		log.Println("DB_HOST not set; relational mirror disabled.")
	}

	// Collections
	roles := store.NewCollection[model.Role](dataDir, store.CollectionRoles)
	users := store.NewCollection[model.User](dataDir, store.CollectionUsers)
	limitations := store.NewCollection[model.Limitation](dataDir, store.CollectionLimitations)
	themes := store.NewCollection[model.Theme](dataDir, store.CollectionThemes)
	cases := store.NewCollection[model.Case](dataDir, store.CollectionCases)
	indictments := store.NewCollection[model.Indictment](dataDir, store.CollectionIndictments)
	auditEntries := store.NewCollection[model.AuditEntry](dataDir, store.CollectionAudit)

	// Permission engine feeds the middleware; grants are resolved per request
	engine := permission.NewEngine(roles)
	middleware.InitPermissionMiddleware(engine)

	// Set up WebSocket Hub (admin event feed)
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Services
	auditService := service.NewAuditService(auditEntries, wsHub)
	roleService := service.NewRoleService(roles, users, engine, auditService)
	userService := service.NewUserService(users, roles, engine, auditService)
	limitationService := service.NewLimitationService(limitations, auditService)
	themeService := service.NewThemeService(themes, auditService)
	caseService := service.NewCaseService(cases, indictments)
	maintenanceService := service.NewMaintenanceService(cases, users, auditService)

	var mirror *store.Mirror
	if db != nil {
		mirror = store.NewMirror(db, dataDir)
	}
	syncService := service.NewSyncService(mirror, dataDir, auditService)

	if err := roleService.SeedDefaultRoles(); err != nil {
		log.Fatalf("Failed to seed default roles: %v", err)
	}

	// Handlers
	roleHandler := handler.NewRoleHandler(roleService)
	userHandler := handler.NewUserHandler(userService)
	limitationHandler := handler.NewLimitationHandler(limitationService)
	themeHandler := handler.NewThemeHandler(themeService)
	caseHandler := handler.NewCaseHandler(caseService)
	maintenanceHandler := handler.NewMaintenanceHandler(maintenanceService)
	syncHandler := handler.NewSyncHandler(syncService)
	auditHandler := handler.NewAuditHandler(auditService)

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

	// WebSocket endpoint — requires admin:view on the token's role
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret(), func(roleID string) bool {
			return engine.IsGranted(roleID, permission.ModuleAdmin, permission.ActionView)
		})
	})

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""))
	roleHandler.RegisterRoutes(router.Group(""))
	limitationHandler.RegisterRoutes(router.Group(""))
	themeHandler.RegisterRoutes(router.Group(""))
	caseHandler.RegisterRoutes(router.Group(""))
	maintenanceHandler.RegisterRoutes(router.Group(""))
	syncHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
