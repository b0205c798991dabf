package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/yungbote/educa-backend/internal/app"
	"github.com/yungbote/educa-backend/internal/cache"
	"github.com/yungbote/educa-backend/internal/chat"
	"github.com/yungbote/educa-backend/internal/db"
	"github.com/yungbote/educa-backend/internal/handlers"
	"github.com/yungbote/educa-backend/internal/logger"
	"github.com/yungbote/educa-backend/internal/middleware"
	"github.com/yungbote/educa-backend/internal/repos"
	"github.com/yungbote/educa-backend/internal/server"
	"github.com/yungbote/educa-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	cfg := app.LoadConfig(log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Catalog cache (optional; nil cache means every read hits postgres)
	catalogCache, err := cache.NewCatalogCache(log, cfg.CatalogCacheTTL)
	if err != nil {
		log.Warn("Catalog cache init failed, continuing without it", "error", err)
		catalogCache = nil
	}
	if catalogCache != nil {
		defer catalogCache.Close()
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	subjectRepo := repos.NewSubjectRepo(thePG, log)
	courseRepo := repos.NewCourseRepo(thePG, log)
	moduleRepo := repos.NewModuleRepo(thePG, log)
	contentRepo := repos.NewContentRepo(thePG, log)
	itemRepo := repos.NewItemRepo(thePG, log)
	enrollmentRepo := repos.NewEnrollmentRepo(thePG, log)

	// Chat hub
	log.Info("Setting up chat hub now...")
	chatHub := chat.NewHub(log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(thePG, log, userRepo)
	catalogService := services.NewCatalogService(thePG, log, subjectRepo, courseRepo, catalogCache)
	courseService := services.NewCourseService(thePG, log, courseRepo, subjectRepo, moduleRepo, contentRepo, itemRepo, enrollmentRepo, catalogService)
	moduleService := services.NewModuleService(thePG, log, courseRepo, moduleRepo, contentRepo, itemRepo, catalogService)
	contentService := services.NewContentService(thePG, log, courseRepo, moduleRepo, contentRepo, itemRepo)
	studentService := services.NewStudentService(thePG, log, courseRepo, enrollmentRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(log, catalogService)
	courseHandler := handlers.NewCourseHandler(log, courseService, studentService)
	moduleHandler := handlers.NewModuleHandler(moduleService)
	contentHandler := handlers.NewContentHandler(contentService)
	studentHandler := handlers.NewStudentHandler(studentService)
	chatHandler := handlers.NewChatHandler(log, chatHub, studentService, cfg.ChatRequireEnrollment)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AllowOrigins:   cfg.AllowOrigins,
		AuthHandler:    authHandler,
		AuthMiddleware: authMiddleware,
		UserHandler:    userHandler,
		CatalogHandler: catalogHandler,
		CourseHandler:  courseHandler,
		ModuleHandler:  moduleHandler,
		ContentHandler: contentHandler,
		StudentHandler: studentHandler,
		ChatHandler:    chatHandler,
	})

	fmt.Printf("Server listening on :%s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
