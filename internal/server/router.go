package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/educa-backend/internal/handlers"
	"github.com/yungbote/educa-backend/internal/middleware"
)

type RouterConfig struct {
	AllowOrigins   string
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	CatalogHandler *handlers.CatalogHandler
	CourseHandler  *handlers.CourseHandler
	ModuleHandler  *handlers.ModuleHandler
	ContentHandler *handlers.ContentHandler
	StudentHandler *handlers.StudentHandler
	ChatHandler    *handlers.ChatHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := []string{"http://localhost:3000"}
	if cfg.AllowOrigins != "" {
		origins = strings.Split(cfg.AllowOrigins, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	api := router.Group("/api")
	{
		api.GET("/subjects/", cfg.CatalogHandler.ListSubjects)
		api.GET("/subjects/:id/", cfg.CatalogHandler.GetSubject)
		api.GET("/courses/", cfg.CatalogHandler.ListCourses)
		api.GET("/courses/:id/", cfg.CatalogHandler.GetCourse)
	}

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	// Enrollment-gated course surface
	protected.POST("/api/courses/:id/enroll/", cfg.CourseHandler.Enroll)
	protected.GET("/api/courses/:id/contents/", cfg.CourseHandler.Contents)
	// Student
	protected.GET("/students/courses/", cfg.StudentHandler.ListCourses)
	// Owner-scoped management
	manage := protected.Group("/manage")
	{
		manage.GET("/courses/", cfg.CourseHandler.ListOwned)
		manage.POST("/courses/", cfg.CourseHandler.Create)
		manage.PUT("/courses/:id/", cfg.CourseHandler.Update)
		manage.DELETE("/courses/:id/", cfg.CourseHandler.Delete)
		manage.GET("/courses/:id/modules/", cfg.ModuleHandler.ListForCourse)
		manage.POST("/courses/:id/modules/", cfg.ModuleHandler.Create)
		manage.PUT("/modules/:id/", cfg.ModuleHandler.Update)
		manage.DELETE("/modules/:id/", cfg.ModuleHandler.Delete)
		manage.POST("/module-order/", cfg.ModuleHandler.Reorder)
		manage.POST("/modules/:id/contents/", cfg.ContentHandler.Create)
		manage.PUT("/contents/:id/", cfg.ContentHandler.UpdateItem)
		manage.DELETE("/contents/:id/", cfg.ContentHandler.Delete)
		manage.POST("/content-order/", cfg.ContentHandler.Reorder)
	}
	// Chat
	protected.GET("/ws/chat/room/:courseID/", cfg.ChatHandler.Room)

	return router
}
