package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/database"
	auth_handlers "github.com/deptweb/site-api/handlers/auth"
	content_handlers "github.com/deptweb/site-api/handlers/content"
	faculty_handlers "github.com/deptweb/site-api/handlers/faculty"
	health_handlers "github.com/deptweb/site-api/handlers/health"
	navigation_handlers "github.com/deptweb/site-api/handlers/navigation"
	news_handlers "github.com/deptweb/site-api/handlers/news"
	teaching_handlers "github.com/deptweb/site-api/handlers/teaching"
	upload_handlers "github.com/deptweb/site-api/handlers/upload"
	"github.com/deptweb/site-api/services/spaces"
	"github.com/deptweb/site-api/utils/auth"
	"github.com/deptweb/site-api/utils/cache"
	"github.com/deptweb/site-api/utils/middleware"
)

// SetupRoutes wires middleware and all route groups. Mutating routes
// sit behind admin auth; reads stay public.
func SetupRoutes(app *fiber.App, store database.Storage, gormStore *database.GORMStore, redisCache *cache.RedisCache, spacesClient *spaces.Client) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "site-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	db := gormStore.GetDB()

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	blacklistService := auth.NewBlacklistService(db)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, blacklistService, bruteForceProtection)
	newsHandler := news_handlers.NewNewsHandler(store)
	facultyHandler := faculty_handlers.NewFacultyHandler(store)
	teachingHandler := teaching_handlers.NewTeachingHandler(store)
	contentHandler := content_handlers.NewContentHandler(store)
	navigationHandler := navigation_handlers.NewNavigationHandler(store, redisCache, navigation_handlers.DefaultFallback())
	uploadHandler := upload_handlers.NewUploadHandler(spacesClient)
	healthHandler := health_handlers.NewHealthHandler(store, gormStore, redisCache)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,
		RateLimitWindow:   1 * time.Minute,
	})

	// Health endpoints (public)
	app.Get("/ping", healthHandler.Ping)
	app.Get("/health", healthHandler.Health)

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes
	authGroup := api.Group("/auth")
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Get("/me", authMiddleware.Required(), authHandler.Me)
	authGroup.Post("/change-password", authMiddleware.Required(), authHandler.ChangePassword)

	// News routes
	news := api.Group("/news")
	news.Get("/", newsHandler.ListNews)
	news.Get("/slug/:slug", newsHandler.GetNewsBySlug)
	news.Get("/:id", newsHandler.GetNews)
	news.Post("/:id/view", newsHandler.IncrementViewCount)
	news.Post("/", authMiddleware.RequireAdmin(), newsHandler.CreateNews)
	news.Put("/:id", authMiddleware.RequireAdmin(), newsHandler.UpdateNews)
	news.Delete("/:id", authMiddleware.RequireAdmin(), newsHandler.DeleteNews)

	// Faculty routes
	faculty := api.Group("/faculty")
	faculty.Get("/", facultyHandler.ListFaculty)
	faculty.Get("/:id", facultyHandler.GetFaculty)
	faculty.Post("/", authMiddleware.RequireAdmin(), facultyHandler.CreateFaculty)
	faculty.Put("/:id", authMiddleware.RequireAdmin(), facultyHandler.UpdateFaculty)
	faculty.Delete("/:id", authMiddleware.RequireAdmin(), facultyHandler.DeleteFaculty)

	// Course routes
	courses := api.Group("/courses")
	courses.Get("/", teachingHandler.ListCourses)
	courses.Get("/:id", teachingHandler.GetCourse)
	courses.Post("/", authMiddleware.RequireAdmin(), teachingHandler.CreateCourse)
	courses.Put("/:id", authMiddleware.RequireAdmin(), teachingHandler.UpdateCourse)
	courses.Delete("/:id", authMiddleware.RequireAdmin(), teachingHandler.DeleteCourse)

	// Laboratory routes
	laboratories := api.Group("/laboratories")
	laboratories.Get("/", teachingHandler.ListLaboratories)
	laboratories.Get("/:id", teachingHandler.GetLaboratory)
	laboratories.Post("/", authMiddleware.RequireAdmin(), teachingHandler.CreateLaboratory)
	laboratories.Put("/:id", authMiddleware.RequireAdmin(), teachingHandler.UpdateLaboratory)
	laboratories.Delete("/:id", authMiddleware.RequireAdmin(), teachingHandler.DeleteLaboratory)

	// Resource routes
	resources := api.Group("/resources")
	resources.Get("/", teachingHandler.ListResources)
	resources.Get("/:id", teachingHandler.GetResource)
	resources.Post("/", authMiddleware.RequireAdmin(), teachingHandler.CreateResource)
	resources.Put("/:id", authMiddleware.RequireAdmin(), teachingHandler.UpdateResource)
	resources.Delete("/:id", authMiddleware.RequireAdmin(), teachingHandler.DeleteResource)

	// Page content routes (addressed by slug)
	content := api.Group("/content")
	content.Get("/", contentHandler.ListContent)
	content.Get("/:slug", contentHandler.GetContent)
	content.Put("/:slug", authMiddleware.RequireAdmin(), contentHandler.UpsertContent)
	content.Delete("/:slug", authMiddleware.RequireAdmin(), contentHandler.DeleteContent)

	// Admin list views: same list handlers, with the
	// includeUnpublished/includeHidden query flags honored
	admin := api.Group("/admin")
	admin.Get("/news", authMiddleware.RequireAdmin(), newsHandler.ListNews)
	admin.Get("/faculty", authMiddleware.RequireAdmin(), facultyHandler.ListFaculty)
	admin.Get("/courses", authMiddleware.RequireAdmin(), teachingHandler.ListCourses)
	admin.Get("/laboratories", authMiddleware.RequireAdmin(), teachingHandler.ListLaboratories)
	admin.Get("/resources", authMiddleware.RequireAdmin(), teachingHandler.ListResources)

	// Navigation: public tree, admin CRUD on the flat rows
	api.Get("/navigation", navigationHandler.GetTree)

	adminNav := api.Group("/admin/navigation", authMiddleware.RequireAdmin())
	adminNav.Get("/", navigationHandler.ListItems)
	adminNav.Get("/:id", navigationHandler.GetItem)
	adminNav.Post("/", navigationHandler.CreateItem)
	adminNav.Put("/:id", navigationHandler.UpdateItem)
	adminNav.Delete("/:id", navigationHandler.DeleteItem)

	// Uploads (admin only)
	adminUploads := api.Group("/admin/uploads", authMiddleware.RequireAdmin())
	adminUploads.Post("/", uploadHandler.Upload)
	adminUploads.Get("/presign/*", uploadHandler.Presign)
	adminUploads.Delete("/*", uploadHandler.Delete)
}
