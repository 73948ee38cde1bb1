package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	cookieStore "github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/skawamoto/campusboard/internal/config"
	"github.com/skawamoto/campusboard/internal/constants"
	"github.com/skawamoto/campusboard/internal/database"
	apierrors "github.com/skawamoto/campusboard/internal/errors"
	"github.com/skawamoto/campusboard/internal/handlers"
	"github.com/skawamoto/campusboard/internal/middleware"
	"github.com/skawamoto/campusboard/internal/repository"
	"github.com/skawamoto/campusboard/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB(), cfg.DBDriver); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*.html")

	// Setup session middleware
	store, err := sessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	authService := services.NewAuthService(userRepo)
	todoService := services.NewTodoService(taskRepo)
	directoryService := services.NewDirectoryService(profileRepo)

	// Resolve the signed-in identity on every request
	r.Use(middleware.WithIdentity(authService))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)
	directoryHandler := handlers.NewDirectoryHandler(directoryService)

	r.NoRoute(func(c *gin.Context) {
		apierrors.NotFoundPage(c, "Page not found")
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "campusboard is running",
		})
	})

	// Auth routes
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/signup", authHandler.ShowSignup)
	r.POST("/signup", authHandler.Signup)

	// Directory routes
	r.GET("/", directoryHandler.Index)
	r.GET("/add", directoryHandler.ShowAdd)
	r.POST("/add", directoryHandler.Add)
	r.GET("/delete", directoryHandler.ShowDelete)
	r.POST("/delete/:id", directoryHandler.Delete)
	r.GET("/find", directoryHandler.Find)

	// To-do routes
	r.GET("/todo", todoHandler.Show)
	r.POST("/todo", todoHandler.Save)
	r.POST("/todo/:id/delete", todoHandler.Delete)

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func sessionStore(cfg *config.Config) (sessions.Store, error) {
	isProduction := cfg.GinMode == "release"
	options := sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	}

	if cfg.SessionStore == "redis" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		store, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			return nil, err
		}
		store.Options(options)
		return store, nil
	}

	store := cookieStore.NewStore([]byte(cfg.SessionSecret))
	store.Options(options)
	return store, nil
}
