package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/uniem/uniem-api/internal/config"
	"github.com/uniem/uniem-api/internal/constants"
	"github.com/uniem/uniem-api/internal/database"
	"github.com/uniem/uniem-api/internal/handlers"
	"github.com/uniem/uniem-api/internal/logger"
	"github.com/uniem/uniem-api/internal/middleware"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/repository"
	"github.com/uniem/uniem-api/internal/scheduler"
	"github.com/uniem/uniem-api/internal/services"
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

	// Keep the rank column in step with map-based points updates. Struct saves
	// are already covered by the User hook, so a failed registration only
	// narrows the guarantee instead of blocking startup.
	if err := database.RegisterRankSync(database.GetDB()); err != nil {
		logger.Warning("rank sync plugin not registered: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,                        // Redis pool size
		"tcp",                     // network type
		redisAddr,                 // Redis address from config
		"",                        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	rankingRepo := repository.NewRankingRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	logRepo := repository.NewLogRepository(db)

	// Services
	authService := services.NewAuthService(userRepo, logRepo)
	gamificationService := services.NewGamificationService(userRepo, taskRepo)
	activityService := services.NewActivityService(userRepo)
	rankingService := services.NewRankingService(leaderboardRepo, rankingRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(gamificationService, taskRepo)
	noteHandler := handlers.NewNoteHandler(gamificationService)
	communityHandler := handlers.NewCommunityHandler(gamificationService)
	userHandler := handlers.NewUserHandler(gamificationService)
	rankingHandler := handlers.NewRankingHandler(rankingService)

	// Background jobs
	if cfg.CronEnabled {
		sched := scheduler.New(activityService, rankingService, logRepo)
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "UNIEM API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Everything below requires a session and counts toward activity.
		protected := api.Group("")
		protected.Use(middleware.RequireAuth(), middleware.TrackActivity(activityService))
		{
			tasks := protected.Group("/tasks")
			{
				tasks.GET("", taskHandler.ListTasks)
				tasks.POST("", middleware.RequireRole(models.RoleAdmin), taskHandler.CreateTask)
				tasks.GET("/progress/:userId", taskHandler.GetUserProgress)
			}

			notes := protected.Group("/notes")
			{
				notes.GET("", noteHandler.ListNotes)
				notes.POST("", noteHandler.CreateNote)
				notes.GET("/:id", noteHandler.GetNote)
				notes.POST("/:id/rate", noteHandler.RateNote)
				notes.DELETE("/:id", noteHandler.DeleteNote)
			}

			community := protected.Group("/community")
			{
				community.GET("", communityHandler.ListItems)
				community.POST("", communityHandler.CreateItem)
				community.GET("/:id", communityHandler.GetItem)
				community.POST("/:id/comments", communityHandler.WriteComment)
				community.POST("/:id/like", communityHandler.ToggleLike)
				community.DELETE("/:id", communityHandler.DeleteItem)
			}

			users := protected.Group("/users")
			{
				users.GET("/:id", userHandler.GetProfile)
				users.POST("/:id/thanks", userHandler.Thanks)
				users.POST("/:id/follow", userHandler.Follow)
				users.DELETE("/:id/follow", userHandler.Unfollow)
			}

			rankings := protected.Group("/rankings")
			{
				rankings.GET("/:period", rankingHandler.GetLeaderboards)
				rankings.GET("/:period/snapshots", rankingHandler.ListSnapshots)
				rankings.POST("/:period/snapshots", middleware.RequireRole(models.RoleAdmin), rankingHandler.PublishSnapshot)
			}
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
