package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"founderflow/internal/authz"
	"founderflow/internal/config"
	"founderflow/internal/database"
	"founderflow/internal/handlers"
	"founderflow/internal/jobs"
	"founderflow/internal/llm"
	"founderflow/internal/logging"
	"founderflow/internal/middleware"
	"founderflow/internal/services"
	"founderflow/pkg/auth"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting FounderFlow Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s)", cfg.Port)

	// MongoDB is the system of record and required to start
	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGODB_URI environment variable is required")
	}
	log.Println("🔗 Connecting to MongoDB...")
	mongoDB, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(context.Background())

	if err := mongoDB.Initialize(context.Background()); err != nil {
		log.Fatalf("❌ Failed to initialize database indexes: %v", err)
	}
	log.Println("✅ MongoDB connected successfully")

	// Redis backs the daily generation quota; the server runs without it
	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		log.Println("🔗 Connecting to Redis...")
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Failed to connect to Redis: %v (generation quotas disabled)", err)
			redisService = nil
		}
	} else {
		log.Println("⚠️ REDIS_URL not set - generation quotas disabled")
	}
	if redisService != nil {
		defer redisService.Close()
	}

	// Auth plumbing
	jwtAuth, err := auth.NewJWTAuth(cfg.JWTSecret, 0, 0)
	if err != nil {
		log.Fatalf("❌ Failed to initialize JWT auth: %v", err)
	}

	adminSessions, err := auth.NewAdminSessions(cfg.AdminSessionSecret)
	if err != nil {
		log.Fatalf("❌ Failed to initialize admin sessions: %v", err)
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Println("⚠️ ADMIN_USERNAME / ADMIN_PASSWORD not set - admin surface disabled")
	}

	// Generation client: ordered model list from models.yaml, hot-reloaded
	models, err := config.LoadModels(cfg.ModelsFile)
	if err != nil {
		log.Fatalf("❌ Failed to load model list from %s: %v", cfg.ModelsFile, err)
	}
	log.Printf("📦 Loaded %d models from %s", len(models), cfg.ModelsFile)

	provider := llm.NewHTTPProvider(cfg.ProviderBaseURL, cfg.ProviderAPIKey)
	llmClient := llm.NewClient(provider, models)

	go config.WatchModels(cfg.ModelsFile, func(updated []string) {
		llmClient.SetModels(updated)
		log.Printf("🔄 Model priority list reloaded (%d models)", len(updated))
	})

	// Services
	userService := services.NewUserService(mongoDB)
	membershipService := services.NewMembershipService(mongoDB)
	startupService := services.NewStartupService(mongoDB, membershipService)
	memoryService := services.NewMemoryService(mongoDB)
	generationService := services.NewGenerationService(mongoDB, llmClient, startupService, memoryService, cfg.MaxRetriesPerModel)
	log.Println("✅ Services initialized")

	// Access gateway for startup-scoped routes
	verifier := authz.VerifierFunc(func(token string) (string, error) {
		user, err := jwtAuth.VerifyAccessToken(token)
		if err != nil {
			return "", err
		}
		return user.ID, nil
	})
	gateway := authz.NewGateway(verifier, services.NewAuthzStore(startupService, membershipService))

	generationLimiter := middleware.NewGenerationLimiter(redisService, cfg.GenerationDailyLimit)

	// Background jobs
	scheduler, err := jobs.NewScheduler()
	if err != nil {
		log.Fatalf("❌ Failed to create job scheduler: %v", err)
	}
	retention := jobs.NewRetentionCleanup(generationService, cfg.GenerationRetentionDays)
	if err := scheduler.Daily("retention-cleanup", 2, retention.Run); err != nil {
		log.Fatalf("❌ Failed to register retention job: %v", err)
	}
	scheduler.Start()

	// Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "FounderFlow v1.0",
		ReadTimeout:  900 * time.Second, // generation requests can sit on slow models
		WriteTimeout: 900 * time.Second,
		IdleTimeout:  900 * time.Second,
		BodyLimit:    5 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	prometheus := fiberprometheus.New("founderflow")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	rateLimitConfig := middleware.LoadRateLimitConfig()
	log.Printf("🛡️  [RATE-LIMIT] Loaded config: Global=%d/min, AuthAttempts=%d/15min",
		rateLimitConfig.GlobalAPIMax, rateLimitConfig.AuthAttemptMax)

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173,http://localhost:3000"
		log.Println("⚠️  ALLOWED_ORIGINS not set, using development defaults")
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: allowedOrigins != "*",
	}))

	app.Use("/api", middleware.GlobalAPIRateLimiter(rateLimitConfig))

	// Handlers
	healthHandler := handlers.NewHealthHandler(mongoDB, redisService)
	authHandler := handlers.NewAuthHandler(jwtAuth, userService)
	startupHandler := handlers.NewStartupHandler(gateway, startupService, membershipService)
	memoryHandler := handlers.NewMemoryHandler(gateway, memoryService)
	generationHandler := handlers.NewGenerationHandler(gateway, generationService, generationLimiter)
	adminHandler := handlers.NewAdminHandler(cfg, adminSessions, userService, startupService, memoryService, generationService)

	requireAuth := middleware.AuthMiddleware(jwtAuth)
	requireAdmin := middleware.AdminSessionMiddleware(adminSessions)
	authAttempts := middleware.AuthAttemptRateLimiter(rateLimitConfig)

	// Routes
	app.Get("/health", healthHandler.Health)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authAttempts, authHandler.Register)
	authGroup.Post("/login", authAttempts, authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.GetCurrentUser)

	// Startup-scoped routes resolve access through the gateway inside the
	// handler; only creation and listing use the auth middleware.
	startups := api.Group("/startups")
	startups.Post("/", requireAuth, startupHandler.Create)
	startups.Get("/", requireAuth, startupHandler.List)
	startups.Get("/:id", startupHandler.Get)
	startups.Put("/:id/stage", startupHandler.UpdateStage)
	startups.Post("/:id/members", startupHandler.AddMember)
	startups.Get("/:id/members", startupHandler.ListMembers)
	startups.Post("/:id/memory", memoryHandler.Append)
	startups.Get("/:id/memory", memoryHandler.List)
	startups.Post("/:id/generate/:kind", generationHandler.Generate)
	startups.Get("/:id/generations", generationHandler.List)
	startups.Get("/:id/pitch-deck/html", generationHandler.PitchDeckHTML)

	admin := api.Group("/admin")
	admin.Post("/login", authAttempts, adminHandler.Login)
	admin.Post("/logout", adminHandler.Logout)
	admin.Get("/session", adminHandler.Session)
	admin.Get("/stats", requireAdmin, adminHandler.Stats)
	admin.Delete("/startups/:id/memory", requireAdmin, adminHandler.PurgeMemory)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if err := scheduler.Stop(); err != nil {
			log.Printf("⚠️ Error stopping scheduler: %v", err)
		}

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
