package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/aftermeet-app/aftermeet/pkg/validator"

	"github.com/aftermeet-app/aftermeet/internal/adapter/handler"
	"github.com/aftermeet-app/aftermeet/internal/adapter/repository"
	"github.com/aftermeet-app/aftermeet/internal/infrastructure/cache"
	"github.com/aftermeet-app/aftermeet/internal/infrastructure/database"
	"github.com/aftermeet-app/aftermeet/internal/infrastructure/email"
	httpmw "github.com/aftermeet-app/aftermeet/internal/infrastructure/http/middleware"
	"github.com/aftermeet-app/aftermeet/internal/infrastructure/storage"
	"github.com/aftermeet-app/aftermeet/internal/usecase/auth"
	"github.com/aftermeet-app/aftermeet/internal/usecase/meeting"
	"github.com/aftermeet-app/aftermeet/internal/usecase/task"
	pkgai "github.com/aftermeet-app/aftermeet/pkg/ai"
	"github.com/aftermeet-app/aftermeet/pkg/config"
	"github.com/aftermeet-app/aftermeet/pkg/jwt"
	"github.com/aftermeet-app/aftermeet/pkg/otp"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Schema is managed with sql-migrate; applying on boot is opt-in for
	// development setups.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production. Run migrations via cmd/migrate instead.")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping boot-time migrations; use sql-migrate in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisStore, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisStore.Close()

	// Initialize MinIO
	log.Println("🪣 Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize JWT manager
	log.Println("🔑 Initializing JWT manager...")
	jwtManager := jwt.NewManager(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize auth service (OTP email login)
	log.Println("🔐 Initializing auth service...")
	otpGen := otp.NewGenerator(nil, cfg.OTP.CodeLength)
	smtpSender := email.NewSMTPSender(cfg.SMTP)
	authService := auth.NewService(userRepo, redisStore, otpGen, jwtManager, smtpSender, cfg.OTP, logger)

	// Initialize AI client and meeting service
	log.Println("🤖 Initializing AI components...")
	aiClient := pkgai.NewClient(&cfg.AI)
	meetingService := meeting.NewService(meetingRepo, transcriptRepo, summaryRepo, minioClient, aiClient, redisStore, logger)

	// Initialize task service
	taskService := task.NewService(taskRepo, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	authHandler := handler.NewAuth(authService, logger)
	meetingHandler := handler.NewMeeting(meetingService, logger)
	taskHandler := handler.NewTask(taskService, logger)
	webhookHandler := handler.NewWebhook(meetingService, cfg.AI.WebhookSecret, logger)
	authMiddleware := httpmw.NewAuthMiddleware(authService)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, authMiddleware, authHandler, meetingHandler, taskHandler, webhookHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Failed to shutdown server gracefully: %v", err)
	}
	log.Println("✅ Server stopped")
}
