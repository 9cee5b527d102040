package app

import (
	"context"
	"fmt"
	"time"

	"brandlink_backend/internal/auth"
	"brandlink_backend/internal/config"
	"brandlink_backend/internal/email"
	"brandlink_backend/internal/handlers"
	"brandlink_backend/internal/logger"
	"brandlink_backend/internal/middleware"
	"brandlink_backend/internal/models"
	"brandlink_backend/internal/payments"
	"brandlink_backend/internal/repositories"
	"brandlink_backend/internal/routes"
	"brandlink_backend/internal/services"
	"brandlink_backend/internal/storage"
	"brandlink_backend/internal/validator"
	"brandlink_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the whole service: config, database, dependency wiring, workers
// and the HTTP listener. Blocks until the server exits.
func Run() error {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Server.Env)

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	gateway := payments.NewStripeGateway(cfg.Stripe.SecretKey)
	mailer := buildEmailProvider(cfg)

	sc := initializeServices(cfg, db, store, gateway, mailer)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	router := initializeGinRouter(cfg, db, sc, tokens)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, cfg, db, store, sc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server listening", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	// TranslateError turns driver unique-violation errors into
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	return gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Contest{},
		&models.Project{},
		&models.Application{},
		&models.Submission{},
		&models.SubmissionHistory{},
		&models.Order{},
		&models.Milestone{},
		&models.Notification{},
		&models.PaymentRecord{},
		&models.PayoutTask{},
		&models.CleanupTask{},
	)
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("smtp is not configured, using mock email provider")
		return &MockEmailProvider{}
	}
	return email.NewSMTPProvider(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUsername,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
}

func initializeServices(cfg *config.Config, db *gorm.DB, store storage.Storage, gateway payments.Gateway, mailer email.Provider) *services.ServiceContainer {
	applicationRepo := repositories.NewApplicationRepository(db)
	targetRepo := repositories.NewTargetRepository(db)
	submissionRepo := repositories.NewSubmissionRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	userRepo := repositories.NewUserRepository(db)

	return &services.ServiceContainer{
		Application:  services.NewApplicationService(db, applicationRepo, targetRepo, notificationRepo),
		Submission:   services.NewSubmissionService(db, submissionRepo, targetRepo, notificationRepo, taskRepo, store),
		Order:        services.NewOrderService(db, orderRepo, notificationRepo, taskRepo),
		Notification: services.NewNotificationService(db, notificationRepo, targetRepo, userRepo, mailer),
		Payment: services.NewPaymentService(gateway, paymentRepo, targetRepo,
			cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, sc *services.ServiceContainer, tokens *auth.TokenManager) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	h := handlers.NewAppHandlers(validator.New(), sc)
	routes.Register(router, h, tokens)

	return router
}

func startWorkers(ctx context.Context, cfg *config.Config, db *gorm.DB, store storage.Storage, sc *services.ServiceContainer) {
	taskRepo := repositories.NewTaskRepository(db)

	payoutWorker := workers.NewPayoutWorker(taskRepo, sc.Payment,
		time.Duration(cfg.Workers.PayoutIntervalSeconds)*time.Second)
	go payoutWorker.Start(ctx)

	cleanupWorker := workers.NewCleanupWorker(taskRepo, store,
		time.Duration(cfg.Workers.CleanupIntervalSeconds)*time.Second)
	go cleanupWorker.Start(ctx)
}
