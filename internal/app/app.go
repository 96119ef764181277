package app

import (
	"context"
	"fmt"
	"time"

	"vlinky_backend/internal/auth"
	"vlinky_backend/internal/config"
	"vlinky_backend/internal/database"
	"vlinky_backend/internal/email"
	"vlinky_backend/internal/handlers"
	"vlinky_backend/internal/logger"
	"vlinky_backend/internal/middleware"
	"vlinky_backend/internal/models"
	"vlinky_backend/internal/repositories"
	"vlinky_backend/internal/routes"
	"vlinky_backend/internal/services"
	"vlinky_backend/internal/storage"
	"vlinky_backend/internal/validator"
	"vlinky_backend/internal/workers"
	"vlinky_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Run boots the full application: config, database, dependency graph,
// background workers, and the HTTP server. It blocks until the server exits.
func Run() error {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	auth.Configure(cfg.JWT.Secret, cfg.JWT.TTL)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDatabase(cfg.Database.DSN, cfg.Server.Env)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	engine, cleanup, err := SetupRouter(db, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server listening", "addr", addr, "env", cfg.Server.Env)
	return engine.Run(addr)
}

// SetupRouter builds the dependency graph and the gin engine. The returned
// cleanup stops the background workers and the change-feed hub.
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, func(), error) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	creatorRepo := repositories.NewCreatorRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	earningsRepo := repositories.NewEarningsRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	if err := seedFirstAdmin(userRepo, cfg); err != nil {
		return nil, nil, fmt.Errorf("seed admin: %w", err)
	}

	// Infrastructure
	store, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("storage: %w", err)
	}

	emailer := buildEmailProvider(cfg)

	hub := ws.NewHub()
	go hub.Run()

	// Services
	container := &services.ServiceContainer{
		AuthService: services.NewAuthService(userRepo),
		CreatorService: services.NewCreatorService(
			creatorRepo, userRepo, requestRepo, earningsRepo, activityRepo, emailer, hub),
		RequestService: services.NewRequestService(
			requestRepo, creatorRepo, store, hub),
		UploadService: services.NewUploadService(
			store, requestRepo, creatorRepo, emailer, cfg.Upload.MaxSize),
		AdminService: services.NewAdminService(
			requestRepo, creatorRepo, earningsRepo, activityRepo, cfg.Platform.FeePercent),
	}

	// Background workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	earningsWorker := workers.NewEarningsWorker(
		requestRepo, earningsRepo, cfg.Platform.FeePercent, 15*time.Minute)
	go earningsWorker.Start(workerCtx)

	// HTTP surface
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
	)

	appHandlers := handlers.NewAppHandlers(container, validator.New())
	routes.RegisterRoutes(engine, appHandlers, ws.NewHandler(hub))

	return engine, stopWorkers, nil
}

func openDatabase(dsn, env string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
	if env == "development" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	smtpCfg := email.DefaultConfig()
	smtpCfg.Host = cfg.Email.SMTPHost
	smtpCfg.Port = cfg.Email.SMTPPort
	smtpCfg.Username = cfg.Email.SMTPUsername
	smtpCfg.Password = cfg.Email.SMTPPassword
	smtpCfg.FromEmail = cfg.Email.FromEmail
	smtpCfg.FromName = cfg.Email.FromName
	smtpCfg.UseTLS = cfg.Email.UseTLS

	provider := email.NewSMTPProvider(smtpCfg, email.NewTemplateManager())
	if err := provider.Validate(); err != nil {
		logger.Warn("email provider not configured, notifications disabled", "error", err.Error())
	}
	return provider
}

// seedFirstAdmin creates the bootstrap admin account on an empty deployment.
func seedFirstAdmin(userRepo repositories.UserRepository, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	count, err := userRepo.CountByRole(models.UserRoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	logger.Info("first admin account created", "email", cfg.FirstAdminEmail)
	return nil
}
