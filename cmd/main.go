package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"pickupgames/signup/internal/config"
	"pickupgames/signup/internal/handler"
	"pickupgames/signup/internal/model"
	"pickupgames/signup/internal/repository"
	"pickupgames/signup/internal/service"
	"pickupgames/signup/pkg/crypto"
	jwtpkg "pickupgames/signup/pkg/jwt"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	logger, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 3. Open the database and build repositories
	var (
		tx            repository.TxManager
		games         repository.GameRepository
		registrations repository.RegistrationRepository
		activities    repository.ActivityRepository
		announcements repository.AnnouncementRepository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err := config.NewPostgresDB(cfg.Database.Postgres)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		if cfg.Database.Postgres.AutoMigrate {
			if err := model.AutoMigrate(db); err != nil {
				logger.Fatal("failed to auto-migrate", zap.Error(err))
			}
			logger.Info("database migration completed")
		}
		tx = repository.NewPGTxManager(db)
		games = repository.NewPGGameRepository(db)
		registrations = repository.NewPGRegistrationRepository(db)
		activities = repository.NewPGActivityRepository(db)
		announcements = repository.NewPGAnnouncementRepository(db)
		logger.Info("using PostgreSQL storage", zap.String("host", cfg.Database.Postgres.Host))
	case "memory":
		store := repository.NewMemoryStore()
		tx = store
		games = store.Games()
		registrations = store.Registrations()
		activities = store.Activities()
		announcements = store.Announcements()
		logger.Warn("using in-memory storage; data is lost on restart")
	}

	// 4. Initialize revocation store and game locker (Redis or in-memory)
	var redisClient *redis.Client
	redisConn := func() *redis.Client {
		if redisClient == nil {
			redisClient, err = config.NewRedisClient(cfg.Database.Redis)
			if err != nil {
				logger.Fatal("failed to connect to redis", zap.Error(err))
			}
		}
		return redisClient
	}

	var revocations repository.RevocationStore
	switch cfg.State.Backend {
	case "redis":
		revocations = repository.NewRedisRevocationStore(redisConn())
		logger.Info("using Redis revocation store")
	case "memory":
		revocations = repository.NewMemoryRevocationStore()
		logger.Info("using in-memory revocation store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	var locker repository.GameLocker
	switch cfg.Lock.Backend {
	case "redis":
		locker = repository.NewRedisGameLocker(redisConn(), cfg.Lock.TTL, cfg.Lock.RetryInterval)
		logger.Info("using Redis game locks", zap.Duration("ttl", cfg.Lock.TTL))
	case "memory":
		locker = repository.NewMemoryGameLocker()
		logger.Info("using in-process game locks")
	default:
		logger.Fatal("unknown lock backend", zap.String("backend", cfg.Lock.Backend))
	}

	// 5. Resolve the organizer code
	codeHash := cfg.Organizer.CodeHash
	if codeHash == "" {
		codeHash, err = crypto.HashSecret(cfg.Organizer.Code)
		if err != nil {
			logger.Fatal("failed to hash organizer code", zap.Error(err))
		}
	}

	// 6. Initialize JWT manager
	jwtManager := jwtpkg.NewManager(
		cfg.JWT.SigningKey,
		cfg.JWT.Issuer,
		cfg.Session.OrganizerTTL,
		cfg.Session.PlayerTTL,
	)

	// 7. Initialize services
	core := service.NewCore(tx, locker, logger)
	gameService := service.NewGameService(core, games)
	registrationService := service.NewRegistrationService(core, games, registrations)
	engineService := service.NewEngineService(core, registrations)
	activityService := service.NewActivityService(activities, cfg.Activity.FeedLimit)
	announcementService := service.NewAnnouncementService(announcements)
	sessionService := service.NewSessionService(jwtManager, revocations, registrationService, codeHash)

	// 8. Initialize handlers
	publicHandler := handler.NewPublicHandler(gameService, registrationService, announcementService, sessionService)
	playerHandler := handler.NewPlayerHandler(registrationService, engineService, sessionService)
	organizerHandler := handler.NewOrganizerHandler(
		gameService, registrationService, engineService, activityService, announcementService, sessionService,
	)
	announcementHandler := handler.NewAnnouncementHandler(announcementService)

	// 9. Setup router
	router := handler.SetupRouter(cfg, logger, sessionService, publicHandler, playerHandler, organizerHandler, announcementHandler)

	// 10. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 11. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Info("server exited gracefully")
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zcfg.Build()
}
