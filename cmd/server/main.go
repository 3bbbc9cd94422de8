package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/bancodemo/api/internal/adapter/http"
	"github.com/bancodemo/api/internal/adapter/http/handler"
	postgresRepo "github.com/bancodemo/api/internal/adapter/repository/postgres"
	redisRepo "github.com/bancodemo/api/internal/adapter/repository/redis"
	"github.com/bancodemo/api/internal/infrastructure/auth"
	"github.com/bancodemo/api/internal/infrastructure/config"
	"github.com/bancodemo/api/internal/infrastructure/mailer"
	"github.com/bancodemo/api/internal/infrastructure/metrics"
	"github.com/bancodemo/api/internal/infrastructure/postgres"
	"github.com/bancodemo/api/internal/infrastructure/redis"
	"github.com/bancodemo/api/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier()
	userRepo := postgresRepo.NewUserRepository(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	cardRepo := postgresRepo.NewCardRepository(pool)
	autoDebitRepo := postgresRepo.NewAutoDebitRepository(pool)
	resetRepo := postgresRepo.NewPasswordResetRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Metrics
	m := metrics.New()

	// Mailer: without an SMTP host, mail is logged instead of sent
	var mail usecase.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			BaseURL:  cfg.AppBaseURL,
		})
	} else {
		log.Warn().Msg("SMTP_HOST not set, mail will be logged only")
		mail = mailer.NewLogMailer()
	}

	// Initialize use cases
	userUC := usecase.NewUserUseCase(usecase.UserUseCaseConfig{
		TxManager:    txManager,
		Users:        userRepo,
		Accounts:     accountRepo,
		Txns:         txnRepo,
		Resets:       resetRepo,
		IDGen:        idGen,
		Mailer:       mail,
		Cache:        cache,
		Metrics:      m,
		SignupGrant:  cfg.SignupGrantCents,
		BlockingMail: cfg.SMTPBlockingRegistration,
	})
	accountUC := usecase.NewAccountUseCase(accountRepo)
	transferUC := usecase.NewTransferUseCase(txManager, retrier, accountRepo, txnRepo, idGen, m)
	cardUC := usecase.NewCardUseCase(txManager, retrier, accountRepo, cardRepo, txnRepo, idGen, usecase.NewRandomChargeGenerator(idGen), m)
	autoDebitUC := usecase.NewAutoDebitUseCase(autoDebitRepo, accountRepo, idGen)

	// Authentication
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userUC, jwtManager)
	userHandler := handler.NewUserHandler(userUC, userUC)
	accountHandler := handler.NewAccountHandler(accountUC, transferUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	cardHandler := handler.NewCardHandler(cardUC)
	autoDebitHandler := handler.NewAutoDebitHandler(autoDebitUC, userUC, mail)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      authHandler,
		UserHandler:      userHandler,
		AccountHandler:   accountHandler,
		TransferHandler:  transferHandler,
		CardHandler:      cardHandler,
		AutoDebitHandler: autoDebitHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		Metrics:          m,
		Logger:           log.Logger,
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
