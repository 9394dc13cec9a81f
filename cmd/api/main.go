package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nagacare/internal/assistant"
	"nagacare/internal/config"
	"nagacare/internal/db"
	"nagacare/internal/directory"
	"nagacare/internal/email"
	apihttp "nagacare/internal/http"
	"nagacare/internal/llm"
	"nagacare/internal/repository"
	"nagacare/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	dir, err := directory.Load()
	if err != nil {
		logger.Fatal("load directory", zap.Error(err))
	}

	llmClient, err := llm.NewChatClient(cfg.LLMProvider, cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, logger)
	if err != nil {
		logger.Fatal("llm client", zap.Error(err))
	}

	var (
		userRepo    repository.UserRepository
		apptRepo    repository.AppointmentRepository
		messageRepo repository.MessageRepository
	)
	pool, err := openDatabase(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	if pool != nil {
		defer pool.Close()
		userRepo = repository.NewPgUserRepository(pool)
		apptRepo = repository.NewPgAppointmentRepository(pool)
		messageRepo = repository.NewPgMessageRepository(pool)
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	limiter := service.NewMemoryRateLimiter(cfg.AssistantRateWindow(), cfg.AssistantRateLimit)
	var tokenStore service.RefreshTokenStore
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, cfg.AssistantRateWindow(), cfg.AssistantRateLimit)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	transcriptSvc := service.NewTranscriptService(messageRepo)
	opts := assistant.Options{SystemPrompt: cfg.AssistantPrompt, Logger: logger}
	if messageRepo != nil {
		opts.Recorder = transcriptSvc
	}
	registry := assistant.NewRegistry(llmClient, opts, cfg.AssistantSessionTTL())
	go registry.Run(ctx, time.Minute)

	userSvc := service.NewUserService(logger, userRepo)
	apptSvc := service.NewAppointmentService(logger, apptRepo, dir, userRepo, emailSender)

	router := apihttp.NewRouter(logger, apihttp.Handlers{
		Directory:    apihttp.NewDirectoryHandler(logger, dir, cfg.MapsDirectionsURL),
		Contacts:     apihttp.NewContactsHandler(logger, dir),
		Assistant:    apihttp.NewAssistantHandler(logger, registry, limiter, transcriptSvc),
		Users:        apihttp.NewUserHandler(logger, userSvc, jwtSvc),
		Appointments: apihttp.NewAppointmentHandler(logger, apptSvc),
	}, jwtSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.String("llm_provider", cfg.LLMProvider),
		zap.Bool("database", pool != nil),
	)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

// openDatabase devuelve nil sin error cuando DATABASE_URL no esta configurada.
func openDatabase(ctx context.Context, url string, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := db.NewPool(ctx, url)
	if errors.Is(err, db.ErrNoDatabase) {
		logger.Warn("database not configured: appointments, accounts and transcripts disabled")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
