package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"heart-monitor/internal/config"
	"heart-monitor/internal/db"
	"heart-monitor/internal/email"
	apihttp "heart-monitor/internal/http"
	"heart-monitor/internal/random"
	"heart-monitor/internal/repository"
	"heart-monitor/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	patientRepo := repository.NewPgPatientRepository(pool)
	profileRepo := repository.NewPgHealthProfileRepository(pool)
	readingRepo := repository.NewPgReadingRepository(pool)

	alertSender := email.NewDisabledSender("alert sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			alertSender = sender
		}
	}

	alertWindow := time.Duration(cfg.AlertWindowMinutes) * time.Minute
	var (
		alertLimiter service.AlertRateLimiter
		readingCache service.ReadingCache
		tokenStore   service.ShareTokenStore
		redisClient  *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			alertLimiter = service.NewRedisAlertRateLimiter(redisClient, alertWindow, cfg.AlertMaxPerWindow)
			readingCache = service.NewRedisReadingCache(redisClient, 24*time.Hour)
			tokenStore = service.NewRedisShareTokenStore(redisClient)
		}
		cancel()
	}
	if alertLimiter == nil {
		alertLimiter = service.NewAlertRateLimiter(alertWindow, cfg.AlertMaxPerWindow)
	}

	shareSvc := service.NewShareTokenServiceWithStore(
		cfg.ShareTokenSecret,
		time.Duration(cfg.ShareTokenTTLHours)*time.Hour,
		tokenStore,
	)
	if cfg.ShareTokenSecret == "" {
		logger.Warn("share token secret not configured")
	}

	engine := service.NewRiskEngine(random.NewUniformSampler())
	assessmentSvc := service.NewAssessmentService(logger, engine, patientRepo, profileRepo, readingRepo, readingCache, alertSender, alertLimiter, shareSvc, cfg.PublicBaseURL)
	historySvc := service.NewHistoryService(logger, engine, readingRepo, readingCache)

	patientHandler := apihttp.NewPatientHandler(logger, patientRepo, shareSvc)
	assessmentHandler := apihttp.NewAssessmentHandler(logger, assessmentSvc, historySvc, profileRepo)
	readingHandler := apihttp.NewReadingHandler(logger, historySvc)
	router := apihttp.NewRouter(logger, patientHandler, assessmentHandler, readingHandler, shareSvc)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
