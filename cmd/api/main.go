package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tenant-auth/internal/config"
	"tenant-auth/internal/db"
	"tenant-auth/internal/directory"
	"tenant-auth/internal/email"
	apihttp "tenant-auth/internal/http"
	"tenant-auth/internal/repository"
	"tenant-auth/internal/service"
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

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	customerRepo := repository.NewPgCustomerRepository(pool)
	passportRepo := repository.NewPgPassportRepository(pool)
	memberRepo := repository.NewPgMemberRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS, cfg.BaseURL)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		recoverLimiter service.RecoverRateLimiter
		sessionCache   service.SessionCache
		redisClient    *redis.Client
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
			recoverLimiter = service.NewRedisRecoverRateLimiter(redisClient, 10*time.Minute, 3)
			sessionCache = service.NewRedisSessionCache(redisClient)
		}
		cancel()
	}

	var dir directory.Directory = directory.NewDisabled("directory not configured")
	if cfg.LDAPAuth {
		logger.Warn("ldap strategy enabled without a directory backend")
	}

	tokenSvc := service.NewTokenService(cfg.TokenSecret)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	authSvc := service.NewAuthService(logger, userRepo, passportRepo, hasher, dir, cfg.LDAPAuth)
	sessionSvc := service.NewSessionService(logger, memberRepo, sessionRepo, tokenSvc, sessionCache, 12*time.Hour)
	passwordSvc := service.NewPasswordService(logger, userRepo, passportRepo, tokenSvc, hasher, emailSender, recoverLimiter, cfg.LDAPAuth, cfg.LocalBypass)
	integrationSvc := service.NewIntegrationService(logger, userRepo, passportRepo, memberRepo, sessionRepo, sessionSvc, hasher, cfg.IntegrationDomain)

	authHandler := apihttp.NewAuthHandler(logger, authSvc, sessionSvc)
	passwordHandler := apihttp.NewPasswordHandler(logger, passwordSvc)
	tokenHandler := apihttp.NewTokenHandler(logger, integrationSvc, customerRepo)
	router := apihttp.NewRouter(logger, authHandler, passwordHandler, tokenHandler, sessionSvc)

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
