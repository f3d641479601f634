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

	_ "expensetracker/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"expensetracker/internal/auth"
	"expensetracker/internal/cache"
	"expensetracker/internal/config"
	"expensetracker/internal/db"
	"expensetracker/internal/email"
	"expensetracker/internal/handler"
	"expensetracker/internal/logging"
	"expensetracker/internal/repository"
	"expensetracker/internal/router"
	"expensetracker/internal/service"
)

// @title Expense Tracker API
// @version 1.0
// @description Personal finance tracker API with email verification, workspaces, expenses and monthly summaries.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("database init", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("database migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	if !cacheClient.Enabled() {
		logger.Warn("REDIS_ADDR not set, login throttling disabled")
	}

	var mailer email.Sender
	if cfg.MailHost != "" {
		mailer = email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			Username: cfg.MailUsername,
			Password: cfg.MailPassword,
			From:     cfg.MailFrom,
			FromName: cfg.MailFromName,
		})
	} else {
		logger.Warn("MAIL_HOST not set, verification emails will not be sent")
		mailer = email.NewLogSender(logger, cfg.IsDevelopment())
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	workspaceRepo := repository.NewWorkspaceRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	throttle := auth.NewLoginThrottle(cacheClient, cfg.LoginMaxAttempts, cfg.LoginAttemptWindow)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, mailer, throttle, cfg.PublicBaseURL, logger)
	workspaceService := service.NewWorkspaceService(workspaceRepo, userRepo)
	expenseService := service.NewExpenseService(expenseRepo, workspaceRepo)

	e := echo.New()
	e.HideBanner = true

	router.Register(
		e,
		jwtService,
		logger,
		handler.NewAuthHandler(authService),
		handler.NewWorkspaceHandler(workspaceService),
		handler.NewExpenseHandler(expenseService),
		handler.NewHealthHandler(gormDB),
	)

	logger.Info("swagger documentation available", zap.String("url", cfg.PublicBaseURL+"/swagger/index.html"))

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("server starting", zap.String("addr", addr), zap.String("driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
