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

	"regintel/internal/api/config"
	delivery "regintel/internal/api/delivery/http"
	_ "regintel/internal/api/docs"
	"regintel/internal/api/repository"
	"regintel/internal/api/service"
	"regintel/pkg/logger"
	"regintel/pkg/postgres"
	"regintel/pkg/redis"
	"regintel/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	companyRepo := repository.NewCompanyRepository(db.DB)
	executiveRepo := repository.NewExecutiveRepository(db.DB)
	opportunityRepo := repository.NewOpportunityRepository(db.DB)
	activityRepo := repository.NewCompetitorActivityRepository(db.DB)
	procurementRepo := repository.NewProcurementRepository(db.DB)
	contactRepo := repository.NewGovernmentContactRepository(db.DB)
	taskRepo := repository.NewResearchTaskRepository(db.DB)
	alertRepo := repository.NewAlertRepository(db.DB)
	reportRepo := repository.NewReportRepository(db.DB)

	// Initialize services
	sessionTTL, err := time.ParseDuration(cfg.Auth.SessionTTL)
	if err != nil {
		appLogger.Fatal("Invalid session TTL", logger.ErrorField(err))
	}
	authSvc := service.NewAuthService(userRepo, redisClient.Client, sessionTTL, appLogger)
	companySvc := service.NewCompanyService(companyRepo, alertRepo, appLogger)
	executiveSvc := service.NewExecutiveService(executiveRepo, companyRepo, alertRepo, appLogger)
	opportunitySvc := service.NewOpportunityService(opportunityRepo, appLogger)
	competitorSvc := service.NewCompetitorService(activityRepo, opportunityRepo, alertRepo, appLogger)
	procurementSvc := service.NewProcurementService(procurementRepo, alertRepo, appLogger)
	contactSvc := service.NewGovernmentContactService(contactRepo, appLogger)
	taskSvc := service.NewResearchTaskService(taskRepo, appLogger)
	alertSvc := service.NewAlertService(alertRepo, appLogger)
	briefingSvc := service.NewBriefingService(opportunityRepo, activityRepo, procurementRepo, executiveRepo, alertRepo, companyRepo, reportRepo, redisClient.Client, appLogger)

	// Start the briefing scheduler, with Telegram push when configured
	if cfg.Scheduler.Enabled {
		var notifier telegram.Notifier
		if cfg.Telegram.Enabled {
			notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
			if err != nil {
				appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
			}
		}
		scheduler := service.NewBriefingScheduler(briefingSvc, userRepo, notifier, cfg.Scheduler.BriefingCron, appLogger)
		if err := scheduler.Start(ctx); err != nil {
			appLogger.Fatal("Failed to start briefing scheduler", logger.ErrorField(err))
		}
		defer scheduler.Stop()
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	sessions := delivery.NewSessionMiddleware(authSvc, cfg.Auth.CookieName)

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	authHandler := delivery.NewAuthHandler(authSvc, sessions, cfg.Auth.CookieName, sessionTTL, cfg.Auth.SecureCookie, appLogger)
	authHandler.RegisterRoutes(apiV1.Group("/auth"), delivery.LoginRateLimiter(cfg.Auth.LoginRateLimit, cfg.Auth.LoginRateBurst))

	protected := apiV1.Group("", sessions.Authenticate)

	companyHandler := delivery.NewCompanyHandler(companySvc, appLogger)
	companyHandler.RegisterRoutes(protected.Group("/companies"))

	executiveHandler := delivery.NewExecutiveHandler(executiveSvc, appLogger)
	executiveHandler.RegisterRoutes(protected.Group("/executives"))

	opportunityHandler := delivery.NewOpportunityHandler(opportunitySvc, appLogger)
	opportunityHandler.RegisterRoutes(protected.Group("/opportunities"))

	competitorHandler := delivery.NewCompetitorHandler(competitorSvc, appLogger)
	competitorHandler.RegisterRoutes(protected.Group("/competitors"))

	procurementHandler := delivery.NewProcurementHandler(procurementSvc, appLogger)
	procurementHandler.RegisterRoutes(protected.Group("/procurements"))

	contactHandler := delivery.NewGovernmentContactHandler(contactSvc, appLogger)
	contactHandler.RegisterRoutes(protected.Group("/government-contacts"))

	taskHandler := delivery.NewResearchTaskHandler(taskSvc, appLogger)
	taskHandler.RegisterRoutes(protected.Group("/research-tasks"))

	alertHandler := delivery.NewAlertHandler(alertSvc, appLogger)
	alertHandler.RegisterRoutes(protected.Group("/alerts"))

	briefingHandler := delivery.NewBriefingHandler(briefingSvc, appLogger)
	briefingHandler.RegisterRoutes(protected.Group("/briefings"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Regulatory Intelligence CRM API
// @version 1.0
// @description REST API for tracking regulatory opportunities, target companies, executives, competitors, procurements and daily briefings.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
