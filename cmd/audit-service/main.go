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

	"due-diligence-backend/internal/audit/adapter"
	"due-diligence-backend/internal/audit/config"
	"due-diligence-backend/internal/audit/delivery/consumer"
	delivery "due-diligence-backend/internal/audit/delivery/http"
	"due-diligence-backend/internal/audit/repository"
	"due-diligence-backend/internal/audit/service"
	"due-diligence-backend/pkg/logger"
	"due-diligence-backend/pkg/postgres"
	"due-diligence-backend/pkg/redis"
	"due-diligence-backend/pkg/telegram"
	"due-diligence-backend/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the audit service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Audit Service", logger.Field("name", cfg.App.Name))

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
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

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

	// Repositories
	recordRepo := repository.NewRecordRepository(db.DB)
	runRepo := repository.NewAuditRunRepository(db.DB)
	locker := repository.NewAuditLocker(redisClient)
	publisher := repository.NewEventPublisher(redisClient)

	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		aiRepo = repository.NewGeminiAIRepository(cfg.Gemini, appLogger, genAiClient)
	default:
		appLogger.Info("No AI provider configured, summaries disabled")
	}

	// Source adapters
	symbols := adapter.NewSymbolRepository(cfg.Sources.Symbols, appLogger)
	adapters := []adapter.SourceAdapter{
		adapter.NewProfileAdapter(cfg.Sources.Profile, appLogger),
		adapter.NewExecutivesAdapter(cfg.Sources.Market, cfg.Sources.Search, symbols, appLogger),
		adapter.NewFinancialsAdapter(cfg.Sources.Financials, symbols, appLogger),
		adapter.NewLegalRiskAdapter(cfg.Sources.Legal, appLogger),
		adapter.NewCompetitorsAdapter(cfg.Sources.Quotes, symbols, appLogger),
	}

	// Services
	auditSvc := service.NewAuditService(cfg, appLogger, adapters, recordRepo, runRepo, locker, publisher)
	recordSvc := service.NewRecordService(recordRepo, runRepo)
	summarySvc := service.NewSummaryService(recordRepo, aiRepo)

	// Completion event consumer -> Telegram
	if cfg.Telegram.Enabled {
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		completionConsumer := consumer.NewCompletionConsumer(redisClient, notifier, appLogger)
		utils.GoSafe(func() {
			if err := completionConsumer.Start(ctx); err != nil {
				appLogger.Error("Completion consumer stopped", logger.ErrorField(err))
			}
		})
	}

	// Scheduled stale-data refresh
	if cfg.Refresh.Enabled {
		refreshSvc := service.NewRefreshService(cfg.Refresh, appLogger, recordRepo, auditSvc)
		cronRunner := cron.New()
		_, err := cronRunner.AddFunc(cfg.Refresh.CronExpression, func() {
			if err := refreshSvc.RefreshStale(ctx); err != nil {
				appLogger.Error("Stale refresh sweep failed", logger.ErrorField(err))
			}
		})
		if err != nil {
			appLogger.Fatal("Invalid refresh cron expression", logger.ErrorField(err))
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	e := echo.New()
	e.HideBanner = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	auditHandler := delivery.NewAuditHandler(auditSvc, recordSvc, summarySvc, appLogger)
	apiV1 := e.Group("/api/v1")
	auditsGroup := apiV1.Group("/audits")
	auditHandler.RegisterRoutes(auditsGroup)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "audit-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-audit.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing audit-service CLI: %s\n", err)
		os.Exit(1)
	}
}
