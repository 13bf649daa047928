package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/swiftloan/disburser/internal/pkg/config"
	"github.com/swiftloan/disburser/internal/pkg/database"
	"github.com/swiftloan/disburser/internal/pkg/health"
	"github.com/swiftloan/disburser/internal/pkg/logger"
	"github.com/swiftloan/disburser/internal/pkg/middleware"
	natspkg "github.com/swiftloan/disburser/internal/pkg/nats"
	nrpkg "github.com/swiftloan/disburser/internal/pkg/newrelic"
	"github.com/swiftloan/disburser/internal/pkg/server"
	"github.com/swiftloan/disburser/services/receipts"
	gatewayhttp "github.com/swiftloan/disburser/services/receipts/gateway/http"
	gatewaynats "github.com/swiftloan/disburser/services/receipts/gateway/nats"
	"github.com/swiftloan/disburser/services/receipts/handler"
	"github.com/swiftloan/disburser/services/receipts/pdf"
	"github.com/swiftloan/disburser/services/receipts/repository"
	"github.com/swiftloan/disburser/services/receipts/usecase"
	"go.uber.org/zap"
)

func main() {
	appName := "loan-disburser"
	configs := config.InitConfig(".env")

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	// Select receipt store driver
	var repo receipts.ReceiptRepo
	switch configs.Store.Driver {
	case "memory":
		repo = repository.NewMemoryReceiptRepo()
	case "postgres":
		postgresClient, err := database.NewPostgresClient(configs.Database)
		if err != nil {
			zapLogger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer postgresClient.Close()
		repo = repository.NewPostgresReceiptRepo(postgresClient.GetDB())
	case "redis":
		redisClient, err := database.NewRedisClient(configs.Redis)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		repo = repository.NewRedisReceiptRepo(redisClient)
	default:
		fileRepo, err := repository.NewFileReceiptRepo(configs.Store.FilePath)
		if err != nil {
			zapLogger.Fatal("Failed to open receipt store", zap.Error(err))
		}
		repo = fileRepo
	}

	// Events are optional; without a NATS URL status changes are not published
	var eventsGW receipts.EventsGW
	if configs.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(configs.NATS.URL)
		if err != nil {
			zapLogger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer natsClient.Close()
		eventsGW = gatewaynats.NewEventsGW(natsClient)
	}

	paymentGW := gatewayhttp.NewPayNectaClient(configs.PayNecta)
	receiptUC := usecase.NewReceiptUC(configs, repo, paymentGW, eventsGW)

	// Release sweeper runs until shutdown
	sweeper := usecase.NewReleaseSweeper(repo, eventsGW,
		time.Duration(configs.Sweeper.IntervalMinutes)*time.Minute,
		time.Duration(configs.Sweeper.HoldingPeriodHours)*time.Hour,
	)
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	go sweeper.Run(sweeperCtx)

	shutdownMgr := server.NewShutdownManager(zapLogger)
	shutdownMgr.Register(func(ctx context.Context) error {
		stopSweeper()
		return nil
	})

	receiptHandler := handler.NewReceiptHandler(receiptUC, pdf.NewRenderer())

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestIDMiddleware())
	e.Use(middleware.NewRelicMiddleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{configs.CORS.AllowedOrigin},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	health.RegisterHealthEndpoints(e, appName, configs.App.Version)
	receiptHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port, 10*time.Second)
	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server terminated",
			zap.String("app", appName),
			zap.Error(err),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownMgr.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Component shutdown failed", zap.Error(err))
	}
}
