package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ShinkDEV/appdaoracaov2-sub000/config"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/api/rest"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/api/rest/handlers"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/db"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/integration/bucket"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/integration/mercadopago"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/metrics"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/middleware"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/repository"
	"github.com/ShinkDEV/appdaoracaov2-sub000/internal/service"
	"github.com/ShinkDEV/appdaoracaov2-sub000/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var log *logger.Logger

func init() {
	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine in production
	}

	logLevel := logger.INFO
	if os.Getenv("DEBUG") == "true" {
		logLevel = logger.DEBUG
	}
	log = logger.New(logLevel)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}
	log = logger.New(logger.ParseLevel(cfg.Logging.Level))

	zapLog, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create zap logger: %v", err)
	}
	defer zapLog.Sync()

	// Prometheus
	promRegistry := prometheus.NewRegistry()
	donationMetrics := metrics.NewDonationMetrics(promRegistry, log)
	uploadMetrics := metrics.NewUploadMetrics(promRegistry, log)
	systemMetrics := metrics.NewSystemMetrics(promRegistry, log)

	systemMetrics.StartRecording(15 * time.Second)
	defer systemMetrics.Stop()

	// Database
	database, err := db.Connect(cfg.Database.GetDSN(), log)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer database.Close()

	subscriptionRepo := repository.NewPostgresSubscriptionRepository(database, log)
	profileRepo := repository.NewPostgresProfileRepository(database, log)
	prayerRepo := repository.NewPostgresPrayerRepository(database, log)

	// Integrations
	mpClient := mercadopago.NewClient(mercadopago.Config{
		AccessToken: cfg.MercadoPago.AccessToken,
		BaseURL:     cfg.MercadoPago.BaseURL,
	}, log)

	bucketClient := bucket.NewClient(bucket.Config{
		Endpoint:        cfg.Storage.Endpoint,
		Bucket:          cfg.Storage.Bucket,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
	}, log)

	// Services
	donationSvc := service.NewDonationService(mpClient, donationMetrics, log)
	subscriptionSvc := service.NewSubscriptionService(subscriptionRepo, mpClient, log)
	profileSvc := service.NewProfileService(profileRepo, bucketClient, uploadMetrics, log)
	prayerSvc := service.NewPrayerService(prayerRepo, log)

	// HTTP layer
	authMiddleware := middleware.NewJWTMiddleware(log, &middleware.DefaultTokenValidator{
		Secret: []byte(cfg.Auth.JWTSecret),
	})

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := rest.SetupRouter(rest.RouterConfig{
		Log:      log,
		Registry: promRegistry,
		Auth:     authMiddleware,

		Donations:     handlers.NewDonationHandler(donationSvc, cfg.MercadoPago.PublicKey, log, zapLog),
		Subscriptions: handlers.NewSubscriptionHandler(subscriptionSvc, log, zapLog),
		Profiles:      handlers.NewProfileHandler(profileSvc, log),
		Prayers:       handlers.NewPrayerHandler(prayerSvc, log, zapLog),
	})

	server := rest.NewServer(router, cfg, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
