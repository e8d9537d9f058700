package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"drivebuddy-admin/internal/config"
	domainDriver "drivebuddy-admin/internal/domain/driver"
	domainInvitation "drivebuddy-admin/internal/domain/invitation"
	domainTelemetry "drivebuddy-admin/internal/domain/telemetry"
	"drivebuddy-admin/internal/infrastructure/backend"
	"drivebuddy-admin/internal/infrastructure/cache"
	"drivebuddy-admin/internal/infrastructure/database/postgres"
	"drivebuddy-admin/internal/infrastructure/messaging"
	"drivebuddy-admin/internal/infrastructure/notification"
	"drivebuddy-admin/internal/logger"
	"drivebuddy-admin/internal/routes"
	"drivebuddy-admin/internal/usecase/driver"
	"drivebuddy-admin/internal/usecase/invitation"
	"drivebuddy-admin/internal/usecase/roster"
	"drivebuddy-admin/internal/usecase/telemetry"
	pkgmqtt "drivebuddy-admin/pkg/mqtt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("store", cfg.Store.Driver),
		zap.String("notifier", cfg.Notification.Provider),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	calendar, err := domainTelemetry.NewCalendar(cfg.Telemetry.Timezone, cfg.Telemetry.WeekStart)
	if err != nil {
		logger.Fatal("Invalid telemetry timezone", zap.Error(err))
	}

	checks := map[string]routes.HealthCheck{}

	backendClient := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, cfg.Backend.ServiceToken)
	checks["backend"] = backendClient.Health

	var (
		driverRepo     domainDriver.Repository
		invitationRepo domainInvitation.Repository
	)
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := postgres.NewDB(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", zap.Error(err))
			}
		}()
		if err := db.AutoMigrate(); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		checks["database"] = func(context.Context) error { return db.Health() }
		driverRepo = postgres.NewDriverRepository(db)
		invitationRepo = postgres.NewInvitationRepository(db)
	default:
		driverRepo = backend.NewDriverRepository(backendClient)
		invitationRepo = backend.NewInvitationRepository(backendClient)
	}

	var notifier domainInvitation.Notifier
	switch cfg.Notification.Provider {
	case config.NotifierSMTP:
		notifier = notification.NewSMTPNotifier(cfg.SMTP)
	default:
		notifier = notification.NewCallableNotifier(cfg.Notification.CallableURL, cfg.Notification.Timeout)
	}

	var (
		rdb     *redis.Client
		tracker domainTelemetry.SequenceTracker
	)
	if cfg.Redis.Addr != "" {
		rdb, err = cache.NewClient(cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer rdb.Close()
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		tracker = cache.NewSequenceTracker(rdb, cfg.Redis.SequenceTTL)
	}

	var (
		publisher  domainInvitation.EventPublisher = domainInvitation.NopPublisher{}
		mqttClient *pkgmqtt.Client
	)
	if cfg.MQTT.Broker != "" {
		mqttClient = pkgmqtt.NewClient(&pkgmqtt.Config{
			Broker:               cfg.MQTT.Broker,
			ClientID:             cfg.MQTT.ClientID,
			Username:             cfg.MQTT.Username,
			Password:             cfg.MQTT.Password,
			CleanSession:         true,
			KeepAlive:            60,
			ConnectTimeout:       10,
			AutoReconnect:        true,
			MaxReconnectInterval: time.Minute,
		})
		if err := mqttClient.Connect(); err != nil {
			logger.Fatal("Failed to connect to MQTT broker", zap.Error(err))
		}
		defer mqttClient.Disconnect()
		publisher = messaging.NewEventPublisher(mqttClient, cfg.MQTT.EventTopic, cfg.MQTT.QoS)
	}

	invitationService := invitation.NewService(invitationRepo, notifier, publisher, cfg.Invitation.DuplicatePolicy)
	rosterService := roster.NewService(driverRepo, invitationRepo)
	telemetryService := telemetry.NewService(backend.NewTelemetrySource(backendClient), driverRepo, calendar, tracker)
	driverService := driver.NewService(driverRepo)

	if mqttClient != nil && cfg.MQTT.SignupTopic != "" {
		consumer := messaging.NewSignupConsumer(mqttClient, invitationService, cfg.MQTT.SignupTopic, cfg.MQTT.QoS)
		if err := consumer.Start(); err != nil {
			logger.Fatal("Failed to start signup consumer", zap.Error(err))
		}
		defer consumer.Stop()
	}

	services := routes.Services{
		Invitations:  invitationService,
		Roster:       rosterService,
		Telemetry:    telemetryService,
		Drivers:      driverService,
		HealthChecks: checks,
	}
	if rdb != nil {
		services.Redis = rdb
	}
	router := routes.SetupRoutes(cfg, services)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}
