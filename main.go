package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/hotelhub/reservation/internal/di"
	"github.com/hotelhub/reservation/internal/events"
	"github.com/hotelhub/reservation/internal/handler"
	"github.com/hotelhub/reservation/internal/lock"
	"github.com/hotelhub/reservation/internal/metrics"
	"github.com/hotelhub/reservation/internal/service"
	"github.com/hotelhub/reservation/migrations"
	"github.com/hotelhub/reservation/pkg/config"
	"github.com/hotelhub/reservation/pkg/database"
	"github.com/hotelhub/reservation/pkg/logger"
	"github.com/hotelhub/reservation/pkg/middleware"
	pkgredis "github.com/hotelhub/reservation/pkg/redis"
	"github.com/hotelhub/reservation/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := &logger.Config{
		Level:       cfg.App.LogLevel,
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}
	if err := logger.Init(logCfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting Reservation Engine...")

	ctx := context.Background()

	// Telemetry
	tel := &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	}
	if _, err := telemetry.Init(ctx, tel); err != nil {
		appLog.Fatal("Failed to initialize telemetry", logger.Err(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			appLog.Warn("Telemetry shutdown failed", logger.Err(err))
		}
	}()
	if err := metrics.Init(); err != nil {
		appLog.Fatal("Failed to initialize metrics", logger.Err(err))
	}

	// Database
	dbCfg := &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		MaxRetries:      3,
		RetryInterval:   2 * time.Second,
		EnableTracing:   cfg.OTel.Enabled,
		ServiceName:     cfg.OTel.ServiceName,
	}
	db, err := database.NewPostgres(ctx, dbCfg)
	if err != nil {
		appLog.Fatal("Database connection failed", logger.Err(err))
	}
	defer db.Close()
	appLog.Info("Database connected")

	if err := runMigrations(cfg.Database.DSN()); err != nil {
		appLog.Fatal("Migrations failed", logger.Err(err))
	}
	appLog.Info("Migrations applied")

	// Redis (optional)
	var redisClient *pkgredis.Client
	if cfg.Redis.Enabled {
		redisCfg := &pkgredis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    3,
			RetryInterval: 2 * time.Second,
		}
		redisClient, err = pkgredis.NewClient(ctx, redisCfg)
		if err != nil {
			appLog.Fatal("Redis connection failed", logger.Err(err))
		}
		defer redisClient.Close()
		appLog.Info("Redis connected")
	}

	// Room exclusion
	var roomLocker lock.RoomLocker
	if cfg.Reservation.DistributedLock {
		roomLocker = lock.NewRedisRoomLock(redisClient.Client(), nil)
		appLog.Info("Using distributed room lock")
	} else {
		roomLocker = lock.NewKeyedRoomLock()
	}

	// Event publisher (optional)
	var publisher events.Publisher = events.NewNoopPublisher()
	if cfg.Kafka.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(ctx, &events.KafkaPublisherConfig{
			Brokers:     cfg.Kafka.Brokers,
			Topic:       cfg.Kafka.Topic,
			ServiceName: cfg.App.Name,
			ClientID:    cfg.Kafka.ClientID,
		})
		if err != nil {
			appLog.Fatal("Kafka connection failed", logger.Err(err))
		}
		publisher = kafkaPublisher
		appLog.Info("Kafka producer connected")
	}
	defer publisher.Close()

	container := di.NewContainer(&di.ContainerConfig{
		DB:         db,
		Redis:      redisClient,
		RoomLocker: roomLocker,
		Publisher:  publisher,
		Logger:     appLog,
		ServiceConfig: &service.ReservationServiceConfig{
			CancellationWindow: cfg.Reservation.CancelWindow,
			RefundRate:         cfg.Reservation.RefundRate,
		},
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.OTel.Enabled {
		router.Use(telemetry.TracingMiddleware(cfg.OTel.ServiceName))
	}
	router.Use(handler.RequestMetrics())

	router.GET("/health", container.HealthHandler.Health)
	router.GET("/ready", container.HealthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		rooms := v1.Group("/rooms")
		{
			rooms.GET("/:id", container.RoomHandler.GetRoom)
			rooms.GET("/:id/quote", container.RoomHandler.Quote)
			rooms.GET("/:id/bookings", container.RoomHandler.ListRoomBookings)
		}

		bookings := v1.Group("/bookings")
		{
			commit := container.BookingHandler.CommitBooking
			if redisClient != nil {
				idem := middleware.IdempotencyMiddleware(middleware.DefaultIdempotencyConfig(redisClient))
				bookings.POST("", idem, commit)
			} else {
				bookings.POST("", commit)
			}
			bookings.GET("", container.BookingHandler.ListBookings)
			bookings.GET("/:id", container.BookingHandler.GetBooking)
			bookings.POST("/:id/cancel", container.BookingHandler.CancelBooking)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLog.Info("Reservation Engine listening", logger.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal("Server forced to shutdown", logger.Err(err))
	}

	appLog.Info("Server exited gracefully")
}

// runMigrations applies the embedded SQL migrations through the database/sql
// pgx driver; goose does not speak the pgx native protocol.
func runMigrations(dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
