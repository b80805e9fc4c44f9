package di

import (
	"github.com/hotelhub/reservation/internal/events"
	"github.com/hotelhub/reservation/internal/handler"
	"github.com/hotelhub/reservation/internal/lock"
	"github.com/hotelhub/reservation/internal/repository"
	"github.com/hotelhub/reservation/internal/service"
	"github.com/hotelhub/reservation/pkg/database"
	"github.com/hotelhub/reservation/pkg/logger"
	"github.com/hotelhub/reservation/pkg/redis"
)

// Container holds all dependencies for the reservation engine
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	RoomRepo    repository.RoomRepository
	BookingRepo repository.BookingRepository
	PaymentRepo repository.PaymentRepository
	Store       repository.ReservationStore

	// Concurrency and messaging
	RoomLocker lock.RoomLocker
	Publisher  events.Publisher

	// Services
	ReservationService service.ReservationService

	// Handlers
	HealthHandler  *handler.HealthHandler
	BookingHandler *handler.BookingHandler
	RoomHandler    *handler.RoomHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB            *database.PostgresDB
	Redis         *redis.Client
	RoomRepo      repository.RoomRepository
	BookingRepo   repository.BookingRepository
	PaymentRepo   repository.PaymentRepository
	Store         repository.ReservationStore
	RoomLocker    lock.RoomLocker
	Publisher     events.Publisher
	Logger        *logger.Logger
	ServiceConfig *service.ReservationServiceConfig
}

// NewContainer creates a new dependency injection container. Postgres-backed
// repositories are built from DB when none are supplied, so tests can inject
// in-memory ones.
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:          cfg.DB,
		Redis:       cfg.Redis,
		RoomRepo:    cfg.RoomRepo,
		BookingRepo: cfg.BookingRepo,
		PaymentRepo: cfg.PaymentRepo,
		Store:       cfg.Store,
		RoomLocker:  cfg.RoomLocker,
		Publisher:   cfg.Publisher,
	}

	if c.DB != nil {
		pool := c.DB.Pool()
		if c.RoomRepo == nil {
			c.RoomRepo = repository.NewPostgresRoomRepository(pool)
		}
		if c.BookingRepo == nil {
			c.BookingRepo = repository.NewPostgresBookingRepository(pool)
		}
		if c.PaymentRepo == nil {
			c.PaymentRepo = repository.NewPostgresPaymentRepository(pool)
		}
		if c.Store == nil {
			c.Store = repository.NewTransactionalReservationStore(pool)
		}
	}

	if c.RoomLocker == nil {
		c.RoomLocker = lock.NewKeyedRoomLock()
	}
	if c.Publisher == nil {
		c.Publisher = events.NewNoopPublisher()
	}

	c.ReservationService = service.NewReservationService(
		c.RoomRepo,
		c.BookingRepo,
		c.PaymentRepo,
		c.Store,
		c.RoomLocker,
		c.Publisher,
		cfg.Logger,
		cfg.ServiceConfig,
	)

	c.HealthHandler = handler.NewHealthHandler(c.DB, c.Redis)
	c.BookingHandler = handler.NewBookingHandler(c.ReservationService)
	c.RoomHandler = handler.NewRoomHandler(c.ReservationService, c.RoomRepo)

	return c
}
