package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"

	httpadapter "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/memory"
	"ordering/internal/adapters/out/notify"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config Config
	logger *slog.Logger

	uowFactory ports.UnitOfWorkFactory
	lister     queries.ActiveOrderLister
	publisher  ports.NotificationPublisher
	registry   *prometheus.Registry

	closers []io.Closer
}

// NewCompositionRoot connects the configured storage driver and notification
// publisher. Close releases both.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:   config,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	root.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	switch config.StorageDriver {
	case StorageDriverMemory:
		store := memory.NewStore()
		root.uowFactory = memory.NewUnitOfWorkFactory(store)
		root.lister = memory.NewOrderRepository(store)
		logger.Warn("using in-memory storage; data is lost on restart")
	case "", StorageDriverPostgres:
		db, sqlDB, err := openPostgres(config, postgres.Migrate)
		if err != nil {
			return nil, err
		}
		root.closers = append(root.closers, sqlDB)
		root.registry.MustRegister(collectors.NewDBStatsCollector(sqlDB, config.DBName))

		root.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
		root.lister = orderrepo.NewGormOrderRepository(db, nil)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", config.StorageDriver)
	}

	if config.KafkaHost != "" {
		publisher, err := notify.NewKafkaPublisher(config.KafkaHost, config.KafkaOrderReadyTopic)
		if err != nil {
			return nil, errors.Join(err, root.Close())
		}
		root.publisher = publisher
		root.closers = append(root.closers, publisher)
	} else {
		root.publisher = notify.NewLogPublisher(logger)
	}

	return root, nil
}

// openPostgres connects and migrates the schema. The pool is closed again if the
// migration fails.
func openPostgres(config Config, migrate func(*gorm.DB) error) (*gorm.DB, *sql.DB, error) {
	db, err := postgres.Open(postgres.ConnectionConfig{
		Host:     config.DBHost,
		Port:     config.DBPort,
		User:     config.DBUser,
		Password: config.DBPassword,
		Name:     config.DBName,
		SSLMode:  config.DBSslMode,
		Driver:   config.DBDriver,
	})
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if err = migrate(db); err != nil {
		return nil, nil, errors.Join(fmt.Errorf("migrate schema: %w", err), sqlDB.Close())
	}
	return db, sqlDB, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.PlacementUoWFactory = FuncPlacementUoWFactory(func() commands.PlacementUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, order.GenerateNumber, c.config.OrderNumberAttempts, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, services.NewStatusTransitionEngine())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayNotificationsCommandHandler() commands.RelayNotificationsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayNotificationsCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.lister)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateGetActiveOrdersQueryHandler(),
		c.logger,
	)
	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		RequestTimeout: c.config.RequestTimeout,
		Registry:       c.registry,
		Logger:         c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayNotificationsCommandHandler(),
		jobs.RelayConfig{
			Schedule:  c.config.OutboxRelaySchedule,
			BatchSize: c.config.OutboxRelayBatch,
		},
		c.logger,
	)
}

// Close releases the database pool and the Kafka writer.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i].Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

type FuncPlacementUoWFactory func() commands.PlacementUoW

func (f FuncPlacementUoWFactory) Create() commands.PlacementUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
