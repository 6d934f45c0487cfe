package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	meetingCommands "github.com/felixgeelhaar/meetingctl/internal/meetings/application/commands"
	meetingQueries "github.com/felixgeelhaar/meetingctl/internal/meetings/application/queries"
	meetingSubscribers "github.com/felixgeelhaar/meetingctl/internal/meetings/application/subscribers"
	meetingsDomain "github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	"github.com/felixgeelhaar/meetingctl/internal/meetings/infrastructure/seed"
	sharedApplication "github.com/felixgeelhaar/meetingctl/internal/shared/application"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/meetingctl/pkg/config"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Observability
	Metrics *observability.PrometheusMetrics
	Health  *observability.HealthRegistry

	// Store
	RepositoryFactory *RepositoryFactory
	MeetingRepo       meetingsDomain.Repository

	// Events
	EventBus       *eventbus.InProcessEventBus
	EventPublisher eventbus.Publisher

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Meeting Command Handlers
	CreateMeetingHandler  *meetingCommands.CreateMeetingHandler
	DeleteMeetingHandler  *meetingCommands.DeleteMeetingHandler
	AddAttendeeHandler    *meetingCommands.AddAttendeeHandler
	RemoveAttendeeHandler *meetingCommands.RemoveAttendeeHandler

	// Meeting Query Handlers
	ListMeetingsHandler *meetingQueries.ListMeetingsHandler
	GetMeetingHandler   *meetingQueries.GetMeetingHandler
}

// NewContainer wires the store selected by cfg.StoreDriver, the event bus
// and every handler.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	driver, err := database.ParseDriver(cfg.StoreDriver)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewPrometheusMetrics(logger),
		Health:  observability.NewHealthRegistry(),
	}

	factory, err := NewRepositoryFactory(ctx, driver, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s store: %w", driver, err)
	}
	c.RepositoryFactory = factory

	c.MeetingRepo, err = factory.MeetingRepository()
	if err != nil {
		factory.Close()
		return nil, err
	}
	c.Health.Register("store", observability.PingHealthChecker(driver.String()+" store", factory.Ping))

	c.EventBus = eventbus.NewInProcessEventBus(logger, c.Metrics)
	c.EventPublisher = c.EventBus
	c.UnitOfWork = sharedApplication.NewLockingUnitOfWork()

	c.CreateMeetingHandler = meetingCommands.NewCreateMeetingHandler(c.MeetingRepo, c.EventPublisher, c.UnitOfWork)
	c.DeleteMeetingHandler = meetingCommands.NewDeleteMeetingHandler(c.MeetingRepo, c.EventPublisher, c.UnitOfWork)
	c.AddAttendeeHandler = meetingCommands.NewAddAttendeeHandler(c.MeetingRepo, c.EventPublisher, c.UnitOfWork)
	c.RemoveAttendeeHandler = meetingCommands.NewRemoveAttendeeHandler(c.MeetingRepo, c.EventPublisher, c.UnitOfWork)
	c.ListMeetingsHandler = meetingQueries.NewListMeetingsHandler(c.MeetingRepo)
	c.GetMeetingHandler = meetingQueries.NewGetMeetingHandler(c.MeetingRepo)

	c.EventBus.RegisterConsumer(meetingSubscribers.NewAuditSubscriber(observability.LogOperation(logger, "audit")))
	c.EventBus.RegisterConsumer(meetingSubscribers.NewStoreSizeSubscriber(c.ListMeetingsHandler, c.Metrics))

	registry := c.EventBus.GetRegistry()
	eventTypes := registry.GetAllEventTypes()
	slices.Sort(eventTypes)
	logger.Debug("event bus ready",
		"consumers", registry.ConsumerCount(),
		"event_types", strings.Join(eventTypes, ","),
	)

	logger.Info("container initialized", "driver", driver.String(), "env", cfg.AppEnv)
	return c, nil
}

// Seed stores records in order through the regular handlers, so seeded
// meetings get sequential IDs and publish the same events as interactive
// ones.
func (c *Container) Seed(ctx context.Context, records []seed.Record) error {
	for _, record := range records {
		meeting, err := record.Build()
		if err != nil {
			return err
		}
		id, err := c.CreateMeetingHandler.Handle(ctx, meeting)
		if err != nil {
			return fmt.Errorf("seed meeting %q: %w", record.Name, err)
		}
		for _, person := range record.Attendees {
			if _, err := c.AddAttendeeHandler.Handle(ctx, meetingCommands.AddAttendeeCommand{
				MeetingID: id,
				Person:    person,
			}); err != nil {
				return fmt.Errorf("seed meeting %q attendee %q: %w", record.Name, person, err)
			}
		}
	}
	c.Logger.Info("seeded meetings", "count", len(records))
	return nil
}

// SeedFile loads and applies the seed file at path.
func (c *Container) SeedFile(ctx context.Context, path string) error {
	defer observability.LogDuration(ctx, c.Logger, "seed", time.Now())

	records, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	return c.Seed(ctx, records)
}

// Close releases all resources. The dataset is discarded.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RepositoryFactory != nil {
		if err := c.RepositoryFactory.Close(); err != nil {
			c.Logger.Warn("error closing store", "error", err)
		} else {
			c.Logger.Debug("store closed", "driver", c.RepositoryFactory.Driver().String())
		}
	}
}
