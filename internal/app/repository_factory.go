package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	meetingsDomain "github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	meetingsPersistence "github.com/felixgeelhaar/meetingctl/internal/meetings/infrastructure/persistence"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/migrations"
)

// RepositoryFactory creates repositories based on the store driver.
type RepositoryFactory struct {
	driver database.Driver
	db     *sql.DB
}

// NewRepositoryFactory prepares the backing store for driver. The sqlite
// driver opens a private in-memory database and applies the schema.
func NewRepositoryFactory(ctx context.Context, driver database.Driver, logger *slog.Logger) (*RepositoryFactory, error) {
	f := &RepositoryFactory{driver: driver}

	switch driver {
	case database.DriverMemory:
		return f, nil

	case database.DriverSQLite:
		db, err := sqlite.Open(ctx, sqlite.MemoryDSN)
		if err != nil {
			return nil, err
		}
		logger.Debug("running SQLite migrations")
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		f.db = db
		return f, nil

	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

// Driver returns the configured driver.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.driver
}

// MeetingRepository creates a meeting repository for the configured driver.
func (f *RepositoryFactory) MeetingRepository() (meetingsDomain.Repository, error) {
	switch f.driver {
	case database.DriverMemory:
		return meetingsPersistence.NewInMemoryMeetingRepository(), nil

	case database.DriverSQLite:
		db, err := f.getSQLiteDB()
		if err != nil {
			return nil, err
		}
		return meetingsPersistence.NewSQLiteMeetingRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported driver: %s", f.driver)
	}
}

// Ping checks the backing store. The memory store is always available.
func (f *RepositoryFactory) Ping(ctx context.Context) error {
	if f.db == nil {
		return nil
	}
	return f.db.PingContext(ctx)
}

// Close releases the backing store. Its data is gone afterwards.
func (f *RepositoryFactory) Close() error {
	if f.db == nil {
		return nil
	}
	return f.db.Close()
}

func (f *RepositoryFactory) getSQLiteDB() (*sql.DB, error) {
	if f.db == nil {
		return nil, fmt.Errorf("sqlite store is not open")
	}
	return f.db, nil
}
