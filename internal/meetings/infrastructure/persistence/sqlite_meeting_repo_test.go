package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMeetingTestDB creates an in-memory SQLite database with the schema applied.
func setupMeetingTestDB(t *testing.T) *SQLiteMeetingRepository {
	t.Helper()
	ctx := context.Background()

	sqlDB, err := sqlite.Open(ctx, sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migrations.RunSQLiteMigrations(ctx, sqlDB))
	return NewSQLiteMeetingRepository(sqlDB)
}

func repositories(t *testing.T) map[string]domain.Repository {
	return map[string]domain.Repository{
		"memory": NewInMemoryMeetingRepository(),
		"sqlite": setupMeetingTestDB(t),
	}
}

func storeMeeting(t *testing.T, repo domain.Repository, name string, attendees ...string) *domain.Meeting {
	t.Helper()
	ctx := context.Background()

	start := time.Date(2030, 3, 1, 9, 0, 0, 0, time.Local)
	m, err := domain.NewMeeting(name, "Alice", "About "+name, domain.CategoryTeamBuilding, domain.TypeInPerson, start, start.Add(time.Hour))
	require.NoError(t, err)

	id, err := repo.NextID(ctx)
	require.NoError(t, err)
	m.AssignID(id)
	for _, a := range attendees {
		require.NoError(t, m.AddAttendee(a))
	}
	require.NoError(t, repo.Save(ctx, m))
	return m
}

func TestMeetingRepository_NextID(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first, err := repo.NextID(ctx)
			require.NoError(t, err)
			second, err := repo.NextID(ctx)
			require.NoError(t, err)

			assert.Equal(t, 1, first)
			assert.Equal(t, 2, second)
		})
	}
}

func TestMeetingRepository_SaveAndFind(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			saved := storeMeeting(t, repo, "Offsite", "Bob", "Carol")

			found, err := repo.FindByID(ctx, saved.ID())
			require.NoError(t, err)
			require.NotNil(t, found)

			assert.Equal(t, saved.ID(), found.ID())
			assert.Equal(t, "Offsite", found.Name())
			assert.Equal(t, "Alice", found.ResponsiblePerson())
			assert.Equal(t, "About Offsite", found.Description())
			assert.Equal(t, domain.CategoryTeamBuilding, found.Category())
			assert.Equal(t, domain.TypeInPerson, found.Type())
			assert.True(t, saved.StartDate().Equal(found.StartDate()))
			assert.True(t, saved.EndDate().Equal(found.EndDate()))
			assert.Equal(t, []string{"Bob", "Carol"}, found.Attendees())
		})
	}
}

func TestMeetingRepository_FindByID_NotFound(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			found, err := repo.FindByID(context.Background(), 42)
			require.NoError(t, err)
			assert.Nil(t, found)
		})
	}
}

func TestMeetingRepository_SaveUpdatesRoster(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			m := storeMeeting(t, repo, "Offsite", "Bob", "Carol")

			loaded, err := repo.FindByID(ctx, m.ID())
			require.NoError(t, err)
			require.NoError(t, loaded.RemoveAttendee("Bob"))
			require.NoError(t, loaded.AddAttendee("Dave"))
			require.NoError(t, repo.Save(ctx, loaded))

			found, err := repo.FindByID(ctx, m.ID())
			require.NoError(t, err)
			assert.Equal(t, []string{"Carol", "Dave"}, found.Attendees())

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestMeetingRepository_FindAllKeepsInsertionOrder(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			storeMeeting(t, repo, "First", "Bob")
			storeMeeting(t, repo, "Second")
			storeMeeting(t, repo, "Third", "Carol", "Bob")

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "First", all[0].Name())
			assert.Equal(t, "Second", all[1].Name())
			assert.Equal(t, "Third", all[2].Name())
			assert.Equal(t, []string{"Carol", "Bob"}, all[2].Attendees())
			assert.Empty(t, all[1].Attendees())
		})
	}
}

func TestMeetingRepository_FindAllReturnsFreshSlice(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			storeMeeting(t, repo, "First")
			storeMeeting(t, repo, "Second")

			snapshot, err := repo.FindAll(ctx)
			require.NoError(t, err)
			snapshot[0] = nil

			again, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.NotNil(t, again[0])
			assert.Equal(t, "First", again[0].Name())
		})
	}
}

func TestMeetingRepository_Delete(t *testing.T) {
	for name, repo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := storeMeeting(t, repo, "First", "Bob")
			second := storeMeeting(t, repo, "Second")

			require.NoError(t, repo.Delete(ctx, first.ID()))
			require.NoError(t, repo.Delete(ctx, 99))

			found, err := repo.FindByID(ctx, first.ID())
			require.NoError(t, err)
			assert.Nil(t, found)

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, second.ID(), all[0].ID())

			next, err := repo.NextID(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, next, "deleted IDs are never reused")
		})
	}
}
