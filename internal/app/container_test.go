package app

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	meetingCommands "github.com/felixgeelhaar/meetingctl/internal/meetings/application/commands"
	"github.com/felixgeelhaar/meetingctl/internal/meetings/infrastructure/seed"
	"github.com/felixgeelhaar/meetingctl/pkg/config"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T, driver string, logger *slog.Logger) *Container {
	t.Helper()
	cfg := &config.Config{AppEnv: "test", StoreDriver: driver}
	c, err := NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func storedGauge(t *testing.T, c *Container) float64 {
	t.Helper()
	families, err := c.Metrics.Registry().Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() == observability.MetricMeetingsStored {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("metric %s not gathered", observability.MetricMeetingsStored)
	return 0
}

var testRecords = []seed.Record{
	{
		Name: "Sprint planning", ResponsiblePerson: "Alice", Description: "Plan",
		Category: "CodeMonkey", Type: "InPerson",
		Start: "2030-01-07 09:00", End: "2030-01-07 11:00",
		Attendees: []string{"Bob", "Carol"},
	},
	{
		Name: "Coffee chat", ResponsiblePerson: "Bob", Description: "Hangout",
		Category: "teambuilding", Type: "remote",
		Start: "2030-01-07 10:30", End: "2030-01-07 11:00",
	},
}

func TestNewContainer(t *testing.T) {
	for _, driver := range []string{"", "memory", "sqlite"} {
		t.Run("driver="+driver, func(t *testing.T) {
			c := newTestContainer(t, driver, discardLogger())

			assert.NotNil(t, c.MeetingRepo)
			assert.NotNil(t, c.CreateMeetingHandler)
			assert.NotNil(t, c.DeleteMeetingHandler)
			assert.NotNil(t, c.AddAttendeeHandler)
			assert.NotNil(t, c.RemoveAttendeeHandler)
			assert.NotNil(t, c.ListMeetingsHandler)
			assert.NotNil(t, c.GetMeetingHandler)
			assert.Equal(t, 2, c.EventBus.GetRegistry().ConsumerCount())

			health := c.Health.Check(context.Background())
			assert.Equal(t, observability.HealthStatusHealthy, health.Status)
		})
	}
}

func TestNewContainer_UnknownDriver(t *testing.T) {
	_, err := NewContainer(context.Background(), &config.Config{StoreDriver: "postgres"}, discardLogger())
	assert.ErrorContains(t, err, "unsupported store driver")
}

func TestContainer_Seed(t *testing.T) {
	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			c := newTestContainer(t, driver, discardLogger())
			ctx := context.Background()

			require.NoError(t, c.Seed(ctx, testRecords))

			meetings, err := c.ListMeetingsHandler.Handle(ctx)
			require.NoError(t, err)
			require.Len(t, meetings, 2)
			assert.Equal(t, 1, meetings[0].ID())
			assert.Equal(t, []string{"Bob", "Carol"}, meetings[0].Attendees())
			assert.Equal(t, 2, meetings[1].ID())
			assert.Equal(t, "TeamBuilding", string(meetings[1].Category()))
			assert.Equal(t, 2.0, storedGauge(t, c))
		})
	}
}

func TestContainer_SeedStopsOnInvalidRecord(t *testing.T) {
	c := newTestContainer(t, "memory", discardLogger())
	records := []seed.Record{testRecords[0], {Name: "Broken", Category: "Nope"}}

	err := c.Seed(context.Background(), records)
	require.Error(t, err)

	meetings, err := c.ListMeetingsHandler.Handle(context.Background())
	require.NoError(t, err)
	assert.Len(t, meetings, 1)
}

func TestContainer_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	doc := `meetings:
  - name: Retro
    responsible_person: Dana
    description: Look back
    category: hub
    type: InPerson
    start: "2030-02-01 15:00"
    end: "2030-02-01 16:00"
    attendees: [Eve]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c := newTestContainer(t, "memory", discardLogger())
	require.NoError(t, c.SeedFile(context.Background(), path))

	m, err := c.GetMeetingHandler.Handle(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Retro", m.Name())
	assert.Equal(t, []string{"Eve"}, m.Attendees())
}

func TestContainer_EventsReachSubscribers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newTestContainer(t, "memory", logger)
	ctx := observability.WithCorrelationID(context.Background(), "corr-42")

	require.NoError(t, c.Seed(ctx, testRecords[1:]))
	assert.Equal(t, 1.0, storedGauge(t, c))

	_, err := c.AddAttendeeHandler.Handle(ctx, meetingCommands.AddAttendeeCommand{MeetingID: 1, Person: "Zed"})
	require.NoError(t, err)

	require.NoError(t, c.DeleteMeetingHandler.Handle(ctx, 1))
	assert.Equal(t, 0.0, storedGauge(t, c))

	output := buf.String()
	assert.Contains(t, output, "routing_key=meetings.meeting.created")
	assert.Contains(t, output, "routing_key=meetings.attendee.added")
	assert.Contains(t, output, "routing_key=meetings.meeting.deleted")
	assert.Contains(t, output, "correlation_id=corr-42")
	assert.Contains(t, output, "operation=audit")
}

func TestContainer_StartupAndSeedLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := newTestContainer(t, "memory", logger)

	path := filepath.Join(t.TempDir(), "meetings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("meetings: []\n"), 0o600))
	require.NoError(t, c.SeedFile(context.Background(), path))

	output := buf.String()
	assert.Contains(t, output, "event bus ready")
	assert.Contains(t, output, "consumers=2")
	assert.Contains(t, output, "event_types=#,meetings.meeting.created,meetings.meeting.deleted")
	assert.Contains(t, output, "env=test")
	assert.Contains(t, output, "operation=seed")
}
