package subscribers_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/application/subscribers"
	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	"github.com/felixgeelhaar/meetingctl/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	meetings []*domain.Meeting
	err      error
}

func (s *stubLister) Handle(context.Context) ([]*domain.Meeting, error) {
	return s.meetings, s.err
}

func newMeeting(t *testing.T, name string) *domain.Meeting {
	t.Helper()
	start := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	m, err := domain.NewMeeting(name, "Owner", "desc", domain.CategoryHub, domain.TypeRemote, start, start.Add(time.Hour))
	require.NoError(t, err)
	return m
}

func TestAuditSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sub := subscribers.NewAuditSubscriber(logger)

	assert.Equal(t, []string{eventbus.AllEvents}, sub.EventTypes())

	err := sub.Handle(context.Background(), &eventbus.ConsumedEvent{
		AggregateID: 7,
		RoutingKey:  domain.RoutingKeyAttendeeAdded,
		Payload:     []byte(`{"person":"Ann"}`),
		Metadata:    eventbus.EventMetadata{CorrelationID: "corr-1"},
	})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "routing_key=meetings.attendee.added")
	assert.Contains(t, output, "aggregate_id=7")
	assert.Contains(t, output, "correlation_id=corr-1")
}

func TestStoreSizeSubscriber(t *testing.T) {
	t.Run("sets gauge to store size", func(t *testing.T) {
		metrics := observability.NewInMemoryMetrics()
		lister := &stubLister{meetings: []*domain.Meeting{newMeeting(t, "A"), newMeeting(t, "B")}}
		sub := subscribers.NewStoreSizeSubscriber(lister, metrics)

		require.NoError(t, sub.Handle(context.Background(), &eventbus.ConsumedEvent{RoutingKey: domain.RoutingKeyMeetingCreated}))
		assert.Equal(t, 2.0, metrics.GetGauge(observability.MetricMeetingsStored))

		lister.meetings = lister.meetings[:1]
		require.NoError(t, sub.Handle(context.Background(), &eventbus.ConsumedEvent{RoutingKey: domain.RoutingKeyMeetingDeleted}))
		assert.Equal(t, 1.0, metrics.GetGauge(observability.MetricMeetingsStored))
	})

	t.Run("lister error is returned", func(t *testing.T) {
		sub := subscribers.NewStoreSizeSubscriber(&stubLister{err: errors.New("boom")}, nil)

		err := sub.Handle(context.Background(), &eventbus.ConsumedEvent{})
		assert.ErrorContains(t, err, "boom")
	})

	t.Run("subscribes to create and delete only", func(t *testing.T) {
		sub := subscribers.NewStoreSizeSubscriber(&stubLister{}, nil)
		assert.ElementsMatch(t, []string{
			domain.RoutingKeyMeetingCreated,
			domain.RoutingKeyMeetingDeleted,
		}, sub.EventTypes())
	})
}
