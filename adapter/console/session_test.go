package console

import (
	"context"
	"strings"
	"testing"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSessionFixture builds a session whose terminal reads input.
func newSessionFixture(t *testing.T, input string) (*Session, *fixture, *observability.InMemoryMetrics) {
	t.Helper()
	f := newFixture(t, input)
	metrics := observability.NewInMemoryMetrics()
	return NewSession(f.terminal, f.navigator, discardLogger(), metrics), f, metrics
}

func TestSession_Run(t *testing.T) {
	session, f, metrics := newSessionFixture(t, "2\nFC hub\nzzz\nx\n")
	f.seed(t, "A", domain.CategoryHub, "2025-01-01 10:00", "2025-01-01 11:00")
	f.seed(t, "B", domain.CategoryShort, "2025-01-02 10:00", "2025-01-02 11:00")

	require.NoError(t, session.Run(context.Background()))

	output := f.out.String()
	assert.Equal(t, 1, strings.Count(output, "Welcome to the internal meetings!"))
	assert.Contains(t, output, "Applied filter by category")
	assert.Contains(t, output, `Unknown command "zzz"`)
	assert.Contains(t, output, "[21] Select meeting 'A'")

	ok := observability.T("outcome", observability.OutcomeOK)
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricCommandsTotal, observability.T("command", "list_meetings"), ok))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricCommandsTotal, observability.T("command", "filter_category"), ok))
	assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricErrorsTotal, observability.T("kind", "unknown_command")))
}

func TestSession_RunEndsOnExhaustedInput(t *testing.T) {
	session, f, _ := newSessionFixture(t, "2\n")

	require.NoError(t, session.Run(context.Background()))
	assert.Contains(t, f.out.String(), "MEETINGS LIST")
}

func TestSession_RunKeepsGoingAfterLongLine(t *testing.T) {
	t.Run("line beyond the default scanner buffer", func(t *testing.T) {
		input := "bogus " + strings.Repeat("a", 70<<10) + "\n2\nx\n"
		session, f, _ := newSessionFixture(t, input)

		require.NoError(t, session.Run(context.Background()))

		output := f.out.String()
		assert.Contains(t, output, `Unknown command "bogus"`)
		assert.Contains(t, output, "MEETINGS LIST")
	})

	t.Run("line over the limit is a parse failure", func(t *testing.T) {
		session, f, metrics := newSessionFixture(t, "abcdefghijklmnop\n2\nx\n")
		f.terminal.maxLine = 8

		require.NoError(t, session.Run(context.Background()))

		output := f.out.String()
		assert.Contains(t, output, "Input line is too long")
		assert.Contains(t, output, "MEETINGS LIST")
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricErrorsTotal, observability.T("kind", "parse")))
	})
}

func TestSession_RunStopsWhenCancelled(t *testing.T) {
	session, f, _ := newSessionFixture(t, "2\nx\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, session.Run(ctx))
	assert.Contains(t, f.out.String(), "Welcome to the internal meetings!")
	assert.NotContains(t, f.out.String(), "MEETINGS LIST")
}

func TestSession_Step(t *testing.T) {
	session, _, metrics := newSessionFixture(t, "")

	t.Run("unknown command re-renders the same view", func(t *testing.T) {
		list := ListView(nil, Messages{Success: "old"})

		next, ok := session.Step(context.Background(), list, "nope")

		assert.True(t, ok)
		assert.Equal(t, ViewList, next.Kind)
		assert.Empty(t, next.Messages.Success)
		assert.Equal(t, `Unknown command "nope"`, next.Messages.Failure)
		assert.Equal(t, invocations(list), invocations(next))
	})

	t.Run("failed command is counted by kind", func(t *testing.T) {
		next, ok := session.Step(context.Background(), ListView(nil, Messages{}), "FN many")

		assert.True(t, ok)
		assert.NotEmpty(t, next.Messages.Failure)
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricErrorsTotal, observability.T("kind", "parse")))
		assert.Equal(t, int64(1), metrics.GetCounter(observability.MetricCommandsTotal,
			observability.T("command", "filter_min_attendees"), observability.T("outcome", observability.OutcomeError)))
	})

	t.Run("quit ends the session", func(t *testing.T) {
		_, ok := session.Step(context.Background(), MainView(Messages{}), "x")
		assert.False(t, ok)
	})
}
