package observability

import (
	"context"
	"log/slog"
	"time"
)

// Outcome label values recorded on MetricCommandsTotal.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Timer tracks the duration of a console command and records metrics.
type Timer struct {
	command string
	start   time.Time
	logger  *slog.Logger
	metrics Metrics
}

// StartTimer creates a new timer for the given command.
func StartTimer(command string) *Timer {
	return &Timer{
		command: command,
		start:   time.Now(),
	}
}

// WithLogger adds a logger to the timer for automatic logging on stop.
func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

// WithMetrics adds a metrics collector to the timer.
func (t *Timer) WithMetrics(metrics Metrics) *Timer {
	t.metrics = metrics
	return t
}

// Stop records a successful command.
func (t *Timer) Stop(ctx context.Context) time.Duration {
	return t.StopWithError(ctx, nil)
}

// StopWithError records the command duration and outcome.
func (t *Timer) StopWithError(ctx context.Context, err error) time.Duration {
	duration := time.Since(t.start)

	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}

	if t.logger != nil {
		attrs := []any{
			slog.String("command", t.command),
			slog.Int64(DurationKey, duration.Milliseconds()),
			slog.String(OutcomeKey, outcome),
		}
		if err != nil {
			attrs = append(attrs, slog.String(ErrorKey, err.Error()))
		}
		t.logger.DebugContext(ctx, "command finished", attrs...)
	}

	if t.metrics != nil {
		t.metrics.Timing(MetricCommandDuration, duration, T("command", t.command))
		t.metrics.Counter(MetricCommandsTotal, 1, T("command", t.command), T("outcome", outcome))
	}

	return duration
}

// TimeCommandResult runs fn under a timer and returns its result.
func TimeCommandResult[T any](ctx context.Context, logger *slog.Logger, metrics Metrics, command string, fn func() (T, error)) (T, error) {
	timer := StartTimer(command).
		WithLogger(logger).
		WithMetrics(metrics)

	result, err := fn()
	timer.StopWithError(ctx, err)
	return result, err
}
