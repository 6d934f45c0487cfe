package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/felixgeelhaar/meetingctl/internal/meetings/domain"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
)

// Session is the read-dispatch-render loop over one terminal.
type Session struct {
	terminal  *Terminal
	navigator *Navigator
	logger    *slog.Logger
	metrics   observability.Metrics
}

// NewSession creates a session. Nil logger and metrics fall back to the
// default logger and a no-op collector.
func NewSession(terminal *Terminal, navigator *Navigator, logger *slog.Logger, metrics observability.Metrics) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &Session{
		terminal:  terminal,
		navigator: navigator,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run shows the main menu and processes one line at a time until the user
// quits or input is exhausted. Cancelling ctx ends it after the current
// read. Only I/O failures are returned.
func (s *Session) Run(ctx context.Context) error {
	view := MainView(Messages{})

	for {
		s.terminal.Clear()
		if err := view.Render(s.terminal.Out()); err != nil {
			return fmt.Errorf("render view: %w", err)
		}

		line, err := s.terminal.ReadLine()
		if errors.Is(err, io.EOF) {
			s.logger.InfoContext(ctx, "input exhausted, ending session")
			return nil
		}
		if ctx.Err() != nil {
			s.logger.InfoContext(ctx, "session cancelled")
			return nil
		}
		if errors.Is(err, errLineTooLong) {
			s.recordError(ctx, err)
			view = view.WithMessages(Messages{Failure: failureText(err)})
			continue
		}
		if err != nil {
			return err
		}

		next, ok := s.Step(ctx, view, line)
		if !ok {
			s.logger.InfoContext(ctx, "session ended by user")
			return nil
		}
		view = next
	}
}

// Step dispatches one line against view and returns the view to show next.
// ok is false when the session should end.
func (s *Session) Step(ctx context.Context, view View, line string) (View, bool) {
	ctx = observability.WithCorrelationID(ctx, "")

	cmd, args, err := Dispatch(view, line)
	if err != nil {
		s.recordError(ctx, err)
		s.logger.DebugContext(ctx, "command not dispatched", "input", line, observability.ErrorKey, err)
		return view.WithMessages(Messages{Failure: failureText(err)}), true
	}

	ctx = observability.WithOperation(ctx, cmd.Kind.String())
	transition, err := observability.TimeCommandResult(ctx, s.logger, s.metrics, cmd.Kind.String(), func() (Transition, error) {
		return s.navigator.Execute(ctx, view, cmd, args)
	})
	if err != nil {
		s.recordError(ctx, err)
	}

	return transition.Next()
}

func (s *Session) recordError(ctx context.Context, err error) {
	kind := string(domain.KindOf(err))
	if kind == "" {
		kind = "internal"
		s.logger.ErrorContext(ctx, "command failed", observability.ErrorKey, err)
	}
	s.metrics.Counter(observability.MetricErrorsTotal, 1, observability.T("kind", kind))
}
