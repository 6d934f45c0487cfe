package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/felixgeelhaar/meetingctl/adapter/api"
	"github.com/felixgeelhaar/meetingctl/adapter/console"
	"github.com/felixgeelhaar/meetingctl/internal/app"
	"github.com/felixgeelhaar/meetingctl/pkg/config"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	seedPath    string
	storeDriver string
	verbose     bool

	cfg      *config.Config
	logger   *slog.Logger
	logLevel *slog.LevelVar
)

// sessionDrainTimeout bounds how long an interrupted session may take to
// return.
const sessionDrainTimeout = 2 * time.Second

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meetingctl",
	Short: "meetingctl - internal meetings manager",
	Long: `meetingctl is an interactive console for internal meetings.

	Create meetings, browse and filter them, and manage who attends.
	Meetings live for the duration of the session.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		if verbose && logLevel != nil {
			logLevel.Set(slog.LevelDebug)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		info := commandContext{
			correlationID: uuid.New(),
			startedAt:     time.Now(),
		}
		ctx = observability.WithCorrelationID(ctx, info.correlationID.String())
		cmd.SetContext(context.WithValue(ctx, commandContextKey{}, info))
		logger.Info("command start",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.Info("command end",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
	RunE: runSession,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx. Cancelling ctx ends an
// interactive session.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&seedPath, "seed", "s", "", "YAML file with meetings to load at startup (overrides SEED_PATH)")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "meeting store: memory or sqlite (overrides STORE_DRIVER)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetLogLevel sets the level --verbose raises to debug.
func SetLogLevel(level *slog.LevelVar) {
	logLevel = level
}

// SetConfig sets the configuration the commands start from.
func SetConfig(c *config.Config) {
	cfg = c
}

// effectiveConfig returns a copy of the configuration with flag overrides
// applied.
func effectiveConfig() (*config.Config, error) {
	base := cfg
	if base == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		base = loaded
	}

	out := *base
	if seedPath != "" {
		out.SeedPath = seedPath
	}
	if storeDriver != "" {
		out.StoreDriver = strings.TrimSpace(storeDriver)
	}
	return &out, nil
}

// buildContainer wires the application and applies the seed file.
func buildContainer(ctx context.Context) (*app.Container, *config.Config, error) {
	c, err := effectiveConfig()
	if err != nil {
		return nil, nil, err
	}

	container, err := app.NewContainer(ctx, c, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize container: %w", err)
	}

	if c.SeedPath != "" {
		if err := container.SeedFile(ctx, c.SeedPath); err != nil {
			container.Close()
			return nil, nil, fmt.Errorf("failed to seed meetings: %w", err)
		}
	}
	return container, c, nil
}

// startTelemetry serves metrics and health when an address is configured.
// The returned stop function is always safe to call.
func startTelemetry(c *config.Config, container *app.Container) (func(), error) {
	if !c.MetricsEnabled() {
		return func() {}, nil
	}

	serverCfg := api.DefaultServerConfig()
	serverCfg.Addr = c.MetricsAddr
	server := api.NewServer(serverCfg, container.Metrics.Handler(), container.Health.Handler(), logger)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("failed to start telemetry server: %w", err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.MetricsShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn("telemetry server shutdown error", "error", err)
		}
	}, nil
}

func runSession(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	container, c, err := buildContainer(ctx)
	if err != nil {
		return err
	}
	defer container.Close()

	stopTelemetry, err := startTelemetry(c, container)
	if err != nil {
		return err
	}
	defer stopTelemetry()

	cliApp := NewAppFromContainer(container)
	terminal := console.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
	navigator := console.NewNavigator(cliApp.ConsoleHandlers(), terminal, logger)
	session := console.NewSession(terminal, navigator, logger, cliApp.Metrics)

	done := make(chan error, 1)
	go func() {
		done <- session.Run(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logger.Info("session interrupted")
		// Let an in-flight command finish before the store is closed. A
		// session blocked on input never reaches another handler once ctx
		// is done.
		select {
		case <-done:
		case <-time.After(sessionDrainTimeout):
			logger.Warn("session did not stop in time", "timeout", sessionDrainTimeout.String())
		}
		return nil
	}
}
