package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/meetingctl/adapter/cli"
	"github.com/felixgeelhaar/meetingctl/pkg/config"
	"github.com/felixgeelhaar/meetingctl/pkg/observability"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development", LogLevel: "warn", StoreDriver: "memory"}
	}

	// Setup logger. Logs go to stderr unless LOG_FILE is set, so the
	// interactive screen stays readable.
	var output io.Writer = os.Stderr
	if cfg.LogFile != "" {
		file := observability.NewRotatingFile(cfg.LogFile)
		defer file.Close()
		output = file
	}

	level := new(slog.LevelVar)
	level.Set(observability.ParseLevel(cfg.LogLevel))

	logCfg := observability.DefaultLogConfig()
	logCfg.Leveler = level
	logCfg.Format = observability.LogFormat(cfg.LogFormat)
	logCfg.AddSource = cfg.LogAddSource
	logCfg.Output = output
	logCfg.ServiceVersion = cli.Version
	logger := observability.NewLogger(logCfg)
	slog.SetDefault(logger)

	// Create context cancelled by shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.SetConfig(cfg)
	cli.SetLogger(logger)
	cli.SetLogLevel(level)

	// Execute CLI
	cli.ExecuteContext(ctx)
}
