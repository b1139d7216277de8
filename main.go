package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/thushan/shifter/internal/app"
	"github.com/thushan/shifter/internal/config"
	"github.com/thushan/shifter/internal/logger"
	"github.com/thushan/shifter/internal/util"
	"github.com/thushan/shifter/internal/version"
	"github.com/thushan/shifter/pkg/container"
)

func main() {
	// a missing .env is normal
	_ = godotenv.Load()

	fs := pflag.NewFlagSet(version.ShortName, pflag.ContinueOnError)
	config.RegisterFlags(fs)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if showVersion, _ := fs.GetBool(config.FlagVersion); showVersion {
		version.PrintVersionInfo(true, os.Stdout)
		os.Exit(0)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if printConfig, _ := fs.GetBool(config.FlagPrintConfig); printConfig {
		if err := cfg.WriteYAML(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print configuration: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	version.PrintVersionInfo(false, os.Stdout)

	logInstance, styledLogger, cleanup, err := logger.NewWithTheme(buildLoggerConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	slog.SetDefault(logInstance)

	styledLogger.Info("Initialising", "version", version.Version, "pid", os.Getpid())
	if cfg.Filename != "" {
		styledLogger.Info("Loaded configuration", "file", cfg.Filename)
	}

	if container.IsContainerised() && container.IsLoopback(cfg.Backend.Host) {
		styledLogger.WarnWithEndpoint("Running in a container but llama-server points at loopback, use the host address instead",
			cfg.Backend.URL().String())
	}

	application, err := app.New(cfg, styledLogger)
	if err != nil {
		logger.FatalWithCleanup(logInstance, cleanup, "Failed to create application", "error", err)
	}

	if cfg.Verbose {
		if err := app.PrintModeTables(os.Stdout, app.NewProfileTable(cfg)); err != nil {
			styledLogger.Warn("Failed to print mode tables", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.FatalWithCleanup(logInstance, cleanup, "Shifter exited with error", "error", err)
	}

	styledLogger.Info("Shifter has shutdown")
}

func buildLoggerConfig(cfg *config.Config) *logger.Config {
	level := cfg.Logging.Level
	if cfg.Verbose {
		level = logger.LogLevelDebug
	}

	return &logger.Config{
		Level:      level,
		FileOutput: cfg.Logging.FileOutput,
		LogDir:     cfg.Logging.LogDir,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Theme:      cfg.Logging.Theme,
		PrettyLogs: cfg.Logging.Pretty && util.ShouldUseColors(),
	}
}
