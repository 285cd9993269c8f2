package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/krogueintel/batchbuffer-logger-all/internal/cmd/inspect"
	recordcmd "github.com/krogueintel/batchbuffer-logger-all/internal/cmd/record"
	"github.com/krogueintel/batchbuffer-logger-all/internal/config"
	logpkg "github.com/krogueintel/batchbuffer-logger-all/pkg/log"
)

func main() {
	// Resolve config the same way the interception layer does: built-in
	// defaults overlaid with I965_BLACKBOX_* environment variables.
	cfg := config.Default()
	config.FromEnv(&cfg)

	level, err := logpkg.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if cfg.LogFormat == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(level),
		logpkg.WithFormatter(formatter),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	rootCmd := &cobra.Command{
		Use:   "blackbox",
		Short: "Blackbox trace recorder CLI",
		Long:  "Blackbox records block-framed GPU traces for post-mortem triage. This CLI inspects trace files and can drive recording sessions for testing.",
	}
	rootCmd.AddCommand(inspect.NewDumpCommand())
	rootCmd.AddCommand(inspect.NewVerifyCommand())
	rootCmd.AddCommand(inspect.NewStatCommand())
	rootCmd.AddCommand(inspect.NewWatchCommand(logger))
	rootCmd.AddCommand(recordcmd.New(cfg, logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
