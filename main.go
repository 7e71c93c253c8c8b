package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olehluchkiv/docnote/internal/logging"
)

// app carries state shared by every subcommand once the root command has
// parsed its persistent flags.
type app struct {
	logFile  string
	logLevel string

	logger     *slog.Logger
	logCleanup func()
}

func main() {
	// Setup signal handling with context cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	// PersistentPostRun is skipped when RunE fails, so the log file is
	// closed here on every path.
	a.close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "docnote",
		Short: "Annotate Go doc comments with public API and version notes",
		Long: `docnote rewrites documentation comments according to a docnote.yaml
manifest: it marks symbols as public API, inserts versionadded and
deprecated notes after the summary, and attaches notes below individual
entries of a Google-style Args section.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging()
		},
	}

	root.PersistentFlags().StringVar(&a.logFile, "log-file", logging.DefaultFile, "log file path (empty logs to stderr only)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", envOr("DOCNOTE_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")

	root.AddCommand(
		newAnnotateCmd(a),
		newServeCmd(a),
		newRewriteCmd(a),
	)
	return root
}

func (a *app) setupLogging() error {
	level, err := parseLogLevel(a.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", a.logLevel, err)
	}

	logger, cleanup, err := logging.Setup(a.logFile, level)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logger = logger
	a.logCleanup = cleanup
	return nil
}

// close releases the log file. Safe to call more than once.
func (a *app) close() {
	if a.logCleanup != nil {
		a.logCleanup()
		a.logCleanup = nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s (valid: debug, info, warn, error)", s)
	}
}
