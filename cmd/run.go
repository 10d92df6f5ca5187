package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumilearn/lumi/internal/app"
	"github.com/lumilearn/lumi/internal/llm"
	"github.com/lumilearn/lumi/internal/store"
	"github.com/lumilearn/lumi/internal/tutor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger, closeLog := newLogger()
	defer closeLog()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, logger)
	if err != nil {
		return fmt.Errorf("no tutor available: %w\n\nSet GEMINI_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY and try again", err)
	}

	return app.Run(app.Options{
		Tutor:     tutor.New(provider, tutor.DefaultConfig()),
		Snapshots: st.Snapshots(),
		Logger:    logger,
	})
}

// newLogger writes structured logs to the file named by LUMI_LOG.
// Logging is disabled otherwise; the TUI owns stderr.
func newLogger() (*slog.Logger, func()) {
	path := os.Getenv("LUMI_LOG")
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() { f.Close() }
}
