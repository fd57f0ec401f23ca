package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexanderramin/polaris/internal/assistant"
	"github.com/alexanderramin/polaris/internal/cli"
	"github.com/alexanderramin/polaris/internal/config"
	"github.com/alexanderramin/polaris/internal/db"
	"github.com/alexanderramin/polaris/internal/llm"
	"github.com/alexanderramin/polaris/internal/notes"
	"github.com/alexanderramin/polaris/internal/repository"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

const hydrateTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	logger := newLogger(os.Stderr, os.Getenv("POLARIS_LOG_LEVEL"))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remote, closeRemote := openRemote(ctx, cfg, logger)
	defer closeRemote()

	opts := []notes.Option{
		notes.WithLogger(logger),
		notes.WithAckDuration(cfg.AckDuration()),
	}
	if cfg.Ack.Supersede {
		opts = append(opts, notes.WithSupersedingAck())
	}
	store := notes.New(repository.NewSQLiteLocalCache(database), remote, opts...)
	defer store.Close()

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(logger)
	}
	client, err := llm.NewClient(llmCfg, observer)
	if err != nil {
		return fmt.Errorf("configuring assistant: %w", err)
	}
	if !llmCfg.Configured() {
		logger.Info("assistant has no credentials; answers will report a connection error", "provider", llmCfg.Provider)
	}

	app := &cli.App{
		Notes:          store,
		Assistant:      assistant.NewGateway(client, assistant.WithGatewayLogger(logger)),
		Config:         cfg,
		Logger:         logger,
		HydrateTimeout: hydrateTimeout,
	}

	// Detect interactive terminal for the shell entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openRemote selects the remote note store from the configured URL. Any
// failure leaves the app in local-only mode.
func openRemote(ctx context.Context, cfg *config.Config, logger *slog.Logger) (notes.Remote, func()) {
	noop := func() {}
	if !cfg.RemoteConfigured() {
		return notes.Disabled(), noop
	}

	switch cfg.RemoteKind() {
	case config.RemoteREST:
		r, err := repository.NewRESTNoteRemote(cfg.Remote.URL, cfg.Remote.Key, cfg.Remote.Table)
		if err != nil {
			logger.Warn("remote disabled", "kind", config.RemoteREST, "error", err)
			return notes.Disabled(), noop
		}
		return notes.Enabled(r), noop

	case config.RemotePostgres, config.RemoteSQLite:
		dialect := repository.DialectPostgres
		if cfg.RemoteKind() == config.RemoteSQLite {
			dialect = repository.DialectSQLite
		}
		r, err := repository.OpenSQLNoteRemote(dialect, cfg.RemoteDSN(), cfg.Remote.Table)
		if err != nil {
			logger.Warn("remote disabled", "kind", dialect, "error", err)
			return notes.Disabled(), noop
		}
		schemaCtx, cancel := context.WithTimeout(ctx, hydrateTimeout)
		defer cancel()
		if err := r.EnsureSchema(schemaCtx); err != nil {
			// Still enabled: an unreachable remote only degrades hydration
			// and saves, which the store already tolerates.
			logger.Warn("preparing remote schema", "kind", dialect, "error", err)
		}
		return notes.Enabled(r), func() { r.Close() }
	}

	logger.Warn("remote disabled: unsupported url", "url", cfg.Remote.URL)
	return notes.Disabled(), noop
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level = slog.LevelWarn
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
			lvl = slog.LevelWarn
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
