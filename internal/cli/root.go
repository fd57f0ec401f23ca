package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/polaris/internal/assistant"
	"github.com/alexanderramin/polaris/internal/config"
	"github.com/alexanderramin/polaris/internal/notes"
	"github.com/spf13/cobra"
)

// App holds the components every command works against.
type App struct {
	Notes     *notes.Store
	Assistant assistant.Answerer
	Config    *config.Config
	Logger    *slog.Logger

	// IsInteractive reports whether stdin is a terminal. When nil the
	// shell is never started implicitly.
	IsInteractive func() bool

	// HydrateTimeout bounds the initial note load. Zero means no limit.
	HydrateTimeout time.Duration
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// hydrate loads notes once. Later calls return immediately.
func (a *App) hydrate(ctx context.Context) {
	if a.HydrateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.HydrateTimeout)
		defer cancel()
	}
	a.Notes.Hydrate(ctx)
}

// NewRootCmd creates the top-level "polaris" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "polaris",
		Short:         "Instructor guide for active-learning strategies",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runShell(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newStrategiesCmd(),
		newShowCmd(app),
		newFindCmd(),
		newNoteCmd(app),
		newAskCmd(app),
		newRenderCmd(),
		newShellCmd(app),
		newServeCmd(app),
	)

	return root
}
