package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse strategies, edit notes and chat in a full-screen shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), app)
		},
	}
}

func runShell(ctx context.Context, app *App) error {
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(newAppModel(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running shell: %w", err)
	}
	return nil
}
