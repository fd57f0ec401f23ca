package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/alexanderramin/polaris/internal/markup"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `ask <strategy> "<question>"`,
		Short: "Ask the assistant about running a strategy",
		Long: `Ask the assistant a single question grounded in one strategy and the
instructor guide. The assistant only answers from that material.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveStrategy(args[0])
			if err != nil {
				return err
			}
			question := strings.Join(args[1:], " ")
			if strings.TrimSpace(question) == "" {
				return fmt.Errorf("question is empty")
			}

			stop := func() {}
			if app.IsInteractive != nil && app.IsInteractive() {
				stop = formatter.StartSpinner(os.Stderr, "Thinking...")
			}
			reply := app.Assistant.Answer(cmd.Context(), question, catalog.MustLookup(id))
			stop()

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMarkup(markup.Parse(reply)))
			return nil
		},
	}
}

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [text...]",
		Short: "Render assistant-style markup (reads stdin without arguments)",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading stdin: %w", err)
				}
				text = strings.TrimRight(string(raw), "\n")
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMarkup(markup.Parse(text)))
			return nil
		},
	}
}
