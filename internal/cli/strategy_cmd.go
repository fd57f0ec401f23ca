package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "strategies",
		Aliases: []string{"ls", "list"},
		Short:   "List the active-learning strategies",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStrategyList(catalog.All()))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var withNotes bool
	var speaker bool

	cmd := &cobra.Command{
		Use:   "show <strategy>",
		Short: "Show a strategy's facilitation guide",
		Long: `Show the overview, facilitation flow, tips and reflection prompts of a
strategy. The strategy may be given by exact id or any unique fuzzy match,
e.g. "think" for Think-Pair-Share.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveStrategy(strings.Join(args, " "))
			if err != nil {
				return err
			}
			s := catalog.MustLookup(id)
			view := formatter.StrategyView{
				Strategy:          s,
				ReflectionPrompts: catalog.ReflectionPrompts(s),
			}
			if speaker {
				view.SpeakerNotes = make([][]string, len(s.Flow))
				for i, step := range s.Flow {
					view.SpeakerNotes[i] = catalog.SpeakerLines(step.Prompt)
				}
			}
			if withNotes {
				app.hydrate(cmd.Context())
				if view.Question, err = app.Notes.Question(id); err != nil {
					return err
				}
				if view.Reflection, err = app.Notes.Reflection(id); err != nil {
					return err
				}
				view.ShowNotes = true
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStrategy(view))
			return nil
		},
	}

	cmd.Flags().BoolVar(&withNotes, "notes", false, "Include your drafted question and reflection")
	cmd.Flags().BoolVar(&speaker, "speaker", false, "Reveal speaker notes for every step")
	return cmd
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <term>",
		Short: "Search strategies by name, purpose or tool",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStrategyList(catalog.Find(strings.Join(args, " "))))
			return nil
		},
	}
}
