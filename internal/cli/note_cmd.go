package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/polaris/internal/catalog"
	"github.com/alexanderramin/polaris/internal/cli/formatter"
	"github.com/alexanderramin/polaris/internal/domain"
	"github.com/spf13/cobra"
)

func newNoteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Draft questions and reflections for each strategy",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.hydrate(cmd.Context())
		},
	}

	cmd.AddCommand(
		newNoteShowCmd(app),
		newNoteSetCmd(app),
		newNoteClearCmd(app),
		newNoteEditCmd(app),
	)
	return cmd
}

func newNoteShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [strategy]",
		Short: "Show notes for one strategy, or a summary of all",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				snap, err := app.Notes.Snapshot()
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatNotesTable(catalog.IDs(), snap, app.Notes.RemoteEnabled()))
				return nil
			}

			id, err := resolveStrategy(strings.Join(args, " "))
			if err != nil {
				return err
			}
			q, err := app.Notes.Question(id)
			if err != nil {
				return err
			}
			r, err := app.Notes.Reflection(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, "  "+formatter.StorageMode(app.Notes.RemoteEnabled()))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatNotes(id, q, r))
			return nil
		},
	}
}

func newNoteSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <strategy> <question|reflection> <text...>",
		Short: "Replace a note and save it",
		Long: `Replace a note and save it. Questions longer than 250 characters are
truncated. With a configured remote the note is also synced to the cloud;
if that fails it is still kept locally.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveStrategy(args[0])
			if err != nil {
				return err
			}
			field, err := parseField(args[1])
			if err != nil {
				return err
			}
			return setAndSave(cmd.Context(), cmd.OutOrStdout(), app, id, field, strings.Join(args[2:], " "))
		},
	}
}

func newNoteClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <strategy>",
		Short: "Empty the drafted question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveStrategy(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if err := app.Notes.Clear(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("  Question cleared for "+string(id)+"."))
			return nil
		},
	}
}

func newNoteEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <strategy>",
		Short: "Edit both notes in an interactive form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return fmt.Errorf("note edit needs a terminal; use 'polaris note set' instead")
			}
			id, err := resolveStrategy(strings.Join(args, " "))
			if err != nil {
				return err
			}
			q, err := app.Notes.Question(id)
			if err != nil {
				return err
			}
			r, err := app.Notes.Reflection(id)
			if err != nil {
				return err
			}

			form := noteForm(id, catalog.ReflectionPrompts(catalog.MustLookup(id)), &q, &r)
			if err := form.RunWithContext(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := setAndSave(cmd.Context(), out, app, id, domain.FieldQuestion, q); err != nil {
				return err
			}
			return setAndSave(cmd.Context(), out, app, id, domain.FieldReflection, r)
		},
	}
}

// setAndSave stores value and saves the field, printing the
// acknowledgement.
func setAndSave(ctx context.Context, out io.Writer, app *App, id domain.StrategyID, field domain.NoteField, value string) error {
	if field == domain.FieldQuestion {
		value = domain.ClampQuestion(value)
	}
	if err := app.Notes.Set(ctx, id, field, value); err != nil {
		return err
	}
	res, err := app.Notes.Save(ctx, id, field)
	if err != nil {
		return err
	}
	fmt.Fprint(out, "  "+formatter.FormatSaveResult(field, app.Notes.RemoteEnabled(), res.RemoteErr))
	return nil
}
