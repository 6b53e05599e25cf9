package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/contract"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/mapview"
	"github.com/spf13/cobra"
)

// resolveWorkoutID accepts a full id or a unique prefix of one.
func resolveWorkoutID(ctx context.Context, app *App, input string) (*domain.Workout, error) {
	if input == "" {
		return nil, fmt.Errorf("workout ID is required")
	}
	if w, err := app.Workouts.GetByID(ctx, input); err == nil {
		return w, nil
	}

	var matches []*domain.Workout
	for _, w := range app.Workouts.List(ctx) {
		if strings.HasPrefix(w.ID, input) {
			matches = append(matches, w)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("workout not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("workout ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func renderRecords(workouts []*domain.Workout) []contract.RenderRecord {
	records := make([]contract.RenderRecord, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, contract.NewRenderRecord(w))
	}
	return records
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List workouts, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workouts := app.Workouts.List(context.Background())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkoutList(renderRecords(workouts)))
			return nil
		},
	}
}

// showWorkout centres the map on w and prints its detail card.
func showWorkout(app *App, out io.Writer, w *domain.Workout) {
	zoom := app.Zoom
	if zoom <= 0 {
		zoom = mapview.DefaultZoom
	}
	fmt.Fprintln(out, formatter.FormatWorkoutDetail(contract.NewRenderRecord(w), mapview.OSMLink(w.Coords, zoom)))
	app.mapView(out).MoveTo(w)
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one workout and centre the map on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resolveWorkoutID(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			showWorkout(app, cmd.OutOrStdout(), w)
			return nil
		},
	}
}

func newMapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "map",
		Short: "Pin every workout on the map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			view := app.mapView(cmd.OutOrStdout())
			view.Locate(ctx)
			workouts := app.Workouts.List(ctx)
			if len(workouts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No workouts to pin."))
				return nil
			}
			view.Pin(workouts)
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every stored workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			n := len(app.Workouts.List(ctx))
			if !yes {
				msg := fmt.Sprintf("Delete all %d workouts? This cannot be undone. [y/N] ", n)
				if !promptYesNoIO(cmd.InOrStdin(), cmd.OutOrStdout(), msg) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Workouts.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d workouts.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Merge workouts from a JSON export (\"-\" reads stdin)",
		Long: `Merge workouts from a JSON export. The browser version's localStorage
value (key "workout") is accepted as is. Workouts whose id is already
present are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading import: %w", err)
			}

			res, err := app.Workouts.Import(context.Background(), data)
			if res != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d workouts.\n", res.Added, res.Read)
			}
			return err
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all workouts as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := app.Workouts.Export(context.Background())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
