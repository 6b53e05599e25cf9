package cli

import (
	"io"

	"github.com/alexanderramin/mapty/internal/mapview"
	"github.com/alexanderramin/mapty/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// App holds what CLI commands need. Startup has already run by the time any
// command executes.
type App struct {
	Workouts service.WorkoutService
	Position mapview.PositionProvider
	Zoom     int
	Logger   logrus.FieldLogger

	// LoadNotice is printed to stderr before each command when non-empty.
	LoadNotice string

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) mapView(w io.Writer) *mapview.View {
	return mapview.NewView(mapview.NewTextSurface(w), a.Position, a.Zoom, a.Logger)
}

// NewRootCmd creates the top-level "mapty" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "mapty",
		Short:         "Map-pinned running and cycling log",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.LoadNotice != "" {
				cmd.PrintErrln(app.LoadNotice)
			}
		},
	}
	root.PersistentFlags().String("config", "", "config file (default <data_dir>/config.yaml)")

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newShowCmd(app),
		newMapCmd(app),
		newBrowseCmd(app),
		newResetCmd(app),
		newImportCmd(app),
		newExportCmd(app),
	)

	return root
}
