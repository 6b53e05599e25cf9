package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/mapty/internal/cli/formatter"
	"github.com/alexanderramin/mapty/internal/contract"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/mapview"
	"github.com/alexanderramin/mapty/internal/service"
	"github.com/spf13/cobra"
)

// addInput is the raw form state. Every field stays text until submit so
// blank and garbage input reach validation unchanged.
type addInput struct {
	Kind      string
	Lat       string
	Lng       string
	Distance  string
	Duration  string
	Cadence   string
	Elevation string
}

func (in addInput) metric(kind domain.Kind) string {
	if kind == domain.KindCycling {
		return in.Elevation
	}
	return in.Cadence
}

func (in addInput) toWorkoutInput() (domain.WorkoutInput, error) {
	kind, err := domain.ParseKind(in.Kind)
	if err != nil {
		return domain.WorkoutInput{}, err
	}
	return domain.WorkoutInput{
		Kind: kind,
		Coords: domain.Coordinates{
			Lat: domain.ParseNumber(in.Lat),
			Lng: domain.ParseNumber(in.Lng),
		},
		DistanceKm:  domain.ParseNumber(in.Distance),
		DurationMin: domain.ParseNumber(in.Duration),
		Metric:      domain.ParseNumber(in.metric(kind)),
	}, nil
}

// missing lists the flags a non-interactive run still needs.
func (in addInput) missing() []string {
	var out []string
	if in.Kind == "" {
		out = append(out, "kind (running|cycling)")
	}
	if in.Distance == "" {
		out = append(out, "--distance")
	}
	if in.Duration == "" {
		out = append(out, "--duration")
	}
	switch strings.ToLower(in.Kind) {
	case string(domain.KindRunning):
		if in.Cadence == "" {
			out = append(out, "--cadence")
		}
	case string(domain.KindCycling):
		if in.Elevation == "" {
			out = append(out, "--elevation")
		}
	}
	return out
}

func newAddCmd(app *App) *cobra.Command {
	var in addInput

	cmd := &cobra.Command{
		Use:       "add [running|cycling]",
		Short:     "Record a workout at a location",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(domain.KindRunning), string(domain.KindCycling)},
		Example: `  mapty add running --lat 39.4 --lng -8.2 --distance 5.2 --duration 24 --cadence 178
  mapty add cycling --distance 27 --duration 95 --elevation 523`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if len(args) == 1 {
				in.Kind = args[0]
			}

			if in.Lat == "" && in.Lng == "" {
				if coords, err := app.positionOrNil(ctx); err == nil {
					in.Lat = formatter.Number(coords.Lat)
					in.Lng = formatter.Number(coords.Lng)
				}
			}

			if missing := in.missing(); len(missing) > 0 || in.Lat == "" || in.Lng == "" {
				if !app.interactive() {
					if in.Lat == "" || in.Lng == "" {
						missing = append(missing, "--lat/--lng (or map.home in config)")
					}
					return fmt.Errorf("missing %s", strings.Join(missing, ", "))
				}
				if err := addForm(&in).Run(); err != nil {
					return fmt.Errorf("add form: %w", err)
				}
			}

			return recordWorkout(ctx, app, cmd.OutOrStdout(), cmd.ErrOrStderr(), in)
		},
	}

	cmd.Flags().StringVar(&in.Lat, "lat", "", "Latitude in decimal degrees (defaults to map.home)")
	cmd.Flags().StringVar(&in.Lng, "lng", "", "Longitude in decimal degrees (defaults to map.home)")
	cmd.Flags().StringVarP(&in.Distance, "distance", "d", "", "Distance in km")
	cmd.Flags().StringVarP(&in.Duration, "duration", "t", "", "Duration in min")
	cmd.Flags().StringVar(&in.Cadence, "cadence", "", "Cadence in steps/min (running)")
	cmd.Flags().StringVar(&in.Elevation, "elevation", "", "Elevation gain in m (cycling)")

	return cmd
}

func (a *App) positionOrNil(ctx context.Context) (domain.Coordinates, error) {
	if a.Position == nil {
		return domain.Coordinates{}, mapview.ErrPositionUnavailable
	}
	return a.Position.CurrentPosition(ctx)
}

func recordWorkout(ctx context.Context, app *App, out, errOut io.Writer, in addInput) error {
	req, err := in.toWorkoutInput()
	if err != nil {
		return err
	}

	w, err := app.Workouts.Record(ctx, req)
	switch {
	case err == nil:
	case service.IsSnapshotNotSaved(err):
		fmt.Fprintln(errOut, formatter.StyleYellow.Render("Warning: "+err.Error()))
	default:
		return userFacingError(err)
	}

	r := contract.NewRenderRecord(w)
	fmt.Fprintln(out, formatter.FormatRecorded(r))
	app.mapView(out).Pin([]*domain.Workout{w})
	return nil
}

// userFacingError phrases validation failures the way the form reports them.
func userFacingError(err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFinite):
		return fmt.Errorf("inputs have to be numbers: %w", err)
	case errors.Is(err, domain.ErrNotPositive):
		return fmt.Errorf("inputs have to be positive numbers: %w", err)
	case errors.Is(err, domain.ErrOutOfRange):
		return fmt.Errorf("location is off the map: %w", err)
	}
	return err
}
