package mapview

import (
	"context"
	"io"

	"github.com/alexanderramin/mapty/internal/contract"
	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/sirupsen/logrus"
)

// View drives a Surface: centring on the user, pinning workouts and moving
// to a selected one.
type View struct {
	surface  Surface
	position PositionProvider
	zoom     int
	logger   logrus.FieldLogger
}

func NewView(surface Surface, position PositionProvider, zoom int, logger logrus.FieldLogger) *View {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &View{surface: surface, position: position, zoom: zoom, logger: logger}
}

// Locate centres the surface on the current position. Failure is logged and
// the surface is left as it was.
func (v *View) Locate(ctx context.Context) bool {
	if v.position == nil {
		return false
	}
	coords, err := v.position.CurrentPosition(ctx)
	if err != nil {
		v.logger.WithError(err).Info("position unavailable, map not centred")
		return false
	}
	v.surface.SetView(coords, v.zoom)
	return true
}

// Pin places one marker per workout, in the order given.
func (v *View) Pin(workouts []*domain.Workout) {
	for _, w := range workouts {
		v.surface.PlaceMarker(contract.NewMarker(w))
	}
}

// MoveTo centres on w and shows its marker.
func (v *View) MoveTo(w *domain.Workout) {
	v.surface.SetView(w.Coords, v.zoom)
	v.surface.PlaceMarker(contract.NewMarker(w))
}
