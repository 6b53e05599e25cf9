package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lng)
}

// Stamp carries the identity and creation instant assigned to a new workout.
type Stamp struct {
	ID string
	At time.Time
}

// NewStamp returns a fresh UUID and the current local instant with the
// monotonic reading stripped.
func NewStamp() Stamp {
	return Stamp{ID: uuid.New().String(), At: time.Now().Round(0)}
}

// Workout is a recorded exercise session. Kind selects which of Running or
// Cycling is set; the other is always nil.
type Workout struct {
	ID          string
	Kind        Kind
	CreatedAt   time.Time
	Coords      Coordinates
	DistanceKm  float64
	DurationMin float64
	Description string

	Running *RunningMetrics
	Cycling *CyclingMetrics
}

type RunningMetrics struct {
	Cadence int
	Pace    float64 // min/km
}

type CyclingMetrics struct {
	ElevationGain float64 // m
	Speed         float64 // km/h
}

// NewRunning builds a running workout stamped with a new id and the current time.
// Inputs are not validated here.
func NewRunning(coords Coordinates, distanceKm, durationMin float64, cadence int) *Workout {
	return NewRunningAt(NewStamp(), coords, distanceKm, durationMin, cadence)
}

// NewRunningAt is NewRunning with an explicit stamp.
func NewRunningAt(stamp Stamp, coords Coordinates, distanceKm, durationMin float64, cadence int) *Workout {
	w := newBase(stamp, KindRunning, coords, distanceKm, durationMin)
	w.Running = &RunningMetrics{
		Cadence: cadence,
		Pace:    Pace(distanceKm, durationMin),
	}
	return w
}

// NewCycling builds a cycling workout stamped with a new id and the current time.
// Inputs are not validated here.
func NewCycling(coords Coordinates, distanceKm, durationMin, elevationGain float64) *Workout {
	return NewCyclingAt(NewStamp(), coords, distanceKm, durationMin, elevationGain)
}

// NewCyclingAt is NewCycling with an explicit stamp.
func NewCyclingAt(stamp Stamp, coords Coordinates, distanceKm, durationMin, elevationGain float64) *Workout {
	w := newBase(stamp, KindCycling, coords, distanceKm, durationMin)
	w.Cycling = &CyclingMetrics{
		ElevationGain: elevationGain,
		Speed:         Speed(distanceKm, durationMin),
	}
	return w
}

func newBase(stamp Stamp, kind Kind, coords Coordinates, distanceKm, durationMin float64) *Workout {
	return &Workout{
		ID:          stamp.ID,
		Kind:        kind,
		CreatedAt:   stamp.At.UTC(),
		Coords:      coords,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Description: Describe(kind, stamp.At),
	}
}

// Pace is minutes per kilometre.
func Pace(distanceKm, durationMin float64) float64 {
	return durationMin / distanceKm
}

// Speed is kilometres per hour.
func Speed(distanceKm, durationMin float64) float64 {
	return distanceKm / (durationMin / 60)
}

// Describe formats the display title, e.g. "Running on April 14".
func Describe(kind Kind, t time.Time) string {
	return fmt.Sprintf("%s on %s %d", kind.Title(), t.Month().String(), t.Day())
}

// Popup is the marker popup text: the activity emoji followed by the description.
func (w *Workout) Popup() string {
	return w.Kind.Emoji() + " " + w.Description
}

// CheckShape verifies that the record carries exactly the payload its Kind names.
func (w *Workout) CheckShape() error {
	switch w.Kind {
	case KindRunning:
		if w.Running == nil || w.Cycling != nil {
			return fmt.Errorf("workout %s: running record must carry only running metrics", w.ID)
		}
	case KindCycling:
		if w.Cycling == nil || w.Running != nil {
			return fmt.Errorf("workout %s: cycling record must carry only cycling metrics", w.ID)
		}
	default:
		return &UnknownKindError{Kind: string(w.Kind)}
	}
	if w.ID == "" {
		return fmt.Errorf("workout without id")
	}
	return nil
}
