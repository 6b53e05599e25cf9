package persistence

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
	json "github.com/goccy/go-json"
)

// ErrMalformedSnapshot is returned by Decode for text that does not describe a
// valid workout sequence.
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// maxCadence bounds stored cadence so it always fits an int.
const maxCadence = math.MaxInt32

// snapshotRecord is the stored form of a workout. Field names match the
// browser localStorage format so existing exports decode unchanged.
type snapshotRecord struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Coords      []float64 `json:"coords"`
	Distance    float64   `json:"distance"`
	Duration    float64   `json:"duration"`
	Description string    `json:"description"`

	Cadence       *float64 `json:"cadence,omitempty"`
	Pace          *float64 `json:"pace,omitempty"`
	ElevationGain *float64 `json:"elevationGain,omitempty"`
	Speed         *float64 `json:"speed,omitempty"`
}

// Encode serializes workouts, derived fields and kind discriminant included.
func Encode(workouts []*domain.Workout) ([]byte, error) {
	records := make([]snapshotRecord, 0, len(workouts))
	for _, w := range workouts {
		if err := w.CheckShape(); err != nil {
			return nil, fmt.Errorf("encoding snapshot: %w", err)
		}
		rec := snapshotRecord{
			Type:        string(w.Kind),
			ID:          w.ID,
			Date:        w.CreatedAt,
			Coords:      []float64{w.Coords.Lat, w.Coords.Lng},
			Distance:    w.DistanceKm,
			Duration:    w.DurationMin,
			Description: w.Description,
		}
		switch w.Kind {
		case domain.KindRunning:
			cadence := float64(w.Running.Cadence)
			rec.Cadence = &cadence
			rec.Pace = &w.Running.Pace
		case domain.KindCycling:
			rec.ElevationGain = &w.Cycling.ElevationGain
			rec.Speed = &w.Cycling.Speed
		}
		records = append(records, rec)
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode rebuilds fully typed workouts from snapshot text. Inputs are held to
// the same rules as a new workout; derived fields and descriptions are taken
// as stored. A literal null decodes to an empty
// sequence. Any bad record fails the whole snapshot.
func Decode(data []byte) ([]*domain.Workout, error) {
	var records []snapshotRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	workouts := make([]*domain.Workout, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, rec := range records {
		w, err := rec.toWorkout()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformedSnapshot, i, err)
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformedSnapshot, w.ID)
		}
		seen[w.ID] = true
		workouts = append(workouts, w)
	}
	return workouts, nil
}

func (rec snapshotRecord) toWorkout() (*domain.Workout, error) {
	kind, err := domain.ParseKind(rec.Type)
	if err != nil {
		return nil, err
	}
	if rec.ID == "" {
		return nil, errors.New("missing id")
	}
	if len(rec.Coords) != 2 {
		return nil, fmt.Errorf("coords must be [lat, lng], got %d values", len(rec.Coords))
	}

	w := &domain.Workout{
		ID:          rec.ID,
		Kind:        kind,
		CreatedAt:   rec.Date.UTC(),
		Coords:      domain.Coordinates{Lat: rec.Coords[0], Lng: rec.Coords[1]},
		DistanceKm:  rec.Distance,
		DurationMin: rec.Duration,
		Description: rec.Description,
	}

	switch kind {
	case domain.KindRunning:
		if rec.Cadence == nil || rec.Pace == nil {
			return nil, errors.New("running record without cadence and pace")
		}
		if rec.ElevationGain != nil || rec.Speed != nil {
			return nil, errors.New("running record carries cycling fields")
		}
		cadence := math.Round(*rec.Cadence)
		if cadence < 1 || cadence > maxCadence {
			return nil, fmt.Errorf("cadence %v out of range", *rec.Cadence)
		}
		w.Running = &domain.RunningMetrics{
			Cadence: int(cadence),
			Pace:    *rec.Pace,
		}
	case domain.KindCycling:
		if rec.ElevationGain == nil || rec.Speed == nil {
			return nil, errors.New("cycling record without elevationGain and speed")
		}
		if rec.Cadence != nil || rec.Pace != nil {
			return nil, errors.New("cycling record carries running fields")
		}
		w.Cycling = &domain.CyclingMetrics{
			ElevationGain: *rec.ElevationGain,
			Speed:         *rec.Speed,
		}
	}

	if err := w.CheckShape(); err != nil {
		return nil, err
	}
	if err := domain.ValidateCoordinates(w.Coords); err != nil {
		return nil, err
	}
	if err := domain.Validate(kind, rec.Distance, rec.Duration, rec.metric(kind)); err != nil {
		return nil, err
	}
	return w, nil
}

// metric is the raw kind-specific input, before cadence rounding.
func (rec snapshotRecord) metric(kind domain.Kind) float64 {
	if kind == domain.KindCycling {
		return *rec.ElevationGain
	}
	return *rec.Cadence
}
