// Package contract holds the payloads handed to the list renderer and the map
// surface. They carry display data only; no behavior hangs off them.
package contract

import "github.com/alexanderramin/mapty/internal/domain"

// RenderRecord is one row of the workout list. Exactly one of the
// Running/Cycling metric pairs is set, matching Kind.
type RenderRecord struct {
	ID          string
	Kind        domain.Kind
	Emoji       string
	Description string
	DistanceKm  float64
	DurationMin float64

	Pace    *float64 // min/km
	Cadence *int     // spm

	Speed         *float64 // km/h
	ElevationGain *float64 // m
}

func NewRenderRecord(w *domain.Workout) RenderRecord {
	r := RenderRecord{
		ID:          w.ID,
		Kind:        w.Kind,
		Emoji:       w.Kind.Emoji(),
		Description: w.Description,
		DistanceKm:  w.DistanceKm,
		DurationMin: w.DurationMin,
	}
	switch {
	case w.Running != nil:
		pace, cadence := w.Running.Pace, w.Running.Cadence
		r.Pace, r.Cadence = &pace, &cadence
	case w.Cycling != nil:
		speed, elevation := w.Cycling.Speed, w.Cycling.ElevationGain
		r.Speed, r.ElevationGain = &speed, &elevation
	}
	return r
}

// Marker is a map pin with its popup.
type Marker struct {
	ID        string
	Coords    domain.Coordinates
	Popup     string
	ClassName string
}

func NewMarker(w *domain.Workout) Marker {
	return Marker{
		ID:        w.ID,
		Coords:    w.Coords,
		Popup:     w.Popup(),
		ClassName: string(w.Kind) + "-popup",
	}
}
