package domain

import (
	"math"
	"strconv"
	"strings"
)

// WorkoutInput is a creation request as delivered by a form and a map click.
// Metric is cadence for running and elevation gain for cycling.
type WorkoutInput struct {
	Kind        Kind
	Coords      Coordinates
	DistanceKm  float64
	DurationMin float64
	Metric      float64
}

// ParseNumber converts raw form text to a float. Blank input reads as zero and
// unparsable input as NaN, so validation reports NotPositive and NotFinite
// respectively.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// Validate checks the numeric fields of a creation request. All fields are
// checked for finiteness before any positivity check runs. Cycling elevation
// may be zero but not negative.
func Validate(kind Kind, distanceKm, durationMin, metric float64) error {
	if !ValidKinds[string(kind)] {
		return &UnknownKindError{Kind: string(kind)}
	}

	fields := []struct {
		name  string
		value float64
	}{
		{"distance", distanceKm},
		{"duration", durationMin},
		{kind.MetricName(), metric},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Reason: ReasonNotFinite, Field: f.name, Value: f.value}
		}
	}

	if distanceKm <= 0 {
		return &ValidationError{Reason: ReasonNotPositive, Field: "distance", Value: distanceKm}
	}
	if durationMin <= 0 {
		return &ValidationError{Reason: ReasonNotPositive, Field: "duration", Value: durationMin}
	}
	switch kind {
	case KindRunning:
		if metric <= 0 {
			return &ValidationError{Reason: ReasonNotPositive, Field: "cadence", Value: metric}
		}
	case KindCycling:
		if metric < 0 {
			return &ValidationError{Reason: ReasonNotPositive, Field: "elevationGain", Value: metric}
		}
	}
	return nil
}

// ValidateCoordinates rejects non-finite or off-globe positions.
func ValidateCoordinates(c Coordinates) error {
	for _, f := range []struct {
		name  string
		value float64
		limit float64
	}{
		{"latitude", c.Lat, 90},
		{"longitude", c.Lng, 180},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Reason: ReasonNotFinite, Field: f.name, Value: f.value}
		}
		if math.Abs(f.value) > f.limit {
			return &ValidationError{Reason: ReasonOutOfRange, Field: f.name, Value: f.value}
		}
	}
	return nil
}
