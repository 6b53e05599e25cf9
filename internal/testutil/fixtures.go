package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
)

var testIDCounter atomic.Int64

// FixedTime is the creation instant used by fixtures unless overridden.
var FixedTime = time.Date(2025, 4, 14, 9, 30, 0, 0, time.UTC)

type WorkoutOption func(*fixture)

type fixture struct {
	stamp  domain.Stamp
	coords domain.Coordinates
	dist   float64
	dur    float64
}

func WithID(id string) WorkoutOption {
	return func(f *fixture) {
		f.stamp.ID = id
	}
}

func WithCreatedAt(t time.Time) WorkoutOption {
	return func(f *fixture) {
		f.stamp.At = t
	}
}

func WithCoords(lat, lng float64) WorkoutOption {
	return func(f *fixture) {
		f.coords = domain.Coordinates{Lat: lat, Lng: lng}
	}
}

func WithDistance(km float64) WorkoutOption {
	return func(f *fixture) {
		f.dist = km
	}
}

func WithDuration(min float64) WorkoutOption {
	return func(f *fixture) {
		f.dur = min
	}
}

func newFixture(opts []WorkoutOption) *fixture {
	n := testIDCounter.Add(1)
	f := &fixture{
		stamp:  domain.Stamp{ID: fmt.Sprintf("test-%04d", n), At: FixedTime},
		coords: domain.Coordinates{Lat: 39.3999, Lng: -8.2245},
		dist:   5.2,
		dur:    24,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewTestRunning builds a running workout with deterministic defaults
// (5.2 km, 24 min, the given cadence).
func NewTestRunning(cadence int, opts ...WorkoutOption) *domain.Workout {
	f := newFixture(opts)
	return domain.NewRunningAt(f.stamp, f.coords, f.dist, f.dur, cadence)
}

// NewTestCycling builds a cycling workout. Distance and duration default to
// 27 km and 95 min.
func NewTestCycling(elevationGain float64, opts ...WorkoutOption) *domain.Workout {
	f := newFixture(append([]WorkoutOption{WithDistance(27), WithDuration(95)}, opts...))
	return domain.NewCyclingAt(f.stamp, f.coords, f.dist, f.dur, elevationGain)
}

// SequentialStamper returns stamps "w-001", "w-002", ... one minute apart from FixedTime.
func SequentialStamper() func() domain.Stamp {
	var n int
	return func() domain.Stamp {
		n++
		return domain.Stamp{ID: fmt.Sprintf("w-%03d", n), At: FixedTime.Add(time.Duration(n) * time.Minute)}
	}
}
