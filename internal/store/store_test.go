package store

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 4, 14, 9, 30, 0, 0, time.UTC)

func sequentialStamper() func() domain.Stamp {
	n := 0
	return func() domain.Stamp {
		n++
		return domain.Stamp{ID: fmt.Sprintf("w-%03d", n), At: testNow.Add(time.Duration(n) * time.Minute)}
	}
}

func newTestStore() *Store {
	return New(WithStamper(sequentialStamper()))
}

func runningInput(dist, dur, cadence float64) domain.WorkoutInput {
	return domain.WorkoutInput{
		Kind:        domain.KindRunning,
		Coords:      domain.Coordinates{Lat: 39, Lng: 12},
		DistanceKm:  dist,
		DurationMin: dur,
		Metric:      cadence,
	}
}

func cyclingInput(dist, dur, elevation float64) domain.WorkoutInput {
	return domain.WorkoutInput{
		Kind:        domain.KindCycling,
		Coords:      domain.Coordinates{Lat: 39, Lng: 12},
		DistanceKm:  dist,
		DurationMin: dur,
		Metric:      elevation,
	}
}

func TestAddWorkout_Running(t *testing.T) {
	s := New()

	w, err := s.AddWorkout(runningInput(5.2, 24, 178))
	require.NoError(t, err)

	assert.Equal(t, domain.KindRunning, w.Kind)
	assert.Equal(t, 24/5.2, w.Running.Pace)
	assert.InDelta(t, 4.6154, w.Running.Pace, 0.0001)
	assert.Equal(t, domain.Describe(domain.KindRunning, w.CreatedAt), w.Description)
	assert.Regexp(t, `^Running on [A-Z][a-z]+ \d{1,2}$`, w.Description)
	assert.Equal(t, 1, s.Len())
}

func TestAddWorkout_Cycling(t *testing.T) {
	s := newTestStore()

	w, err := s.AddWorkout(cyclingInput(27, 95, 523))
	require.NoError(t, err)

	assert.Equal(t, 27/(95.0/60), w.Cycling.Speed)
	assert.InDelta(t, 17.05, w.Cycling.Speed, 0.01)
	assert.Equal(t, "Cycling on April 14", w.Description)
}

func TestAddWorkout_RejectsWithoutMutation(t *testing.T) {
	s := newTestStore()
	_, err := s.AddWorkout(runningInput(5, 20, 170))
	require.NoError(t, err)

	cases := []struct {
		name  string
		input domain.WorkoutInput
		want  error
	}{
		{"negative distance", runningInput(-5, 24, 178), domain.ErrNotPositive},
		{"nan duration", runningInput(5, math.NaN(), 178), domain.ErrNotFinite},
		{"zero cadence", runningInput(5, 24, 0), domain.ErrNotPositive},
		{"sub-step cadence", runningInput(5, 24, 0.3), domain.ErrNotPositive},
		{"negative elevation", cyclingInput(20, 60, -3), domain.ErrNotPositive},
		{"inf elevation", cyclingInput(20, 60, math.Inf(-1)), domain.ErrNotFinite},
		{"off-globe", domain.WorkoutInput{Kind: domain.KindRunning, Coords: domain.Coordinates{Lat: 120}, DistanceKm: 5, DurationMin: 20, Metric: 170}, domain.ErrOutOfRange},
		{"unknown kind", domain.WorkoutInput{Kind: "rowing", DistanceKm: 5, DurationMin: 20, Metric: 1}, domain.ErrUnknownKind},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := s.AddWorkout(tc.input)
			require.Error(t, err)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, 1, s.Len(), "store must be unchanged")
		})
	}
}

func TestAddWorkout_RoundsCadence(t *testing.T) {
	s := newTestStore()
	w, err := s.AddWorkout(runningInput(5, 25, 171.6))
	require.NoError(t, err)
	assert.Equal(t, 172, w.Running.Cadence)
}

func TestAddWorkout_DuplicateStampRejected(t *testing.T) {
	fixed := func() domain.Stamp { return domain.Stamp{ID: "same", At: testNow} }
	s := New(WithStamper(fixed))

	_, err := s.AddWorkout(runningInput(5, 25, 170))
	require.NoError(t, err)
	_, err = s.AddWorkout(runningInput(5, 25, 170))
	require.Error(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestFindByID(t *testing.T) {
	s := newTestStore()
	first, err := s.AddWorkout(runningInput(5, 25, 170))
	require.NoError(t, err)
	second, err := s.AddWorkout(cyclingInput(20, 60, 100))
	require.NoError(t, err)

	got, err := s.FindByID(second.ID)
	require.NoError(t, err)
	assert.Same(t, second, got)

	got, err = s.FindByID(first.ID)
	require.NoError(t, err)
	assert.Same(t, first, got)

	_, err = s.FindByID("never-issued")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAll_InsertionOrderAndCopy(t *testing.T) {
	s := newTestStore()
	for i := 1; i <= 3; i++ {
		_, err := s.AddWorkout(runningInput(float64(i), 10, 160))
		require.NoError(t, err)
	}

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, []string{"w-001", "w-002", "w-003"}, []string{all[0].ID, all[1].ID, all[2].ID})

	all[0] = nil
	assert.NotNil(t, s.All()[0], "All must return a copy")
}

func TestSubscribe_ReceivesEvents(t *testing.T) {
	s := newTestStore()
	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	w, err := s.AddWorkout(runningInput(5, 25, 170))
	require.NoError(t, err)
	_, err = s.AddWorkout(runningInput(-1, 25, 170))
	require.Error(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, EventAdded, events[0].Type)
	assert.Same(t, w, events[0].Workout)

	s.Reset()
	require.Len(t, events, 2)
	assert.Equal(t, EventReset, events[1].Type)
	assert.Equal(t, 0, s.Len())
}

func TestRestore(t *testing.T) {
	src := newTestStore()
	a, _ := src.AddWorkout(runningInput(5, 25, 170))
	b, _ := src.AddWorkout(cyclingInput(30, 90, 200))

	dst := newTestStore()
	var restored []string
	dst.Subscribe(func(e Event) {
		if e.Type == EventRestored {
			restored = append(restored, e.Workout.ID)
		}
	})

	require.NoError(t, dst.Restore(src.All()))
	assert.Equal(t, []string{a.ID, b.ID}, restored)

	got, err := dst.FindByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Cycling.Speed, got.Cycling.Speed)
	assert.Equal(t, b.Description, got.Description)
}

func TestRestore_RejectsBadInput(t *testing.T) {
	src := newTestStore()
	a, _ := src.AddWorkout(runningInput(5, 25, 170))

	s := newTestStore()
	assert.Error(t, s.Restore([]*domain.Workout{a, a}), "duplicate ids")

	broken := *a
	broken.Running = nil
	assert.Error(t, s.Restore([]*domain.Workout{&broken}))
	assert.Equal(t, 0, s.Len())
}

// Derived metrics match their formulas exactly for arbitrary valid input.
func TestAddWorkout_DerivedMetricsProperty(t *testing.T) {
	faker := gofakeit.New(42)
	s := New()

	for i := 0; i < 200; i++ {
		dist := faker.Float64Range(0.1, 200)
		dur := faker.Float64Range(1, 600)
		coords := domain.Coordinates{Lat: faker.Latitude(), Lng: faker.Longitude()}

		run, err := s.AddWorkout(domain.WorkoutInput{
			Kind: domain.KindRunning, Coords: coords,
			DistanceKm: dist, DurationMin: dur, Metric: float64(faker.IntRange(1, 250)),
		})
		require.NoError(t, err)
		assert.Equal(t, dur/dist, run.Running.Pace)

		cyc, err := s.AddWorkout(domain.WorkoutInput{
			Kind: domain.KindCycling, Coords: coords,
			DistanceKm: dist, DurationMin: dur, Metric: faker.Float64Range(0, 3000),
		})
		require.NoError(t, err)
		assert.Equal(t, dist/(dur/60), cyc.Cycling.Speed)
		assert.False(t, math.IsInf(cyc.Cycling.Speed, 0))
	}
	assert.Equal(t, 400, s.Len())
}

func TestMerge_SkipsKnownIDs(t *testing.T) {
	s := newTestStore()
	a, err := s.AddWorkout(runningInput(5, 25, 170))
	require.NoError(t, err)

	other := New(WithStamper(func() domain.Stamp { return domain.Stamp{ID: "imported", At: testNow} }))
	b, err := other.AddWorkout(cyclingInput(30, 90, 200))
	require.NoError(t, err)

	var events []Event
	s.Subscribe(func(e Event) { events = append(events, e) })

	added, err := s.Merge([]*domain.Workout{a, b})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Same(t, b, added[0])
	assert.Equal(t, 2, s.Len())
	require.Len(t, events, 1)
	assert.Equal(t, EventRestored, events[0].Type)

	broken := *b
	broken.Cycling = nil
	_, err = s.Merge([]*domain.Workout{&broken})
	assert.Error(t, err)
	assert.Equal(t, 2, s.Len())
}
