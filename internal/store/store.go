// Package store holds the session's ordered workout log. Every insertion goes
// through validation; observers are told about additions and restorations so
// rendering and persistence stay outside the store.
package store

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/alexanderramin/mapty/internal/domain"
)

// ErrNotFound is returned by FindByID for an id the store never issued or restored.
var ErrNotFound = errors.New("workout not found")

type EventType string

const (
	EventAdded    EventType = "added"
	EventRestored EventType = "restored"
	EventReset    EventType = "reset"
)

// Event describes a change to the store. Workout is nil for EventReset.
type Event struct {
	Type    EventType
	Workout *domain.Workout
}

// Subscriber receives store events synchronously, in the order they happen.
type Subscriber func(Event)

// Store is an append-only, insertion-ordered workout collection.
type Store struct {
	mu          sync.RWMutex
	workouts    []*domain.Workout
	newStamp    func() domain.Stamp
	subscribers []Subscriber
}

type Option func(*Store)

// WithStamper overrides id and timestamp assignment, mainly for tests.
func WithStamper(fn func() domain.Stamp) Option {
	return func(s *Store) {
		s.newStamp = fn
	}
}

func New(opts ...Option) *Store {
	s := &Store{newStamp: domain.NewStamp}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers fn for all subsequent events.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Validate checks a creation request without touching the store.
func (s *Store) Validate(kind domain.Kind, distanceKm, durationMin, metric float64) error {
	return domain.Validate(kind, distanceKm, durationMin, metric)
}

// AddWorkout validates in, builds the matching variant and appends it. On
// error the store is unchanged.
func (s *Store) AddWorkout(in domain.WorkoutInput) (*domain.Workout, error) {
	if err := domain.ValidateCoordinates(in.Coords); err != nil {
		return nil, err
	}
	if err := s.Validate(in.Kind, in.DistanceKm, in.DurationMin, in.Metric); err != nil {
		return nil, err
	}

	var w *domain.Workout
	switch in.Kind {
	case domain.KindRunning:
		cadence := int(math.Round(in.Metric))
		if cadence < 1 {
			return nil, &domain.ValidationError{Reason: domain.ReasonNotPositive, Field: "cadence", Value: in.Metric}
		}
		w = domain.NewRunningAt(s.newStamp(), in.Coords, in.DistanceKm, in.DurationMin, cadence)
	case domain.KindCycling:
		w = domain.NewCyclingAt(s.newStamp(), in.Coords, in.DistanceKm, in.DurationMin, in.Metric)
	}

	s.mu.Lock()
	if s.indexOf(w.ID) >= 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("workout id %s already issued", w.ID)
	}
	s.workouts = append(s.workouts, w)
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()

	notify(subs, Event{Type: EventAdded, Workout: w})
	return w, nil
}

// FindByID resolves an id (e.g. from a list selection) back to its record.
func (s *Store) FindByID(id string) (*domain.Workout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.workouts[i], nil
	}
	return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
}

// All returns the workouts in insertion order. The slice is a copy.
func (s *Store) All() []*domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.workouts)
}

// Len returns the number of stored workouts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workouts)
}

// Restore replaces the contents with previously persisted records, keeping
// their order. Records must be well-formed and carry distinct ids.
func (s *Store) Restore(workouts []*domain.Workout) error {
	seen := make(map[string]bool, len(workouts))
	for _, w := range workouts {
		if err := w.CheckShape(); err != nil {
			return fmt.Errorf("restoring workouts: %w", err)
		}
		if seen[w.ID] {
			return fmt.Errorf("restoring workouts: duplicate id %s", w.ID)
		}
		seen[w.ID] = true
	}

	s.mu.Lock()
	s.workouts = slices.Clone(workouts)
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()

	for _, w := range workouts {
		notify(subs, Event{Type: EventRestored, Workout: w})
	}
	return nil
}

// Merge appends the records whose ids are not already present and returns
// them. Input order is kept.
func (s *Store) Merge(workouts []*domain.Workout) ([]*domain.Workout, error) {
	for _, w := range workouts {
		if err := w.CheckShape(); err != nil {
			return nil, fmt.Errorf("merging workouts: %w", err)
		}
	}

	s.mu.Lock()
	var added []*domain.Workout
	for _, w := range workouts {
		if s.indexOf(w.ID) >= 0 {
			continue
		}
		s.workouts = append(s.workouts, w)
		added = append(added, w)
	}
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()

	for _, w := range added {
		notify(subs, Event{Type: EventRestored, Workout: w})
	}
	return added, nil
}

// Reset discards every workout.
func (s *Store) Reset() {
	s.mu.Lock()
	s.workouts = nil
	subs := slices.Clone(s.subscribers)
	s.mu.Unlock()

	notify(subs, Event{Type: EventReset})
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.workouts, func(w *domain.Workout) bool { return w.ID == id })
}

func notify(subs []Subscriber, e Event) {
	for _, fn := range subs {
		fn(e)
	}
}
