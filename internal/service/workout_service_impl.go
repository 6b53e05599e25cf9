package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/persistence"
	"github.com/alexanderramin/mapty/internal/store"
)

type workoutService struct {
	store    *store.Store
	bridge   *persistence.Bridge
	observer UseCaseObserver
}

func NewWorkoutService(
	st *store.Store,
	bridge *persistence.Bridge,
	observers ...UseCaseObserver,
) WorkoutService {
	return &workoutService{
		store:    st,
		bridge:   bridge,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *workoutService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	fields["in_store"] = s.store.Len()
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *workoutService) Startup(ctx context.Context) persistence.LoadResult {
	startedAt := time.Now()
	res := s.bridge.Load(ctx)
	if res.Outcome == persistence.OutcomeRestored {
		if err := s.store.Restore(res.Workouts); err != nil {
			res = persistence.LoadResult{Outcome: persistence.OutcomeCorrupt, Err: err}
		}
	}

	fields := map[string]any{
		"outcome":  string(res.Outcome),
		"restored": len(res.Workouts),
		"slot":     s.bridge.Key(),
	}
	if res.Err != nil {
		fields["load_error"] = res.Err.Error()
	}
	// A degraded load is still a successful startup.
	s.observe(ctx, UseCaseStartup, startedAt, nil, fields)
	return res
}

func (s *workoutService) Record(ctx context.Context, in domain.WorkoutInput) (w *domain.Workout, err error) {
	startedAt := time.Now()
	fields := map[string]any{"kind": string(in.Kind)}
	defer func() {
		s.observe(ctx, UseCaseRecord, startedAt, err, fields)
	}()

	w, err = s.store.AddWorkout(in)
	if err != nil {
		return nil, err
	}
	fields["workout_id"] = w.ID
	fields["recorded"] = true

	if saveErr := s.bridge.Save(ctx, s.store.All()); saveErr != nil {
		fields["saved"] = false
		return w, fmt.Errorf("%w: %w", ErrSnapshotNotSaved, saveErr)
	}
	fields["saved"] = true
	return w, nil
}

func (s *workoutService) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	return s.store.FindByID(id)
}

func (s *workoutService) List(ctx context.Context) []*domain.Workout {
	return s.store.All()
}

func (s *workoutService) Reset(ctx context.Context) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"discarded": s.store.Len()}
	defer func() {
		s.observe(ctx, UseCaseReset, startedAt, err, fields)
	}()

	if err = s.bridge.Reset(ctx); err != nil {
		return err
	}
	s.store.Reset()
	return nil
}

func (s *workoutService) Import(ctx context.Context, data []byte) (res *ImportResult, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() {
		s.observe(ctx, UseCaseImport, startedAt, err, fields)
	}()

	workouts, err := persistence.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("importing workouts: %w", err)
	}
	added, err := s.store.Merge(workouts)
	if err != nil {
		return nil, fmt.Errorf("importing workouts: %w", err)
	}
	res = &ImportResult{Read: len(workouts), Added: len(added)}
	fields["read"] = res.Read
	fields["added"] = res.Added

	if len(added) == 0 {
		return res, nil
	}
	if saveErr := s.bridge.Save(ctx, s.store.All()); saveErr != nil {
		fields["saved"] = false
		return res, fmt.Errorf("%w: %w", ErrSnapshotNotSaved, saveErr)
	}
	fields["saved"] = true
	return res, nil
}

func (s *workoutService) Export(ctx context.Context) ([]byte, error) {
	return persistence.Encode(s.store.All())
}

// IsSnapshotNotSaved reports whether err only concerns persistence, meaning
// the in-memory change took effect.
func IsSnapshotNotSaved(err error) bool {
	return errors.Is(err, ErrSnapshotNotSaved)
}
