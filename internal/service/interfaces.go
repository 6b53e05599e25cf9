package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/persistence"
)

// ErrSnapshotNotSaved marks an operation whose in-memory effect succeeded but
// whose snapshot could not be written.
var ErrSnapshotNotSaved = errors.New("workout log was not saved")

type WorkoutService interface {
	// Startup restores the persisted log. Problems are reported in the
	// result and never stop the application.
	Startup(ctx context.Context) persistence.LoadResult
	Record(ctx context.Context, in domain.WorkoutInput) (*domain.Workout, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	List(ctx context.Context) []*domain.Workout
	Reset(ctx context.Context) error
	Import(ctx context.Context, data []byte) (*ImportResult, error)
	Export(ctx context.Context) ([]byte, error)
}

type ImportResult struct {
	Read  int
	Added int
}
