// Package persistence moves the workout sequence between memory and a durable
// slot as a single JSON snapshot.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/mapty/internal/domain"
	"github.com/alexanderramin/mapty/internal/repository"
)

// DefaultSlotKey is the slot name the browser version used.
const DefaultSlotKey = "workout"

// Outcome classifies how a Load went.
type Outcome string

const (
	OutcomeRestored    Outcome = "restored"
	OutcomeAbsent      Outcome = "absent"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeCorrupt     Outcome = "corrupt"
)

// LoadResult is what Load found. Workouts is empty unless Outcome is
// OutcomeRestored; Err explains unavailable and corrupt outcomes.
type LoadResult struct {
	Workouts []*domain.Workout
	Outcome  Outcome
	Err      error
}

// Bridge persists the whole workout sequence under one slot key.
type Bridge struct {
	slots repository.SlotRepo
	key   string
}

// NewBridge returns a Bridge over slots. An empty key selects DefaultSlotKey.
func NewBridge(slots repository.SlotRepo, key string) *Bridge {
	if key == "" {
		key = DefaultSlotKey
	}
	return &Bridge{slots: slots, key: key}
}

// Key is the slot name the bridge reads and writes.
func (b *Bridge) Key() string {
	return b.key
}

// Save overwrites the slot with the full sequence.
func (b *Bridge) Save(ctx context.Context, workouts []*domain.Workout) error {
	data, err := Encode(workouts)
	if err != nil {
		return err
	}
	if err := b.slots.Set(ctx, b.key, string(data)); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// Load reads and decodes the slot. It never fails outright: storage problems
// and bad data are reported through the Outcome with an empty sequence.
func (b *Bridge) Load(ctx context.Context) LoadResult {
	raw, err := b.slots.Get(ctx, b.key)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return LoadResult{Outcome: OutcomeAbsent}
	case errors.Is(err, repository.ErrCorrupt):
		return LoadResult{Outcome: OutcomeCorrupt, Err: err}
	case err != nil:
		return LoadResult{Outcome: OutcomeUnavailable, Err: err}
	}

	workouts, err := Decode([]byte(raw))
	if err != nil {
		return LoadResult{Outcome: OutcomeCorrupt, Err: err}
	}
	if len(workouts) == 0 && isNull(raw) {
		return LoadResult{Outcome: OutcomeAbsent}
	}
	return LoadResult{Workouts: workouts, Outcome: OutcomeRestored}
}

// Reset removes the slot entirely.
func (b *Bridge) Reset(ctx context.Context) error {
	if err := b.slots.Remove(ctx, b.key); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	return nil
}

func isNull(raw string) bool {
	return strings.TrimSpace(raw) == "null"
}
