package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the requested slot has never been written or was removed.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt indicates stored bytes exist but cannot be decoded back to a value.
	ErrCorrupt = errors.New("stored value is corrupt")
)

// SlotRepo is a named, string-valued durable storage location.
type SlotRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// SlotInspector is implemented by backends that can describe a slot without
// reading its value.
type SlotInspector interface {
	Info(ctx context.Context, key string) (*SlotInfo, error)
}
