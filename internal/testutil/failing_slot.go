package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/alexanderramin/mapty/internal/db"
	"github.com/alexanderramin/mapty/internal/repository"
)

// MemorySlots is an in-memory repository.SlotRepo whose operations can be made
// to fail. A nil error field means the operation succeeds.
type MemorySlots struct {
	mu      sync.Mutex
	values  map[string]string
	GetErr  error
	SetErr  error
	RemErr  error
	Sets    int
	Removes int
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{values: make(map[string]string)}
}

// Put seeds a raw value without counting it as a write.
func (m *MemorySlots) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Raw returns the stored text and whether the key exists.
func (m *MemorySlots) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemorySlots) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("slot %q: %w", key, repository.ErrNotFound)
	}
	return v, nil
}

func (m *MemorySlots) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Sets++
	m.values[key] = value
	return nil
}

func (m *MemorySlots) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemErr != nil {
		return m.RemErr
	}
	m.Removes++
	delete(m.values, key)
	return nil
}

// FailOnNthExec wraps a DBTX and injects Err on the Nth ExecContext call.
// Calls are counted starting at 1. Reads pass through unchanged.
type FailOnNthExec struct {
	db.DBTX
	count  atomic.Int32
	FailOn int32
	Err    error
}

func (f *FailOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.FailOn {
		return nil, f.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
