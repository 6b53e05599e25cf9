package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

const slotFileExt = ".json.zst"

var slotKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileSlotRepo implements SlotRepo with one compressed file per key.
// Writes go to a temp file first and are renamed into place.
type FileSlotRepo struct {
	dir        string
	compressor Compressor
	mu         sync.Mutex
}

// NewFileSlotRepo creates the directory if needed and returns a FileSlotRepo rooted there.
func NewFileSlotRepo(dir string, compressor Compressor) (*FileSlotRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating slot directory: %w", err)
	}
	return &FileSlotRepo{dir: dir, compressor: compressor}, nil
}

func (r *FileSlotRepo) path(key string) (string, error) {
	if !slotKeyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(r.dir, key+slotFileExt), nil
}

func (r *FileSlotRepo) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := r.path(key)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("slot %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading slot %q: %w", key, err)
	}
	raw, err := r.compressor.Decompress(data)
	if err != nil {
		return "", fmt.Errorf("slot %q: %w: %v", key, ErrCorrupt, err)
	}
	return string(raw), nil
}

func (r *FileSlotRepo) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.path(key)
	if err != nil {
		return err
	}
	data, err := r.compressor.Compress([]byte(value))
	if err != nil {
		return fmt.Errorf("compressing slot %q: %w", key, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp := p + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	if _, err = file.Write(data); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing slot %q: %w", key, err)
	}
	if err = file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing slot %q: %w", key, err)
	}
	if err = os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing slot %q: %w", key, err)
	}
	return nil
}

func (r *FileSlotRepo) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.path(key)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing slot %q: %w", key, err)
	}
	return nil
}

// Info reports the compressed size and modification time of key. Files do
// not count writes, so Generation is always zero.
func (r *FileSlotRepo) Info(ctx context.Context, key string) (*SlotInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.path(key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	st, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("slot %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("inspecting slot %q: %w", key, err)
	}
	return &SlotInfo{Key: key, Bytes: int(st.Size()), UpdatedAt: st.ModTime().UTC()}, nil
}

// Close releases the compressor.
func (r *FileSlotRepo) Close() error {
	r.compressor.Close()
	return nil
}
