// Package file persists network snapshots as a single flat file.
package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pipenet/internal/codec"
	"pipenet/internal/domain"
)

// Repository implements repository.Repository on top of a codec.
type Repository struct {
	path  string
	codec codec.Codec
}

// New creates a file repository writing path in the given format.
func New(path, format string) (*Repository, error) {
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, err
	}
	return &Repository{path: path, codec: c}, nil
}

// Path returns the file the repository reads and writes.
func (r *Repository) Path() string {
	return r.path
}

// Save writes the snapshot to a temporary file and renames it over the
// target, so a failed write leaves the previous file intact.
func (r *Repository) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := r.codec.Export(snap, w); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}

// Load reads the snapshot. A missing file yields an empty snapshot.
func (r *Repository) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.NewSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	snap, err := r.codec.Parse(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", r.path, err)
	}
	return snap, nil
}

// Close is a no-op; files are opened per call.
func (r *Repository) Close() error {
	return nil
}
