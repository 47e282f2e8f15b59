package repository

import (
	"context"

	"pipenet/internal/domain"
)

// Repository defines the interface for snapshot persistence
type Repository interface {
	// Save replaces the stored network with the snapshot.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Load returns the stored network. A store that was never written
	// yields an empty snapshot.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Close releases resources
	Close() error
}
