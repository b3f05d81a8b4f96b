package repository

import (
	"context"

	"github.com/mr1hm/go-quake-dashboard/internal/models"
)

// SnapshotRepository stores a copy of an event table for offline use.
type SnapshotRepository interface {
	SaveEvents(ctx context.Context, table *models.EventTable) error
	LoadEvents(ctx context.Context) ([]models.Event, error)
	Count(ctx context.Context) (int, error)
}
