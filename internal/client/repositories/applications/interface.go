package applications

import (
	"context"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/models"
)

// Repository stores cached applications.
type Repository interface {
	// Upsert inserts app or replaces the cached copy with the same id.
	Upsert(ctx context.Context, app models.Application, cachedAt time.Time) error

	// Get returns the cached application or (nil, nil) when there is none.
	Get(ctx context.Context, id int64) (*models.Application, error)

	// List returns cached applications, newest application first. An empty
	// status returns all of them.
	List(ctx context.Context, status models.Status) ([]models.Application, error)

	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error

	// SyncedAt is the time of the most recent write, zero for an empty cache.
	SyncedAt(ctx context.Context) (time.Time, error)
}
