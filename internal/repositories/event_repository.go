package repositories

import (
	"context"

	"pickup/internal/models"
)

// EventRepository defines the interface for event data access.
type EventRepository interface {
	GetAll(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	GetBySportID(ctx context.Context, sportID string) ([]models.Event, error)
	// GetByIDs returns the events that exist among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}
