package repositories

import (
	"context"
	"errors"
	"fmt"

	"pickup/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMEventRepository is a GORM implementation of EventRepository.
type GORMEventRepository struct {
	db *gorm.DB
}

// NewGORMEventRepository creates a new instance of GORMEventRepository.
func NewGORMEventRepository(db *gorm.DB) *GORMEventRepository {
	return &GORMEventRepository{
		db: db,
	}
}

// GetAll retrieves all events from the database.
func (r *GORMEventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}
	return normalizeEvents(events), nil
}

// GetByID retrieves a single event by its ID from the database.
func (r *GORMEventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event by ID %s: %w", id, err)
	}
	event.Normalize()
	return &event, nil
}

func (r *GORMEventRepository) GetBySportID(ctx context.Context, sportID string) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Where("sport_id = ?", sportID).Order("created_at, id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get events for sport %s: %w", sportID, err)
	}
	return normalizeEvents(events), nil
}

func (r *GORMEventRepository) GetByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	if len(ids) == 0 {
		return []models.Event{}, nil
	}
	var events []models.Event
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get events by IDs: %w", err)
	}
	return normalizeEvents(events), nil
}

// Create creates a new event in the database.
func (r *GORMEventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.Normalize()
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// Update writes every field of event, including zero values.
func (r *GORMEventRepository) Update(ctx context.Context, event *models.Event) error {
	event.Normalize()
	res := r.db.WithContext(ctx).Model(event).Select("*").Updates(event)
	if res.Error != nil {
		return fmt.Errorf("failed to update event %s: %w", event.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("event with ID %s for update: %w", event.ID, ErrNotFound)
	}
	return nil
}

// Delete removes an event row permanently.
func (r *GORMEventRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete event: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("event with ID %s for deletion: %w", id, ErrNotFound)
	}
	return nil
}

func normalizeEvents(events []models.Event) []models.Event {
	if events == nil {
		return []models.Event{}
	}
	for i := range events {
		events[i].Normalize()
	}
	return events
}
