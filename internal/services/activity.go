package services

import (
	"log/slog"
	"time"

	"pickup/internal/models"
)

// ActivityPublisher sends activity notifications to a message broker.
type ActivityPublisher interface {
	Publish(payload interface{}) error
}

// notifier publishes activities on a best-effort basis. A nil publisher disables it.
type notifier struct {
	publisher ActivityPublisher
	logger    *slog.Logger
}

func (n notifier) notify(activityType, eventID, userID string) {
	if n.publisher == nil {
		n.logger.Debug("activity publisher not configured, skipping", "type", activityType)
		return
	}

	activity := models.Activity{
		Type:       activityType,
		EventID:    eventID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
	if err := n.publisher.Publish(activity); err != nil {
		n.logger.Warn("failed to publish activity", "type", activityType, "event_id", eventID, "error", err)
	}
}
