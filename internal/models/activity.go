package models

import "time"

// Activity types published to the message broker.
const (
	ActivityUserSignedUp   = "user.signed_up"
	ActivityEventCreated   = "event.created"
	ActivityEventUpdated   = "event.updated"
	ActivityEventDeleted   = "event.deleted"
	ActivityEventJoined    = "event.joined"
	ActivityEventLeft      = "event.left"
	ActivityEventCommented = "event.commented"
	ActivityEventLiked     = "event.liked"
	ActivityEventUnliked   = "event.unliked"
)

// Activity is a notification about something a user did.
type Activity struct {
	Type       string    `json:"type"`
	EventID    string    `json:"eventId,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
