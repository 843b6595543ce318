package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"pickup/internal/apperror"
	"pickup/internal/models"
	"pickup/internal/repositories"
)

// EventService handles business logic related to events, including keeping each owner's
// event list consistent with the events that exist.
type EventService struct {
	store    repositories.Store
	activity notifier
	logger   *slog.Logger
}

// NewEventService creates a new EventService. publisher may be nil.
func NewEventService(store repositories.Store, publisher ActivityPublisher, logger *slog.Logger) *EventService {
	return &EventService{
		store:    store,
		activity: notifier{publisher: publisher, logger: logger},
		logger:   logger,
	}
}

// GetFeed retrieves every event.
func (s *EventService) GetFeed(ctx context.Context) ([]models.Event, error) {
	events, err := s.store.Events().GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch events", "error", err)
		return nil, apperror.Internal("Fetching events failed, please try again later.", err)
	}
	return events, nil
}

// GetEventByID retrieves a single event.
func (s *EventService) GetEventByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.store.Events().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Could not find an event for the provided id.")
		}
		s.logger.Error("failed to fetch event", "event_id", id, "error", err)
		return nil, apperror.Internal("Something went wrong, could not find an event.", err)
	}
	return event, nil
}

// GetEventsBySport retrieves the events of a sport. A sport without events is reported as not found.
func (s *EventService) GetEventsBySport(ctx context.Context, sportID string) ([]models.Event, error) {
	events, err := s.store.Events().GetBySportID(ctx, sportID)
	if err != nil {
		s.logger.Error("failed to fetch events by sport", "sport_id", sportID, "error", err)
		return nil, apperror.Internal("Fetching events failed, please try again later.", err)
	}
	if len(events) == 0 {
		return nil, apperror.NotFound("Could not find events for the provided sport ID.")
	}
	return events, nil
}

// CreateEvent stores a new event and appends its ID to the owner's event list in one transaction.
func (s *EventService) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	if _, err := s.store.Users().GetByID(ctx, event.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Could not find user for provided id.")
		}
		s.logger.Error("failed to find event owner", "user_id", event.UserID, "error", err)
		return nil, apperror.Internal("Finding user failed, please try again.", err)
	}

	event.ID = ""
	event.Normalize()
	err := s.store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Events().Create(ctx, &event); err != nil {
			return err
		}
		owner, err := tx.Users().GetByID(ctx, event.UserID)
		if err != nil {
			return err
		}
		owner.Events = append(owner.Events, event.ID)
		return tx.Users().Update(ctx, owner)
	})
	if err != nil {
		s.logger.Error("failed to create event", "user_id", event.UserID, "error", err)
		return nil, apperror.Internal("Creating event failed, please try again.", err)
	}

	s.logger.Info("event created", "event_id", event.ID, "user_id", event.UserID)
	s.activity.notify(models.ActivityEventCreated, event.ID, event.UserID)
	return &event, nil
}

// UpdateEvent replaces the editable fields of an event.
func (s *EventService) UpdateEvent(ctx context.Context, id string, changes models.EventChanges) (*models.Event, error) {
	event, err := s.store.Events().GetByID(ctx, id)
	if err != nil {
		return nil, s.updateFailed(id, err)
	}

	event.Title = changes.Title
	event.Description = changes.Description
	event.Datetime = changes.Datetime
	event.Location = changes.Location
	event.Participants = changes.Participants
	event.Comments = changes.Comments
	event.Likes = changes.Likes
	event.Normalize()

	if err := s.store.Events().Update(ctx, event); err != nil {
		return nil, s.updateFailed(id, err)
	}

	s.activity.notify(models.ActivityEventUpdated, event.ID, event.UserID)
	return event, nil
}

func (s *EventService) updateFailed(id string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NotFound("Could not find an event for the provided id.")
	}
	s.logger.Error("failed to update event", "event_id", id, "error", err)
	return apperror.Internal("Something went wrong, could not update event.", err)
}

// DeleteEvent removes an event and pulls its ID from the owner's event list in one transaction.
// A missing owner aborts the deletion.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	event, err := s.store.Events().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.NotFound("Could not find event for this id.")
		}
		s.logger.Error("failed to find event for deletion", "event_id", id, "error", err)
		return apperror.Internal("Something went wrong, could not delete event.", err)
	}

	err = s.store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.Events().Delete(ctx, event.ID); err != nil {
			return err
		}
		owner, err := tx.Users().GetByID(ctx, event.UserID)
		if err != nil {
			return fmt.Errorf("failed to load owner %s: %w", event.UserID, err)
		}
		owner.Events = removeAll(owner.Events, event.ID)
		return tx.Users().Update(ctx, owner)
	})
	if err != nil {
		s.logger.Error("failed to delete event", "event_id", id, "error", err)
		return apperror.Internal("Something went wrong, could not delete event.", err)
	}

	s.logger.Info("event deleted", "event_id", id, "user_id", event.UserID)
	s.activity.notify(models.ActivityEventDeleted, event.ID, event.UserID)
	return nil
}

// JoinEvent adds userID to the participants. Joining twice is a validation failure.
func (s *EventService) JoinEvent(ctx context.Context, eventID, userID string) error {
	const failed = "Joining the event failed, please try again later."

	event, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return s.membershipFailed(eventID, failed, err)
	}

	participants, added := addMember(event.Participants, userID)
	if !added {
		return apperror.ValidationFailed("User already joined the event")
	}
	event.Participants = participants

	if err := s.store.Events().Update(ctx, event); err != nil {
		return s.membershipFailed(eventID, failed, err)
	}

	s.activity.notify(models.ActivityEventJoined, eventID, userID)
	return nil
}

// LeaveEvent removes userID from the participants. Leaving without having joined is a validation failure.
func (s *EventService) LeaveEvent(ctx context.Context, eventID, userID string) error {
	const failed = "Leaving the event failed, please try again later."

	event, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		return s.membershipFailed(eventID, failed, err)
	}

	participants, removed := removeMember(event.Participants, userID)
	if !removed {
		return apperror.ValidationFailed("User not part of the event")
	}
	event.Participants = participants

	if err := s.store.Events().Update(ctx, event); err != nil {
		return s.membershipFailed(eventID, failed, err)
	}

	s.activity.notify(models.ActivityEventLeft, eventID, userID)
	return nil
}

func (s *EventService) membershipFailed(eventID, message string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperror.NotFound("Event not found")
	}
	s.logger.Error("failed to change event participants", "event_id", eventID, "error", err)
	return apperror.Internal(message, err)
}

// PostComment appends a comment and returns the updated event.
func (s *EventService) PostComment(ctx context.Context, eventID string, comment models.Comment) (*models.Event, error) {
	event, err := s.findEvent(ctx, eventID, "Finding event failed, please try again later.")
	if err != nil {
		return nil, err
	}

	event.Comments = append(event.Comments, comment)
	if err := s.store.Events().Update(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Event not found.")
		}
		s.logger.Error("failed to save comment", "event_id", eventID, "error", err)
		return nil, apperror.Internal("Posting comment failed, please try again.", err)
	}

	s.activity.notify(models.ActivityEventCommented, eventID, comment.UserID)
	return event, nil
}

// GetComments returns the comments of an event in the order they were posted.
func (s *EventService) GetComments(ctx context.Context, eventID string) ([]models.Comment, error) {
	event, err := s.findEvent(ctx, eventID, "Fetching event failed, please try again later.")
	if err != nil {
		return nil, err
	}
	return event.Comments, nil
}

// ToggleLike likes the event for userID, or removes the like if it is already there.
func (s *EventService) ToggleLike(ctx context.Context, eventID, userID string) (*models.Event, error) {
	event, err := s.findEvent(ctx, eventID, "Finding event failed, please try again later.")
	if err != nil {
		return nil, err
	}

	likes, liked := toggleMember(event.Likes, userID)
	event.Likes = likes
	if err := s.store.Events().Update(ctx, event); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Event not found.")
		}
		s.logger.Error("failed to save likes", "event_id", eventID, "error", err)
		return nil, apperror.Internal("Updating likes failed, please try again.", err)
	}

	if liked {
		s.activity.notify(models.ActivityEventLiked, eventID, userID)
	} else {
		s.activity.notify(models.ActivityEventUnliked, eventID, userID)
	}
	return event, nil
}

// findEvent loads an event for the comment and like operations, which share their not-found message.
func (s *EventService) findEvent(ctx context.Context, eventID, failed string) (*models.Event, error) {
	event, err := s.store.Events().GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Event not found.")
		}
		s.logger.Error("failed to find event", "event_id", eventID, "error", err)
		return nil, apperror.Internal(failed, err)
	}
	return event, nil
}
