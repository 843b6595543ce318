package handlers

import (
	"log/slog"
	"time"

	"pickup/internal/models"
	"pickup/internal/services"

	"github.com/gofiber/fiber/v2"
)

// EventHandler handles HTTP requests for events.
type EventHandler struct {
	service   *services.EventService
	validator *requestValidator
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service *services.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service:   service,
		validator: newRequestValidator(logger),
	}
}

// RegisterRoutes registers the event routes with the Fiber app.
func (h *EventHandler) RegisterRoutes(router fiber.Router) {
	eventRoutes := router.Group("/events")
	eventRoutes.Get("/", h.HandleGetFeed)
	eventRoutes.Get("/:eventId", h.HandleGetEvent)
	eventRoutes.Post("/", h.HandleCreateEvent)
	eventRoutes.Patch("/:eventId", h.HandleUpdateEvent)
	eventRoutes.Delete("/:eventId", h.HandleDeleteEvent)
	eventRoutes.Post("/:eventId/comments", h.HandlePostComment)
	eventRoutes.Get("/:eventId/comments", h.HandleGetComments)
	eventRoutes.Patch("/:eventId/join", h.HandleJoinEvent)
	eventRoutes.Patch("/:eventId/leave", h.HandleLeaveEvent)
	eventRoutes.Patch("/:eventId/like", h.HandleToggleLike)
}

// CreateEventRequest is the body of POST /events.
type CreateEventRequest struct {
	Title        string           `json:"title" validate:"required"`
	Description  string           `json:"description" validate:"min=5"`
	Skill        string           `json:"skill" validate:"required"`
	Datetime     time.Time        `json:"datetime" validate:"required"`
	Location     string           `json:"location" validate:"required"`
	SportID      string           `json:"sportId" validate:"required"`
	UserID       string           `json:"userId" validate:"required"`
	Participants []string         `json:"participants"`
	Comments     []models.Comment `json:"comments"`
	Likes        []string         `json:"likes"`
}

// UpdateEventRequest is the body of PATCH /events/:eventId. Every field is replaced.
type UpdateEventRequest struct {
	Title        string           `json:"title" validate:"required"`
	Description  string           `json:"description" validate:"min=5"`
	Datetime     time.Time        `json:"datetime" validate:"required"`
	Location     string           `json:"location" validate:"required"`
	Participants []string         `json:"participants"`
	Comments     []models.Comment `json:"comments"`
	Likes        []string         `json:"likes"`
}

// MemberRequest is the body of the join, leave and like routes.
type MemberRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// CommentRequest is the body of POST /events/:eventId/comments.
type CommentRequest struct {
	UserID string `json:"userId" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// HandleGetFeed retrieves all events.
func (h *EventHandler) HandleGetFeed(c *fiber.Ctx) error {
	events, err := h.service.GetFeed(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": events})
}

// HandleGetEvent retrieves a single event by its ID.
func (h *EventHandler) HandleGetEvent(c *fiber.Ctx) error {
	event, err := h.service.GetEventByID(c.UserContext(), c.Params("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"event": event})
}

// HandleCreateEvent creates a new event owned by the given user.
func (h *EventHandler) HandleCreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest
	if err := h.validator.parse(c, &req); err != nil {
		return err
	}

	event, err := h.service.CreateEvent(c.UserContext(), models.Event{
		Title:        req.Title,
		Description:  req.Description,
		UserID:       req.UserID,
		Skill:        req.Skill,
		SportID:      req.SportID,
		Location:     req.Location,
		Datetime:     req.Datetime,
		Participants: req.Participants,
		Comments:     req.Comments,
		Likes:        req.Likes,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": event})
}

// HandleUpdateEvent replaces the editable fields of an event.
func (h *EventHandler) HandleUpdateEvent(c *fiber.Ctx) error {
	var req UpdateEventRequest
	if err := h.validator.parse(c, &req); err != nil {
		return err
	}

	event, err := h.service.UpdateEvent(c.UserContext(), c.Params("eventId"), models.EventChanges{
		Title:        req.Title,
		Description:  req.Description,
		Datetime:     req.Datetime,
		Location:     req.Location,
		Participants: req.Participants,
		Comments:     req.Comments,
		Likes:        req.Likes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"event": event})
}

// HandleDeleteEvent deletes an event.
func (h *EventHandler) HandleDeleteEvent(c *fiber.Ctx) error {
	if err := h.service.DeleteEvent(c.UserContext(), c.Params("eventId")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Deleted event."})
}

// HandleJoinEvent adds a user to the participants.
func (h *EventHandler) HandleJoinEvent(c *fiber.Ctx) error {
	var req MemberRequest
	if err := h.validator.parse(c, &req); err != nil {
		return err
	}
	if err := h.service.JoinEvent(c.UserContext(), c.Params("eventId"), req.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User joined the event successfully."})
}

// HandleLeaveEvent removes a user from the participants.
func (h *EventHandler) HandleLeaveEvent(c *fiber.Ctx) error {
	var req MemberRequest
	if err := h.validator.parse(c, &req); err != nil {
		return err
	}
	if err := h.service.LeaveEvent(c.UserContext(), c.Params("eventId"), req.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User left the event successfully."})
}

// HandlePostComment appends a comment and returns the updated event.
func (h *EventHandler) HandlePostComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := h.validator.parse(c, &req); err != nil {
		return err
	}

	event, err := h.service.PostComment(c.UserContext(), c.Params("eventId"), models.Comment{UserID: req.UserID, Text: req.Text})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"event": event})
}

// HandleGetComments lists the comments of an event.
func (h *EventHandler) HandleGetComments(c *fiber.Ctx) error {
	comments, err := h.service.GetComments(c.UserContext(), c.Params("eventId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"comments": comments})
}

// HandleToggleLike likes or unlikes an event and reports the new like count.
func (h *EventHandler) HandleToggleLike(c *fiber.Ctx) error {
	var req MemberRequest
	if err := h.validator.parse(c, &req); err != nil {
		return err
	}

	event, err := h.service.ToggleLike(c.UserContext(), c.Params("eventId"), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"likes": len(event.Likes), "event": event})
}
