package handlers

import (
	"pickup/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SportHandler serves the events of a sport.
type SportHandler struct {
	service *services.EventService
}

func NewSportHandler(service *services.EventService) *SportHandler {
	return &SportHandler{service: service}
}

func (h *SportHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/sports/:sportId", h.HandleGetEventsBySport)
}

// HandleGetEventsBySport lists the events of a sport; a sport without events is a 404.
func (h *SportHandler) HandleGetEventsBySport(c *fiber.Ctx) error {
	events, err := h.service.GetEventsBySport(c.UserContext(), c.Params("sportId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": events})
}
