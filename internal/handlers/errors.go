package handlers

import (
	"errors"
	"log/slog"

	"pickup/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

const unknownErrorMessage = "An unknown error occurred!"

// ErrorHandler renders any error returned by a route as {"message": ...}. Application errors keep
// their status and message; fiber errors keep their code; anything else is a 500 with a generic message.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if len(c.Response().Body()) > 0 {
			logger.Error("error after response was written", "method", c.Method(), "path", c.Path(), "error", err)
			return nil
		}

		status := fiber.StatusInternalServerError
		message := unknownErrorMessage

		var appErr *apperror.AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = appErr.StatusCode()
			message = appErr.Message
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed", "method", c.Method(), "path", c.Path(), "status", status, "error", err)
		}
		return c.Status(status).JSON(fiber.Map{"message": message})
	}
}

// RouteNotFound is mounted last and answers every request no route matched.
func RouteNotFound(c *fiber.Ctx) error {
	return apperror.NotFound("Could not find this route.")
}
