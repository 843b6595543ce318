package handlers

import (
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"pickup/internal/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const invalidInputsMessage = "Invalid inputs passed, please check your data."

// requestValidator parses and validates request bodies. Every failure is reported to the caller
// with the same message; the details only go to the debug log.
type requestValidator struct {
	validate *validator.Validate
	logger   *slog.Logger
}

func newRequestValidator(logger *slog.Logger) *requestValidator {
	validate := validator.New()
	// report fields by their JSON names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: validate, logger: logger}
}

func (v *requestValidator) parse(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		v.logger.Debug("invalid request body", "path", c.Path(), "error", err)
		return apperror.ValidationFailed(invalidInputsMessage)
	}

	if err := v.validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, e := range validationErrors {
				v.logger.Debug("request validation failed", "path", c.Path(), "field", e.Field(), "tag", e.Tag())
			}
		}
		return apperror.ValidationFailed(invalidInputsMessage)
	}
	return nil
}
