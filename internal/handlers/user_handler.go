package handlers

import (
	"log/slog"

	"pickup/internal/models"
	"pickup/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service   *services.UserService
	validator *requestValidator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: newRequestValidator(logger),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	// must precede /:userId
	userRoutes.Get("/events/:userId", h.HandleGetUserEvents)
	userRoutes.Get("/:userId", h.HandleGetUser)
	userRoutes.Post("/signup", h.HandleSignup)
	userRoutes.Post("/login", h.HandleLogin)
	userRoutes.Patch("/edit/:userId", h.HandleEditUser)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EditUserRequest represents the request body for a profile edit. A nil field was not sent.
type EditUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Image    *string `json:"image" validate:"omitempty,url"`
	About    *string `json:"about"`
}

// HandleGetUsers lists all users without their passwords.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"users": users})
}

// HandleGetUser retrieves a single user without the password.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

// HandleGetUserEvents lists the events a user created.
func (h *UserHandler) HandleGetUserEvents(c *fiber.Ctx) error {
	events, err := h.service.GetUserEvents(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": events})
}

// HandleSignup registers a new user.
func (h *UserHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := h.validator.parse(c, &req); err != nil {
		return err
	}

	user, err := h.service.Signup(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

// HandleLogin checks credentials. No token is issued.
func (h *UserHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := h.validator.parse(c, &req); err != nil {
		return err
	}
	if err := h.service.Login(c.UserContext(), req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logged in!"})
}

// HandleEditUser updates the supplied profile fields.
func (h *UserHandler) HandleEditUser(c *fiber.Ctx) error {
	var req EditUserRequest
	if err := h.validator.parse(c, &req); err != nil {
		return err
	}

	user, err := h.service.EditUser(c.UserContext(), c.Params("userId"), models.UserChanges{
		Name:     deref(req.Name),
		Email:    deref(req.Email),
		Password: deref(req.Password),
		Image:    deref(req.Image),
		About:    deref(req.About),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
