package services

import (
	"context"
	"errors"
	"log/slog"

	"pickup/internal/apperror"
	"pickup/internal/models"
	"pickup/internal/repositories"
)

// UserService handles business logic for accounts and profiles.
// Passwords are stored and compared as given; there is no session or token.
type UserService struct {
	store    repositories.Store
	activity notifier
	logger   *slog.Logger
}

// NewUserService creates a new UserService. publisher may be nil.
func NewUserService(store repositories.Store, publisher ActivityPublisher, logger *slog.Logger) *UserService {
	return &UserService{
		store:    store,
		activity: notifier{publisher: publisher, logger: logger},
		logger:   logger,
	}
}

// GetUsers retrieves every user without passwords.
func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.store.Users().GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to fetch users", "error", err)
		return nil, apperror.Internal("Fetching users failed, please try again later.", err)
	}
	for i := range users {
		users[i] = users[i].WithoutPassword()
	}
	return users, nil
}

// GetUserByID retrieves a single user without the password.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Could not find a user for the provided user id.")
		}
		s.logger.Error("failed to fetch user", "user_id", id, "error", err)
		return nil, apperror.Internal("Fetching user failed, please try again later.", err)
	}
	public := user.WithoutPassword()
	return &public, nil
}

// Signup registers a new user with the default image and no events.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	existing, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		s.logger.Error("failed to look up email", "error", err)
		return nil, apperror.Internal("Signing up failed, please try again later.", err)
	}
	if existing != nil {
		return nil, apperror.ValidationFailed("User exists already, please login instead.")
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: password,
		Image:    models.DefaultUserImage,
	}
	user.Normalize()
	if err := s.store.Users().Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, apperror.Internal("Signing up failed, please try again.", err)
	}

	s.logger.Info("user signed up", "user_id", user.ID)
	s.activity.notify(models.ActivityUserSignedUp, "", user.ID)
	return user, nil
}

// Login checks the credentials. It returns nil on a match.
func (s *UserService) Login(ctx context.Context, email, password string) error {
	user, err := s.store.Users().GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperror.Unauthorized("Invalid credentials, could not log you in.")
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return apperror.Internal("Logging in failed, please try again later.", err)
	}
	if user.Password != password {
		return apperror.Unauthorized("Invalid credentials, could not log you in.")
	}
	return nil
}

// EditUser applies the non-empty fields of changes. An empty value keeps the stored one.
func (s *UserService) EditUser(ctx context.Context, id string, changes models.UserChanges) (*models.User, error) {
	user, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperror.NotFound("Could not find a user for the provided id.")
		}
		s.logger.Error("failed to find user for edit", "user_id", id, "error", err)
		return nil, apperror.Internal("Something went wrong, could not find a user.", err)
	}

	if changes.Name != "" {
		user.Name = changes.Name
	}
	if changes.Email != "" {
		user.Email = NormalizeEmail(changes.Email)
	}
	if changes.Password != "" {
		user.Password = changes.Password
	}
	if changes.Image != "" {
		user.Image = changes.Image
	}
	if changes.About != "" {
		user.About = changes.About
	}

	if err := s.store.Users().Update(ctx, user); err != nil {
		s.logger.Error("failed to update user", "user_id", id, "error", err)
		return nil, apperror.Internal("Something went wrong, could not update the user.", err)
	}
	return user, nil
}

// GetUserEvents resolves the user's event list in list order, skipping IDs that no longer resolve.
// A user without events is reported as not found.
func (s *UserService) GetUserEvents(ctx context.Context, userID string) ([]models.Event, error) {
	const failed = "Fetching user events failed, please try again later."
	notFound := apperror.NotFound("Could not find events for the provided user id.")

	user, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, notFound
		}
		s.logger.Error("failed to find user for events", "user_id", userID, "error", err)
		return nil, apperror.Internal(failed, err)
	}
	if len(user.Events) == 0 {
		return nil, notFound
	}

	found, err := s.store.Events().GetByIDs(ctx, user.Events)
	if err != nil {
		s.logger.Error("failed to fetch user events", "user_id", userID, "error", err)
		return nil, apperror.Internal(failed, err)
	}
	byID := make(map[string]models.Event, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}

	events := make([]models.Event, 0, len(user.Events))
	for _, id := range user.Events {
		if e, ok := byID[id]; ok {
			events = append(events, e)
		}
	}
	if len(events) == 0 {
		return nil, notFound
	}
	return events, nil
}
