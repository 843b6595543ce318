package services_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"pickup/internal/apperror"
	"pickup/internal/models"
	"pickup/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.ActivityPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(payload interface{}) error {
	args := m.Called(payload)
	return args.Error(0)
}

func activityOfType(activityType string) interface{} {
	return mock.MatchedBy(func(a models.Activity) bool { return a.Type == activityType })
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func assertAppError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, kind)
	assert.Equal(t, message, appErr.Message)
}

// faultyStore wraps a Store and makes selected operations fail, inside transactions too.
type faultyStore struct {
	repositories.Store
	userWriteErr  error // returned by Users().Update and Users().Create
	eventReadErr  error // returned by every Events() read
	eventWriteErr error // returned by Events().Update
}

func (s *faultyStore) Users() repositories.UserRepository {
	return &faultyUsers{UserRepository: s.Store.Users(), writeErr: s.userWriteErr}
}

func (s *faultyStore) Events() repositories.EventRepository {
	return &faultyEvents{EventRepository: s.Store.Events(), readErr: s.eventReadErr, writeErr: s.eventWriteErr}
}

func (s *faultyStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	return s.Store.WithinTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		return fn(ctx, &faultyStore{Store: tx, userWriteErr: s.userWriteErr, eventReadErr: s.eventReadErr, eventWriteErr: s.eventWriteErr})
	})
}

type faultyUsers struct {
	repositories.UserRepository
	writeErr error
}

func (r *faultyUsers) Create(ctx context.Context, user *models.User) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	return r.UserRepository.Create(ctx, user)
}

func (r *faultyUsers) Update(ctx context.Context, user *models.User) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	return r.UserRepository.Update(ctx, user)
}

type faultyEvents struct {
	repositories.EventRepository
	readErr  error
	writeErr error
}

func (r *faultyEvents) GetAll(ctx context.Context) ([]models.Event, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	return r.EventRepository.GetAll(ctx)
}

func (r *faultyEvents) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	return r.EventRepository.GetByID(ctx, id)
}

func (r *faultyEvents) GetBySportID(ctx context.Context, sportID string) ([]models.Event, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	return r.EventRepository.GetBySportID(ctx, sportID)
}

func (r *faultyEvents) GetByIDs(ctx context.Context, ids []string) ([]models.Event, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	return r.EventRepository.GetByIDs(ctx, ids)
}

func (r *faultyEvents) Update(ctx context.Context, event *models.Event) error {
	if r.writeErr != nil {
		return r.writeErr
	}
	return r.EventRepository.Update(ctx, event)
}
