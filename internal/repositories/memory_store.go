package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"pickup/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of Store. Records are copied on the way in and out,
// so callers never share list backing arrays with the store.
type MemoryStore struct {
	mu    sync.Mutex
	state *memoryState
}

var _ Store = (*MemoryStore)(nil)

type memoryState struct {
	users  map[string]models.User
	events map[string]models.Event
}

// NewMemoryStore creates a new, empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: &memoryState{
			users:  make(map[string]models.User),
			events: make(map[string]models.Event),
		},
	}
}

func (s *MemoryStore) Users() UserRepository {
	return &memoryUserRepository{mu: &s.mu, state: s.state}
}

func (s *MemoryStore) Events() EventRepository {
	return &memoryEventRepository{mu: &s.mu, state: s.state}
}

// WithinTransaction holds the store lock for the whole of fn and runs it against a copy of the data.
// The copy replaces the live data only when fn succeeds.
func (s *MemoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.state.clone()
	if err := fn(ctx, &memoryTx{state: draft}); err != nil {
		return err
	}
	*s.state = *draft
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (st *memoryState) clone() *memoryState {
	c := &memoryState{
		users:  make(map[string]models.User, len(st.users)),
		events: make(map[string]models.Event, len(st.events)),
	}
	for id, u := range st.users {
		c.users[id] = u.Clone()
	}
	for id, e := range st.events {
		c.events[id] = e.Clone()
	}
	return c
}

// memoryTx is the view handed to a transaction body. The store lock is already held.
type memoryTx struct {
	state *memoryState
}

func (t *memoryTx) Users() UserRepository {
	return &memoryUserRepository{mu: nopLocker{}, state: t.state}
}

func (t *memoryTx) Events() EventRepository {
	return &memoryEventRepository{mu: nopLocker{}, state: t.state}
}

func (t *memoryTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return fn(ctx, t)
}

func (t *memoryTx) Ping(context.Context) error {
	return nil
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

type memoryUserRepository struct {
	mu    sync.Locker
	state *memoryState
}

func (r *memoryUserRepository) GetAll(context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]models.User, 0, len(r.state.users))
	for _, u := range r.state.users {
		users = append(users, u.Clone())
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.state.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrNotFound)
	}
	c := u.Clone()
	return &c, nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.state.users {
		if u.Email == email {
			c := u.Clone()
			return &c, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
}

func (r *memoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.state.users {
		if u.Email == user.Email {
			return fmt.Errorf("failed to create user: email %s already registered", user.Email)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if _, exists := r.state.users[user.ID]; exists {
		return fmt.Errorf("failed to create user: duplicate ID %s", user.ID)
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.Normalize()
	r.state.users[user.ID] = user.Clone()
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.users[user.ID]; !ok {
		return fmt.Errorf("user with ID %s for update: %w", user.ID, ErrNotFound)
	}
	for id, u := range r.state.users {
		if id != user.ID && u.Email == user.Email {
			return fmt.Errorf("failed to update user %s: email %s already registered", user.ID, user.Email)
		}
	}
	user.UpdatedAt = time.Now()
	user.Normalize()
	r.state.users[user.ID] = user.Clone()
	return nil
}

type memoryEventRepository struct {
	mu    sync.Locker
	state *memoryState
}

func (r *memoryEventRepository) GetAll(context.Context) ([]models.Event, error) {
	return r.filter(func(models.Event) bool { return true }), nil
}

func (r *memoryEventRepository) GetByID(_ context.Context, id string) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.state.events[id]
	if !ok {
		return nil, fmt.Errorf("event with ID %s: %w", id, ErrNotFound)
	}
	c := e.Clone()
	return &c, nil
}

func (r *memoryEventRepository) GetBySportID(_ context.Context, sportID string) ([]models.Event, error) {
	return r.filter(func(e models.Event) bool { return e.SportID == sportID }), nil
}

func (r *memoryEventRepository) GetByIDs(_ context.Context, ids []string) ([]models.Event, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return r.filter(func(e models.Event) bool {
		_, ok := wanted[e.ID]
		return ok
	}), nil
}

func (r *memoryEventRepository) Create(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if _, exists := r.state.events[event.ID]; exists {
		return fmt.Errorf("failed to create event: duplicate ID %s", event.ID)
	}
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.Normalize()
	r.state.events[event.ID] = event.Clone()
	return nil
}

func (r *memoryEventRepository) Update(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.events[event.ID]; !ok {
		return fmt.Errorf("event with ID %s for update: %w", event.ID, ErrNotFound)
	}
	event.UpdatedAt = time.Now()
	event.Normalize()
	r.state.events[event.ID] = event.Clone()
	return nil
}

func (r *memoryEventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.state.events[id]; !ok {
		return fmt.Errorf("event with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.state.events, id)
	return nil
}

func (r *memoryEventRepository) filter(keep func(models.Event) bool) []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]models.Event, 0)
	for _, e := range r.state.events {
		if keep(e) {
			events = append(events, e.Clone())
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID < events[j].ID
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events
}
