package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"pickup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// runStoreContract exercises the behaviour every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("UserCRUD", func(t *testing.T) { testUserCRUD(t, newStore(t)) })
	t.Run("UserDuplicateEmail", func(t *testing.T) { testUserDuplicateEmail(t, newStore(t)) })
	t.Run("EventCRUD", func(t *testing.T) { testEventCRUD(t, newStore(t)) })
	t.Run("EventQueries", func(t *testing.T) { testEventQueries(t, newStore(t)) })
	t.Run("TransactionCommit", func(t *testing.T) { testTransactionCommit(t, newStore(t)) })
	t.Run("TransactionRollback", func(t *testing.T) { testTransactionRollback(t, newStore(t)) })
}

func createUser(t *testing.T, store Store, email string) *models.User {
	t.Helper()
	user := &models.User{Name: "Ada", Email: email, Password: "secret1", Image: models.DefaultUserImage}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return user
}

func createEvent(t *testing.T, store Store, ownerID, sportID string) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:       "5-a-side",
		Description: "Friendly match",
		UserID:      ownerID,
		Skill:       "casual",
		SportID:     sportID,
		Location:    "Park",
		Datetime:    time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Events().Create(context.Background(), event))
	return event
}

func testUserCRUD(t *testing.T, store Store) {
	ctx := context.Background()
	user := createUser(t, store, "ada@x.com")
	assert.NotEmpty(t, user.ID)

	found, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.Name)
	assert.Equal(t, "secret1", found.Password)
	assert.NotNil(t, found.Events)
	assert.Empty(t, found.Events)

	byEmail, err := store.Users().GetByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = store.Users().GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Users().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	found.Name = "Ada L."
	found.About = "left back"
	found.Events = datatypes.JSONSlice[string]{"e1", "e2"}
	require.NoError(t, store.Users().Update(ctx, found))

	updated, err := store.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", updated.Name)
	assert.Equal(t, "left back", updated.About)
	assert.Equal(t, []string{"e1", "e2"}, []string(updated.Events))

	err = store.Users().Update(ctx, &models.User{ID: "missing", Email: "m@x.com"})
	assert.ErrorIs(t, err, ErrNotFound)

	createUser(t, store, "bob@x.com")
	all, err := store.Users().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func testUserDuplicateEmail(t *testing.T, store Store) {
	createUser(t, store, "dup@x.com")

	err := store.Users().Create(context.Background(), &models.User{Name: "Other", Email: "dup@x.com", Password: "secret1"})
	assert.Error(t, err)
}

func testEventCRUD(t *testing.T, store Store) {
	ctx := context.Background()
	owner := createUser(t, store, "owner@x.com")
	event := createEvent(t, store, owner.ID, "soccer")
	assert.NotEmpty(t, event.ID)

	found, err := store.Events().GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "5-a-side", found.Title)
	assert.Equal(t, owner.ID, found.UserID)
	assert.True(t, found.Datetime.Equal(event.Datetime))
	assert.NotNil(t, found.Participants)
	assert.NotNil(t, found.Comments)
	assert.NotNil(t, found.Likes)

	found.Participants = datatypes.JSONSlice[string]{"u1", "u2"}
	found.Comments = datatypes.JSONSlice[models.Comment]{{UserID: "u1", Text: "see you there"}}
	found.Likes = datatypes.JSONSlice[string]{"u2"}
	found.Title = "7-a-side"
	require.NoError(t, store.Events().Update(ctx, found))

	updated, err := store.Events().GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "7-a-side", updated.Title)
	assert.Equal(t, []string{"u1", "u2"}, []string(updated.Participants))
	assert.Equal(t, []models.Comment{{UserID: "u1", Text: "see you there"}}, []models.Comment(updated.Comments))
	assert.Equal(t, []string{"u2"}, []string(updated.Likes))

	require.NoError(t, store.Events().Delete(ctx, event.ID))
	_, err = store.Events().GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Events().Delete(ctx, event.ID), ErrNotFound)
	assert.ErrorIs(t, store.Events().Update(ctx, updated), ErrNotFound)
}

func testEventQueries(t *testing.T, store Store) {
	ctx := context.Background()
	owner := createUser(t, store, "q@x.com")
	soccer1 := createEvent(t, store, owner.ID, "soccer")
	soccer2 := createEvent(t, store, owner.ID, "soccer")
	tennis := createEvent(t, store, owner.ID, "tennis")

	all, err := store.Events().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	bySport, err := store.Events().GetBySportID(ctx, "soccer")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{soccer1.ID, soccer2.ID}, eventIDs(bySport))

	none, err := store.Events().GetBySportID(ctx, "curling")
	require.NoError(t, err)
	assert.Empty(t, none)

	byIDs, err := store.Events().GetByIDs(ctx, []string{tennis.ID, "missing", soccer1.ID})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{tennis.ID, soccer1.ID}, eventIDs(byIDs))

	empty, err := store.Events().GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func testTransactionCommit(t *testing.T, store Store) {
	ctx := context.Background()
	owner := createUser(t, store, "tx@x.com")
	event := &models.Event{Title: "Doubles", Description: "Club night", UserID: owner.ID, Skill: "pro",
		SportID: "tennis", Location: "Court 3", Datetime: time.Now().UTC()}

	err := store.WithinTransaction(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Events().Create(ctx, event); err != nil {
			return err
		}
		u, err := tx.Users().GetByID(ctx, owner.ID)
		if err != nil {
			return err
		}
		u.Events = append(u.Events, event.ID)
		return tx.Users().Update(ctx, u)
	})
	require.NoError(t, err)

	_, err = store.Events().GetByID(ctx, event.ID)
	assert.NoError(t, err)
	u, err := store.Users().GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{event.ID}, []string(u.Events))
}

func testTransactionRollback(t *testing.T, store Store) {
	ctx := context.Background()
	owner := createUser(t, store, "rb@x.com")
	event := &models.Event{Title: "Doubles", Description: "Club night", UserID: owner.ID, Skill: "pro",
		SportID: "tennis", Location: "Court 3", Datetime: time.Now().UTC()}
	boom := errors.New("boom")

	err := store.WithinTransaction(ctx, func(ctx context.Context, tx Store) error {
		if err := tx.Events().Create(ctx, event); err != nil {
			return err
		}
		u, err := tx.Users().GetByID(ctx, owner.ID)
		if err != nil {
			return err
		}
		u.Events = append(u.Events, event.ID)
		if err := tx.Users().Update(ctx, u); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = store.Events().GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	u, err := store.Users().GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, u.Events)
}

func eventIDs(events []models.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}
