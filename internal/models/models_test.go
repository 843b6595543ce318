package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestEventNormalize(t *testing.T) {
	var e Event
	e.Normalize()

	assert.NotNil(t, e.Participants)
	assert.NotNil(t, e.Comments)
	assert.NotNil(t, e.Likes)
	assert.Empty(t, e.Participants)
}

func TestEventCloneDoesNotShareLists(t *testing.T) {
	e := Event{
		ID:           "e1",
		Participants: datatypes.JSONSlice[string]{"u1"},
		Comments:     datatypes.JSONSlice[Comment]{{UserID: "u1", Text: "gg"}},
		Likes:        datatypes.JSONSlice[string]{"u2"},
	}

	c := e.Clone()
	c.Participants[0] = "changed"
	c.Comments[0].Text = "changed"
	c.Likes = append(c.Likes, "u3")

	assert.Equal(t, "u1", e.Participants[0])
	assert.Equal(t, "gg", e.Comments[0].Text)
	assert.Len(t, e.Likes, 1)
}

func TestUserWithoutPassword(t *testing.T) {
	u := User{ID: "u1", Password: "secret1"}

	public := u.WithoutPassword()

	assert.Empty(t, public.Password)
	assert.Equal(t, "secret1", u.Password)
}

func TestUserClone(t *testing.T) {
	u := User{ID: "u1", Events: datatypes.JSONSlice[string]{"e1"}}

	c := u.Clone()
	c.Events[0] = "e2"

	assert.Equal(t, "e1", u.Events[0])
}
