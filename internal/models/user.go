package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultUserImage is assigned to every new account.
const DefaultUserImage = "https://live.staticflickr.com/7631/26849088292_36fc52ee90_b.jpg"

// User represents a player. Events holds the IDs of the events the user created.
type User struct {
	ID        string                      `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Name      string                      `json:"name" gorm:"not null" bson:"name"`
	Email     string                      `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" bson:"email"`
	About     string                      `json:"about,omitempty" bson:"about,omitempty"`
	Password  string                      `json:"password,omitempty" gorm:"not null" bson:"password"` // stored as given
	Image     string                      `json:"image" gorm:"not null" bson:"image"`
	Events    datatypes.JSONSlice[string] `json:"events" bson:"events"`
	CreatedAt time.Time                   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt" bson:"updatedAt"`
}

// UserChanges holds the fields of a profile edit. An empty value means "keep the stored one".
type UserChanges struct {
	Name     string
	Email    string
	Password string
	Image    string
	About    string
}

func (u *User) Normalize() {
	if u.Events == nil {
		u.Events = datatypes.JSONSlice[string]{}
	}
}

// WithoutPassword returns a copy safe to list publicly.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

func (u User) Clone() User {
	c := u
	c.Events = append(datatypes.JSONSlice[string]{}, u.Events...)
	return c
}
