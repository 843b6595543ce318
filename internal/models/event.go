package models

import (
	"time"

	"gorm.io/datatypes"
)

// Comment is a single remark posted on an event. Comments have no identity of their own.
type Comment struct {
	UserID string `json:"userId" bson:"userId"`
	Text   string `json:"text" bson:"text"`
}

// Event is a pickup game organised by a user for a sport.
type Event struct {
	ID           string                       `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Title        string                       `json:"title" gorm:"not null" bson:"title"`
	Description  string                       `json:"description" gorm:"not null" bson:"description"`
	UserID       string                       `json:"userId" gorm:"index;type:varchar(36);not null" bson:"userId"` // owner
	Skill        string                       `json:"skill" gorm:"not null" bson:"skill"`
	SportID      string                       `json:"sportId" gorm:"index;not null" bson:"sportId"`
	Location     string                       `json:"location" gorm:"not null" bson:"location"`
	Datetime     time.Time                    `json:"datetime" gorm:"not null" bson:"datetime"`
	Participants datatypes.JSONSlice[string]  `json:"participants" bson:"participants"`
	Comments     datatypes.JSONSlice[Comment] `json:"comments" bson:"comments"`
	Likes        datatypes.JSONSlice[string]  `json:"likes" bson:"likes"`
	CreatedAt    time.Time                    `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time                    `json:"updatedAt" bson:"updatedAt"`
}

// EventChanges is the full replacement applied by an event update.
type EventChanges struct {
	Title        string
	Description  string
	Datetime     time.Time
	Location     string
	Participants []string
	Comments     []Comment
	Likes        []string
}

// Normalize replaces nil lists with empty ones so they persist and render as [].
func (e *Event) Normalize() {
	if e.Participants == nil {
		e.Participants = datatypes.JSONSlice[string]{}
	}
	if e.Comments == nil {
		e.Comments = datatypes.JSONSlice[Comment]{}
	}
	if e.Likes == nil {
		e.Likes = datatypes.JSONSlice[string]{}
	}
}

// Clone returns a deep copy; the lists do not share backing arrays with e.
func (e Event) Clone() Event {
	c := e
	c.Participants = append(datatypes.JSONSlice[string]{}, e.Participants...)
	c.Comments = append(datatypes.JSONSlice[Comment]{}, e.Comments...)
	c.Likes = append(datatypes.JSONSlice[string]{}, e.Likes...)
	return c
}
