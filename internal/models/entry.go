package models

import (
	"time"

	"github.com/google/uuid"
)

// Mood classifies the emotional tone of a journal entry.
type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodSad      Mood = "sad"
	MoodAngry    Mood = "angry"
	MoodExcited  Mood = "excited"
	MoodCalm     Mood = "calm"
	MoodInspired Mood = "inspired"
	MoodNeutral  Mood = "neutral"
	MoodStressed Mood = "stressed"
	MoodTired    Mood = "tired"
)

// Moods lists every accepted mood tag, in the order the UI presents them.
var Moods = []Mood{
	MoodHappy,
	MoodSad,
	MoodAngry,
	MoodExcited,
	MoodCalm,
	MoodInspired,
	MoodNeutral,
	MoodStressed,
	MoodTired,
}

func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// Entry is a single journal record. The mood tag is serialized as "tags"
// to match the dashboard client.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"tags"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateEntryParams struct {
	Title     string
	Content   string
	Mood      Mood
	CreatedBy uuid.UUID
}

// UpdateEntryParams carries a partial entry update. Nil fields are left
// unchanged.
type UpdateEntryParams struct {
	Title   *string
	Content *string
	Mood    *Mood
}
