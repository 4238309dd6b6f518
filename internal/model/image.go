package model

import (
	"time"
)

// Image is an attachment reference. The binary itself lives in blob storage;
// URL is the durable handle returned by the storage collaborator.
//
// An image belongs to exactly one challenge and optionally to one update
// within that challenge. IsMain is true only for challenge cover images and
// is never set on update images.
type Image struct {
	ID          string    `json:"id" db:"id"`
	ChallengeID string    `json:"challengeId" db:"challenge_id"`
	UpdateID    *string   `json:"updateId" db:"update_id"`
	UserID      string    `json:"userId" db:"user_id"`
	URL         string    `json:"url" db:"url"`
	IsMain      bool      `json:"isMain" db:"is_main"`
	ImageText   string    `json:"imageText" db:"image_text"`
	Duration    int       `json:"duration" db:"duration"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
