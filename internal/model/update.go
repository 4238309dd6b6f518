package model

import (
	"time"
)

const (
	UpdateTypeCreated = "CREATED"
	UpdateTypeUpdated = "UPDATED"
)

// Update is one timeline entry under a challenge. Its author always equals
// the parent challenge's author; an update never outlives its challenge.
type Update struct {
	ID          string    `json:"id" db:"id"`
	ChallengeID string    `json:"challengeId" db:"challenge_id"`
	AuthorID    string    `json:"authorId" db:"author_id"`
	Content     string    `json:"content" db:"content"`
	Type        string    `json:"type" db:"type"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
