package model

import (
	"time"
)

// Challenge is a user-owned goal. AuthorID is set once at creation and
// never reassigned.
//
// Duration is in days: nil means unset, 0 means unbounded. Progress is the
// author-reported percentage and is independent of the time-derived ratio
// computed by the timeline package.
type Challenge struct {
	ID          string    `json:"id" db:"id"`
	AuthorID    string    `json:"authorId" db:"author_id"`
	Title       string    `json:"title" db:"title"`
	Category    string    `json:"category" db:"category"`
	Difficulty  string    `json:"difficulty" db:"difficulty"`
	Description string    `json:"description" db:"description"`
	Goal        string    `json:"goal" db:"goal"`
	Duration    *int      `json:"duration" db:"duration"`
	Progress    *float64  `json:"progress" db:"progress"`
	Age         *int      `json:"age" db:"age"`
	Gender      string    `json:"gender" db:"gender"`
	CityAddress string    `json:"cityAddress" db:"city_address"`
	Country     string    `json:"country" db:"country"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ChallengePin is the reduced row returned for country map listings.
type ChallengePin struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	CityAddress string `json:"cityAddress" db:"city_address"`
}
