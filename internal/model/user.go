package model

import (
	"time"
)

// User is the internal record for an externally authenticated principal.
// Created lazily on first contact, never deleted by this service.
type User struct {
	ID        string    `json:"id" db:"id"`
	Subject   string    `json:"-" db:"subject"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
