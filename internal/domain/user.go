package domain

import "time"

// User is an authentication identity in the relational store. It is separate
// from the therapist roster: signing up creates a User, while Therapist rows
// are managed by admins. The two meet only through the email column.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never exposed via JSON
	CreatedAt    time.Time `json:"createdAt"`
}
