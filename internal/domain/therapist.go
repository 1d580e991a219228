package domain

import "time"

// Permission is a therapist's access level.
type Permission string

const (
	PermissionTherapist Permission = "therapist"
	PermissionAdmin     Permission = "admin"
)

// Therapist is a row in the relational store's therapist roster. Email is the
// only link to the authenticated identity and is compared case-sensitively,
// exactly as stored.
type Therapist struct {
	ID         int64      `json:"id"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Email      string     `json:"email"`
	Clinic     string     `json:"clinic,omitempty"`
	Permission Permission `json:"permission"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// IsAdmin reports whether the identity with the given email holds admin
// permission: true iff some roster row has that exact email and the admin
// flag. There is no stored session claim; the capability is derived from the
// roster on every check.
func IsAdmin(therapists []Therapist, email string) bool {
	if email == "" {
		return false
	}
	for _, t := range therapists {
		if t.Email == email && t.Permission == PermissionAdmin {
			return true
		}
	}
	return false
}
