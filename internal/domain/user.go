package domain

import "time"

type Email = string

// User is the identity record. Email is unique across all users and the
// Password field always holds a bcrypt hash once stored, never plaintext.
type User struct {
	Id        string
	FullName  string
	Email     Email
	PassHash  string
	Active    bool
	CreatedAt time.Time
}
