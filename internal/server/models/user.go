package models

import "time"

// User is a stored identity record. ID and UserName never change after
// creation; PasswordHash is an opaque bcrypt string.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
