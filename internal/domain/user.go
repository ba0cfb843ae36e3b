package domain

import "time"

// User is the domain entity for an account. IDs are generated UUIDs.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
