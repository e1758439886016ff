package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialized in API responses, only in the persistence snapshot.
type User struct {
	ID           string    `json:"user_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUserID generates a user identifier.
func NewUserID() string {
	return uuid.NewString()
}
