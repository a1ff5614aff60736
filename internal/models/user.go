package models

import "time"

// User is an identity record. Created on registration and immutable
// afterwards in this layer; the email uniquely identifies a user.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
