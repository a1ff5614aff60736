package models

import "time"

// Regret is a single content record. OwnerID is set once at creation and
// never reassigned; IsPublic is mutable by the owner only.
type Regret struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}
