package api

import "time"

// Regret is the wire representation of a single regret record
type Regret struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRegretRequest is a request to create a new regret
type CreateRegretRequest struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Level    string `json:"level"`
	IsPublic bool   `json:"is_public"`
}

// UpdateRegretRequest is a partial update. Pointer fields distinguish
// "absent, leave unchanged" from "present, apply". String fields that are
// present but empty are also left unchanged: this scheme has no way to
// clear a field to empty.
type UpdateRegretRequest struct {
	Title    *string `json:"title,omitempty"`
	Message  *string `json:"message,omitempty"`
	Level    *string `json:"level,omitempty"`
	IsPublic *bool   `json:"is_public,omitempty"`
}

// RegretListResponse is the body of listing endpoints
type RegretListResponse struct {
	Count   int      `json:"count"`
	Regrets []Regret `json:"regrets"`
}
