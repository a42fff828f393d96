package model

import "time"

// Notification is the payload pushed to connected ops dashboards. It is
// transient and never persisted.
type Notification struct {
	TypeCode  string                 `json:"type_code"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
