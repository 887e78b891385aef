package models

import "time"

// GraphicsPreference is one persisted boot-vendor selection. The newest row
// is the preference the next boot will use; it can disagree with the live
// power state until the discrete GPU is next powered off.
type GraphicsPreference struct {
	ID        uint      `json:"id"`
	Vendor    string    `json:"vendor"`
	CreatedAt time.Time `json:"created_at"`
}

// PowerProfileRecord is one applied power profile.
type PowerProfileRecord struct {
	ID        uint      `json:"id"`
	Profile   string    `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
}

// PowerEvent is an audit row written after each mutating operation.
type PowerEvent struct {
	ID        uint      `json:"id"`
	EventID   string    `json:"event_id"`
	Operation string    `json:"operation"`
	Detail    string    `json:"detail"`
	Success   bool      `json:"success"`
	CreatedAt time.Time `json:"created_at"`
}
