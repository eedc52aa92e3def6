package project

import "time"

// Project is a registry entry attendance hours may be booked against.
// Read-only reference data for this backend.
type Project struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
