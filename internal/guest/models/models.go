package models

import "time"

// Guest is one entry on an event's guest list. The record is owned by the
// guest directory; the check-in subsystem reads it and performs exactly one
// kind of write, the monotonic check-in mark.
type Guest struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Name        string     `json:"name"`
	Email       string     `json:"email,omitempty"`
	Table       string     `json:"table,omitempty"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
}

// CheckedIn reports whether the guest has already been marked present.
// CheckedInAt is never cleared once set; check-in is monotonic.
func (g *Guest) CheckedIn() bool {
	return g != nil && g.CheckedInAt != nil
}
