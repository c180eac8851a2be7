package models

import "time"

// Event carries the schedule metadata the admission gate needs, plus the
// display fields used when a guest has to pick between events with the
// same name on their list.
type Event struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Venue    string     `json:"venue,omitempty"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`

	// Explicit admission window override. When set, these take precedence
	// over the policy-derived window.
	CheckInOpensAt  *time.Time `json:"check_in_opens_at,omitempty"`
	CheckInClosesAt *time.Time `json:"check_in_closes_at,omitempty"`
}
