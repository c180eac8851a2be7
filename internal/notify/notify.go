// Package notify carries check-in side-effect notifications to the rest of
// the platform. Dispatch is fire-and-forget: the orchestrator decides that a
// notification fires, never whether delivery succeeded.
package notify

import (
	"context"
	"time"
)

// Publisher is the surface the orchestrator depends on.
type Publisher interface {
	Publish(ctx context.Context, subject string, data any) error
	Close() error
}

// Subjects for check-in events.
const (
	SubjectCheckinConfirmed = "checkin.confirmed"
)

// CheckinConfirmedEvent is published after a genuine (non-idempotent)
// confirmation write.
type CheckinConfirmedEvent struct {
	GuestID     string    `json:"guest_id"`
	GuestName   string    `json:"guest_name"`
	GuestEmail  string    `json:"guest_email,omitempty"`
	EventID     string    `json:"event_id"`
	Table       string    `json:"table,omitempty"`
	GalleryURL  string    `json:"gallery_url,omitempty"`
	CheckedInAt time.Time `json:"checked_in_at"`
}
