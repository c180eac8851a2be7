// Package admission decides whether a check-in attempt may proceed at a given
// instant. The window is derived from the event schedule on every call, never
// cached: it can close between a guest being found and the confirming write.
package admission

import (
	"fmt"
	"time"

	"doorlist/internal/event/models"
)

// Policy derives an admission window from an event's schedule. The bounds are
// configuration, not constants; per-event overrides always win.
type Policy struct {
	// EarlyWindow is how long before the scheduled start check-in opens.
	EarlyWindow time.Duration
	// LateWindow is how long after the scheduled start check-in stays open
	// when the event has no explicit end time.
	LateWindow time.Duration
}

// DefaultPolicy mirrors the product defaults: doors open two hours before
// start, and an open-ended event admits for six hours.
func DefaultPolicy() Policy {
	return Policy{
		EarlyWindow: 2 * time.Hour,
		LateWindow:  6 * time.Hour,
	}
}

// Decision is the outcome of a gate check. Reason is set only on denial and
// is user-visible.
type Decision struct {
	Allowed bool
	Reason  string
}

// Window returns the concrete admission bounds for an event.
func (p Policy) Window(ev *models.Event) (opens, closes time.Time) {
	opens = ev.StartsAt.Add(-p.EarlyWindow)
	if ev.CheckInOpensAt != nil {
		opens = *ev.CheckInOpensAt
	}

	closes = ev.StartsAt.Add(p.LateWindow)
	if ev.EndsAt != nil {
		closes = *ev.EndsAt
	}
	if ev.CheckInClosesAt != nil {
		closes = *ev.CheckInClosesAt
	}
	return opens, closes
}

// Check evaluates the window against now. Denial is a recoverable, user-visible
// condition, not an error.
func (p Policy) Check(ev *models.Event, now time.Time) Decision {
	opens, closes := p.Window(ev)
	if now.Before(opens) {
		return Decision{Reason: fmt.Sprintf("check-in has not opened yet; doors open %s", opens.Format(time.Kitchen))}
	}
	if now.After(closes) {
		return Decision{Reason: fmt.Sprintf("check-in closed %s", closes.Format(time.Kitchen))}
	}
	return Decision{Allowed: true}
}
