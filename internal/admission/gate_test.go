package admission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"doorlist/internal/event/models"
)

var start = time.Date(2026, 6, 1, 19, 0, 0, 0, time.UTC)

func testEvent(mut func(*models.Event)) *models.Event {
	ev := &models.Event{ID: "evt-42", Name: "Summer Gala", StartsAt: start}
	if mut != nil {
		mut(ev)
	}
	return ev
}

func TestCheckInsideWindow(t *testing.T) {
	p := DefaultPolicy()
	for _, now := range []time.Time{
		start.Add(-2 * time.Hour), // the instant doors open
		start,
		start.Add(5 * time.Hour),
	} {
		d := p.Check(testEvent(nil), now)
		assert.True(t, d.Allowed, "now=%s", now)
		assert.Empty(t, d.Reason)
	}
}

func TestCheckTooEarly(t *testing.T) {
	d := DefaultPolicy().Check(testEvent(nil), start.Add(-3*time.Hour))
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "not opened")
}

func TestCheckTooLate(t *testing.T) {
	d := DefaultPolicy().Check(testEvent(nil), start.Add(7*time.Hour))
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "closed")
}

func TestEventEndBoundsWindow(t *testing.T) {
	end := start.Add(3 * time.Hour)
	ev := testEvent(func(e *models.Event) { e.EndsAt = &end })

	assert.True(t, DefaultPolicy().Check(ev, start.Add(2*time.Hour)).Allowed)
	assert.False(t, DefaultPolicy().Check(ev, start.Add(4*time.Hour)).Allowed)
}

func TestExplicitOverridesWin(t *testing.T) {
	opens := start.Add(-30 * time.Minute)
	closes := start.Add(30 * time.Minute)
	ev := testEvent(func(e *models.Event) {
		e.CheckInOpensAt = &opens
		e.CheckInClosesAt = &closes
	})
	p := DefaultPolicy()

	// The policy default would admit two hours early; the override does not.
	assert.False(t, p.Check(ev, start.Add(-time.Hour)).Allowed)
	assert.True(t, p.Check(ev, start).Allowed)
	assert.False(t, p.Check(ev, start.Add(time.Hour)).Allowed)
}

func TestConfiguredBounds(t *testing.T) {
	p := Policy{EarlyWindow: 15 * time.Minute, LateWindow: time.Hour}
	assert.False(t, p.Check(testEvent(nil), start.Add(-time.Hour)).Allowed)
	assert.True(t, p.Check(testEvent(nil), start.Add(-10*time.Minute)).Allowed)
	assert.False(t, p.Check(testEvent(nil), start.Add(2*time.Hour)).Allowed)
}
