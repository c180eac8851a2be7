package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	eventModels "doorlist/internal/event/models"
	guestModels "doorlist/internal/guest/models"
	"doorlist/internal/notify"
	dErrors "doorlist/pkg/domain-errors"
)

// Confirm turns a Found attempt into a recorded check-in. The admission
// window is re-evaluated at this instant, not reused from resolution; a
// closed window leaves the attempt in Found with a user-visible reason. A
// failed write also leaves the attempt in Found so staff can retry.
func (s *Service) Confirm(ctx context.Context) (Attempt, error) {
	ctx, span := s.tracer.Start(ctx, "checkin.Confirm")
	defer span.End()

	s.mu.Lock()
	if s.attempt.State != StateFound {
		defer s.mu.Unlock()
		return s.attempt, dErrors.New(dErrors.CodeInvalidState, "no guest is awaiting confirmation")
	}
	if s.attempt.Guest == nil {
		defer s.mu.Unlock()
		return s.attempt, dErrors.New(dErrors.CodeInvalidState, "candidate selection is required before confirming")
	}
	if s.confirming {
		defer s.mu.Unlock()
		return s.attempt, dErrors.New(dErrors.CodeInvalidState, "a confirmation is already in progress")
	}
	s.confirming = true
	gen := s.seq
	guest, ev := s.attempt.Guest, s.attempt.Event
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.confirming = false
		s.mu.Unlock()
	}()

	span.SetAttributes(
		attribute.String("guest.id", guest.ID),
		attribute.String("event.id", guest.EventID),
	)
	return s.confirmLocked(ctx, gen, guest, ev)
}

// confirmLocked performs the gate check, the write, and the side effects for
// the attempt at gen. Callers must have claimed the attempt.
func (s *Service) confirmLocked(ctx context.Context, gen uint64, guest *guestModels.Guest, ev *eventModels.Event) (Attempt, error) {
	if dec := s.gate.Check(ev, s.now()); !dec.Allowed {
		s.countDenial()
		s.logAudit(ctx, "admission denied at confirmation",
			"guest_id", guest.ID, "event_id", ev.ID, "reason", dec.Reason)
		return s.finish(gen, Attempt{State: StateFound, Guest: guest, Event: ev, DeniedReason: dec.Reason}), nil
	}

	updated, err := s.writer.MarkCheckedIn(ctx, guest.ID)
	if err != nil {
		s.countWriteError()
		s.logger.ErrorContext(ctx, "check-in write failed",
			"guest_id", guest.ID, "event_id", ev.ID, "error", err)
		// The attempt survives the failure; Confirm can be retried.
		s.finish(gen, Attempt{State: StateFound, Guest: guest, Event: ev})
		return s.Current(), dErrors.Wrap(dErrors.CodeUnavailable, "recording check-in failed", err)
	}

	galleryURL := s.issueGalleryLink(ctx, updated)
	s.countConfirmation()
	s.logAudit(ctx, "guest checked in",
		"guest_id", updated.ID, "event_id", ev.ID, "checked_in_at", updated.CheckedInAt)
	s.announce(ctx, updated, ev, galleryURL)

	return s.finish(gen, Attempt{
		State:      StateConfirmed,
		Guest:      updated,
		Event:      ev,
		GalleryURL: galleryURL,
	}), nil
}

// foundAttempt lands a uniquely resolved guest in Found, or Confirmed via the
// idempotent short-circuit when the check-in mark is already set. The
// short-circuit performs no write and fires no side effects.
func (s *Service) foundAttempt(ctx context.Context, guest *guestModels.Guest, ev *eventModels.Event) Attempt {
	if guest.CheckedIn() {
		s.countIdempotent()
		s.logAudit(ctx, "guest already checked in",
			"guest_id", guest.ID, "event_id", guest.EventID)
		return Attempt{State: StateConfirmed, Guest: guest, Event: ev, AlreadyCheckedIn: true}
	}
	s.logAudit(ctx, "guest found", "guest_id", guest.ID, "event_id", guest.EventID)
	return Attempt{State: StateFound, Guest: guest, Event: ev}
}

func (s *Service) issueGalleryLink(ctx context.Context, guest *guestModels.Guest) string {
	if s.gallery == nil {
		return ""
	}
	url, err := s.gallery.IssueAccessLink(guest.ID, guest.EventID)
	if err != nil {
		s.logger.WarnContext(ctx, "gallery link issuance failed",
			"guest_id", guest.ID, "error", err)
		return ""
	}
	return url
}

// announce fires the post-confirmation side effects. Failures are logged and
// never fail the confirmation: the guest is already in.
func (s *Service) announce(ctx context.Context, guest *guestModels.Guest, ev *eventModels.Event, galleryURL string) {
	if s.publisher != nil {
		evt := notify.CheckinConfirmedEvent{
			GuestID:     guest.ID,
			GuestName:   guest.Name,
			GuestEmail:  guest.Email,
			EventID:     ev.ID,
			Table:       guest.Table,
			GalleryURL:  galleryURL,
			CheckedInAt: *guest.CheckedInAt,
		}
		if err := s.publisher.Publish(ctx, notify.SubjectCheckinConfirmed, evt); err != nil {
			s.logger.WarnContext(ctx, "check-in event publish failed",
				"guest_id", guest.ID, "error", err)
		}
	}
	if s.mail != nil && guest.Email != "" && galleryURL != "" {
		if err := s.mail.SendGalleryInvite(guest.Email, guest.Name, ev.Name, galleryURL); err != nil {
			s.logger.WarnContext(ctx, "gallery invite email failed",
				"guest_id", guest.ID, "error", err)
		}
	}
}
