package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	guestModels "doorlist/internal/guest/models"
	"doorlist/internal/resolver"
	"doorlist/internal/sentinel"
	dErrors "doorlist/pkg/domain-errors"
)

// SubmitName runs a staff-assisted name search scoped to one event. Unlike
// scans, name searches always stop at Found; confirmation is a separate,
// explicit step.
func (s *Service) SubmitName(ctx context.Context, eventID, name string) (Attempt, error) {
	ctx, span := s.tracer.Start(ctx, "checkin.SubmitName")
	defer span.End()
	span.SetAttributes(attribute.String("event.id", eventID))

	gen, err := s.begin()
	if err != nil {
		return s.Current(), err
	}

	start := s.now()
	guests, err := s.resolver.ResolveName(ctx, eventID, name)
	s.observeResolution(start)
	if err != nil {
		s.finish(gen, Attempt{State: StateIdle})
		if dErrors.Is(err, dErrors.CodeInvalidInput) {
			return s.Current(), err
		}
		return s.Current(), dErrors.Wrap(dErrors.CodeUnavailable, "name resolution failed", err)
	}

	switch len(guests) {
	case 0:
		s.countNotFound()
		s.logAudit(ctx, "name search found no guest", "event_id", eventID)
		return s.finish(gen, Attempt{State: StateNotFound}), nil
	case 1:
		return s.settleSingle(ctx, gen, guests[0])
	default:
		ev, err := s.events.FindByID(ctx, eventID)
		if err != nil {
			s.finish(gen, Attempt{State: StateIdle})
			return s.Current(), dErrors.Wrap(dErrors.CodeUnavailable, "event lookup failed", err)
		}
		matches := make([]resolver.Match, 0, len(guests))
		for _, g := range guests {
			matches = append(matches, resolver.Match{Guest: g, Event: ev})
		}
		s.countAmbiguous()
		s.logAudit(ctx, "name search is ambiguous", "event_id", eventID, "candidates", len(matches))
		return s.finish(gen, Attempt{State: StateFound, Candidates: matches}), nil
	}
}

// SubmitNameAnyEvent is the cross-event variant used by stations that serve
// a whole venue. Candidates carry their event so staff can tell two guests
// with the same name at different events apart.
func (s *Service) SubmitNameAnyEvent(ctx context.Context, name string) (Attempt, error) {
	ctx, span := s.tracer.Start(ctx, "checkin.SubmitNameAnyEvent")
	defer span.End()

	gen, err := s.begin()
	if err != nil {
		return s.Current(), err
	}

	start := s.now()
	matches, err := s.resolver.ResolveNameAnyEvent(ctx, name)
	s.observeResolution(start)
	if err != nil {
		s.finish(gen, Attempt{State: StateIdle})
		if dErrors.Is(err, dErrors.CodeInvalidInput) {
			return s.Current(), err
		}
		return s.Current(), dErrors.Wrap(dErrors.CodeUnavailable, "name resolution failed", err)
	}

	switch len(matches) {
	case 0:
		s.countNotFound()
		return s.finish(gen, Attempt{State: StateNotFound}), nil
	case 1:
		return s.finish(gen, s.foundAttempt(ctx, matches[0].Guest, matches[0].Event)), nil
	default:
		s.countAmbiguous()
		s.logAudit(ctx, "cross-event name search is ambiguous", "candidates", len(matches))
		return s.finish(gen, Attempt{State: StateFound, Candidates: matches}), nil
	}
}

// Select collapses a pending ambiguous search onto one candidate. Only guest
// IDs present in the candidate set are accepted; an ambiguous attempt can
// never confirm without passing through here.
func (s *Service) Select(ctx context.Context, guestID string) (Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempt.State != StateFound || len(s.attempt.Candidates) == 0 {
		return s.attempt, dErrors.New(dErrors.CodeInvalidState, "no candidate selection is pending")
	}
	for _, m := range s.attempt.Candidates {
		if m.Guest.ID != guestID {
			continue
		}
		if m.Guest.CheckedIn() {
			s.countIdempotent()
			s.attempt = Attempt{State: StateConfirmed, Guest: m.Guest, Event: m.Event, AlreadyCheckedIn: true}
		} else {
			s.attempt = Attempt{State: StateFound, Guest: m.Guest, Event: m.Event}
		}
		s.logAudit(ctx, "candidate selected", "guest_id", m.Guest.ID, "event_id", m.Guest.EventID)
		return s.attempt, nil
	}
	return s.attempt, dErrors.New(dErrors.CodeInvalidInput, "guest is not among the pending candidates")
}

// settleSingle resolves the event for a uniquely matched guest and lands the
// attempt in Found, or Confirmed when the guest is already checked in.
func (s *Service) settleSingle(ctx context.Context, gen uint64, guest *guestModels.Guest) (Attempt, error) {
	ev, err := s.events.FindByID(ctx, guest.EventID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "guest references missing event",
				"guest_id", guest.ID, "event_id", guest.EventID)
			s.countNotFound()
			return s.finish(gen, Attempt{State: StateNotFound}), nil
		}
		s.finish(gen, Attempt{State: StateIdle})
		return s.Current(), dErrors.Wrap(dErrors.CodeUnavailable, "event lookup failed", err)
	}
	return s.finish(gen, s.foundAttempt(ctx, guest, ev)), nil
}
