package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"doorlist/internal/credential"
	"doorlist/internal/sentinel"
	dErrors "doorlist/pkg/domain-errors"
)

// SubmitScan feeds a raw scanned payload into the orchestrator. knownEventID
// scopes resolution to the event the station is serving; pass "" for a
// station without event context.
//
// Scans take the fast path: a uniquely resolved, admissible guest is
// confirmed in the same call, without an intermediate Found stop. Denied or
// already-checked-in guests surface the same way they would from Confirm.
func (s *Service) SubmitScan(ctx context.Context, knownEventID, raw string) (Attempt, error) {
	ctx, span := s.tracer.Start(ctx, "checkin.SubmitScan")
	defer span.End()

	decoded := credential.Decode(raw)
	if decoded == nil {
		s.countScan("rejected")
		return s.Current(), dErrors.New(dErrors.CodeInvalidInput, "unrecognized code")
	}

	if decoded.Credential == nil {
		// Event link, not a guest credential. Routing information for the
		// caller; the current attempt is replaced with a fresh idle one.
		s.countScan("event_link")
		gen, err := s.begin()
		if err != nil {
			return s.Current(), err
		}
		return s.finish(gen, Attempt{State: StateIdle, RoutedEventID: decoded.EventID}), nil
	}

	cred := decoded.Credential
	span.SetAttributes(
		attribute.String("credential.format", string(cred.Format)),
		attribute.String("event.id", knownEventID),
	)

	gen, err := s.begin()
	if err != nil {
		return s.Current(), err
	}

	start := s.now()
	guest, err := s.resolver.ResolveCredential(ctx, cred, knownEventID)
	s.observeResolution(start)
	if err != nil {
		switch {
		case dErrors.Is(err, dErrors.CodeNotFound), dErrors.Is(err, dErrors.CodeInvalidInput):
			// Well-formed code, no matching record. A terminal state for
			// this attempt, not an error.
			s.countScan("not_found")
			s.countNotFound()
			s.logAudit(ctx, "scan resolved to no guest", "format", string(cred.Format))
			return s.finish(gen, Attempt{State: StateNotFound}), nil
		default:
			s.finish(gen, Attempt{State: StateIdle})
			return s.Current(), dErrors.Wrap(dErrors.CodeUnavailable, "credential resolution failed", err)
		}
	}

	s.countScan("resolved")
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

	if guest.CheckedIn() {
		s.countIdempotent()
		s.logAudit(ctx, "scan short-circuited, guest already checked in",
			"guest_id", guest.ID, "event_id", ev.ID)
		return s.finish(gen, Attempt{State: StateConfirmed, Guest: guest, Event: ev, AlreadyCheckedIn: true}), nil
	}

	if dec := s.gate.Check(ev, s.now()); !dec.Allowed {
		s.countDenial()
		s.logAudit(ctx, "admission denied on scan",
			"guest_id", guest.ID, "event_id", ev.ID, "reason", dec.Reason)
		return s.finish(gen, Attempt{State: StateFound, Guest: guest, Event: ev, DeniedReason: dec.Reason}), nil
	}

	// Fast path: scan-to-confirm in one motion.
	return s.confirmLocked(ctx, gen, guest, ev)
}

func (s *Service) observeResolution(start time.Time) {
	if s.metrics != nil {
		s.metrics.ResolutionLatency.Observe(s.now().Sub(start).Seconds())
	}
}
