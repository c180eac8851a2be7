// Package resolver turns a decoded credential or a typed name into guest
// records. It owns the two-step resolution for legacy credentials and the
// ambiguity rules for name matches; it never writes.
package resolver

import (
	"context"
	"errors"
	"log/slog"

	"doorlist/internal/credential"
	eventModels "doorlist/internal/event/models"
	guestModels "doorlist/internal/guest/models"
	"doorlist/internal/sentinel"
	dErrors "doorlist/pkg/domain-errors"
)

// GuestDirectory defines the guest store surface the resolver needs.
// Error Contract: Find methods return sentinel.ErrNotFound (wrapped) when the
// entity does not exist.
type GuestDirectory interface {
	FindByID(ctx context.Context, guestID, eventID string) (*guestModels.Guest, error)
	FindByName(ctx context.Context, eventID, name string) ([]*guestModels.Guest, error)
	FindByNameAnyEvent(ctx context.Context, name string) ([]*guestModels.Guest, error)
}

// EventDirectory defines the event store surface the resolver needs.
type EventDirectory interface {
	FindByID(ctx context.Context, eventID string) (*eventModels.Event, error)
}

// Match pairs a guest with its event for cross-event disambiguation. The
// caller shows event name/date/venue and the guest's table so a person can
// tell two same-named entries apart.
type Match struct {
	Guest *guestModels.Guest
	Event *eventModels.Event
}

type Resolver struct {
	guests GuestDirectory
	events EventDirectory
	logger *slog.Logger
}

type Option func(*Resolver)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func New(guests GuestDirectory, events EventDirectory, opts ...Option) *Resolver {
	r := &Resolver{
		guests: guests,
		events: events,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveCredential maps a decoded credential to a single guest record.
//
// Current credentials carry their event and resolve in one lookup. Legacy
// credentials resolve against the caller's event context when one exists;
// with no context the guest id alone is looked up first to discover the
// event, then resolution proceeds. Old printed codes predate embedded event
// ids, so this two-step path must keep working indefinitely.
func (r *Resolver) ResolveCredential(ctx context.Context, cred *credential.Credential, knownEventID string) (*guestModels.Guest, error) {
	if cred == nil || cred.GuestID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resolver invoked without a credential")
	}

	switch cred.Format {
	case credential.FormatCurrent:
		g, err := r.guests.FindByID(ctx, cred.GuestID, cred.EventID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeInvalidInput, "credential does not match any guest")
			}
			return nil, dErrors.Wrap(dErrors.CodeUnavailable, "guest directory lookup failed", err)
		}
		return g, nil

	case credential.FormatLegacy:
		g, err := r.guests.FindByID(ctx, cred.GuestID, knownEventID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return nil, dErrors.New(dErrors.CodeNotFound, "no guest matches this code")
			}
			return nil, dErrors.Wrap(dErrors.CodeUnavailable, "guest directory lookup failed", err)
		}
		if knownEventID == "" {
			r.logger.DebugContext(ctx, "legacy credential resolved via event discovery",
				"guest_id", g.ID,
				"event_id", g.EventID,
			)
		}
		return g, nil

	default:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown credential format")
	}
}

// ResolveName returns all guests in one event whose name matches, folded for
// case and diacritics. Zero matches is a normal outcome, not an error.
func (r *Resolver) ResolveName(ctx context.Context, eventID, name string) ([]*guestModels.Guest, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	if eventID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "event id is required")
	}
	guests, err := r.guests.FindByName(ctx, eventID, name)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "guest directory search failed", err)
	}
	return guests, nil
}

// ResolveNameAnyEvent searches every event and joins each match with its
// event metadata. Used when the caller has no event context at all.
func (r *Resolver) ResolveNameAnyEvent(ctx context.Context, name string) ([]Match, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "name is required")
	}
	guests, err := r.guests.FindByNameAnyEvent(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnavailable, "guest directory search failed", err)
	}

	matches := make([]Match, 0, len(guests))
	eventsByID := make(map[string]*eventModels.Event)
	for _, g := range guests {
		ev, ok := eventsByID[g.EventID]
		if !ok {
			ev, err = r.events.FindByID(ctx, g.EventID)
			if err != nil {
				if errors.Is(err, sentinel.ErrNotFound) {
					// A guest whose event was deleted cannot be checked in;
					// skip it rather than failing the whole search.
					r.logger.WarnContext(ctx, "guest references missing event",
						"guest_id", g.ID,
						"event_id", g.EventID,
					)
					continue
				}
				return nil, dErrors.Wrap(dErrors.CodeUnavailable, "event directory lookup failed", err)
			}
			eventsByID[g.EventID] = ev
		}
		matches = append(matches, Match{Guest: g, Event: ev})
	}
	return matches, nil
}
