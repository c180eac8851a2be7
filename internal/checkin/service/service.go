// Package service implements the check-in orchestrator: the state machine
// that drives one verification attempt from scanned code or typed name to a
// verified, idempotent, time-gated present state.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"doorlist/internal/admission"
	"doorlist/internal/checkin/metrics"
	"doorlist/internal/credential"
	eventModels "doorlist/internal/event/models"
	guestModels "doorlist/internal/guest/models"
	"doorlist/internal/notify"
	"doorlist/internal/platform/mailer"
	"doorlist/internal/resolver"
	dErrors "doorlist/pkg/domain-errors"
)

// State is the orchestrator's position in one verification attempt.
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateFound     State = "found"
	StateNotFound  State = "not_found"
	StateConfirmed State = "confirmed"
)

// Attempt is a snapshot of the current verification attempt. It is ephemeral:
// created when a search or scan begins, discarded on reset.
type Attempt struct {
	State State

	// Guest is set once resolution collapsed to a single candidate.
	Guest *guestModels.Guest
	// Event accompanies Guest for display and admission checks.
	Event *eventModels.Event

	// Candidates is non-empty while a name search is awaiting explicit
	// disambiguation. Guest is nil until a selection is made.
	Candidates []resolver.Match

	// AlreadyCheckedIn marks a Confirmed state reached through the
	// idempotent short-circuit rather than a fresh write.
	AlreadyCheckedIn bool

	// DeniedReason is the admission gate's user-visible denial, set when a
	// confirmation was attempted outside the window. The attempt stays Found.
	DeniedReason string

	// GalleryURL is the follow-up link issued on a genuine confirmation.
	GalleryURL string

	// RoutedEventID is set when a scanned code was an event link rather
	// than a guest credential; the caller routes to that event's screen.
	RoutedEventID string
}

// Resolver turns credentials and names into guest records.
type Resolver interface {
	ResolveCredential(ctx context.Context, cred *credential.Credential, knownEventID string) (*guestModels.Guest, error)
	ResolveName(ctx context.Context, eventID, name string) ([]*guestModels.Guest, error)
	ResolveNameAnyEvent(ctx context.Context, name string) ([]resolver.Match, error)
}

// EventDirectory supplies event metadata for display and admission checks.
type EventDirectory interface {
	FindByID(ctx context.Context, eventID string) (*eventModels.Event, error)
}

// GuestWriter performs the single write this subsystem makes: the monotonic,
// idempotent check-in mark.
type GuestWriter interface {
	MarkCheckedIn(ctx context.Context, guestID string) (*guestModels.Guest, error)
}

// GalleryIssuer issues the post-check-in gallery link.
type GalleryIssuer interface {
	IssueAccessLink(guestID, eventID string) (string, error)
}

// Service is the check-in orchestrator. It processes one attempt at a time;
// new input while a search is in flight is rejected, not queued.
type Service struct {
	resolver Resolver
	events   EventDirectory
	writer   GuestWriter
	gate     admission.Policy

	gallery   GalleryIssuer
	publisher notify.Publisher
	mail      mailer.Service
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time

	mu sync.Mutex
	// seq invalidates in-flight work: any resolution or write that finishes
	// after a reset (or a newer attempt) finds the sequence advanced and
	// discards its result instead of clobbering the newer state.
	seq        uint64
	attempt    Attempt
	confirming bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithGallery(issuer GalleryIssuer) Option {
	return func(s *Service) { s.gallery = issuer }
}

func WithPublisher(p notify.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithMailer(m mailer.Service) Option {
	return func(s *Service) { s.mail = m }
}

// WithClock overrides the time source for admission checks. Tests only.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(res Resolver, events EventDirectory, writer GuestWriter, gate admission.Policy, opts ...Option) (*Service, error) {
	if res == nil || events == nil || writer == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resolver, event directory, and guest writer are required")
	}
	s := &Service{
		resolver: res,
		events:   events,
		writer:   writer,
		gate:     gate,
		logger:   slog.Default(),
		tracer:   otel.Tracer("doorlist/checkin"),
		now:      time.Now,
		attempt:  Attempt{State: StateIdle},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Current returns a snapshot of the attempt in progress.
func (s *Service) Current() Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempt
}

// Reset returns the orchestrator to Idle and discards all ephemeral attempt
// state. It is available from any state except Searching; a reset racing an
// in-flight confirmation write is safe, the write's eventual success is
// observed idempotently on the next resolution.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempt.State == StateSearching {
		return dErrors.New(dErrors.CodeInvalidState, "cannot reset while a search is in flight")
	}
	s.seq++
	s.attempt = Attempt{State: StateIdle}
	return nil
}

// begin claims the orchestrator for a new attempt. It fails while a previous
// search is still in flight; any other state is discarded in favor of the new
// input, which keeps an unattended scan line moving without explicit resets.
func (s *Service) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempt.State == StateSearching {
		return 0, dErrors.New(dErrors.CodeInvalidState, "an attempt is already in progress")
	}
	s.seq++
	s.attempt = Attempt{State: StateSearching}
	return s.seq, nil
}

// finish installs the outcome of the attempt started at gen. Stale outcomes
// (a reset or newer attempt advanced the sequence) are discarded.
func (s *Service) finish(gen uint64, a Attempt) Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != gen {
		return s.attempt
	}
	s.attempt = a
	return a
}
