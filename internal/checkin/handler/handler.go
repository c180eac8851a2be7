// Package handler exposes one door station's check-in flow over HTTP. The
// station UI is a thin client: every transition in the verification state
// machine happens here, on the server.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"doorlist/internal/checkin/service"
	"doorlist/internal/credential"
	guestModels "doorlist/internal/guest/models"
	"doorlist/internal/platform/middleware"
	"doorlist/internal/sentinel"
	dErrors "doorlist/pkg/domain-errors"
	"doorlist/pkg/httputil"
)

// Service is the orchestrator surface the transport depends on.
type Service interface {
	SubmitScan(ctx context.Context, knownEventID, raw string) (service.Attempt, error)
	SubmitName(ctx context.Context, eventID, name string) (service.Attempt, error)
	SubmitNameAnyEvent(ctx context.Context, name string) (service.Attempt, error)
	Select(ctx context.Context, guestID string) (service.Attempt, error)
	Confirm(ctx context.Context) (service.Attempt, error)
	Reset() error
}

// GuestDirectory is the read surface for credential issuance.
type GuestDirectory interface {
	FindByID(ctx context.Context, guestID, eventID string) (*guestModels.Guest, error)
}

type Handler struct {
	service Service
	guests  GuestDirectory
	logger  *slog.Logger
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func New(svc Service, guests GuestDirectory, opts ...Option) *Handler {
	h := &Handler{
		service: svc,
		guests:  guests,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes mounts the check-in endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/events/{eventID}/checkin", func(r chi.Router) {
		r.Post("/scan", h.HandleScan)
		r.Post("/search", h.HandleSearch)
		r.Post("/select", h.HandleSelect)
		r.Post("/confirm", h.HandleConfirm)
	})
	r.Get("/events/{eventID}/guests/{guestID}/credential", h.HandleIssueCredential)
	r.Post("/checkin/search", h.HandleSearchAnyEvent)
	r.Post("/checkin/reset", h.HandleReset)
}

// HandleScan feeds a raw scanned payload into the orchestrator, scoped to
// the event in the path.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	eventID := chi.URLParam(r, "eventID")

	req, ok := httputil.DecodeAndPrepare[ScanRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	attempt, err := h.service.SubmitScan(ctx, eventID, req.Code)
	if err != nil {
		h.writeAttemptError(w, ctx, requestID, "scan failed", err)
		return
	}
	h.logDevice(ctx, "scan processed", requestID, attempt)
	httputil.WriteJSON(w, http.StatusOK, NewAttemptResponse(attempt))
}

// HandleSearch runs a typed-name search within the event in the path.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	eventID := chi.URLParam(r, "eventID")

	req, ok := httputil.DecodeAndPrepare[SearchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	attempt, err := h.service.SubmitName(ctx, eventID, req.Name)
	if err != nil {
		h.writeAttemptError(w, ctx, requestID, "name search failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewAttemptResponse(attempt))
}

// HandleSearchAnyEvent runs a typed-name search with no event context.
func (h *Handler) HandleSearchAnyEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SearchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	attempt, err := h.service.SubmitNameAnyEvent(ctx, req.Name)
	if err != nil {
		h.writeAttemptError(w, ctx, requestID, "cross-event search failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewAttemptResponse(attempt))
}

// HandleSelect collapses a pending ambiguous search onto one candidate.
func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SelectRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	attempt, err := h.service.Select(ctx, req.GuestID)
	if err != nil {
		h.writeAttemptError(w, ctx, requestID, "candidate selection failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, NewAttemptResponse(attempt))
}

// HandleConfirm confirms the found guest.
func (h *Handler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	attempt, err := h.service.Confirm(ctx)
	if err != nil {
		h.writeAttemptError(w, ctx, requestID, "confirmation failed", err)
		return
	}
	h.logDevice(ctx, "confirmation processed", requestID, attempt)
	httputil.WriteJSON(w, http.StatusOK, NewAttemptResponse(attempt))
}

// HandleReset returns the station to idle.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleIssueCredential returns the QR payload for a guest's pass, for
// organizer tooling that renders invitations.
func (h *Handler) HandleIssueCredential(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	eventID := chi.URLParam(r, "eventID")
	guestID := chi.URLParam(r, "guestID")

	guest, err := h.guests.FindByID(ctx, guestID, eventID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "guest not found"))
			return
		}
		h.logger.ErrorContext(ctx, "guest lookup failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeUnavailable, "guest lookup failed", err))
		return
	}

	code, err := credential.Encode(guest.ID, guest.EventID)
	if err != nil {
		h.logger.ErrorContext(ctx, "credential encoding failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "credential encoding failed", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CredentialResponse{
		GuestID: guest.ID,
		EventID: guest.EventID,
		Code:    code,
	})
}

// logDevice records which kind of device drove a state transition. Door staff
// share tablets; the audit trail keeps the device class next to the outcome.
func (h *Handler) logDevice(ctx context.Context, msg, requestID string, attempt service.Attempt) {
	device := middleware.GetDeviceInfo(ctx)
	h.logger.InfoContext(ctx, msg,
		"state", string(attempt.State),
		"request_id", requestID,
		"device_os", device.OS,
		"device_browser", device.Browser,
		"device_mobile", device.Mobile,
	)
}

// writeAttemptError logs and maps orchestrator errors onto HTTP responses.
func (h *Handler) writeAttemptError(w http.ResponseWriter, ctx context.Context, requestID, msg string, err error) {
	h.logger.WarnContext(ctx, msg, "error", err, "request_id", requestID)
	httputil.WriteError(w, err)
}
