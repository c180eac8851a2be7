package handler

import (
	"strings"
	"time"

	"doorlist/internal/checkin/service"
	eventModels "doorlist/internal/event/models"
	guestModels "doorlist/internal/guest/models"
	dErrors "doorlist/pkg/domain-errors"
)

type ScanRequest struct {
	Code string `json:"code"`
}

func (r *ScanRequest) Normalize() {
	r.Code = strings.TrimSpace(r.Code)
}

func (r *ScanRequest) Validate() error {
	if r.Code == "" {
		return dErrors.New(dErrors.CodeValidation, "code is required")
	}
	return nil
}

type SearchRequest struct {
	Name string `json:"name"`
}

func (r *SearchRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *SearchRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	return nil
}

type SelectRequest struct {
	GuestID string `json:"guest_id"`
}

func (r *SelectRequest) Normalize() {
	r.GuestID = strings.TrimSpace(r.GuestID)
}

func (r *SelectRequest) Validate() error {
	if r.GuestID == "" {
		return dErrors.New(dErrors.CodeValidation, "guest_id is required")
	}
	return nil
}

// GuestView is the guest projection shown on the station screen.
type GuestView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Table       string     `json:"table,omitempty"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
}

func newGuestView(g *guestModels.Guest) *GuestView {
	if g == nil {
		return nil
	}
	return &GuestView{ID: g.ID, Name: g.Name, Table: g.Table, CheckedInAt: g.CheckedInAt}
}

// EventView is the event projection used for disambiguation display.
type EventView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Venue    string    `json:"venue,omitempty"`
	StartsAt time.Time `json:"starts_at"`
}

func newEventView(ev *eventModels.Event) *EventView {
	if ev == nil {
		return nil
	}
	return &EventView{ID: ev.ID, Name: ev.Name, Venue: ev.Venue, StartsAt: ev.StartsAt}
}

// CandidateView pairs a guest with its event in an ambiguous result.
type CandidateView struct {
	Guest *GuestView `json:"guest"`
	Event *EventView `json:"event"`
}

// AttemptResponse is the station's view of the verification state machine.
type AttemptResponse struct {
	State            service.State   `json:"state"`
	Guest            *GuestView      `json:"guest,omitempty"`
	Event            *EventView      `json:"event,omitempty"`
	Candidates       []CandidateView `json:"candidates,omitempty"`
	AlreadyCheckedIn bool            `json:"already_checked_in,omitempty"`
	DeniedReason     string          `json:"denied_reason,omitempty"`
	GalleryURL       string          `json:"gallery_url,omitempty"`
	RoutedEventID    string          `json:"routed_event_id,omitempty"`
}

func NewAttemptResponse(a service.Attempt) AttemptResponse {
	resp := AttemptResponse{
		State:            a.State,
		Guest:            newGuestView(a.Guest),
		Event:            newEventView(a.Event),
		AlreadyCheckedIn: a.AlreadyCheckedIn,
		DeniedReason:     a.DeniedReason,
		GalleryURL:       a.GalleryURL,
		RoutedEventID:    a.RoutedEventID,
	}
	for _, m := range a.Candidates {
		resp.Candidates = append(resp.Candidates, CandidateView{
			Guest: newGuestView(m.Guest),
			Event: newEventView(m.Event),
		})
	}
	return resp
}

// CredentialResponse carries a freshly encoded QR payload.
type CredentialResponse struct {
	GuestID string `json:"guest_id"`
	EventID string `json:"event_id"`
	Code    string `json:"code"`
}
