// Package credential encodes and decodes guest check-in credentials.
//
// Two payload generations are in the wild: the current versioned payload that
// embeds both the guest and the event identifier, and the legacy bare guest id
// issued before event ids were embedded. Scanned codes may also be plain event
// links, which route to an event's check-in screen rather than to a guest.
// Everything in this package is pure; no store access, no clocks.
package credential

import (
	"encoding/base64"
	"encoding/json"
	"strings"

	dErrors "doorlist/pkg/domain-errors"
)

// Format identifies which payload generation a credential was decoded from.
type Format string

const (
	FormatCurrent Format = "current"
	FormatLegacy  Format = "legacy"
)

// Credential is the decoded content of a scanned check-in code.
// A current credential always carries both identifiers; a legacy credential
// carries only the guest id and needs its event resolved externally.
type Credential struct {
	GuestID string
	EventID string
	Format  Format
}

// Decoded is the outcome of a successful decode. Exactly one of the two
// fields is set: Credential for guest codes, EventID for event links.
type Decoded struct {
	Credential *Credential
	EventID    string
}

const payloadVersion = 2

type payload struct {
	Version int    `json:"v"`
	GuestID string `json:"g"`
	EventID string `json:"e"`
}

// Encode produces the current-format payload for a (guest, event) pair.
// The payload is URL-safe and self-describing so printed and emailed codes
// stay decodable indefinitely.
func Encode(guestID, eventID string) (string, error) {
	if guestID == "" || eventID == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "guest id and event id are required")
	}
	b, err := json.Marshal(payload{Version: payloadVersion, GuestID: guestID, EventID: eventID})
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeInternal, "encode credential payload", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Decode runs the ordered parser chain over a raw scanned string:
// current payload, then legacy bare guest id, then event-reference link.
// It returns nil when no parser matches; callers must treat that as a
// rejected scan, not a failure.
func Decode(raw string) *Decoded {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, s := range strategies {
		if d := s.parse(raw); d != nil {
			return d
		}
	}
	return nil
}
