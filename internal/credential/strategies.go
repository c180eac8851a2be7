package credential

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"regexp"
	"strings"
)

// strategy is one parser in the decode chain. Parsers return nil on no match
// so the chain can fall through; they never return errors.
type strategy struct {
	name  string
	parse func(raw string) *Decoded
}

// Order matters: a legacy id must be tried before event-link extraction so
// that bare guest ids are never misread as free-text event references.
var strategies = []strategy{
	{name: "current", parse: parseCurrent},
	{name: "legacy", parse: parseLegacy},
	{name: "event-ref", parse: parseEventRef},
}

// parseCurrent recognizes the versioned base64url JSON payload. A payload
// that decodes but lacks the event id is treated as no-match, not an error,
// so partially-parseable legacy codes still fall through the chain.
func parseCurrent(raw string) *Decoded {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		// Tolerate padded variants from older QR generators.
		if b, err = base64.URLEncoding.DecodeString(raw); err != nil {
			return nil
		}
	}
	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil
	}
	if p.Version != payloadVersion || p.GuestID == "" || p.EventID == "" {
		return nil
	}
	return &Decoded{Credential: &Credential{
		GuestID: p.GuestID,
		EventID: p.EventID,
		Format:  FormatCurrent,
	}}
}

// legacyIDPattern matches the bare guest ids the previous generation issued:
// lowercase-ish alphanumeric groups joined by hyphens, no structure.
var legacyIDPattern = regexp.MustCompile(`^[A-Za-z0-9]+(?:-[A-Za-z0-9]+)+$`)

func parseLegacy(raw string) *Decoded {
	if len(raw) < 8 || len(raw) > 64 {
		return nil
	}
	// Event ids share the hyphenated shape; they are routed, not resolved as guests.
	if strings.HasPrefix(raw, "evt-") || strings.HasPrefix(raw, "evt_") {
		return nil
	}
	if !legacyIDPattern.MatchString(raw) {
		return nil
	}
	return &Decoded{Credential: &Credential{
		GuestID: raw,
		Format:  FormatLegacy,
	}}
}

var eventTokenPattern = regexp.MustCompile(`\bevt[-_][A-Za-z0-9-]+`)

// parseEventRef extracts an event identifier from a URL or free text.
// Known link shapes: query parameters (event, event_id, e) and the
// /e/{id}, /events/{id}, /checkin/{id} path segments.
func parseEventRef(raw string) *Decoded {
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		q := u.Query()
		for _, key := range []string{"event", "event_id", "e"} {
			if v := q.Get(key); v != "" {
				return &Decoded{EventID: v}
			}
		}
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		for i := 0; i+1 < len(segments); i++ {
			switch segments[i] {
			case "e", "events", "checkin":
				if segments[i+1] != "" {
					return &Decoded{EventID: segments[i+1]}
				}
			}
		}
	}
	if m := eventTokenPattern.FindString(raw); m != "" {
		return &Decoded{EventID: m}
	}
	return nil
}
