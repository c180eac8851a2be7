// Package gallery issues the follow-up credential a guest receives after
// checking in: a signed link to the event's photo gallery. Issuing is a
// post-confirmation side effect; failures here never block a check-in.
package gallery

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "doorlist/pkg/domain-errors"
)

// AccessClaims are the JWT claims for a gallery access token.
type AccessClaims struct {
	GuestID string `json:"guest_id"`
	EventID string `json:"event_id"`
	Scope   string `json:"scope"`
	jwt.RegisteredClaims
}

const scopeGalleryView = "gallery:view"

// Issuer creates and validates gallery access tokens.
type Issuer struct {
	signingKey []byte
	baseURL    string
	ttl        time.Duration
}

func NewIssuer(signingKey, baseURL string, ttl time.Duration) *Issuer {
	return &Issuer{
		signingKey: []byte(signingKey),
		baseURL:    baseURL,
		ttl:        ttl,
	}
}

// IssueAccessLink returns a gallery URL carrying a signed token for one guest
// at one event. Tokens are bearer credentials; the TTL bounds exposure.
func (i *Issuer) IssueAccessLink(guestID, eventID string) (string, error) {
	if guestID == "" || eventID == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "guest id and event id are required")
	}
	now := time.Now()
	claims := AccessClaims{
		GuestID: guestID,
		EventID: eventID,
		Scope:   scopeGalleryView,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   guestID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
	if err != nil {
		return "", dErrors.Wrap(dErrors.CodeInternal, "sign gallery token", err)
	}

	return fmt.Sprintf("%s/gallery/%s?token=%s", i.baseURL, url.PathEscape(eventID), url.QueryEscape(token)), nil
}

// Parse validates a gallery token and returns its claims.
func (i *Issuer) Parse(token string) (*AccessClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.signingKey, nil
	})
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUnauthorized, "invalid gallery token", err)
	}
	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid gallery token claims")
	}
	return claims, nil
}
