// Package mailer sends guest-facing email. Delivery is a side effect of
// check-in; callers log failures and move on.
package mailer

// Service is the email surface the check-in flow uses.
type Service interface {
	SendGalleryInvite(toEmail, toName, eventName, galleryURL string) error
}
