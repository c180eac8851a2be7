package mailer

import "log/slog"

// DevMailer logs mail instead of sending it. Used when no MailerSend API key
// is configured.
type DevMailer struct {
	logger *slog.Logger
}

func NewDevMailer(logger *slog.Logger) *DevMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &DevMailer{logger: logger}
}

func (d *DevMailer) SendGalleryInvite(toEmail, toName, eventName, galleryURL string) error {
	d.logger.Info("dev mail: gallery invite",
		"to", toEmail,
		"name", toName,
		"event", eventName,
		"gallery_url", galleryURL,
	)
	return nil
}
