package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/mailersend/mailersend-go"
)

// MailerSendClient sends guest email through MailerSend.
type MailerSendClient struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSend(apiKey, fromName, fromEmail string) (*MailerSendClient, error) {
	if apiKey == "" || fromEmail == "" {
		return nil, fmt.Errorf("mailersend requires an api key and a from address")
	}
	return &MailerSendClient{
		client: mailersend.NewMailersend(apiKey),
		from:   mailersend.From{Name: fromName, Email: fromEmail},
	}, nil
}

func (m *MailerSendClient) SendGalleryInvite(toEmail, toName, eventName, galleryURL string) error {
	subject := fmt.Sprintf("Your photos from %s", eventName)
	html := fmt.Sprintf(`
		<h2>Thanks for coming to %s!</h2>
		<p>Hi %s,</p>
		<p>You're checked in. After the event, find your photos here:</p>
		<p><a href="%s">Open the gallery</a></p>
	`, eventName, toName, galleryURL)
	text := fmt.Sprintf("Thanks for coming to %s! Your photo gallery: %s", eventName, galleryURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
