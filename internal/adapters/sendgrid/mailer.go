// Package sendgrid delivers QC report emails through the SendGrid v3 API.
package sendgrid

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/rest"
	sg "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/example/qc/internal/ports/secondary"
)

// Client is the subset of the SendGrid client used by Mailer.
type Client interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// Mailer implements secondary.Mailer with one configured sender identity.
type Mailer struct {
	client Client
	from   string
}

// NewMailer creates a Mailer using the given API key and sender address.
func NewMailer(apiKey, fromEmail string) *Mailer {
	return NewMailerWithClient(sg.NewSendClient(apiKey), fromEmail)
}

// NewMailerWithClient creates a Mailer around an existing client.
func NewMailerWithClient(client Client, fromEmail string) *Mailer {
	return &Mailer{client: client, from: fromEmail}
}

// Send makes a single delivery attempt. Transport errors and non-2xx
// responses are both returned as errors.
func (m *Mailer) Send(ctx context.Context, msg secondary.MailMessage) error {
	message := buildMessage(m.from, msg)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("email failed to send: %w", err)
	}
	if resp == nil {
		return fmt.Errorf("email failed to send: empty response")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email failed to send: sendgrid returned %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func buildMessage(from string, msg secondary.MailMessage) *mail.SGMailV3 {
	message := mail.NewSingleEmail(
		mail.NewEmail("", from),
		msg.Subject,
		mail.NewEmail("", msg.To),
		msg.Body,
		"",
	)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(msg.Attachment))
	attachment.SetType(secondary.ReportContentType)
	attachment.SetFilename(secondary.ReportFilename)
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)

	return message
}

// Ensure Mailer implements the interface
var _ secondary.Mailer = (*Mailer)(nil)
