package secondary

import "context"

// Attachment file name and MIME type used for every report email.
const (
	ReportFilename    = "QC_Report.pdf"
	ReportContentType = "application/pdf"
)

// MailMessage is one outbound email carrying a single PDF attachment.
type MailMessage struct {
	To         string
	Subject    string
	Body       string
	Attachment []byte
}

// Mailer delivers report emails through an external provider.
type Mailer interface {
	// Send makes exactly one delivery attempt.
	Send(ctx context.Context, msg MailMessage) error
}
