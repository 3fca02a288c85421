package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// FeedbackReceivedEmailData holds data for the new-feedback notification.
type FeedbackReceivedEmailData struct {
	To                  string
	FeedbackID          string
	PatientName         string
	VisitDate           string
	VisitReason         string
	OverallSatisfaction int
	NotedIssues         string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendFeedbackReceived(ctx context.Context, data *FeedbackReceivedEmailData) error
}
