package services

import (
	"context"
	"fmt"
	"log/slog"

	"hospitaladmin/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendFeedbackReceived notifies data.To of a new feedback submission using the "feedback_received" template.
func (s *emailService) SendFeedbackReceived(ctx context.Context, data *domain.FeedbackReceivedEmailData) error {
	if data == nil {
		return fmt.Errorf("feedback email data is nil")
	}
	if data.To == "" {
		return fmt.Errorf("feedback email recipient is empty")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("feedback_received", data)
	if err != nil {
		return fmt.Errorf("failed to render feedback_received template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.To, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send feedback email: %w", err)
	}
	s.logger.InfoContext(ctx, "feedback notification sent", "feedback_id", data.FeedbackID)
	return nil
}
