package services

import (
	"context"
	"fmt"
	"log"

	"github.com/erwannT/callForPapers/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendTalkConfirmation sends the submission confirmation using the
// "confirmed" template. Errors propagate to the caller, which treats the
// talk write and the email as a single unit.
func (s *emailService) SendTalkConfirmation(ctx context.Context, data *domain.TalkConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("talk confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("confirmed", data)
	if err != nil {
		return fmt.Errorf("failed to render confirmed template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	log.Printf("[EMAIL] Talk confirmation sent to %s (talk %d)", data.Email, data.TalkID)
	return nil
}

// SendVerification sends the account verification email using the "verify"
// template.
func (s *emailService) SendVerification(ctx context.Context, data *domain.VerificationEmailData) error {
	if data == nil {
		return fmt.Errorf("verification data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("verify", data)
	if err != nil {
		return fmt.Errorf("failed to render verify template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	log.Printf("[EMAIL] Verification email sent to %s", data.Email)
	return nil
}
