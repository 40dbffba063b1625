package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TalkConfirmationEmailData holds data for the submission confirmation email.
type TalkConfirmationEmailData struct {
	Email    string
	Name     string
	Talk     string
	Hostname string
	TalkID   int
}

// VerificationEmailData holds data for the account verification email.
type VerificationEmailData struct {
	Email     string
	FirstName string
	Hostname  string
	Token     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendTalkConfirmation(ctx context.Context, data *TalkConfirmationEmailData) error
	SendVerification(ctx context.Context, data *VerificationEmailData) error
}
