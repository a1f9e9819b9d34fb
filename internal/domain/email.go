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

// ConventionJoinedEmailData holds data for the convention registration confirmation.
type ConventionJoinedEmailData struct {
	Email          string
	Name           string
	ConventionID   string
	ConventionName string
}

// TalkJoinedEmailData holds data for the talk registration confirmation.
type TalkJoinedEmailData struct {
	Email     string
	Name      string
	TalkID    string
	TalkTitle string
}

// EmailService defines the registration emails sent after a successful join.
type EmailService interface {
	SendConventionJoined(ctx context.Context, data *ConventionJoinedEmailData) error
	SendTalkJoined(ctx context.Context, data *TalkJoinedEmailData) error
}
