package services

import (
	"context"
	"fmt"
	"log/slog"

	"conventions/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendConventionJoined sends the "convention_joined" confirmation.
func (s *emailService) SendConventionJoined(ctx context.Context, data *domain.ConventionJoinedEmailData) error {
	if data == nil {
		return fmt.Errorf("convention joined data is nil")
	}
	return s.send(ctx, "convention_joined", data.Email, data)
}

// SendTalkJoined sends the "talk_joined" confirmation.
func (s *emailService) SendTalkJoined(ctx context.Context, data *domain.TalkJoinedEmailData) error {
	if data == nil {
		return fmt.Errorf("talk joined data is nil")
	}
	return s.send(ctx, "talk_joined", data.Email, data)
}

func (s *emailService) send(ctx context.Context, template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", template, "to", to)
	return nil
}
