package services

import (
	"context"
	"fmt"

	"github.com/valuesearchapp/backend/internal/logger"
	"github.com/valuesearchapp/backend/internal/platform/sendgrid"
)

type MailerService interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordResetCode(ctx context.Context, email, code string) error
}

type mailerService struct {
	log    *logger.Logger
	client sendgrid.Client
}

// NewMailerService wraps the SendGrid client. The client may be nil when no
// API key is configured; sends then fail with a configuration error, which
// the auth flows surface to the caller.
func NewMailerService(log *logger.Logger, client sendgrid.Client) MailerService {
	serviceLog := log.With("service", "MailerService")
	return &mailerService{log: serviceLog, client: client}
}

func (ms *mailerService) send(ctx context.Context, email, subject, text string) error {
	if ms.client == nil {
		return fmt.Errorf("email not configured: set SENDGRID_API_KEY and SENDGRID_FROM_EMAIL")
	}
	_, err := ms.client.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: email}},
		Subject: subject,
		Text:    text,
	})
	if err != nil {
		ms.log.Warn("Failed to send email", "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (ms *mailerService) SendVerificationCode(ctx context.Context, email, code string) error {
	return ms.send(ctx, email,
		"Your valuesearch.app verification code",
		fmt.Sprintf("Your verification code is: %s", code))
}

func (ms *mailerService) SendPasswordResetCode(ctx context.Context, email, code string) error {
	return ms.send(ctx, email,
		"Your valuesearch.app password reset code",
		fmt.Sprintf("Your password reset code is: %s", code))
}
