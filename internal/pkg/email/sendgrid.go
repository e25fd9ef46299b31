// internal/pkg/email/sendgrid.go
package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// sendSendGridEmail sends email through the SendGrid v3 API
func (s *EmailService) sendSendGridEmail(ctx context.Context, email *Email) error {
	cfg := s.config.Email
	if cfg.SendGridAPIKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if len(email.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(cfg.FromName, cfg.FromEmail))
	message.Subject = email.Subject

	p := mail.NewPersonalization()
	for _, to := range email.To {
		p.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(p)
	message.AddContent(mail.NewContent("text/html", email.HTMLContent))

	request := sendgrid.GetRequest(cfg.SendGridAPIKey, sendGridEndpoint, s.sendGridHost)
	request.Method = "POST"
	request.Body = mail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	s.log.WithFields(logrus.Fields{
		"to":      email.To,
		"subject": email.Subject,
		"status":  response.StatusCode,
	}).Debug("Email accepted by SendGrid")

	return nil
}
