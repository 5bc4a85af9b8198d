// Package mailer renders and delivers verification and password reset emails.
package mailer

import (
	"net/http"
	"net/mail"

	"gopkg.in/gomail.v2"

	"github.com/yogeshrakate/skill-matrix-backend/internal/config"
	internal_errors "github.com/yogeshrakate/skill-matrix-backend/internal/errors"
	"github.com/yogeshrakate/skill-matrix-backend/internal/logger"
)

// Sender delivers a rendered message to a single recipient.
type Sender interface {
	Send(recipient, subject, htmlBody string) error
}

// ValidateAddress checks address syntax before any email leaves the system.
func ValidateAddress(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return &internal_errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}
	return nil
}

// SMTP is the production Sender.
type SMTP struct {
	dialer     *gomail.Dialer
	from       string
	senderName string
}

func NewSMTP(cfg *config.Smtp) *SMTP {
	return &SMTP{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:       cfg.Username,
		senderName: cfg.SenderName,
	}
}

func (s *SMTP) Send(recipient, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.senderName)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		logger.Log.Error("failed to send email", "recipient", recipient, "error", err)
		return err
	}
	return nil
}
