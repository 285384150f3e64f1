package email

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/aftermeet-app/aftermeet/pkg/config"
)

// SMTPSender delivers OTP codes over SMTP
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender creates a new SMTP-backed sender
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// SendOTP sends the verification code to the given address
func (s *SMTPSender) SendOTP(_ context.Context, to, code string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your AfterMeet sign-in code\r\n\r\nYour verification code is %s. It expires in a few minutes.\r\n",
		s.cfg.From, to, code,
	)

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
