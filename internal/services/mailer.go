package services

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"github.com/example/bazaarhub/internal/config"
	"github.com/example/bazaarhub/internal/metrics"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	log      zerolog.Logger
}

// NewMailer creates a Mailer from config.
func NewMailer(cfg *config.Config, log zerolog.Logger) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPass,
		from:     cfg.SMTPFrom,
		log:      log.With().Str("component", "mailer").Logger(),
	}
}

// Send delivers a plain-text message. When no SMTP host is configured the
// message is logged and dropped, which keeps local development working
// without a mail server.
func (m *Mailer) Send(to, subject, body string) error {
	if m.host == "" {
		m.log.Info().Str("to", to).Str("subject", subject).Msg("smtp not configured, dropping mail")
		return nil
	}

	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg)); err != nil {
		m.log.Error().Err(err).Str("to", to).Msg("failed to send mail")
		return err
	}

	metrics.EmailsSent.Inc()
	return nil
}

// SendOTP mails a registration code to a new account.
func (m *Mailer) SendOTP(to, code string) error {
	return m.Send(to, "Your OTP for Registration",
		fmt.Sprintf("Your OTP is %s. It is valid for 10 minutes.", code))
}

// SendVerified confirms a successful account verification.
func (m *Mailer) SendVerified(to, role string) error {
	return m.Send(to, "Registration Successful",
		fmt.Sprintf("Your account has been verified successfully as %s!", role))
}
