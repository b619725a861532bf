package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/lckh-guru/lckh-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService sends the account emails of the application
type EmailService interface {
	SendPasswordReset(to, name, resetLink, expiresAt string) error
	SendEmailVerification(to, name, verifyLink, expiresAt string) error
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	backoff   time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	return newEmailService(cfg, smtp.SendMail, time.Second)
}

func newEmailService(cfg config.SMTPConfig, send sendFunc, backoff time.Duration) (*emailServiceImpl, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      send,
		backoff:   backoff,
	}, nil
}

type linkEmailData struct {
	Name      string
	Link      string
	ExpiresAt string
}

// SendPasswordReset sends a password reset email to the user
func (s *emailServiceImpl) SendPasswordReset(to, name, resetLink, expiresAt string) error {
	return s.sendTemplate(to, "Atur Ulang Kata Sandi LCKH", "password_reset.html", linkEmailData{
		Name:      name,
		Link:      resetLink,
		ExpiresAt: expiresAt,
	})
}

// SendEmailVerification sends the signup confirmation link
func (s *emailServiceImpl) SendEmailVerification(to, name, verifyLink, expiresAt string) error {
	return s.sendTemplate(to, "Konfirmasi Email Akun LCKH", "email_verification.html", linkEmailData{
		Name:      name,
		Link:      verifyLink,
		ExpiresAt: expiresAt,
	})
}

func (s *emailServiceImpl) sendTemplate(to, subject, name string, data any) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, name, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return s.sendHTML(to, subject, body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// exponential backoff: 1x, 2x, 4x
		if attempt < maxRetries {
			time.Sleep(s.backoff << (attempt - 1))
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
