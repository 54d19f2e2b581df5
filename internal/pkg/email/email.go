package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendWelcomeEmail(toEmail, toName string) error
	SendConnectionRequestEmail(toEmail, toName, fromName, message string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool // implicit TLS, usually port 465
}

// Configured reports whether enough settings are present to deliver mail
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.FromEmail != ""
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailServiceImpl implements EmailService over SMTP
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
	send   sendFunc
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) *EmailServiceImpl {
	s := &EmailServiceImpl{
		config: config,
		logger: logger,
	}
	s.send = smtp.SendMail
	if config.UseTLS {
		s.send = s.sendTLS
	}
	return s
}

// SendWelcomeEmail greets a newly registered user
func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName string) error {
	subject := "Welcome to CampusConnect"
	body := fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">Welcome to CampusConnect!</h2>
		<p>Hello %s,</p>
		<p>Your account is ready. Join study groups, find clubs and events, and reach out to alumni from your campus.</p>
		<p>Best regards,<br>The CampusConnect Team</p>
	</div>
</body>
</html>`, html.EscapeString(toName))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendConnectionRequestEmail tells an alumni that a student wants to connect
func (s *EmailServiceImpl) SendConnectionRequestEmail(toEmail, toName, fromName, message string) error {
	subject := fmt.Sprintf("%s wants to connect on CampusConnect", fromName)

	note := ""
	if strings.TrimSpace(message) != "" {
		note = fmt.Sprintf(`<blockquote style="border-left: 3px solid #4a86e8; padding-left: 12px;">%s</blockquote>`,
			html.EscapeString(message))
	}

	body := fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">New connection request</h2>
		<p>Hello %s,</p>
		<p><strong>%s</strong> sent you a connection request.</p>
		%s
		<p>Sign in to accept or reject the request.</p>
		<p>Best regards,<br>The CampusConnect Team</p>
	</div>
</body>
</html>`, html.EscapeString(toName), html.EscapeString(fromName), note)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email. Without SMTP settings the mail is logged and dropped.
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	if !s.config.Configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP not configured - email not sent")
		return nil
	}

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	message := buildMessage(s.from(), toEmail, subject, htmlBody)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if err := s.send(serverAddress, auth, s.config.FromEmail, []string{toEmail}, message); err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Debug().Str("toEmail", toEmail).Str("subject", subject).Msg("Email sent")
	return nil
}

func (s *EmailServiceImpl) from() string {
	if s.config.FromName == "" {
		return s.config.FromEmail
	}
	return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	headers := map[string]string{
		"From":         from,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, headers[k])
	}
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

// sendTLS delivers over an implicit TLS connection
func (s *EmailServiceImpl) sendTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	return w.Close()
}
