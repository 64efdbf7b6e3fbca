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

// EmailService sends the notification emails of the bench workflow
type EmailService interface {
	SendWelcomeEmail(toEmail, toName string) error
	SendApplicationDecision(toEmail, toName, opportunityTitle string, accepted bool) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Enabled   bool
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// useImplicitTLS reports the SMTPS port, which needs TLS before the greeting
func (c SMTPConfig) useImplicitTLS() bool {
	return c.Port == 465
}

// EmailServiceImpl implements EmailService over net/smtp
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{config: config, logger: logger}
}

// Message is a composed HTML email
type Message struct {
	To      string
	Subject string
	Body    string
}

// WelcomeMessage composes the email sent after registration
func WelcomeMessage(toEmail, toName string) Message {
	return Message{
		To:      toEmail,
		Subject: "Welcome to BenchTrack",
		Body: wrap(fmt.Sprintf(`<h2 style="color: #333;">Welcome to BenchTrack!</h2>
<p>Hello %s,</p>
<p>Your account is active. Upload your resume and keep your attendance up to date so we can match you with the right projects.</p>`,
			html.EscapeString(toName))),
	}
}

// DecisionMessage composes the email sent when an application is reviewed
func DecisionMessage(toEmail, toName, opportunityTitle string, accepted bool) Message {
	name := html.EscapeString(toName)
	title := html.EscapeString(opportunityTitle)

	if accepted {
		return Message{
			To:      toEmail,
			Subject: "Application accepted: " + opportunityTitle,
			Body: wrap(fmt.Sprintf(`<h2 style="color: #2e7d32;">Congratulations!</h2>
<p>Hello %s,</p>
<p>Your application for <strong>%s</strong> has been accepted. Your bench manager will contact you with the onboarding details.</p>`,
				name, title)),
		}
	}
	return Message{
		To:      toEmail,
		Subject: "Application update: " + opportunityTitle,
		Body: wrap(fmt.Sprintf(`<p>Hello %s,</p>
<p>Thank you for applying to <strong>%s</strong>. The position has been filled by another candidate this time.</p>
<p>Keep your skills and resume current; new opportunities are posted every week.</p>`,
			name, title)),
	}
}

func wrap(content string) string {
	return `<html>
<body>
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
` + content + `
<p>Best regards,<br>The BenchTrack Team</p>
</div>
</body>
</html>`
}

func (s *EmailServiceImpl) SendWelcomeEmail(toEmail, toName string) error {
	return s.send(WelcomeMessage(toEmail, toName))
}

func (s *EmailServiceImpl) SendApplicationDecision(toEmail, toName, opportunityTitle string, accepted bool) error {
	return s.send(DecisionMessage(toEmail, toName, opportunityTitle, accepted))
}

func (s *EmailServiceImpl) send(msg Message) error {
	if !s.config.Enabled || s.config.Host == "" {
		s.logger.Info().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Msg("SMTP disabled - email not sent")
		return nil
	}
	return s.sendHTMLEmail(msg)
}

// encode renders headers in a stable order followed by the body
func (s *EmailServiceImpl) encode(msg Message) []byte {
	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           msg.To,
		"Subject":      msg.Subject,
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
	b.WriteString(msg.Body)
	return []byte(b.String())
}

func (s *EmailServiceImpl) sendHTMLEmail(msg Message) error {
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}
	body := s.encode(msg)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.useImplicitTLS() {
		// SendMail upgrades with STARTTLS when the server offers it
		if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{msg.To}, body); err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host, MinVersion: tls.VersionTLS12})
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
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
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
