package email

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestDecisionMessage(t *testing.T) {
	accepted := DecisionMessage("dana@example.com", "Dana", "Payments <API>", true)
	assert.Equal(t, "Application accepted: Payments <API>", accepted.Subject)
	assert.Contains(t, accepted.Body, "Payments &lt;API&gt;")
	assert.Contains(t, accepted.Body, "has been accepted")

	declined := DecisionMessage("dana@example.com", "Dana", "Payments", false)
	assert.Equal(t, "Application update: Payments", declined.Subject)
	assert.Contains(t, declined.Body, "filled by another candidate")
}

func TestEncode_HeadersInStableOrder(t *testing.T) {
	svc := &EmailServiceImpl{config: SMTPConfig{FromName: "BenchTrack", FromEmail: "noreply@example.com"}}
	raw := string(svc.encode(WelcomeMessage("dana@example.com", "Dana")))

	head, body, found := strings.Cut(raw, "\r\n\r\n")
	assert.True(t, found)
	assert.True(t, strings.HasPrefix(head, "Content-Type: text/html; charset=UTF-8\r\nFrom: BenchTrack <noreply@example.com>"))
	assert.Contains(t, body, "Welcome to BenchTrack!")
}

func TestSend_DisabledIsNoop(t *testing.T) {
	svc := NewEmailService(SMTPConfig{Enabled: false}, zerolog.Nop())
	assert.NoError(t, svc.SendApplicationDecision("dana@example.com", "Dana", "Payments", true))
}
