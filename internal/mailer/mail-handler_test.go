package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleMessageInvalidPayload(t *testing.T) {
	h := NewMailHandler(NewMailService("", 587, "", "", "", ""))

	err := h.HandleMessage("{not json")
	assert.Error(t, err)
}

func TestHandleMessageUnknownEvent(t *testing.T) {
	h := NewMailHandler(NewMailService("", 587, "", "", "", ""))

	err := h.HandleMessage(`{"event":"user.something_else","email":"bob@x.com","code":"123456"}`)
	assert.ErrorContains(t, err, "unknown mail event")
}

func TestSendRequiresConfig(t *testing.T) {
	s := NewMailService("", 587, "", "", "", "")

	err := s.SendVerificationOTP("bob@x.com", "Bob", "123456")
	assert.ErrorContains(t, err, "mail config missing")

	err = s.SendPartnerCode("friend@y.com", "Alice", "123456")
	assert.ErrorContains(t, err, "mail config missing")
}

func TestSendRequiresRecipient(t *testing.T) {
	s := NewMailService("smtp.example.com", 587, "user", "pass", "noreply@example.com", "Accountability Team")

	err := s.SendVerificationOTP("   ", "Bob", "123456")
	assert.ErrorContains(t, err, "empty recipient")
}
