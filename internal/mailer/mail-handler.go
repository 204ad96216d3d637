package mailer

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/purepath/account-service/internal/dto"
)

type MailHandler struct {
	MailService *MailService
}

func NewMailHandler(ms *MailService) *MailHandler {
	return &MailHandler{MailService: ms}
}

func (h *MailHandler) HandleMessage(message string) error {
	var event dto.MailEvent

	if err := json.Unmarshal([]byte(message), &event); err != nil {
		log.Printf("invalid event payload: %s\n", message)
		return err
	}

	log.Printf("mail event received: event=%s user_id=%s", event.Event, event.UserID)

	switch event.Event {
	case dto.EventVerifyEmail:
		return h.MailService.SendVerificationOTP(event.Email, event.FirstName, event.Code)
	case dto.EventPartnerCode:
		return h.MailService.SendPartnerCode(event.Email, event.FirstName, event.Code)
	default:
		return fmt.Errorf("unknown mail event %q", event.Event)
	}
}
