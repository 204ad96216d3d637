package dto

const (
	EventVerifyEmail = "user.verify_email"
	EventPartnerCode = "user.partner_code"
)

// MailEvent is the envelope published to the mail topic. Event selects which
// letter the mailer renders.
type MailEvent struct {
	Event     string `json:"event"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at,omitempty"`
}
