package mailer

import (
	"fmt"
	"log"
	"strings"

	"gopkg.in/gomail.v2"
)

type MailService struct {
	smtpHost     string
	smtpPort     int
	smtpUser     string
	smtpPassword string
	mailFrom     string
	mailFromName string
}

func NewMailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, mailFrom, mailFromName string) *MailService {
	return &MailService{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUser:     smtpUser,
		smtpPassword: smtpPassword,
		mailFrom:     mailFrom,
		mailFromName: mailFromName,
	}
}

// SendVerificationOTP delivers the activation code to the registering user.
func (s *MailService) SendVerificationOTP(to, firstName, code string) error {
	name := strings.TrimSpace(firstName)
	if name == "" {
		name = "there"
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nYour verification OTP is: %s\n\nPlease enter this code in the app to verify your email address.",
		name, code,
	)
	return s.send(to, "Your Email Verification OTP", body)
}

// SendPartnerCode delivers the restriction-lift code to the accountability
// partner. This is the only channel the code ever travels on; the restricted
// user is never a recipient.
func (s *MailService) SendPartnerCode(to, userFirstName, code string) error {
	name := strings.TrimSpace(userFirstName)
	if name == "" {
		name = "A user"
	}

	body := fmt.Sprintf(`Hi,

Your friend %s has committed to blocking adult content and listed you as their accountability partner.

To disable restrictions in the future, they'll need the following secret code. Please do NOT share this code with them unless absolutely necessary.

Verification Code: %s

Thank you for supporting them in this important step.

- Accountability Team`, name, code)

	return s.send(to, "Accountability Code for Your Friend", body)
}

func (s *MailService) send(to, subject, body string) error {
	if s.smtpHost == "" || s.smtpUser == "" || s.mailFrom == "" {
		return fmt.Errorf("mail config missing")
	}
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("empty recipient")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.mailFrom, s.mailFromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.smtpHost, s.smtpPort, s.smtpUser, s.smtpPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	log.Printf("[MAIL] sent to=%s subject=%q", to, subject)
	return nil
}
