package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	PhoneNumber string `json:"phone_number"`

	IsEmailVerified bool       `gorm:"default:false" json:"is_email_verified"`
	IsActive        bool       `gorm:"default:false" json:"is_active"`
	EmailOTP        string     `gorm:"type:varchar(16)" json:"-"`
	EmailOTPExpires *time.Time `json:"-"`
	EmailOTPSentAt  *time.Time `json:"-"`

	PartnerEmail            string `json:"-"`
	PartnerVerificationCode string `gorm:"type:varchar(16)" json:"-"`
	IsRestrictionEnabled    bool   `gorm:"default:true" json:"is_restriction_enabled"`

	// Version guards against lost updates: every save is conditional on the
	// version the record was read at.
	Version   int64 `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activate marks the email verified and the account usable for login.
// The caller validates the OTP first; activation clears it so the code can
// never be consumed twice.
func (u *User) Activate() error {
	if u.IsEmailVerified {
		return ErrAlreadyVerified
	}
	u.IsEmailVerified = true
	u.IsActive = true
	u.EmailOTP = ""
	u.EmailOTPExpires = nil
	u.EmailOTPSentAt = nil
	return nil
}

// AssignPartner records the partner identity and re-enables the restriction.
// Assigning while a challenge is already pending overwrites it; the caller
// issues the fresh code immediately after. The restriction flag is forced on:
// committing to a partner re-enables blocking.
func (u *User) AssignPartner(partnerEmail string) error {
	if strings.EqualFold(strings.TrimSpace(partnerEmail), u.Email) {
		return ErrSelfAssignment
	}
	u.PartnerEmail = strings.TrimSpace(strings.ToLower(partnerEmail))
	u.IsRestrictionEnabled = true
	return nil
}

// LiftRestriction clears the restriction after a successful partner-code
// check. Partner identity and code go together; a lifted restriction leaves
// no challenge behind.
func (u *User) LiftRestriction() error {
	if u.PartnerVerificationCode == "" {
		return ErrNoActiveChallenge
	}
	u.PartnerVerificationCode = ""
	u.PartnerEmail = ""
	u.IsRestrictionEnabled = false
	return nil
}

// HasPartnerChallenge reports whether a restriction-lift challenge is
// outstanding. Exposed to clients instead of the code itself.
func (u *User) HasPartnerChallenge() bool {
	return u.PartnerVerificationCode != ""
}
