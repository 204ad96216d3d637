package dto

import "github.com/purepath/account-service/internal/domain"

// UpdateUserProfile is a sparse PATCH body: only non-nil fields change.
// Identity fields (id, email, password, verification state) are deliberately
// not part of this struct.
type UpdateUserProfile struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Country     *string `json:"country,omitempty"`
	City        *string `json:"city,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=15"`
}

type UserProfileResponse struct {
	ID                   string `json:"id"`
	Email                string `json:"email"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Country              string `json:"country"`
	City                 string `json:"city"`
	PhoneNumber          string `json:"phone_number"`
	IsEmailVerified      bool   `json:"is_email_verified"`
	IsRestrictionEnabled bool   `json:"is_restriction_enabled"`
	// Presence of an outstanding partner challenge, never the code itself.
	// Clients use this for the login redirect flow.
	HasPartnerChallenge bool `json:"has_partner_challenge"`
}

func NewUserProfileResponse(u *domain.User) UserProfileResponse {
	return UserProfileResponse{
		ID:                   u.ID,
		Email:                u.Email,
		FirstName:            u.FirstName,
		LastName:             u.LastName,
		Country:              u.Country,
		City:                 u.City,
		PhoneNumber:          u.PhoneNumber,
		IsEmailVerified:      u.IsEmailVerified,
		IsRestrictionEnabled: u.IsRestrictionEnabled,
		HasPartnerChallenge:  u.HasPartnerChallenge(),
	}
}
