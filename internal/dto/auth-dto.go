package dto

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Country     string `json:"country,omitempty"`
	City        string `json:"city,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty" validate:"omitempty,max=15"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// OTP length follows OTP_LENGTH; the bound here is the challenge column
// width, not the generated length.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,max=16,numeric"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UserLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Access     string              `json:"access"`
	Refresh    string              `json:"refresh"`
	User       UserProfileResponse `json:"user"`
	IsVerified bool                `json:"is_verified"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type TokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" validate:"omitempty,min=6"`
}

// AuthClaims is what the middleware extracts from a verified access token.
type AuthClaims struct {
	UserID string  `json:"user_id"`
	Email  string  `json:"email"`
	Iat    float64 `json:"iat"`
	Expiry float64 `json:"expiry"`
	// TokenID is only set on refresh tokens.
	TokenID string `json:"jti,omitempty"`
}
