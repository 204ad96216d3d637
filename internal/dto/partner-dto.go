package dto

type AssignPartnerRequest struct {
	PartnerEmail string `json:"partner_email" validate:"required,email"`
}

// Code length follows OTP_LENGTH; the bound here is the challenge column
// width, not the generated length.
type VerifyPartnerCodeRequest struct {
	Code string `json:"code" validate:"required,max=16,numeric"`
}
