package domain

import "errors"

var (
	// lookup
	ErrUserNotFound = errors.New("user not found")

	// registration / verification
	ErrMissingCredentials = errors.New("email and password are required")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrAlreadyVerified    = errors.New("email is already verified")
	ErrResendCooldown     = errors.New("verification code was just sent, try again later")

	// challenges
	ErrNoActiveChallenge = errors.New("no active verification challenge")
	ErrInvalidCode       = errors.New("invalid verification code")
	ErrCodeExpired       = errors.New("verification code expired")

	// auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("please verify your email before logging in")
	ErrInvalidToken       = errors.New("invalid token")

	// password change
	ErrMissingField         = errors.New("old_password and new_password are required")
	ErrIncorrectOldPassword = errors.New("old password is incorrect")
	ErrPasswordUnchanged    = errors.New("new password cannot be the same as the old password")

	// partner restriction
	ErrSelfAssignment = errors.New("you cannot assign yourself as your accountability partner")

	// persistence
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// IsDomainError reports whether err belongs to the domain taxonomy above.
// Handlers use it to separate 4xx responses from opaque infrastructure
// failures.
func IsDomainError(err error) bool {
	for _, d := range []error{
		ErrUserNotFound,
		ErrMissingCredentials,
		ErrDuplicateEmail,
		ErrAlreadyVerified,
		ErrResendCooldown,
		ErrNoActiveChallenge,
		ErrInvalidCode,
		ErrCodeExpired,
		ErrInvalidCredentials,
		ErrEmailNotVerified,
		ErrInvalidToken,
		ErrMissingField,
		ErrIncorrectOldPassword,
		ErrPasswordUnchanged,
		ErrSelfAssignment,
	} {
		if errors.Is(err, d) {
			return true
		}
	}
	return false
}
