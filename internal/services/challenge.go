package services

import (
	"time"

	"github.com/purepath/account-service/internal/domain"
	"github.com/purepath/account-service/internal/helper/utils"
	"github.com/purepath/account-service/internal/repository"
)

// ChallengeKind selects which single-use code a challenge operates on. Both
// flows share the same mechanics and differ only in the fields they occupy
// and whether the code expires.
type ChallengeKind string

const (
	ChallengeEmailVerification ChallengeKind = "email_verification"
	ChallengePartnerLift       ChallengeKind = "partner_lift"
)

type ChallengeEngine struct {
	repo       repository.UserRepository
	codeLength int
	// otpTTL applies to email verification only. The partner code does not
	// expire: a restriction lift can legitimately happen months later.
	otpTTL time.Duration
}

func NewChallengeEngine(repo repository.UserRepository, codeLength int, otpTTL time.Duration) *ChallengeEngine {
	if codeLength <= 0 {
		codeLength = 6
	}
	return &ChallengeEngine{repo: repo, codeLength: codeLength, otpTTL: otpTTL}
}

// Issue generates a fresh code, writes it onto the record and persists it,
// then returns the code for delivery. Re-issuing overwrites any outstanding
// code for the same kind. Persist-before-notify: by the time the caller
// publishes a mail event the code is already durable.
func (e *ChallengeEngine) Issue(user *domain.User, kind ChallengeKind) (string, error) {
	code, err := utils.RandomDigits(e.codeLength)
	if err != nil {
		return "", err
	}

	now := time.Now()
	switch kind {
	case ChallengeEmailVerification:
		exp := now.Add(e.otpTTL)
		user.EmailOTP = code
		user.EmailOTPExpires = &exp
		user.EmailOTPSentAt = &now
	case ChallengePartnerLift:
		user.PartnerVerificationCode = code
	}

	if err := e.repo.SaveUser(user); err != nil {
		return "", err
	}
	return code, nil
}

// Validate checks a supplied code against the outstanding challenge. Exact
// string match, case-sensitive, no normalization. It never clears the code:
// consuming the challenge is the caller's state transition, performed in the
// same save as its side effects.
func (e *ChallengeEngine) Validate(user *domain.User, kind ChallengeKind, supplied string) error {
	switch kind {
	case ChallengeEmailVerification:
		if user.EmailOTP == "" {
			return domain.ErrNoActiveChallenge
		}
		if user.EmailOTPExpires != nil && time.Now().After(*user.EmailOTPExpires) {
			return domain.ErrCodeExpired
		}
		if user.EmailOTP != supplied {
			return domain.ErrInvalidCode
		}
	case ChallengePartnerLift:
		if user.PartnerVerificationCode == "" {
			return domain.ErrNoActiveChallenge
		}
		if user.PartnerVerificationCode != supplied {
			return domain.ErrInvalidCode
		}
	default:
		return domain.ErrNoActiveChallenge
	}
	return nil
}
