package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/purepath/account-service/internal/domain"
	"github.com/purepath/account-service/internal/dto"
	"github.com/purepath/account-service/internal/helper"
	"github.com/purepath/account-service/internal/interfaces"
	"github.com/purepath/account-service/internal/repository"
	"github.com/purepath/account-service/internal/tokenstore"
)

const resendCooldown = 60 * time.Second

type AccountService interface {
	// Auth
	Register(input dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyEmail(email, otp string) (*dto.UserProfileResponse, error)
	ResendOTP(email string) error
	Login(ctx context.Context, input dto.UserLogin) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error)

	// Profile
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID string, input dto.UpdateUserProfile) (*dto.UserProfileResponse, error)
	ChangePassword(userID string, input dto.ChangePasswordRequest) error

	// Accountability partner
	AssignPartner(userID string, partnerEmail string) error
	VerifyPartnerCode(userID string, code string) error
}

type accountService struct {
	repo      repository.UserRepository
	producer  interfaces.ProducerHandler
	auth      helper.Auth
	challenge *ChallengeEngine
	tokens    tokenstore.Store
}

func NewAccountService(
	repo repository.UserRepository,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
	challenge *ChallengeEngine,
	tokens tokenstore.Store,
) AccountService {
	return &accountService{
		repo:      repo,
		producer:  producer,
		auth:      auth,
		challenge: challenge,
		tokens:    tokens,
	}
}

// AUTH

func (s *accountService) Register(input dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return nil, domain.ErrMissingCredentials
	}

	if existing, err := s.repo.FindUserByEmail(email); err == nil && existing != nil {
		return nil, domain.ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	// Passwords are opaque bytes; whitespace is legal content and must
	// round-trip through register, login and change-password untouched.
	hashed, err := s.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:                   uuid.NewString(),
		Email:                email,
		PasswordHash:         hashed,
		FirstName:            strings.TrimSpace(input.FirstName),
		LastName:             strings.TrimSpace(input.LastName),
		Country:              strings.TrimSpace(input.Country),
		City:                 strings.TrimSpace(input.City),
		PhoneNumber:          strings.TrimSpace(input.PhoneNumber),
		IsEmailVerified:      false,
		IsActive:             false,
		IsRestrictionEnabled: true,
	}

	if _, err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	code, err := s.challenge.Issue(user, ChallengeEmailVerification)
	if err != nil {
		return nil, err
	}
	s.publishMailEvent(user, dto.EventVerifyEmail, user.Email, code, user.EmailOTPExpires)

	return &dto.RegisterResponse{
		Message: "User registered successfully. Please verify your email using the OTP sent.",
		Email:   user.Email,
	}, nil
}

func (s *accountService) VerifyEmail(email, otp string) (*dto.UserProfileResponse, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user.IsEmailVerified {
		return nil, domain.ErrAlreadyVerified
	}

	if err := s.challenge.Validate(user, ChallengeEmailVerification, otp); err != nil {
		return nil, err
	}

	// Clearing the OTP and flipping the flags happen in one save.
	if err := user.Activate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}

	view := dto.NewUserProfileResponse(user)
	return &view, nil
}

func (s *accountService) ResendOTP(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return domain.ErrAlreadyVerified
	}
	if user.EmailOTPSentAt != nil && time.Since(*user.EmailOTPSentAt) < resendCooldown {
		return domain.ErrResendCooldown
	}

	code, err := s.challenge.Issue(user, ChallengeEmailVerification)
	if err != nil {
		return err
	}
	s.publishMailEvent(user, dto.EventVerifyEmail, user.Email, code, user.EmailOTPExpires)
	return nil
}

func (s *accountService) Login(ctx context.Context, input dto.UserLogin) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		// unknown email and wrong password collapse into one answer
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsEmailVerified || !user.IsActive {
		return nil, domain.ErrEmailNotVerified
	}

	pair, err := s.auth.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, pair.RefreshID, user.ID, s.auth.RefreshTTL); err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Access:     pair.Access,
		Refresh:    pair.Refresh,
		User:       dto.NewUserProfileResponse(user),
		IsVerified: user.IsEmailVerified,
	}, nil
}

func (s *accountService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	claims, err := s.auth.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := s.tokens.Consume(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	pair, err := s.auth.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, pair.RefreshID, user.ID, s.auth.RefreshTTL); err != nil {
		return nil, err
	}

	return &dto.TokenPairResponse{Access: pair.Access, Refresh: pair.Refresh}, nil
}

// PROFILE

func (s *accountService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	view := dto.NewUserProfileResponse(user)
	return &view, nil
}

func (s *accountService) UpdateProfile(userID string, input dto.UpdateUserProfile) (*dto.UserProfileResponse, error) {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Country != nil {
		user.Country = strings.TrimSpace(*input.Country)
	}
	if input.City != nil {
		user.City = strings.TrimSpace(*input.City)
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}

	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}

	view := dto.NewUserProfileResponse(user)
	return &view, nil
}

func (s *accountService) ChangePassword(userID string, input dto.ChangePasswordRequest) error {
	oldPassword := input.OldPassword
	newPassword := input.NewPassword

	if oldPassword == "" || newPassword == "" {
		return domain.ErrMissingField
	}

	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return err
	}

	if err := s.auth.VerifyPassword(oldPassword, user.PasswordHash); err != nil {
		return domain.ErrIncorrectOldPassword
	}
	if oldPassword == newPassword {
		return domain.ErrPasswordUnchanged
	}

	hashed, err := s.auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashed
	return s.repo.SaveUser(user)
}

// ACCOUNTABILITY PARTNER

func (s *accountService) AssignPartner(userID string, partnerEmail string) error {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return err
	}

	// Validate the transition before generating a code; the challenge write
	// below persists partner email + code together.
	if err := user.AssignPartner(partnerEmail); err != nil {
		return err
	}

	code, err := s.challenge.Issue(user, ChallengePartnerLift)
	if err != nil {
		return err
	}

	// The code goes to the partner only. The restricted user must never see
	// it, not even in logs.
	s.publishMailEvent(user, dto.EventPartnerCode, user.PartnerEmail, code, nil)
	return nil
}

func (s *accountService) VerifyPartnerCode(userID string, code string) error {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return err
	}

	if err := s.challenge.Validate(user, ChallengePartnerLift, code); err != nil {
		return err
	}

	if err := user.LiftRestriction(); err != nil {
		return err
	}
	return s.repo.SaveUser(user)
}

// publishMailEvent hands a challenge code to the mail topic. The record is
// already persisted; a broker failure is logged and the user can retry via
// the resend path.
func (s *accountService) publishMailEvent(user *domain.User, event, to, code string, expires *time.Time) {
	if s.producer == nil {
		log.Println("mail producer not configured - skip publish")
		return
	}

	ev := dto.MailEvent{
		Event:     event,
		UserID:    user.ID,
		Email:     to,
		FirstName: user.FirstName,
		Code:      code,
	}
	if expires != nil {
		ev.ExpiresAt = expires.Format(time.RFC3339)
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("marshal mail event error: %v", err)
		return
	}
	if err := s.producer.PublishMessage([]byte(event), payload); err != nil {
		log.Printf("publish mail event error: event=%s user=%s err=%v", event, user.ID, err)
	}
}
