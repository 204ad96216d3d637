package helper

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/purepath/account-service/internal/domain"
	"github.com/purepath/account-service/internal/dto"
	"golang.org/x/crypto/bcrypt"
)

type Auth struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func SetupAuth(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) Auth {
	return Auth{
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
	}
}

type TokenPair struct {
	Access    string
	Refresh   string
	RefreshID string
}

// GenerateTokenPair mints an access token and a refresh token bound to the
// user identity. The refresh token carries a jti so the store can revoke it
// on rotation.
func (a Auth) GenerateTokenPair(userID, email string) (TokenPair, error) {
	if userID == "" || email == "" {
		return TokenPair{}, errors.New("required inputs are missing to generate token")
	}

	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"iat":     now.Unix(),
		"exp":     now.Add(a.AccessTTL).Unix(),
	})
	accessStr, err := access.SignedString([]byte(a.AccessSecret))
	if err != nil {
		return TokenPair{}, errors.New("unable to sign the access token")
	}

	jti := uuid.NewString()
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"jti":     jti,
		"iat":     now.Unix(),
		"exp":     now.Add(a.RefreshTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString([]byte(a.RefreshSecret))
	if err != nil {
		return TokenPair{}, errors.New("unable to sign the refresh token")
	}

	return TokenPair{Access: accessStr, Refresh: refreshStr, RefreshID: jti}, nil
}

func (a Auth) VerifyAccessToken(tokenString string) (dto.AuthClaims, error) {
	return a.verify(tokenString, a.AccessSecret)
}

func (a Auth) VerifyRefreshToken(tokenString string) (dto.AuthClaims, error) {
	claims, err := a.verify(tokenString, a.RefreshSecret)
	if err != nil {
		return dto.AuthClaims{}, err
	}
	if claims.TokenID == "" {
		return dto.AuthClaims{}, domain.ErrInvalidToken
	}
	return claims, nil
}

func (a Auth) verify(tokenString, secret string) (dto.AuthClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return dto.AuthClaims{}, domain.ErrInvalidToken
	}

	// support both:
	// - "Bearer <token>"
	// - "<token>"
	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return dto.AuthClaims{}, domain.ErrInvalidToken
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return dto.AuthClaims{}, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.AuthClaims{}, domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" || email == "" {
		return dto.AuthClaims{}, domain.ErrInvalidToken
	}

	expFloat, ok := claims["exp"].(float64)
	if !ok || float64(time.Now().Unix()) > expFloat {
		return dto.AuthClaims{}, domain.ErrInvalidToken
	}

	out := dto.AuthClaims{
		UserID: userID,
		Email:  email,
		Expiry: expFloat,
	}
	if iat, ok := claims["iat"].(float64); ok {
		out.Iat = iat
	}
	if jti, ok := claims["jti"].(string); ok {
		out.TokenID = jti
	}
	return out, nil
}

func (a Auth) GetCurrentUser(ctx *fiber.Ctx) (dto.AuthClaims, error) {
	u := ctx.Locals("user")
	claims, ok := u.(dto.AuthClaims)
	if !ok {
		return dto.AuthClaims{}, errors.New("missing auth user in context")
	}
	return claims, nil
}

func (a Auth) HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}
