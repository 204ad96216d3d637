package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/purepath/account-service/internal/api/rest/middleware"
	"github.com/purepath/account-service/internal/domain"
	"github.com/purepath/account-service/internal/dto"
	"github.com/purepath/account-service/internal/helper"
	"github.com/purepath/account-service/internal/helper/utils"
	"github.com/purepath/account-service/internal/services"
)

var validate = validator.New()

type AccountHandler struct {
	svc  services.AccountService
	auth helper.Auth
}

func NewAccountHandler(svc services.AccountService, auth helper.Auth) *AccountHandler {
	return &AccountHandler{svc: svc, auth: auth}
}

func (h *AccountHandler) SetupRoutes(app *fiber.App) {
	// public
	app.Post("/register", h.Register)
	app.Post("/verify-otp", h.VerifyOTP)
	app.Post("/resend-otp", h.ResendOTP)
	app.Post("/login", h.Login)
	app.Post("/token", h.Login)
	app.Post("/refresh", h.Refresh)

	// bearer token required
	authed := app.Group("/", middleware.AuthMiddleware(h.auth))
	authed.Get("/profile", h.Profile)
	authed.Put("/profile/update", h.UpdateProfile)
	authed.Post("/change-password", h.ChangePassword)
	authed.Post("/assign-partner", h.AssignPartner)
	authed.Post("/verify-partner-code", h.VerifyPartnerCode)
}

// serviceError maps domain failures to 400 and keeps infrastructure detail
// out of responses.
func serviceError(ctx *fiber.Ctx, err error) error {
	if domain.IsDomainError(err) {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "something went wrong, please retry")
}

func parseAndValidate(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return err
	}
	return validate.Struct(out)
}

func (h *AccountHandler) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	res, err := h.svc.Register(req)
	if err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, res)
}

func (h *AccountHandler) VerifyOTP(ctx *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and otp are required")
	}

	user, err := h.svc.VerifyEmail(req.Email, req.OTP)
	if err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"message": "Email verified successfully!",
		"user":    user,
	})
}

func (h *AccountHandler) ResendOTP(ctx *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	if err := h.svc.ResendOTP(req.Email); err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Verification code sent")
}

func (h *AccountHandler) Login(ctx *fiber.Ctx) error {
	var req dto.UserLogin
	if err := parseAndValidate(ctx, &req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	res, err := h.svc.Login(ctx.Context(), req)
	if err != nil {
		return serviceError(ctx, err)
	}

	// browser clients authenticate via this cookie; API clients use the
	// Authorization header
	ctx.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    res.Access,
		Expires:  time.Now().Add(h.auth.AccessTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *AccountHandler) Refresh(ctx *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "refresh token is required")
	}

	res, err := h.svc.Refresh(ctx.Context(), req.Refresh)
	if err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, res)
}

func (h *AccountHandler) Profile(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := h.svc.GetProfile(claims.UserID)
	if err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *AccountHandler) UpdateProfile(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var req dto.UpdateUserProfile
	if err := parseAndValidate(ctx, &req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.UpdateProfile(claims.UserID, req)
	if err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *AccountHandler) ChangePassword(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	if err := h.svc.ChangePassword(claims.UserID, req); err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Password updated successfully")
}

func (h *AccountHandler) AssignPartner(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var req dto.AssignPartnerRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid partner email")
	}

	if err := h.svc.AssignPartner(claims.UserID, req.PartnerEmail); err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Verification code sent to your accountability partner")
}

func (h *AccountHandler) VerifyPartnerCode(ctx *fiber.Ctx) error {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "unauthorized")
	}

	var req dto.VerifyPartnerCodeRequest
	if err := parseAndValidate(ctx, &req); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "code is required")
	}

	if err := h.svc.VerifyPartnerCode(claims.UserID, req.Code); err != nil {
		return serviceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Restriction lifted successfully")
}
