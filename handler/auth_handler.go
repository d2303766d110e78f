package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"support-desk-api/config/common"
	"support-desk-api/dto/req"
	"support-desk-api/dto/res"
	"support-desk-api/middleware"
	"support-desk-api/usecase"
)

const tokenCookie = "token"

type AuthHandler struct {
	usecase.AuthUsecase
	*logrus.Logger
	TokenTTL time.Duration
}

func NewAuthHandler(authUseCase usecase.AuthUsecase, config *common.Config, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{AuthUsecase: authUseCase, Logger: logger, TokenTTL: config.GetJwtTTL()}
}

// RegisterUser godoc
// @Summary Register a customer or agent account and send its OTP
// @Tags Auth
// @Accept json
// @Success 201 {object} res.CommonResponse[res.RegisterResponse]
// @Produce json
// @Router /api/v1/auth/register [post]
func (handler *AuthHandler) RegisterUser(ctx *fiber.Ctx) error {
	payload := new(req.RegisterRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	registerResponse, err := handler.AuthUsecase.RegisterUser(ctx.Context(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to register new user: %v", err)
		return err
	}

	handler.setTokenCookie(ctx, registerResponse.Token)
	handler.Logger.Infof("Success register user with id: %d", registerResponse.User.ID)
	return ctx.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.RegisterResponse]{
		Status:  fiber.StatusCreated,
		Data:    registerResponse,
		Message: "User created successfully",
	})
}

// LoginUser godoc
// @Summary Log in and receive a token, also set as the token cookie
// @Tags Auth
// @Accept json
// @Success 200 {object} res.CommonResponse[res.LoginResponse]
// @Produce json
// @Router /api/v1/auth/login [post]
func (handler *AuthHandler) LoginUser(ctx *fiber.Ctx) error {
	payload := new(req.LoginRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	loginResponse, err := handler.AuthUsecase.LoginUser(ctx.Context(), payload)
	if err != nil {
		handler.Logger.WithError(err).Errorf("Failed to login: %v", err)
		return err
	}

	handler.setTokenCookie(ctx, loginResponse.Token)
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.LoginResponse]{
		Status:  fiber.StatusOK,
		Data:    loginResponse,
		Message: "User logged in successfully",
	})
}

// LogoutUser godoc
// @Summary Clear the token cookie
// @Tags Auth
// @Produce json
// @Router /api/v1/auth/logout [post]
func (handler *AuthHandler) LogoutUser(ctx *fiber.Ctx) error {
	ctx.ClearCookie(tokenCookie)
	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[any]{
		Status:  fiber.StatusOK,
		Message: "User logged out successfully",
	})
}

// VerifyUser godoc
// @Summary Verify the caller's account with its OTP
// @Tags Auth
// @Accept json
// @Produce json
// @Router /api/v1/auth/verify [post]
func (handler *AuthHandler) VerifyUser(ctx *fiber.Ctx) error {
	payload := new(req.VerifyOTPRequest)
	if err := ctx.BodyParser(payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	userResponse, err := handler.AuthUsecase.VerifyOTP(ctx.Context(), middleware.Caller(ctx), payload)
	if err != nil {
		handler.Logger.WithError(err).Warn("Failed to verify user")
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.UserResponse]{
		Status:  fiber.StatusOK,
		Data:    userResponse,
		Message: "User Verified Successfully.",
	})
}

// ResendOTP godoc
// @Summary Issue a new OTP to the caller
// @Tags Auth
// @Produce json
// @Router /api/v1/auth/resend-otp [post]
func (handler *AuthHandler) ResendOTP(ctx *fiber.Ctx) error {
	if err := handler.AuthUsecase.ResendOTP(ctx.Context(), middleware.Caller(ctx)); err != nil {
		handler.Logger.WithError(err).Error("Failed to resend OTP")
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[any]{
		Status:  fiber.StatusOK,
		Message: "OTP has been resent to your email.",
	})
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags Auth
// @Produce json
// @Router /api/v1/auth/me [get]
func (handler *AuthHandler) GetProfile(ctx *fiber.Ctx) error {
	userResponse, err := handler.AuthUsecase.GetProfile(ctx.Context(), middleware.Caller(ctx))
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(res.CommonResponse[res.UserResponse]{
		Status:  fiber.StatusOK,
		Data:    userResponse,
		Message: "Successfully To Get User",
	})
}

// setTokenCookie expires the cookie together with the token it carries.
func (handler *AuthHandler) setTokenCookie(ctx *fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     tokenCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(handler.TokenTTL),
	})
}
