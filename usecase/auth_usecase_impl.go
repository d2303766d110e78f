package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"support-desk-api/config/common"
	"support-desk-api/config/logger"
	"support-desk-api/dto/req"
	"support-desk-api/dto/res"
	"support-desk-api/entity"
	"support-desk-api/enum"
	"support-desk-api/event"
	"support-desk-api/exception"
	"support-desk-api/repository"
	"support-desk-api/security"
	"support-desk-api/util"
)

type AuthUsecaseImpl struct {
	*repository.UserRepository
	*repository.OTPRepository
	*validator.Validate
	*gorm.DB
	*security.JWT
	Config   *common.Config
	Log      *logger.AppLogger
	Notifier EventNotifier
}

func NewAuthUsecase(userRepository *repository.UserRepository, otpRepository *repository.OTPRepository, validate *validator.Validate, DB *gorm.DB, JWT *security.JWT, config *common.Config, log *logger.AppLogger, notifier EventNotifier) AuthUsecase {
	return &AuthUsecaseImpl{
		UserRepository: userRepository,
		OTPRepository:  otpRepository,
		Validate:       validate,
		DB:             DB,
		JWT:            JWT,
		Config:         config,
		Log:            log,
		Notifier:       notifier,
	}
}

// otpRequested is the payload the external mailer consumes.
type otpRequested struct {
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	OTP       string    `json:"otp"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RegisterUser creates the user, its agent profile when the role is agent, and
// its first OTP in one transaction.
func (uc *AuthUsecaseImpl) RegisterUser(ctx context.Context, request *req.RegisterRequest) (res.RegisterResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		uc.Log.Http.Warning.Warn().Err(err).Msg("failed to validate register request")
		return res.RegisterResponse{}, err
	}

	exists, err := uc.UserRepository.ExistsByEmailOrUsername(ctx, uc.DB, request.Email, request.Username)
	if err != nil {
		return res.RegisterResponse{}, exception.Internal("Internal Server Error").Wrap(err)
	}
	if exists {
		return res.RegisterResponse{}, exception.BadRequest("This email or username is already registered")
	}

	hashPassword, err := util.HashPassword(request.Password)
	if err != nil {
		return res.RegisterResponse{}, exception.Internal("User creation Failed").Wrap(err)
	}
	otpLength, otpTTL, _ := uc.Config.GetOtpConfig()
	code, err := util.GenerateOTP(otpLength)
	if err != nil {
		return res.RegisterResponse{}, exception.Internal("User OTP creation Failed").Wrap(err)
	}

	role := enum.UserRole(request.Role)
	if role == "" {
		role = enum.RoleCustomer
	}
	newUser := &entity.User{
		Username:    request.Username,
		Firstname:   request.FirstName,
		Lastname:    request.LastName,
		Email:       request.Email,
		PhoneNumber: request.PhoneNumber,
		Password:    hashPassword,
		Gender:      enum.Gender(request.Gender),
		Country:     request.Country,
		Role:        role,
	}
	if role == enum.RoleAgent {
		newUser.Agent = &entity.Agent{}
	}
	otp := &entity.UserOTP{
		OTP:       code,
		ExpiresAt: time.Now().Add(otpTTL),
	}

	// start transaction
	trx := uc.DB.WithContext(ctx).Begin()
	defer trx.Rollback()

	if err := uc.UserRepository.Save(ctx, trx, newUser); err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to save user")
		return res.RegisterResponse{}, exception.Internal("User creation Failed").Wrap(err)
	}
	otp.UserID = newUser.ID
	if err := uc.OTPRepository.Save(ctx, trx, otp); err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to save user otp")
		return res.RegisterResponse{}, exception.Internal("User OTP creation Failed").Wrap(err)
	}
	if err := trx.Commit().Error; err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to commit user")
		return res.RegisterResponse{}, exception.Internal("User creation Failed").Wrap(err)
	}

	uc.Notifier.Notify(ctx, event.OTPRequested, otpRequested{
		UserID:    newUser.ID,
		Email:     newUser.Email,
		OTP:       otp.OTP,
		ExpiresAt: otp.ExpiresAt,
	})

	token, err := uc.JWT.GenerateToken(newUser)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to generate token")
		return res.RegisterResponse{}, exception.Internal("Internal Server Error").Wrap(err)
	}
	uc.Log.Http.Info.Info().Uint("userId", newUser.ID).Str("role", string(role)).Msg("user registered")
	return res.RegisterResponse{User: toUserResponse(newUser), Token: token}, nil
}

func (uc *AuthUsecaseImpl) LoginUser(ctx context.Context, request *req.LoginRequest) (res.LoginResponse, error) {
	if err := uc.Validate.Struct(request); err != nil {
		return res.LoginResponse{}, err
	}

	user, err := uc.UserRepository.FindByEmail(ctx, uc.DB, request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res.LoginResponse{}, exception.BadRequest("This email is not registered")
		}
		return res.LoginResponse{}, exception.Internal("Internal Server Error").Wrap(err)
	}
	if !util.ComparePassword(user.Password, request.Password) {
		uc.Log.Http.Warning.Warn().Uint("userId", user.ID).Msg("password mismatch")
		return res.LoginResponse{}, exception.BadRequest("Your password is not correct")
	}

	token, err := uc.JWT.GenerateToken(user)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to generate token")
		return res.LoginResponse{}, exception.Internal("Internal Server Error").Wrap(err)
	}
	return res.LoginResponse{User: toUserResponse(user), Token: token}, nil
}

// VerifyOTP marks the caller verified when the code matches the unexpired OTP.
// A mismatch counts as an attempt; once OTP_MAX_ATTEMPTS is reached the OTP is
// refused until a new one is requested.
func (uc *AuthUsecaseImpl) VerifyOTP(ctx context.Context, caller *entity.User, request *req.VerifyOTPRequest) (res.UserResponse, error) {
	if caller == nil {
		return res.UserResponse{}, exception.Unauthorized("You are not authorized")
	}
	if err := uc.Validate.Struct(request); err != nil {
		return res.UserResponse{}, err
	}

	otp, err := uc.OTPRepository.FindActiveByUserID(ctx, uc.DB, caller.ID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return res.UserResponse{}, exception.BadRequest("OTP expired or not found")
		}
		return res.UserResponse{}, exception.Internal("Internal Server Error").Wrap(err)
	}
	if otp.Attempts >= uc.Config.GetOtpMaxAttempts() {
		uc.Log.Http.Warning.Warn().Uint("userId", caller.ID).Int("attempts", otp.Attempts).Msg("otp attempts exhausted")
		return res.UserResponse{}, exception.TooManyRequests("Too many OTP attempts, request a new OTP")
	}
	if otp.OTP != request.OTP {
		if err := uc.OTPRepository.IncrementAttempts(ctx, uc.DB, caller.ID); err != nil {
			uc.Log.Http.Error.Error().Err(err).Uint("userId", caller.ID).Msg("failed to count otp attempt")
		}
		return res.UserResponse{}, exception.BadRequest("Invalid OTP")
	}

	err = uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := uc.UserRepository.MarkVerified(ctx, tx, caller.ID); err != nil {
			return err
		}
		return uc.OTPRepository.Delete(ctx, tx, otp)
	})
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("userId", caller.ID).Msg("failed to verify user")
		return res.UserResponse{}, exception.Internal("User verification Failed!").Wrap(err)
	}

	caller.IsVerified = true
	return toUserResponse(caller), nil
}

func (uc *AuthUsecaseImpl) ResendOTP(ctx context.Context, caller *entity.User) error {
	if caller == nil {
		return exception.Unauthorized("You are not authorized")
	}

	otpLength, _, resendTTL := uc.Config.GetOtpConfig()
	code, err := util.GenerateOTP(otpLength)
	if err != nil {
		return exception.Internal("Internal Server Error").Wrap(err)
	}
	otp := &entity.UserOTP{
		UserID:    caller.ID,
		OTP:       code,
		ExpiresAt: time.Now().Add(resendTTL),
		Attempts:  0,
	}
	if err := uc.OTPRepository.Upsert(ctx, uc.DB, otp); err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("userId", caller.ID).Msg("failed to store otp")
		return exception.Internal("Internal Server Error").Wrap(err)
	}

	uc.Notifier.Notify(ctx, event.OTPRequested, otpRequested{
		UserID:    caller.ID,
		Email:     caller.Email,
		OTP:       otp.OTP,
		ExpiresAt: otp.ExpiresAt,
	})
	return nil
}

func (uc *AuthUsecaseImpl) GetProfile(ctx context.Context, caller *entity.User) (res.UserResponse, error) {
	if caller == nil {
		return res.UserResponse{}, exception.Unauthorized("You are not authorized")
	}
	return toUserResponse(caller), nil
}
