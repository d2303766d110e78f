package usecase

import (
	"context"

	"support-desk-api/dto/req"
	"support-desk-api/dto/res"
	"support-desk-api/entity"
)

type AuthUsecase interface {
	RegisterUser(ctx context.Context, request *req.RegisterRequest) (res.RegisterResponse, error)
	LoginUser(ctx context.Context, request *req.LoginRequest) (res.LoginResponse, error)
	VerifyOTP(ctx context.Context, caller *entity.User, request *req.VerifyOTPRequest) (res.UserResponse, error)
	ResendOTP(ctx context.Context, caller *entity.User) error
	GetProfile(ctx context.Context, caller *entity.User) (res.UserResponse, error)
}
