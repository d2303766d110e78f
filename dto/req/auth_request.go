package req

type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required,min=2,max=100"`
	LastName    string `json:"lastName" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=8,max=20"`
	Password    string `json:"password" validate:"required,min=6"`
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	Country     string `json:"country" validate:"required"`
	Role        string `json:"role" validate:"omitempty,oneof=agent customer"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required,numeric"`
}
