package entity

import (
	"time"

	"support-desk-api/enum"
)

type User struct {
	BaseEntity
	Username    string        `json:"username" gorm:"unique;type:varchar(50);not null"`
	Firstname   string        `json:"firstname" gorm:"type:varchar(100)"`
	Lastname    string        `json:"lastname" gorm:"type:varchar(100)"`
	Email       string        `json:"email" gorm:"unique;type:varchar(100);not null"`
	PhoneNumber string        `json:"phoneNumber" gorm:"type:varchar(20)"`
	Password    string        `json:"-" gorm:"type:varchar(255);not null"`
	Gender      enum.Gender   `json:"gender" gorm:"type:varchar(10)"`
	Country     string        `json:"country" gorm:"type:varchar(100)"`
	Role        enum.UserRole `json:"role" gorm:"type:varchar(20);not null;default:'customer'"`
	IsVerified  bool          `json:"isVerified" gorm:"default:false"`

	Agent *Agent `json:"agent,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

// Agent is the support-agent profile of a User. Transactions reference the
// agent id, not the user id.
type Agent struct {
	BaseEntity
	UserID      uint   `json:"userId" gorm:"uniqueIndex;not null"`
	AgentStatus string `json:"agentStatus" gorm:"type:varchar(20);default:'offline'"`
}

type UserOTP struct {
	BaseEntity
	UserID    uint      `json:"userId" gorm:"uniqueIndex;not null"`
	OTP       string    `json:"-" gorm:"type:varchar(10);not null"`
	ExpiresAt time.Time `json:"expiresAt"`
	Attempts  int       `json:"attempts" gorm:"default:0"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
