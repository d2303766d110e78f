package entity

import "support-desk-api/enum"

type Chat struct {
	BaseEntity
	ChatType enum.ChatType `json:"chatType" gorm:"type:varchar(20);not null;index"`

	ChatGroup    *ChatGroup        `json:"chatGroup,omitempty" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
	ChatDetails  *ChatDetails      `json:"chatDetails,omitempty" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
	Participants []ChatParticipant `json:"participants" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
	Messages     []Message         `json:"messages,omitempty" gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE;"`
}

type ChatGroup struct {
	BaseEntity
	ChatID    uint   `json:"chatId" gorm:"uniqueIndex;not null"`
	GroupName string `json:"groupName" gorm:"type:varchar(100)"`
	AdminID   uint   `json:"adminId" gorm:"index"`
}

// ChatDetails carries the status and category of a customer_to_agent chat.
type ChatDetails struct {
	BaseEntity
	ChatID     uint            `json:"chatId" gorm:"uniqueIndex;not null"`
	Status     enum.ChatStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CategoryID *uint           `json:"categoryId,omitempty"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
}

type ChatParticipant struct {
	ID     uint `json:"-" gorm:"primaryKey;autoIncrement"`
	ChatID uint `json:"-" gorm:"not null;uniqueIndex:idx_chat_participant"`
	UserID uint `json:"-" gorm:"not null;uniqueIndex:idx_chat_participant"`

	User User `json:"user" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}
