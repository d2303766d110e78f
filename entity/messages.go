package entity

type Message struct {
	BaseEntity
	ChatID   uint   `json:"chatId" gorm:"index;not null"`
	SenderID uint   `json:"senderId" gorm:"index;not null"`
	Content  string `json:"content" gorm:"type:text"`
	IsRead   bool   `json:"isRead" gorm:"default:false"`
}
