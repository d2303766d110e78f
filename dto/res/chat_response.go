package res

import "time"

type ChatGroupResponse struct {
	ID        uint      `json:"id"`
	ChatType  string    `json:"chatType"`
	GroupName string    `json:"groupName"`
	AdminID   uint      `json:"adminId"`
	MemberIDs []uint    `json:"memberIds"`
	CreatedAt time.Time `json:"createdAt"`
}

type ParticipantUser struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Role      string `json:"role"`
}

type ParticipantResponse struct {
	User ParticipantUser `json:"user"`
}

type CategoryResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type ChatDetailsResponse struct {
	Status   string            `json:"status"`
	Category *CategoryResponse `json:"category"`
}

type CustomerAgentChatResponse struct {
	ID           uint                  `json:"id"`
	ChatType     string                `json:"chatType"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	Participants []ParticipantResponse `json:"participants"`
	ChatDetails  *ChatDetailsResponse  `json:"chatDetails"`
}

type TeamChatResponse struct {
	ID           uint                  `json:"id"`
	ChatType     string                `json:"chatType"`
	GroupName    string                `json:"groupName,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
	Participants []ParticipantResponse `json:"participants"`
	Messages     []MessageResponse     `json:"messages"`
}

type MessageResponse struct {
	ID        uint      `json:"id"`
	ChatID    uint      `json:"chatId"`
	SenderID  uint      `json:"senderId"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
