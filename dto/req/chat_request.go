package req

type ParticipantRef struct {
	ID uint `json:"id" validate:"required"`
}

type CreateChatGroupRequest struct {
	GroupName    string           `json:"groupName" validate:"required,min=1,max=100"`
	Participants []ParticipantRef `json:"participants" validate:"required,min=1,dive"`
}
