package usecase

import (
	"context"

	"support-desk-api/dto/req"
	"support-desk-api/dto/res"
	"support-desk-api/entity"
)

type ChatUsecase interface {
	CreateChatGroup(ctx context.Context, caller *entity.User, request *req.CreateChatGroupRequest) (res.ChatGroupResponse, error)
	GetCustomerAgentChats(ctx context.Context, caller *entity.User) ([]res.CustomerAgentChatResponse, error)
	GetTeamChats(ctx context.Context, caller *entity.User) ([]res.TeamChatResponse, error)
}
