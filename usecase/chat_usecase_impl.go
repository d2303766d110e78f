package usecase

import (
	"context"
	"errors"
	"slices"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"support-desk-api/config/logger"
	"support-desk-api/dto/req"
	"support-desk-api/dto/res"
	"support-desk-api/entity"
	"support-desk-api/enum"
	"support-desk-api/event"
	"support-desk-api/exception"
	"support-desk-api/repository"
	"support-desk-api/security"
)

type ChatUsecaseImpl struct {
	*repository.ChatRepository
	*repository.AgentRepository
	*validator.Validate
	*gorm.DB
	Log      *logger.AppLogger
	Notifier EventNotifier
}

func NewChatUsecase(chatRepository *repository.ChatRepository, agentRepository *repository.AgentRepository, validate *validator.Validate, DB *gorm.DB, log *logger.AppLogger, notifier EventNotifier) *ChatUsecaseImpl {
	return &ChatUsecaseImpl{
		ChatRepository:  chatRepository,
		AgentRepository: agentRepository,
		Validate:        validate,
		DB:              DB,
		Log:             log,
		Notifier:        notifier,
	}
}

var errUnresolvedAgents = errors.New("participant agent ids could not be resolved")

// CreateChatGroup creates a group chat, its metadata and one participant per
// resolved agent user plus the admin, in a single transaction.
func (uc *ChatUsecaseImpl) CreateChatGroup(ctx context.Context, caller *entity.User, request *req.CreateChatGroupRequest) (res.ChatGroupResponse, error) {
	if err := security.RequireRole(caller, enum.RoleAdmin); err != nil {
		return res.ChatGroupResponse{}, err
	}
	if err := uc.Validate.Struct(request); err != nil {
		uc.Log.Http.Warning.Warn().Err(err).Msg("invalid chat group request")
		return res.ChatGroupResponse{}, err
	}

	agentIDs := make([]uint, 0, len(request.Participants))
	for _, participant := range request.Participants {
		if !slices.Contains(agentIDs, participant.ID) {
			agentIDs = append(agentIDs, participant.ID)
		}
	}

	chat := &entity.Chat{
		ChatType: enum.GroupChat,
		ChatGroup: &entity.ChatGroup{
			GroupName: request.GroupName,
			AdminID:   caller.ID,
		},
	}
	var memberIDs []uint

	err := uc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := uc.ChatRepository.Save(ctx, tx, chat); err != nil {
			return err
		}

		resolved, err := uc.AgentRepository.FindUserIDsByAgentIDs(ctx, tx, agentIDs)
		if err != nil {
			return err
		}
		if len(resolved) != len(agentIDs) {
			return errUnresolvedAgents
		}

		memberIDs = make([]uint, 0, len(agentIDs)+1)
		for _, agentID := range agentIDs {
			if userID := resolved[agentID]; !slices.Contains(memberIDs, userID) {
				memberIDs = append(memberIDs, userID)
			}
		}
		if !slices.Contains(memberIDs, caller.ID) {
			memberIDs = append(memberIDs, caller.ID)
		}

		return uc.ChatRepository.SaveParticipants(ctx, tx, chat.ID, memberIDs)
	})
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Uint("adminId", caller.ID).Msg("failed to create chat group")
		return res.ChatGroupResponse{}, exception.Internal("Failed to create chat group").Wrap(err)
	}

	response := res.ChatGroupResponse{
		ID:        chat.ID,
		ChatType:  string(chat.ChatType),
		GroupName: chat.ChatGroup.GroupName,
		AdminID:   caller.ID,
		MemberIDs: memberIDs,
		CreatedAt: chat.CreatedAt,
	}
	uc.Log.Http.Info.Info().Uint("chatId", chat.ID).Int("members", len(memberIDs)).Msg("chat group created")
	uc.Notifier.Notify(ctx, event.ChatGroupCreated, response, memberIDs...)
	return response, nil
}

func (uc *ChatUsecaseImpl) GetCustomerAgentChats(ctx context.Context, caller *entity.User) ([]res.CustomerAgentChatResponse, error) {
	if err := security.RequireRole(caller, enum.RoleAdmin); err != nil {
		return nil, err
	}

	chats, err := uc.ChatRepository.FindCustomerAgentChats(ctx, uc.DB)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to get customer chats")
		return nil, exception.Internal("Failed to fetch chats").Wrap(err)
	}

	responses := make([]res.CustomerAgentChatResponse, 0, len(chats))
	for _, chat := range chats {
		response := res.CustomerAgentChatResponse{
			ID:           chat.ID,
			ChatType:     string(chat.ChatType),
			CreatedAt:    chat.CreatedAt,
			UpdatedAt:    chat.UpdatedAt,
			Participants: toParticipants(chat.Participants),
		}
		if details := chat.ChatDetails; details != nil {
			response.ChatDetails = &res.ChatDetailsResponse{Status: string(details.Status)}
			if details.Category != nil {
				response.ChatDetails.Category = &res.CategoryResponse{ID: details.Category.ID, Title: details.Category.Title}
			}
		}
		responses = append(responses, response)
	}
	return responses, nil
}

func (uc *ChatUsecaseImpl) GetTeamChats(ctx context.Context, caller *entity.User) ([]res.TeamChatResponse, error) {
	if err := security.RequireRole(caller, enum.RoleAdmin); err != nil {
		return nil, err
	}

	chats, err := uc.ChatRepository.FindTeamChats(ctx, uc.DB, caller.ID)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to get team chats")
		return nil, exception.Internal("Failed to fetch chats").Wrap(err)
	}

	chatIDs := make([]uint, 0, len(chats))
	for _, chat := range chats {
		chatIDs = append(chatIDs, chat.ID)
	}
	latest, err := uc.ChatRepository.FindLatestMessages(ctx, uc.DB, chatIDs)
	if err != nil {
		uc.Log.Http.Error.Error().Err(err).Msg("failed to get latest messages")
		return nil, exception.Internal("Failed to fetch chats").Wrap(err)
	}

	responses := make([]res.TeamChatResponse, 0, len(chats))
	for _, chat := range chats {
		response := res.TeamChatResponse{
			ID:           chat.ID,
			ChatType:     string(chat.ChatType),
			CreatedAt:    chat.CreatedAt,
			UpdatedAt:    chat.UpdatedAt,
			Participants: toParticipants(chat.Participants),
			Messages:     []res.MessageResponse{},
		}
		if chat.ChatGroup != nil {
			response.GroupName = chat.ChatGroup.GroupName
		}
		if message, ok := latest[chat.ID]; ok {
			response.Messages = append(response.Messages, toMessageResponse(message))
		}
		responses = append(responses, response)
	}
	return responses, nil
}
